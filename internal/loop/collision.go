package loop

import (
	"github.com/tomz197/airhockey/internal/object"
	"github.com/tomz197/airhockey/internal/physics"
)

// hitBall resolves a player striking the ball. Returns true if the ball's
// velocity was changed.
func hitBall(p *object.Player, b *object.Ball, rules Rules) bool {
	if !physics.CirclesOverlap(p.Position, p.Radius(), b.Position, b.Radius()) {
		return false
	}

	// Collision normal (from player to ball)
	n, dist, ok := physics.Normal(p.Position, b.Position)
	if !ok {
		return false
	}

	// Relative velocity along the collision normal
	vn := b.Velocity.Sub(p.Velocity).Dot(n)

	// Don't resolve if already separating
	if vn >= 0 {
		return false
	}

	b.Velocity = p.Velocity.Add(n.Scale(-vn * rules.Restitution))

	// Push the ball out until the circles touch
	overlap := p.Radius() + b.Radius() - dist
	b.Position = b.Position.Add(n.Scale(overlap))

	b.Velocity = b.Velocity.ClampLen(rules.BallMaxSpeed)
	return true
}
