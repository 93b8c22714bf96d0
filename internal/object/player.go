package object

import (
	"github.com/tomz197/airhockey/internal/physics"
)

// Intents are the directional keys currently held for one player.
type Intents struct {
	Up, Down, Left, Right bool
}

// Clear releases every direction.
func (i *Intents) Clear() {
	*i = Intents{}
}

// Player is a circular striker moved directly by its owner's keys.
type Player struct {
	Position physics.Vec2
	Velocity physics.Vec2 // Displacement requested this frame, before clamping
	Intents  Intents

	radius float64
	side   Side
	color  string
}

// NewPlayer creates a player for the given side. Radius, side and colour
// never change afterwards.
func NewPlayer(side Side, radius float64, color string) *Player {
	return &Player{
		radius: radius,
		side:   side,
		color:  color,
	}
}

func (p *Player) Radius() float64 { return p.radius }
func (p *Player) Side() Side      { return p.side }
func (p *Player) Color() string   { return p.color }

// Move recomputes the velocity from the held keys and applies it, then
// clamps the position so the whole circle stays inside the field. Each axis
// is independent, so diagonals are faster. The velocity itself is not
// affected by the clamp.
func (p *Player) Move(speed float64, field Field) {
	p.Velocity = physics.Vec2{}

	if p.Intents.Up {
		p.Velocity.Y = -speed
	}
	if p.Intents.Down {
		p.Velocity.Y = speed
	}
	if p.Intents.Left {
		p.Velocity.X = -speed
	}
	if p.Intents.Right {
		p.Velocity.X = speed
	}

	p.Position = field.ClampCircle(p.Position.Add(p.Velocity), p.radius)
}

// Draw renders the player as a filled circle in its colour.
func (p *Player) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(point(p.Position), p.Radius(), ctx.Canvas.Ink(p.Color()))
	return nil
}
