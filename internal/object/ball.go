package object

import (
	"github.com/tomz197/airhockey/internal/physics"
)

// Ball is the puck. It keeps its momentum and slows down by friction.
type Ball struct {
	Position physics.Vec2
	Velocity physics.Vec2

	radius float64
	color  string
}

// NewBall creates a ball at the origin with zero velocity.
func NewBall(radius float64, color string) *Ball {
	return &Ball{radius: radius, color: color}
}

func (b *Ball) Radius() float64 { return b.radius }
func (b *Ball) Color() string   { return b.color }

// Advance applies the velocity to the position, then scales the velocity by
// friction.
func (b *Ball) Advance(friction float64) {
	b.Position = b.Position.Add(b.Velocity)
	b.Velocity = b.Velocity.Scale(friction)
}

// Draw renders the ball as a filled circle.
func (b *Ball) Draw(ctx DrawContext) error {
	ctx.Canvas.FillCircle(point(b.Position), b.Radius(), ctx.Canvas.Ink(b.Color()))
	return nil
}
