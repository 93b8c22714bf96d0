package object

import (
	"github.com/tomz197/airhockey/internal/draw"
	"github.com/tomz197/airhockey/internal/loop/config"
	"github.com/tomz197/airhockey/internal/physics"
)

// Field is the immutable play-area geometry. Goal mouths are centered
// vertically on both side walls.
type Field struct {
	Width      float64
	Height     float64
	GoalWidth  float64 // Drawn thickness of each goal area
	GoalHeight float64 // Vertical span of each goal mouth
}

// DefaultField returns the standard field.
func DefaultField() Field {
	return Field{
		Width:      config.FieldWidth,
		Height:     config.FieldHeight,
		GoalWidth:  config.GoalWidth,
		GoalHeight: config.GoalHeight,
	}
}

// GoalTop returns the y coordinate where both goal mouths start.
func (f Field) GoalTop() float64 {
	return (f.Height - f.GoalHeight) / 2
}

// InGoalMouth reports whether y lies strictly inside the goal mouth span.
func (f Field) InGoalMouth(y float64) bool {
	top := f.GoalTop()
	return y > top && y < top+f.GoalHeight
}

// Center returns the middle of the field.
func (f Field) Center() physics.Vec2 {
	return physics.NewVec2(f.Width/2, f.Height/2)
}

// ClampCircle moves pos so a circle of radius r lies fully inside the field.
func (f Field) ClampCircle(pos physics.Vec2, r float64) physics.Vec2 {
	return physics.Vec2{
		X: physics.Clamp(pos.X, r, f.Width-r),
		Y: physics.Clamp(pos.Y, r, f.Height-r),
	}
}

// Draw renders the midline, center circle and both goal areas.
func (f Field) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	lines := c.Ink(config.ColorLines)
	goal := c.Ink(config.ColorGoal)

	mid := f.Width / 2
	c.DrawLine(draw.Point{X: mid, Y: 0}, draw.Point{X: mid, Y: f.Height - 1}, lines)
	c.StrokeCircle(point(f.Center()), config.CenterCircleRadius, lines)

	top := f.GoalTop()
	c.FillRect(0, top, f.GoalWidth, f.GoalHeight, goal)
	c.FillRect(f.Width-f.GoalWidth, top, f.GoalWidth, f.GoalHeight, goal)
	return nil
}
