// Package object holds the entities on the field and how they draw themselves.
package object

import (
	"github.com/tomz197/airhockey/internal/draw"
	"github.com/tomz197/airhockey/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
}

// Drawable is anything that can draw itself onto the canvas.
type Drawable interface {
	Draw(ctx DrawContext) error
}

// Side identifies one half of the field.
type Side int

const (
	SideLeft  Side = iota // Player 1
	SideRight             // Player 2
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

func point(v physics.Vec2) draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}
