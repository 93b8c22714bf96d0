package object

import (
	"github.com/tomz197/airhockey/internal/draw"
)

// Text is a line of HUD text at a 1-based terminal position relative to the
// render area. Row 0 and below address the rows above the field.
type Text struct {
	X     int
	Y     int
	Value string // May contain SGR styling
	Width int    // Visible width, used to invalidate canvas cells under the text
}

// DrawTo writes the text and marks the cells it covers as dirty on the canvas.
func (t Text) DrawTo(cw *draw.ChunkWriter, canvas *draw.Canvas) {
	if t.Value == "" {
		return
	}
	// Clamp to the terminal, not the render area
	x := max(t.X, 1-cw.OffsetCol())
	y := max(t.Y, 1-cw.OffsetRow())
	cw.WriteAt(x, y, t.Value)
	if canvas != nil {
		canvas.MarkTextDirty(x+cw.OffsetCol(), y+cw.OffsetRow(), t.Width)
	}
}
