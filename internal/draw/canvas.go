package draw

import (
	"io"
	"math"
	"strings"
)

// cell is what was last written to one terminal cell.
type cell struct {
	top, bottom Ink
	valid       bool // false forces the cell to be rewritten
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Scales from logical field coordinates to terminal sub-pixels and only
// rewrites cells that changed since the previous Render.
type Canvas struct {
	termWidth      int   // Render area columns
	termHeight     int   // Render area rows
	subPixelHeight int   // termHeight * 2
	pixels         []Ink // Flat slice: [y * termWidth + x]
	front          []cell

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets (columns/rows to skip) for centering.
	offsetCol int
	offsetRow int

	palette   *Palette
	renderBuf strings.Builder
	numBuf    [20]byte
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the render area dimensions in cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, palette *Palette) *Canvas {
	if palette == nil {
		palette = NewPalette()
	}
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		palette:       palette,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// A size change forces a full redraw.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}

	if termWidth != c.termWidth || termHeight != c.termHeight {
		subPixelHeight := termHeight * 2
		c.pixels = make([]Ink, subPixelHeight*termWidth)
		c.front = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Ink resolves hex on the canvas palette.
func (c *Canvas) Ink(hex string) Ink {
	return c.palette.Ink(hex)
}

// Clear resets all pixels in the canvas. The previous frame stays known so
// Render can skip unchanged cells.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.front {
		c.front[i].valid = false
	}
}

// MarkTextDirty invalidates n cells starting at the 1-based terminal position
// (col, row) so text written over the canvas gets overwritten next frame.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1 - c.offsetRow
	if r < 0 || r >= c.termHeight {
		return
	}
	for i := 0; i < n; i++ {
		x := col - 1 - c.offsetCol + i
		if x >= 0 && x < c.termWidth {
			c.front[r*c.termWidth+x].valid = false
		}
	}
}

// setPixel sets a pixel at actual sub-pixel coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, ink Ink) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = ink
	}
}

// At returns the ink at logical coordinates.
func (c *Canvas) At(x, y float64) Ink {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return NoInk
	}
	return c.pixels[py*c.termWidth+px]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, ink Ink) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), ink)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, ink Ink) {
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, ink)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillRect fills the logical rectangle with its top-left corner at (x, y).
func (c *Canvas) FillRect(x, y, w, h float64, ink Ink) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x+w)*c.scaleX)) - 1
	y1 := int(math.Ceil((y+h)*c.scaleY)) - 1
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, ink)
		}
	}
}

// FillCircle fills a circle given in logical coordinates. Pixels whose center
// lies inside the circle are set; the center pixel is always set so tiny
// circles stay visible.
func (c *Canvas) FillCircle(center Point, radius float64, ink Ink) {
	x0 := int(math.Floor((center.X - radius) * c.scaleX))
	x1 := int(math.Ceil((center.X + radius) * c.scaleX))
	y0 := int(math.Floor((center.Y - radius) * c.scaleY))
	y1 := int(math.Ceil((center.Y + radius) * c.scaleY))
	r2 := radius * radius

	for py := y0; py <= y1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - center.Y
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - center.X
			if lx*lx+ly*ly <= r2 {
				c.setPixel(px, py, ink)
			}
		}
	}
	c.SetFloat(center.X, center.Y, ink)
}

// StrokeCircle draws the outline of a circle given in logical coordinates.
func (c *Canvas) StrokeCircle(center Point, radius float64, ink Ink) {
	// One sample per sub-pixel of circumference is enough to close the outline.
	scale := math.Max(c.scaleX, c.scaleY)
	steps := int(2*math.Pi*radius*scale) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.SetFloat(center.X+math.Cos(a)*radius, center.Y+math.Sin(a)*radius, ink)
	}
}

// Render outputs changed cells to the writer using half-block characters.
// The top sub-pixel is drawn as the foreground of '▀' and the bottom one as
// its background, so each cell can show two colours.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	cursorRow, cursorCol := -1, -1
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			idx := row*c.termWidth + col
			prev := c.front[idx]
			if prev.valid && prev.top == top && prev.bottom == bottom {
				continue
			}
			c.front[idx] = cell{top: top, bottom: bottom, valid: true}

			if row != cursorRow || col != cursorCol {
				c.moveCursor(row+1+c.offsetRow, col+1+c.offsetCol)
			}
			c.writeCell(top, bottom)
			cursorRow, cursorCol = row, col+1
		}
	}

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(ColorReset)
	return writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(row, col int) {
	cursorTo(&c.renderBuf, c.numBuf[:], row, col)
}

func (c *Canvas) writeCell(top, bottom Ink) {
	c.renderBuf.WriteString(ColorReset)
	switch {
	case top == NoInk && bottom == NoInk:
		c.renderBuf.WriteRune(BlockEmpty)
	case top == bottom:
		c.renderBuf.WriteString(c.palette.Fg(top))
		c.renderBuf.WriteRune(BlockFull)
	case bottom == NoInk:
		c.renderBuf.WriteString(c.palette.Fg(top))
		c.renderBuf.WriteRune(BlockUpperHalf)
	case top == NoInk:
		c.renderBuf.WriteString(c.palette.Fg(bottom))
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		c.renderBuf.WriteString(c.palette.Fg(top))
		c.renderBuf.WriteString(c.palette.Bg(bottom))
		c.renderBuf.WriteRune(BlockUpperHalf)
	}
}

// RenderBorder draws a box border around the canvas area when there is room
// for it on both axes.
func (c *Canvas) RenderBorder(w io.Writer) error {
	if c.offsetCol < 1 || c.offsetRow < 1 {
		return nil
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	horizontal := strings.Repeat("─", c.termWidth)
	cursorTo(&buf, c.numBuf[:], top, left)
	buf.WriteString("┌" + horizontal + "┐")
	cursorTo(&buf, c.numBuf[:], bottom, left)
	buf.WriteString("└" + horizontal + "┘")
	for row := top + 1; row < bottom; row++ {
		cursorTo(&buf, c.numBuf[:], row, left)
		buf.WriteString("│")
		cursorTo(&buf, c.numBuf[:], row, right)
		buf.WriteString("│")
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
