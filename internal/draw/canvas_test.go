package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCanvas() *Canvas {
	// 80x25 cells over an 800x500 field: one sub-pixel is 10x10 logical units.
	return NewScaledCanvas(80, 25, 800, 500, nil)
}

func TestPaletteReusesInks(t *testing.T) {
	p := NewPalette()
	gold := p.Ink("#ffd700")
	assert.NotEqual(t, NoInk, gold)
	assert.Equal(t, gold, p.Ink("#ffd700"))
	assert.NotEqual(t, gold, p.Ink("#ff4500"))
	assert.Equal(t, "\033[38;2;255;215;0m", p.Fg(gold))
	assert.Equal(t, "\033[48;2;255;215;0m", p.Bg(gold))
}

func TestPaletteFallsBackToWhite(t *testing.T) {
	p := NewPalette()
	ink := p.Ink("not-a-colour")
	assert.Equal(t, "\033[38;2;255;255;255m", p.Fg(ink))
}

func TestFillCircle(t *testing.T) {
	c := newTestCanvas()
	ink := c.Ink("#ffffff")
	c.FillCircle(Point{X: 400, Y: 250}, 20, ink)

	assert.Equal(t, ink, c.At(400, 250))
	assert.Equal(t, ink, c.At(385, 250))
	assert.Equal(t, NoInk, c.At(430, 250))
	assert.Equal(t, NoInk, c.At(400, 290))
}

func TestTinyCircleStillVisible(t *testing.T) {
	c := newTestCanvas()
	ink := c.Ink("#ffffff")
	c.FillCircle(Point{X: 123, Y: 77}, 1, ink)
	assert.Equal(t, ink, c.At(123, 77))
}

func TestFillRectAndLine(t *testing.T) {
	c := newTestCanvas()
	gold := c.Ink("#ffd700")
	white := c.Ink("#ffffff")

	c.FillRect(0, 125, 20, 250, gold)
	assert.Equal(t, gold, c.At(5, 200))
	assert.Equal(t, NoInk, c.At(5, 100))

	c.DrawLine(Point{X: 400, Y: 0}, Point{X: 400, Y: 499}, white)
	assert.Equal(t, white, c.At(400, 0))
	assert.Equal(t, white, c.At(400, 499))
}

func TestRenderSkipsUnchangedCells(t *testing.T) {
	c := newTestCanvas()
	ink := c.Ink("#ff4500")

	var first bytes.Buffer
	c.FillCircle(Point{X: 100, Y: 100}, 20, ink)
	require.NoError(t, c.Render(&first))
	assert.Contains(t, first.String(), "\033[38;2;255;69;0m")

	var second bytes.Buffer
	c.Clear()
	c.FillCircle(Point{X: 100, Y: 100}, 20, ink)
	require.NoError(t, c.Render(&second))
	assert.Empty(t, second.String(), "identical frame should write nothing")

	var third bytes.Buffer
	c.ForceRedraw()
	require.NoError(t, c.Render(&third))
	assert.True(t, strings.Contains(third.String(), string(BlockFull)))
}

func TestRenderErasesMovedShapes(t *testing.T) {
	c := newTestCanvas()
	ink := c.Ink("#ffffff")

	c.FillCircle(Point{X: 100, Y: 100}, 10, ink)
	require.NoError(t, c.Render(&bytes.Buffer{}))

	var out bytes.Buffer
	c.Clear()
	require.NoError(t, c.Render(&out))
	assert.Contains(t, out.String(), string(BlockEmpty))
}

func TestChunkWriterAppliesOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 3)
	cw.WriteAt(1, 1, "hi")
	assert.Empty(t, out.String(), "nothing is written before Flush")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[4;3Hhi", out.String())
}

type sizeRecorder struct{ sizes []int }

func (r *sizeRecorder) Write(p []byte) (int, error) {
	r.sizes = append(r.sizes, len(p))
	return len(p), nil
}

func TestWriteChunked(t *testing.T) {
	var r sizeRecorder
	require.NoError(t, writeChunked(&r, strings.Repeat("x", 3000)))
	assert.Equal(t, []int{1400, 1400, 200}, r.sizes)

	r.sizes = nil
	require.NoError(t, writeChunked(&r, ""))
	assert.Empty(t, r.sizes)
}
