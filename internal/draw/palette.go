package draw

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Ink is a palette index stored per sub-pixel. The zero Ink is an empty pixel.
type Ink uint8

// NoInk marks an empty pixel.
const NoInk Ink = 0

// Palette maps hex colours to Inks and caches their SGR sequences.
type Palette struct {
	index map[string]Ink
	fg    []string // indexed by Ink
	bg    []string
}

// NewPalette creates an empty palette.
func NewPalette() *Palette {
	return &Palette{
		index: make(map[string]Ink),
		fg:    []string{""},
		bg:    []string{""},
	}
}

// Ink returns the Ink for a hex colour such as "#ffd700", registering it on
// first use. Unparseable colours fall back to white. A palette holds at most
// 255 colours; further colours reuse the last slot.
func (p *Palette) Ink(hex string) Ink {
	if ink, ok := p.index[hex]; ok {
		return ink
	}
	if len(p.fg) > 255 {
		return Ink(len(p.fg) - 1)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 1, G: 1, B: 1}
	}
	r, g, b := c.RGB255()

	ink := Ink(len(p.fg))
	p.fg = append(p.fg, fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b))
	p.bg = append(p.bg, fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b))
	p.index[hex] = ink
	return ink
}

// Fg returns the foreground SGR sequence for ink.
func (p *Palette) Fg(ink Ink) string {
	if int(ink) >= len(p.fg) {
		return ""
	}
	return p.fg[ink]
}

// Bg returns the background SGR sequence for ink.
func (p *Palette) Bg(ink Ink) string {
	if int(ink) >= len(p.bg) {
		return ""
	}
	return p.bg[ink]
}
