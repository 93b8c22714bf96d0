package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/airhockey/internal/loop"
	"github.com/tomz197/airhockey/internal/loop/config"
	"github.com/tomz197/airhockey/internal/object"
)

const hintText = "W A S D: Player 1   Arrows: Player 2   R: restart   Q: quit"

// styles are the lipgloss styles for text drawn over and around the field.
type styles struct {
	left   lipgloss.Style
	right  lipgloss.Style
	clock  lipgloss.Style
	hint   lipgloss.Style
	banner lipgloss.Style
	title  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		left:  r.NewStyle().Foreground(lipgloss.Color(config.ColorLeftPlayer)).Bold(true),
		right: r.NewStyle().Foreground(lipgloss.Color(config.ColorRightPlayer)).Bold(true),
		clock: r.NewStyle().Foreground(lipgloss.Color(config.ColorLines)),
		hint:  r.NewStyle().Faint(true),
		banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(config.ColorGoal)).
			Padding(0, 3).
			Align(lipgloss.Center),
		title: r.NewStyle().Foreground(lipgloss.Color(config.ColorGoal)).Bold(true),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On phase transitions, do a full terminal clear so the banner from the
	// previous phase doesn't persist on screen.
	phase := c.ctrl.Phase()
	if phase != c.state.prevPhase {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevPhase = phase
	}

	c.canvas.Clear()

	frame := c.state.Frame
	ctx := object.DrawContext{Canvas: c.canvas}

	drawables := []object.Drawable{
		frame.Field,
		&frame.Players[object.SideLeft],
		&frame.Players[object.SideRight],
		&frame.Ball,
	}
	for _, d := range drawables {
		if err := d.Draw(ctx); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawHUD()
	if c.state.Final != nil {
		c.drawGameOver(*c.state.Final)
	}
	c.drawHint()

	return c.chunkWriter.Flush()
}

// drawHUD draws scores and the remaining time on the row above the field.
// Fields are padded to a fixed width so shrinking values don't leave
// residual characters.
func (c *Client) drawHUD() {
	board := c.state.Board
	width := c.canvas.TerminalWidth()

	left := fmt.Sprintf("Player 1: %-3d", board.ScoreLeft)
	right := fmt.Sprintf("Player 2: %3d", board.ScoreRight)
	clock := "Time Left: " + board.Clock
	if board.Clock == "" {
		clock = "Time Left: " + loop.FormatClock(board.SecondsRemaining)
	}

	texts := []object.Text{
		{X: 1, Y: -1, Value: c.styles.left.Render(left), Width: len(left)},
		{X: 1 + (width-len(clock))/2, Y: -1, Value: c.styles.clock.Render(clock), Width: len(clock)},
		{X: 1 + width - len(right), Y: -1, Value: c.styles.right.Render(right), Width: len(right)},
	}
	for _, t := range texts {
		t.DrawTo(c.chunkWriter, c.canvas)
	}
}

// drawGameOver draws the final scores in a box centered on the field.
// Its cells are marked dirty so the canvas repaints them after a restart.
func (c *Client) drawGameOver(final loop.Score) {
	var verdict string
	switch {
	case final.Left > final.Right:
		verdict = c.styles.left.Render("Player 1 wins!")
	case final.Right > final.Left:
		verdict = c.styles.right.Render("Player 2 wins!")
	default:
		verdict = "It's a draw!"
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		c.styles.title.Render("GAME OVER"),
		"",
		fmt.Sprintf("Player 1: %d    Player 2: %d", final.Left, final.Right),
		verdict,
		"",
		"Press R or SPACE to play again",
	)
	box := c.styles.banner.Render(body)

	lines := strings.Split(box, "\n")
	boxWidth := lipgloss.Width(box)
	x := 1 + (c.canvas.TerminalWidth()-boxWidth)/2
	y := 1 + (c.canvas.TerminalHeight()-len(lines))/2
	for i, line := range lines {
		object.Text{X: x, Y: y + i, Value: line, Width: boxWidth}.DrawTo(c.chunkWriter, c.canvas)
	}
}

// drawHint draws the key help below the bottom border.
func (c *Client) drawHint() {
	hint := hintText
	width := c.canvas.TerminalWidth()
	if len(hint) > width {
		hint = hint[:width]
	}
	t := object.Text{
		X:     1 + (width-len(hint))/2,
		Y:     c.canvas.TerminalHeight() + 2,
		Value: c.styles.hint.Render(hint),
		Width: len(hint),
	}
	t.DrawTo(c.chunkWriter, c.canvas)
}
