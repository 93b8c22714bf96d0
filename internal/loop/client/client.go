// Package client is the terminal shell around a match: it reads keys, drives
// the controller's clock once per frame and draws the field and HUD.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/metric"

	"github.com/tomz197/airhockey/internal/draw"
	"github.com/tomz197/airhockey/internal/input"
	"github.com/tomz197/airhockey/internal/loop"
	"github.com/tomz197/airhockey/internal/loop/config"
	"github.com/tomz197/airhockey/internal/object"
)

// Client runs one local two-player match on a single terminal.
type Client struct {
	ctrl         *loop.Controller
	clock        *loop.Clock
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates the whole frame for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc
	frameTime    time.Duration
	styles       styles
	logger       *log.Logger
}

// ClientOptions configures the client. Zero values select the defaults.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Rules        loop.Rules
	KeyHold      time.Duration // How long a key stays held after its last repeat
	KeyDelay     time.Duration // How long a fresh press waits for its first repeat
	FPS          int
	Logger       *log.Logger
	Meter        metric.Meter
}

// Compile-time check that Client implements loop.Presenter.
var _ loop.Presenter = (*Client)(nil)

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	rules := opts.Rules
	if rules == (loop.Rules{}) {
		rules = loop.DefaultRules()
	}
	keyHold := opts.KeyHold
	if keyHold <= 0 {
		keyHold = config.KeyHoldDuration
	}
	keyDelay := opts.KeyDelay
	if keyDelay <= 0 {
		keyDelay = config.KeyRepeatDelay
	}
	frameTime := config.ClientTargetFrameTime
	if opts.FPS > 0 {
		frameTime = time.Second / time.Duration(opts.FPS)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// SSH writers are not terminals termenv can inspect, so pin the profile.
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.TrueColor)

	field := object.DefaultField()
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height, draw.NewPalette())
	canvas.SetOffset(offsetCol, offsetRow)

	c := &Client{
		clock:        loop.NewClock(time.Now()),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  draw.NewChunkWriter(w, offsetCol, offsetRow),
		writer:       w,
		inputStream:  input.StartStream(r, keyHold, keyDelay),
		termSizeFunc: termSizeFunc,
		frameTime:    frameTime,
		styles:       newStyles(renderer),
		logger:       logger,
	}
	c.ctrl = loop.NewController(c.clock, c,
		loop.WithRules(rules),
		loop.WithField(field),
		loop.WithLogger(logger),
		loop.WithMeter(opts.Meter),
	)
	c.state.Frame = c.ctrl.Snapshot()
	c.state.Board = loop.Scoreboard{Clock: loop.FormatClock(rules.MatchDuration)}
	return c
}

// Render implements loop.Presenter.
func (c *Client) Render(frame loop.Frame) {
	c.state.Frame = frame
}

// Scoreboard implements loop.Presenter.
func (c *Client) Scoreboard(board loop.Scoreboard) {
	c.state.Board = board
}

// GameOver implements loop.Presenter.
func (c *Client) GameOver(final loop.Score) {
	c.state.Final = &final
}

// Controller returns the match controller driven by this client.
func (c *Client) Controller() *loop.Controller {
	return c.ctrl
}

// Run starts a match and runs the client loop. Blocks until the player quits
// or the input ends.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	c.restart()

	for c.state.Running {
		frameStart := time.Now()

		c.step(frameStart)

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < c.frameTime {
			time.Sleep(c.frameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// step moves the match to now. The clock advances before input so a restart
// schedules its countdown from now.
func (c *Client) step(now time.Time) {
	// Countdown first
	c.clock.Advance(now)

	// Process input
	c.processInput(now)

	// Handle screen resize
	c.updateScreen()

	// At most one simulation step
	c.clock.Frame()
}

// processInput forwards key events to the controller and handles the
// shell's own keys.
func (c *Client) processInput(now time.Time) {
	events := c.inputStream.Read(now)
	if c.inputStream.Closed() {
		c.state.Running = false
	}

	for _, ev := range events {
		if !ev.Down {
			c.ctrl.KeyUp(ev.Key)
			continue
		}

		switch ev.Key {
		case input.KeyQuit, input.KeyCtrlC:
			c.state.Running = false
		case input.KeyRestart:
			c.restart()
		case input.KeySpace, input.KeyEnter:
			if c.ctrl.Phase() != loop.PhaseRunning {
				c.restart()
			}
		default:
			c.ctrl.KeyDown(ev.Key)
		}
	}
}

// restart starts a fresh match with no keys held.
func (c *Client) restart() {
	c.inputStream.ReleaseAll()
	c.ctrl.ReleaseAll()
	c.state.Final = nil
	c.ctrl.Start()
	c.logger.Debug("match restarted")
}

// updateScreen handles terminal resize. On actual size changes, clears the
// terminal to remove residual pixels outside the new canvas area.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// Layout rows reserved around the field: HUD and top border above it,
// bottom border and hint line below it.
const (
	rowsAbove = 2
	rowsBelow = 2
)

// clampTermSize fits the field into the terminal, keeping its aspect ratio
// (two square sub-pixels per cell) and the max render resolution, and
// computes the centering offset.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	availCols := termWidth - 2
	availRows := termHeight - rowsAbove - rowsBelow

	maxCols := min(availCols, config.MaxTermWidth)
	maxRows := min(availRows, config.MaxTermHeight)

	renderHeight = min(maxRows, maxCols*config.FieldHeight/(2*config.FieldWidth))
	renderHeight = max(renderHeight, 1)
	renderWidth = (renderHeight*2*config.FieldWidth + config.FieldHeight/2) / config.FieldHeight
	renderWidth = max(renderWidth, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max(rowsAbove+(availRows-renderHeight)/2, 0)
	return
}
