package loop

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/metric"

	"github.com/tomz197/airhockey/internal/input"
	"github.com/tomz197/airhockey/internal/object"
)

// Phase is where a match is in its lifecycle.
type Phase int

const (
	PhaseIdle    Phase = iota // Nothing started yet
	PhaseRunning              // Countdown and frames active
	PhaseEnded                // Time ran out, waiting for a restart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithRules overrides the default rules.
func WithRules(r Rules) Option {
	return func(c *Controller) {
		c.rules = r
	}
}

// WithField overrides the default field geometry.
func WithField(f object.Field) Option {
	return func(c *Controller) {
		c.field = f
	}
}

// WithLogger sets the logger for match events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMeter sets the meter used for match counters.
func WithMeter(m metric.Meter) Option {
	return func(c *Controller) {
		c.meter = m
	}
}

// Controller owns a match: the simulation state, the key tracker and the two
// scheduled tasks (countdown and next frame). It must only be used from the
// goroutine that drives its Scheduler.
type Controller struct {
	sched   Scheduler
	view    Presenter
	rules   Rules
	field   object.Field
	logger  *log.Logger
	meter   metric.Meter
	metrics *instruments

	state   *State
	tracker *input.Tracker
	phase   Phase

	countdown Task
	frame     Task
	started   time.Time
}

// NewController creates an idle controller. Nothing is scheduled until Start.
func NewController(sched Scheduler, view Presenter, opts ...Option) *Controller {
	c := &Controller{
		sched:  sched,
		view:   view,
		rules:  DefaultRules(),
		field:  object.DefaultField(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.metrics = newInstruments(c.meter)
	c.state = NewState(c.field)
	c.tracker = input.NewTracker(
		&c.state.Players[object.SideLeft].Intents,
		&c.state.Players[object.SideRight].Intents,
	)
	return c
}

// Start begins a new match, abandoning any match in progress.
func (c *Controller) Start() {
	c.cancelTasks()

	c.state.Match = Match{
		SecondsRemaining: c.rules.MatchDuration,
		Running:          true,
	}
	Reset(c.state)
	c.phase = PhaseRunning
	c.started = time.Now()

	c.countdown = c.sched.Every(time.Second, c.tick)
	c.publish()
	c.frame = c.sched.RequestFrame(c.runFrame)

	c.metrics.matchStarted(context.Background())
	c.logger.Info("match started", "duration", c.rules.MatchDuration)
}

// KeyDown presses key. Ignored unless a match is running.
func (c *Controller) KeyDown(key string) {
	if !c.state.Match.Running {
		return
	}
	c.tracker.Press(key)
}

// KeyUp releases key. Always applied so no key stays stuck between matches.
func (c *Controller) KeyUp(key string) {
	c.tracker.Release(key)
}

// ReleaseAll releases every key of both players.
func (c *Controller) ReleaseAll() {
	c.tracker.Reset()
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Match returns a copy of the scores and countdown.
func (c *Controller) Match() Match {
	return c.state.Match
}

// Snapshot returns a copy of the current field for drawing.
func (c *Controller) Snapshot() Frame {
	return snapshot(c.state)
}

// Rules returns the rules this controller plays by.
func (c *Controller) Rules() Rules {
	return c.rules
}

func (c *Controller) tick() {
	m := &c.state.Match
	if !m.Running {
		return
	}

	m.SecondsRemaining--
	if m.SecondsRemaining <= 0 {
		m.SecondsRemaining = 0
		c.end()
		return
	}
	c.publish()
}

func (c *Controller) end() {
	c.cancelTasks()
	c.state.Match.Running = false
	c.phase = PhaseEnded
	c.publish()

	m := c.state.Match
	c.logger.Info("match ended",
		"left", m.ScoreLeft,
		"right", m.ScoreRight,
		"elapsed", time.Since(c.started).Round(time.Second),
	)
	c.view.GameOver(Score{Left: m.ScoreLeft, Right: m.ScoreRight})
}

func (c *Controller) runFrame() {
	c.frame = nil
	if !c.state.Match.Running {
		return
	}

	res := Step(c.state, c.rules)
	c.metrics.stepped(context.Background(), res)
	if res.Goal {
		m := c.state.Match
		c.logger.Debug("goal", "scorer", res.Scorer, "left", m.ScoreLeft, "right", m.ScoreRight)
	}

	c.view.Render(snapshot(c.state))
	c.publish()
	c.frame = c.sched.RequestFrame(c.runFrame)
}

func (c *Controller) publish() {
	c.view.Scoreboard(scoreboard(c.state.Match))
}

func (c *Controller) cancelTasks() {
	if c.countdown != nil {
		c.countdown.Cancel()
		c.countdown = nil
	}
	if c.frame != nil {
		c.frame.Cancel()
		c.frame = nil
	}
}
