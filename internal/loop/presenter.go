package loop

import (
	"fmt"

	"github.com/tomz197/airhockey/internal/object"
)

// Presenter is the shell that shows a match. All calls happen on the
// goroutine driving the Controller.
type Presenter interface {
	// Render receives a read-only snapshot after every simulation step.
	Render(frame Frame)
	// Scoreboard receives the scores and remaining time after every change.
	Scoreboard(board Scoreboard)
	// GameOver is called once when a match ends.
	GameOver(final Score)
}

// Frame is a snapshot of the field. Players and Ball are copies.
type Frame struct {
	Field   object.Field
	Players [2]object.Player
	Ball    object.Ball
}

// Scoreboard is what the HUD shows.
type Scoreboard struct {
	ScoreLeft        int
	ScoreRight       int
	SecondsRemaining int
	Clock            string // MM:SS
	Running          bool
}

// Score is a final result.
type Score struct {
	Left  int
	Right int
}

// FormatClock renders seconds as zero-padded minutes:seconds.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func snapshot(s *State) Frame {
	f := Frame{Field: s.Field, Ball: *s.Ball}
	for _, p := range s.Players {
		f.Players[p.Side()] = *p
	}
	return f
}

func scoreboard(m Match) Scoreboard {
	return Scoreboard{
		ScoreLeft:        m.ScoreLeft,
		ScoreRight:       m.ScoreRight,
		SecondsRemaining: m.SecondsRemaining,
		Clock:            FormatClock(m.SecondsRemaining),
		Running:          m.Running,
	}
}
