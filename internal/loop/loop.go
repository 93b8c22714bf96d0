// Package loop runs the air-hockey simulation: per-frame movement and
// physics, goal handling, and the match state machine with its countdown.
package loop

import (
	"github.com/tomz197/airhockey/internal/loop/config"
)

// Rules are the tunable parameters of a match. Speeds are per frame.
type Rules struct {
	PlayerSpeed   float64
	BallMaxSpeed  float64
	BallFriction  float64 // Velocity multiplier applied every frame, < 1
	Restitution   float64 // Multiplier on the reflected normal speed, > 1
	MatchDuration int     // Seconds
}

// DefaultRules returns the standard rules.
func DefaultRules() Rules {
	return Rules{
		PlayerSpeed:   config.PlayerSpeed,
		BallMaxSpeed:  config.BallMaxSpeed,
		BallFriction:  config.BallFriction,
		Restitution:   config.Restitution,
		MatchDuration: config.MatchDurationSeconds,
	}
}
