// Package config centralizes the fixed field geometry and default game tuning.
package config

import "time"

// Field dimensions in logical units. Rendering scales to fit the terminal.
const (
	FieldWidth  = 800
	FieldHeight = 500
)

// Goal mouths sit centered vertically on both side walls.
const (
	GoalWidth  = 20  // Horizontal thickness of the drawn goal area
	GoalHeight = 250 // Vertical span of the goal mouth
)

// Kickoff layout
const (
	KickoffOffset      = 150 // Distance of each player's center from its own side wall
	CenterCircleRadius = 100
)

// Bodies
const (
	PlayerRadius = 20.0
	BallRadius   = 10.0
)

// Physics defaults (per frame, not per second)
const (
	PlayerSpeed  = 6.0
	BallMaxSpeed = 15.0
	BallFriction = 0.97
	Restitution  = 1.7 // How hard the ball gets hit, > 1
)

// Match
const (
	MatchDurationSeconds = 120
)

// Colours
const (
	ColorLeftPlayer  = "#ffd700"
	ColorRightPlayer = "#ff4500"
	ColorBall        = "#ffffff"
	ColorLines       = "#ffffff"
	ColorGoal        = "#ffd700"
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminals report presses only. A key counts as held until it has not been
// seen for KeyHoldDuration; autorepeat refreshes it. Before the first repeat
// arrives the gap may be as long as KeyRepeatDelay.
const (
	KeyHoldDuration = 120 * time.Millisecond
	KeyRepeatDelay  = 600 * time.Millisecond
)

// Max render resolution in terminal cells. Larger terminals get a border.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)
