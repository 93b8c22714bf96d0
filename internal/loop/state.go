package loop

import (
	"github.com/tomz197/airhockey/internal/loop/config"
	"github.com/tomz197/airhockey/internal/object"
)

// Match holds the scores and the countdown of the current match.
type Match struct {
	ScoreLeft        int
	ScoreRight       int
	SecondsRemaining int
	Running          bool
}

// award gives a point to side.
func (m *Match) award(side object.Side) {
	if side == object.SideLeft {
		m.ScoreLeft++
	} else {
		m.ScoreRight++
	}
}

// State is everything the simulation mutates. Entity records are created
// once and reused across matches.
type State struct {
	Field   object.Field
	Players [2]*object.Player // Indexed by object.Side
	Ball    *object.Ball
	Match   Match
}

// NewState creates the entities for field in their kickoff layout.
func NewState(field object.Field) *State {
	s := &State{
		Field: field,
		Players: [2]*object.Player{
			object.NewPlayer(object.SideLeft, config.PlayerRadius, config.ColorLeftPlayer),
			object.NewPlayer(object.SideRight, config.PlayerRadius, config.ColorRightPlayer),
		},
		Ball: object.NewBall(config.BallRadius, config.ColorBall),
	}
	Reset(s)
	return s
}

// Player returns the player on side.
func (s *State) Player(side object.Side) *object.Player {
	return s.Players[side]
}

// Reset puts both players and the ball back into the kickoff layout with
// zero velocity. Scores and held keys are left alone.
func Reset(s *State) {
	mid := s.Field.Height / 2

	left := s.Players[object.SideLeft]
	left.Position.X = config.KickoffOffset
	left.Position.Y = mid
	left.Velocity.X, left.Velocity.Y = 0, 0

	right := s.Players[object.SideRight]
	right.Position.X = s.Field.Width - config.KickoffOffset
	right.Position.Y = mid
	right.Velocity.X, right.Velocity.Y = 0, 0

	s.Ball.Position = s.Field.Center()
	s.Ball.Velocity.X, s.Ball.Velocity.Y = 0, 0
}
