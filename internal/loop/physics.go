package loop

import (
	"github.com/tomz197/airhockey/internal/object"
)

// StepResult describes what happened during one simulation step.
type StepResult struct {
	Goal   bool
	Scorer object.Side // Valid when Goal is set
	Hits   int         // Number of player-ball collisions resolved
}

// Step advances the simulation by one frame: players move from their
// intents, strike the ball (left player first), then the ball moves and
// bounces or scores.
func Step(s *State, rules Rules) StepResult {
	var res StepResult

	for _, p := range s.Players {
		p.Move(rules.PlayerSpeed, s.Field)
	}

	for _, p := range s.Players {
		if hitBall(p, s.Ball, rules) {
			res.Hits++
		}
	}

	if scorer, ok := updateBall(s, rules); ok {
		s.Match.award(scorer)
		Reset(s)
		res.Goal = true
		res.Scorer = scorer
	}

	return res
}

// updateBall integrates the ball and handles the walls. Returns the scoring
// side when the ball left the field through a goal mouth.
func updateBall(s *State, rules Rules) (object.Side, bool) {
	b := s.Ball
	f := s.Field
	r := b.Radius()

	b.Advance(rules.BallFriction)

	// Top and bottom walls
	if b.Position.Y-r < 0 {
		b.Position.Y = r
		b.Velocity.Y = -b.Velocity.Y
	}
	if b.Position.Y+r > f.Height {
		b.Position.Y = f.Height - r
		b.Velocity.Y = -b.Velocity.Y
	}

	// Side walls, unless the ball is inside a goal mouth. A goal scores for
	// the opponent of the side it was conceded on.
	switch {
	case b.Position.X-r < 0:
		if f.InGoalMouth(b.Position.Y) {
			return object.SideLeft.Opponent(), true
		}
		b.Position.X = r
		b.Velocity.X = -b.Velocity.X
	case b.Position.X+r > f.Width:
		if f.InGoalMouth(b.Position.Y) {
			return object.SideRight.Opponent(), true
		}
		b.Position.X = f.Width - r
		b.Velocity.X = -b.Velocity.X
	}

	return 0, false
}
