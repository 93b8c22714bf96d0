package client

import (
	"github.com/tomz197/airhockey/internal/loop"
)

// ClientState holds what the shell was last told by the controller plus
// its own bookkeeping. Only touched from the client loop.
type ClientState struct {
	Running   bool            // Client loop running
	Board     loop.Scoreboard // Latest scoreboard
	Frame     loop.Frame      // Latest rendered snapshot
	Final     *loop.Score     // Set once the match ended, cleared on restart
	prevPhase loop.Phase      // Phase drawn in the previous frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:   true,
		prevPhase: loop.PhaseIdle,
	}
}
