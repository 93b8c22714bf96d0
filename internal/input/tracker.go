package input

import (
	"strings"

	"github.com/tomz197/airhockey/internal/object"
)

type direction int

const (
	dirUp direction = iota
	dirDown
	dirLeft
	dirRight
)

// Key identifiers understood by the Tracker and produced by Stream.
const (
	KeyW          = "w"
	KeyA          = "a"
	KeyS          = "s"
	KeyD          = "d"
	KeyArrowUp    = "arrowup"
	KeyArrowDown  = "arrowdown"
	KeyArrowLeft  = "arrowleft"
	KeyArrowRight = "arrowright"
)

type binding struct {
	intents *object.Intents
	dir     direction
}

// Tracker maps key identifiers to the intent flags of the two players.
// Player 1 uses WASD, player 2 the arrow keys. Key identifiers are matched
// case-insensitively.
type Tracker struct {
	left     *object.Intents
	right    *object.Intents
	bindings map[string]binding
}

// NewTracker binds the fixed key sets to the given intent records.
func NewTracker(left, right *object.Intents) *Tracker {
	return &Tracker{
		left:  left,
		right: right,
		bindings: map[string]binding{
			KeyW:          {left, dirUp},
			KeyS:          {left, dirDown},
			KeyA:          {left, dirLeft},
			KeyD:          {left, dirRight},
			KeyArrowUp:    {right, dirUp},
			KeyArrowDown:  {right, dirDown},
			KeyArrowLeft:  {right, dirLeft},
			KeyArrowRight: {right, dirRight},
		},
	}
}

// Press sets the flag bound to key. Returns false for unbound keys.
func (t *Tracker) Press(key string) bool {
	return t.set(key, true)
}

// Release clears the flag bound to key. Returns false for unbound keys.
func (t *Tracker) Release(key string) bool {
	return t.set(key, false)
}

// Reset clears every flag of both players.
func (t *Tracker) Reset() {
	t.left.Clear()
	t.right.Clear()
}

func (t *Tracker) set(key string, held bool) bool {
	b, ok := t.bindings[strings.ToLower(key)]
	if !ok {
		return false
	}
	switch b.dir {
	case dirUp:
		b.intents.Up = held
	case dirDown:
		b.intents.Down = held
	case dirLeft:
		b.intents.Left = held
	case dirRight:
		b.intents.Right = held
	}
	return true
}
