// Package input turns raw key identifiers and terminal bytes into player intents.
package input

import (
	"bufio"
	"sort"
	"time"
)

// Control keys produced by Stream that are not bound to a player.
const (
	KeyQuit    = "q"
	KeyRestart = "r"
	KeySpace   = "space"
	KeyEnter   = "enter"
	KeyEscape  = "escape"
	KeyCtrlC   = "ctrl+c"
)

// Event is a single key transition.
type Event struct {
	Key  string
	Down bool
}

// Stream delivers input bytes via a channel and converts them into key
// events. Terminals only report presses (plus autorepeat), so a key is
// considered released once it has not been seen for the hold duration. A
// fresh press waits for the repeat delay instead, since autorepeat only
// starts after it.
type Stream struct {
	ch      chan byte
	hold    time.Duration
	delay   time.Duration
	held    map[string]heldKey
	closed  bool
	buf     []byte
	pending []byte // Unfinished escape sequence from the previous Read
	events  []Event
}

type heldKey struct {
	seen     time.Time // Last time the key was seen
	repeated bool      // Seen again since it went down
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. hold is the gap allowed between autorepeats, repeatDelay the gap
// allowed between a press and its first repeat.
func StartStream(r *bufio.Reader, hold, repeatDelay time.Duration) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		hold:  hold,
		delay: repeatDelay,
		held:  make(map[string]heldKey),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// Read drains all available bytes (non-blocking) and returns the key events
// they produce: a Down event for every key that was not already held, and an
// Up event for every held key that expired at now. The returned slice is
// reused by the next call.
func (s *Stream) Read(now time.Time) []Event {
	s.buf = append(s.buf[:0], s.pending...)
	s.events = s.events[:0]
	queued := len(s.buf)

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
		default:
			break drain
		}
	}

	// A lone ESC with nothing following in a whole frame is the Escape key.
	final := len(s.buf) == queued || s.closed
	keys, rest := decode(s.buf, final)
	s.pending = append(s.pending[:0], rest...)

	for _, key := range keys {
		_, ok := s.held[key]
		if !ok {
			s.events = append(s.events, Event{Key: key, Down: true})
		}
		s.held[key] = heldKey{seen: now, repeated: ok}
	}

	var expired []string
	for key, k := range s.held {
		limit := s.hold
		if !k.repeated {
			limit = max(s.delay, s.hold)
		}
		if now.Sub(k.seen) >= limit {
			expired = append(expired, key)
		}
	}
	sort.Strings(expired)
	for _, key := range expired {
		delete(s.held, key)
		s.events = append(s.events, Event{Key: key, Down: false})
	}

	return s.events
}

// ReleaseAll forgets every held key and returns the matching Up events.
func (s *Stream) ReleaseAll() []Event {
	keys := make([]string, 0, len(s.held))
	for key := range s.held {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	events := make([]Event, 0, len(keys))
	for _, key := range keys {
		delete(s.held, key)
		events = append(events, Event{Key: key, Down: false})
	}
	return events
}

// decode converts raw terminal bytes into key identifiers. Arrow keys arrive
// as CSI (ESC [ x) or SS3 (ESC O x) sequences. Unless final is set, an
// escape sequence cut off at the end of buf is returned as rest instead of
// being decoded.
func decode(buf []byte, final bool) (keys []string, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			tail := len(buf) - i
			if !final && (tail == 1 || (tail == 2 && isIntroducer(buf[i+1]))) {
				return keys, buf[i:]
			}
			if tail > 2 && isIntroducer(buf[i+1]) {
				if key, ok := arrowKey(buf[i+2]); ok {
					keys = append(keys, key)
					i += 2
					continue
				}
			}
		}

		if key, ok := byteKey(b); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func isIntroducer(b byte) bool {
	return b == '[' || b == 'O'
}

func arrowKey(code byte) (string, bool) {
	switch code {
	case 'A':
		return KeyArrowUp, true
	case 'B':
		return KeyArrowDown, true
	case 'C':
		return KeyArrowRight, true
	case 'D':
		return KeyArrowLeft, true
	}
	return "", false
}

func byteKey(b byte) (string, bool) {
	switch b {
	case 'w', 'W':
		return KeyW, true
	case 'a', 'A':
		return KeyA, true
	case 's', 'S':
		return KeyS, true
	case 'd', 'D':
		return KeyD, true
	case 'q', 'Q':
		return KeyQuit, true
	case 'r', 'R':
		return KeyRestart, true
	case ' ':
		return KeySpace, true
	case '\n', '\r':
		return KeyEnter, true
	case '\x1b':
		return KeyEscape, true
	case '\x03':
		return KeyCtrlC, true
	}
	return "", false
}
