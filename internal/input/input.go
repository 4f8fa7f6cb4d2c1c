package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, never key releases.
const keyHoldDuration = 80 * time.Millisecond

// Action is a game action a player can hold.
type Action int

const (
	TurnLeft Action = iota
	TurnRight
	Thrust
	Reverse
	Fire
)

// Input represents the current frame's input state.
type Input struct {
	Quit  bool
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Space bool
}

// Held reports whether the action is held this frame.
func (in Input) Held(a Action) bool {
	switch a {
	case TurnLeft:
		return in.Left
	case TurnRight:
		return in.Right
	case Thrust:
		return in.Up
	case Reverse:
		return in.Down
	case Fire:
		return in.Space
	default:
		return false
	}
}

// QuitRequested reports whether the player asked to quit.
func (in Input) QuitRequested() bool {
	return in.Quit
}

// Source produces one input snapshot per frame.
type Source interface {
	Poll() Input
}

// Key identifies a physical key the tracker knows about.
type Key int

const (
	KeyQuit Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	NumKeys
)

// Tracker turns key press events into held-key state. A key counts as held
// until keyHoldDuration passes without another press.
type Tracker struct {
	last [NumKeys]time.Time
	hold time.Duration
}

// NewTracker creates a tracker using the default hold duration.
func NewTracker() *Tracker {
	return &Tracker{hold: keyHoldDuration}
}

// Press records a key press at now.
func (t *Tracker) Press(k Key, now time.Time) {
	if k >= 0 && k < NumKeys {
		t.last[k] = now
	}
}

// Snapshot builds the input state as of now.
func (t *Tracker) Snapshot(now time.Time) Input {
	held := func(k Key) bool {
		return !t.last[k].IsZero() && now.Sub(t.last[k]) < t.hold
	}
	return Input{
		Quit:  held(KeyQuit),
		Left:  held(KeyLeft),
		Right: held(KeyRight),
		Up:    held(KeyUp),
		Down:  held(KeyDown),
		Space: held(KeySpace),
	}
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	tracker *Tracker
	now     func() time.Time
	pending []byte
	closed  bool
}

// Ensure Stream satisfies Source.
var _ Source = (*Stream)(nil)

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:      make(chan byte, 128),
		tracker: NewTracker(),
		now:     time.Now,
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

// Poll drains all available bytes from the stream (non-blocking) and returns
// the held-key state. A closed stream (EOF, dropped session) reads as quit.
// An escape sequence split across polls is completed on the next poll.
func (s *Stream) Poll() Input {
	now := s.now()
	buf := s.pending

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	used := Parse(s.tracker, buf, now)
	s.pending = buf[:copy(buf, buf[used:])]

	in := s.tracker.Snapshot(now)
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse feeds raw terminal bytes to the tracker. Handles escape sequences for
// arrow keys and single-byte key bindings. Returns the number of bytes
// consumed; a trailing ESC or ESC [ is left unconsumed for the caller to
// resubmit with the bytes that follow.
func Parse(t *Tracker, buf []byte, now time.Time) int {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && (i+1 == len(buf) || buf[i+1] == '[' && i+2 == len(buf)) {
			return i
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				t.Press(KeyUp, now)
				i += 2
				continue
			case 'B':
				t.Press(KeyDown, now)
				i += 2
				continue
			case 'C':
				t.Press(KeyRight, now)
				i += 2
				continue
			case 'D':
				t.Press(KeyLeft, now)
				i += 2
				continue
			}
		}

		if k, ok := KeyForRune(rune(b)); ok {
			t.Press(k, now)
		}
	}
	return len(buf)
}

// KeyForRune maps a typed character to a key binding.
func KeyForRune(r rune) (Key, bool) {
	switch r {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		return KeyQuit, true
	case 'a', 'A', 'j', 'J':
		return KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return KeyRight, true
	case 'w', 'W', 'i', 'I':
		return KeyUp, true
	case 's', 'S', 'k', 'K':
		return KeyDown, true
	case ' ':
		return KeySpace, true
	default:
		return 0, false
	}
}
