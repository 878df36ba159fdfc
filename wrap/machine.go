// Package wrap owns the per-buffer wrap mode and the side effects of
// switching between soft and hard wrapping.
package wrap

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"autowrap/host"
)

type Mode int

const (
	Unset Mode = iota
	Soft
	Hard
)

func (m Mode) String() string {
	switch m {
	case Soft:
		return "soft"
	case Hard:
		return "hard"
	default:
		return "unset"
	}
}

// SoftColumnLimit replaces the buffer's column limit while soft mode is
// active. Reflow commands treat a zero limit as "use a default width", so
// the sentinel has to be a large positive value to keep them inert.
const SoftColumnLimit = 10000

type state struct {
	mode             Mode
	savedColumnLimit int
	hasSaved         bool
	keymapsInstalled bool
}

// Machine tracks wrap state per buffer. Entries are created lazily and
// dropped when the host discards the buffer.
type Machine struct {
	states map[host.BufferID]*state
}

func NewMachine(h host.Host) *Machine {
	m := &Machine{states: make(map[host.BufferID]*state)}
	h.OnBufferClosed(func(id host.BufferID) {
		delete(m.states, id)
	})
	return m
}

func (m *Machine) state(id host.BufferID) *state {
	st, ok := m.states[id]
	if !ok {
		st = &state{}
		m.states[id] = st
	}
	return st
}

// Current returns Unset for buffers no mode was ever applied to.
func (m *Machine) Current(id host.BufferID) Mode {
	if st, ok := m.states[id]; ok {
		return st.mode
	}
	return Unset
}

// SavedColumnLimit reports the column limit that was in effect before the
// buffer entered soft mode. It is present exactly while the mode is soft.
func (m *Machine) SavedColumnLimit(id host.BufferID) (int, bool) {
	if st, ok := m.states[id]; ok && st.hasSaved {
		return st.savedColumnLimit, true
	}
	return 0, false
}

// EnterSoft saves the current column limit, parks the limit at the sentinel,
// enables visual wrapping, and points Up/Down at display-line motions.
// Re-entering soft mode is a no-op. State is recorded only after every side
// effect has been applied, so a failing host operation leaves the mode tag
// untouched.
func (m *Machine) EnterSoft(buf host.Buffer) error {
	st := m.state(buf.ID())
	if st.mode == Soft {
		return nil
	}

	saved := buf.ColumnLimit()
	if err := buf.SetColumnLimit(SoftColumnLimit); err != nil {
		return fmt.Errorf("enter soft wrap: %w", err)
	}
	if err := buf.SetVisualWrap(true); err != nil {
		return fmt.Errorf("enter soft wrap: %w", err)
	}
	if err := buf.BindKey(tcell.KeyUp, host.CursorUpDisplay); err != nil {
		return fmt.Errorf("enter soft wrap: %w", err)
	}
	if err := buf.BindKey(tcell.KeyDown, host.CursorDownDisplay); err != nil {
		return fmt.Errorf("enter soft wrap: %w", err)
	}

	st.savedColumnLimit = saved
	st.hasSaved = true
	st.keymapsInstalled = true
	st.mode = Soft
	return nil
}

// EnterHard restores the column limit saved by soft mode, disables visual
// wrapping, and removes the display-motion bindings. Removal always runs;
// unbinding keys that were never installed is a no-op on the host side.
// Re-entering hard mode is a no-op.
func (m *Machine) EnterHard(buf host.Buffer) error {
	st := m.state(buf.ID())
	if st.mode == Hard {
		return nil
	}

	if st.hasSaved {
		if err := buf.SetColumnLimit(st.savedColumnLimit); err != nil {
			return fmt.Errorf("enter hard wrap: %w", err)
		}
	}
	if err := buf.SetVisualWrap(false); err != nil {
		return fmt.Errorf("enter hard wrap: %w", err)
	}
	buf.UnbindKey(tcell.KeyUp)
	buf.UnbindKey(tcell.KeyDown)

	st.hasSaved = false
	st.keymapsInstalled = false
	st.mode = Hard
	return nil
}

// Toggle flips to hard from soft, and to soft from everything else.
func (m *Machine) Toggle(buf host.Buffer) error {
	if m.Current(buf.ID()) == Soft {
		return m.EnterHard(buf)
	}
	return m.EnterSoft(buf)
}
