package plugin

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Keymap matches multi-rune normal-mode sequences like "[ow" against a
// stream of key events, holding partial input the way an operator-pending
// editor mode does.
type Keymap struct {
	bindings map[string]func()
	pending  string
}

func NewKeymap(bindings map[string]func()) *Keymap {
	return &Keymap{bindings: bindings}
}

// Handle consumes one key event. Non-rune keys cancel any pending sequence.
// A rune that breaks the pending sequence is retried as the start of a new
// one before being rejected.
func (k *Keymap) Handle(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune {
		k.pending = ""
		return false
	}

	tries := []string{k.pending + string(ev.Rune())}
	if k.pending != "" {
		tries = append(tries, string(ev.Rune()))
	}

	for _, seq := range tries {
		if fn, ok := k.bindings[seq]; ok {
			k.pending = ""
			fn()
			return true
		}
		if k.isPrefix(seq) {
			k.pending = seq
			return true
		}
	}

	k.pending = ""
	return false
}

func (k *Keymap) isPrefix(s string) bool {
	for seq := range k.bindings {
		if len(seq) > len(s) && strings.HasPrefix(seq, s) {
			return true
		}
	}
	return false
}
