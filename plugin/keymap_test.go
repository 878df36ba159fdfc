package plugin

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"autowrap/config"
	"autowrap/host"
	"autowrap/wrap"
)

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func feed(t *testing.T, p *Plugin, seq string) {
	t.Helper()
	for _, r := range seq {
		if !p.HandleKey(key(r)) {
			t.Fatalf("expected %q of %q to be consumed", r, seq)
		}
	}
}

func TestKeymapSequences(t *testing.T) {
	s := host.NewSim()
	p := Setup(s, config.Default())
	b := s.NewBuffer("a.md", "markdown", []string{"hello"})

	feed(t, p, "[ow")
	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected [ow to enter soft, got %v", got)
	}

	feed(t, p, "]ow")
	if got := p.Machine().Current(b.ID()); got != wrap.Hard {
		t.Fatalf("expected ]ow to enter hard, got %v", got)
	}

	feed(t, p, "yow")
	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected yow to toggle to soft, got %v", got)
	}
}

func TestKeymapRejectsUnrelatedKeys(t *testing.T) {
	s := host.NewSim()
	p := Setup(s, config.Default())
	s.NewBuffer("a.md", "markdown", []string{"hello"})

	if p.HandleKey(key('x')) {
		t.Fatalf("expected unrelated rune to pass through")
	}
	if p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)) {
		t.Fatalf("expected non-rune key to pass through")
	}
}

func TestKeymapBrokenSequenceResets(t *testing.T) {
	s := host.NewSim()
	p := Setup(s, config.Default())
	b := s.NewBuffer("a.md", "markdown", []string{"hello"})

	if !p.HandleKey(key('[')) || !p.HandleKey(key('o')) {
		t.Fatalf("expected pending prefix to be consumed")
	}
	if p.HandleKey(key('x')) {
		t.Fatalf("expected breaking rune to pass through")
	}
	if got := p.Machine().Current(b.ID()); got != wrap.Unset {
		t.Fatalf("expected no action from broken sequence, got %v", got)
	}

	// A breaking rune that itself starts a binding begins a new sequence.
	if !p.HandleKey(key('[')) || !p.HandleKey(key('o')) {
		t.Fatalf("expected new prefix consumed")
	}
	if !p.HandleKey(key('[')) {
		t.Fatalf("expected breaking [ to restart a sequence")
	}
	feed(t, p, "ow")
	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected restarted [ow to enter soft, got %v", got)
	}
}

func TestKeymapDisabledByConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CreateKeymaps = false

	s := host.NewSim()
	p := Setup(s, cfg)
	s.NewBuffer("a.md", "markdown", []string{"hello"})

	if p.HandleKey(key('[')) {
		t.Fatalf("expected no keymap handling when disabled")
	}
}
