package plugin

import (
	"strings"
	"testing"

	"autowrap/config"
	"autowrap/host"
	"autowrap/wrap"
)

func prose(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = strings.Repeat("a", 200)
	}
	return lines
}

func TestSetupRegistersCommands(t *testing.T) {
	s := host.NewSim()
	p := Setup(s, config.Default())

	b := s.NewBuffer("a.md", "markdown", []string{"hello"})

	if !s.RunCommand("SoftWrapMode") {
		t.Fatalf("expected SoftWrapMode registered")
	}
	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected soft after command, got %v", got)
	}
	if !s.RunCommand("HardWrapMode") {
		t.Fatalf("expected HardWrapMode registered")
	}
	if got := p.Machine().Current(b.ID()); got != wrap.Hard {
		t.Fatalf("expected hard after command, got %v", got)
	}
	if !s.RunCommand("ToggleWrapMode") {
		t.Fatalf("expected ToggleWrapMode registered")
	}
	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected toggle back to soft, got %v", got)
	}
}

func TestSetupHonorsCreateCommandsFlag(t *testing.T) {
	cfg := config.Default()
	cfg.CreateCommands = false

	s := host.NewSim()
	Setup(s, cfg)

	if s.RunCommand("SoftWrapMode") {
		t.Fatalf("expected no commands registered")
	}
}

func TestAutoHeuristicRunsOnBufferVisible(t *testing.T) {
	s := host.NewSim()
	p := Setup(s, config.Default())

	b := s.NewBuffer("notes.md", "markdown", prose(5))
	s.ShowBuffer(b.ID())

	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected visible event to decide soft, got %v", got)
	}
}

func TestExclusiveListsDisableAutoButKeepCommands(t *testing.T) {
	cfg := config.Default()
	cfg.AutoDenylist = []string{"go"} // allowlist still holds its defaults

	s := host.NewSim()
	p := Setup(s, cfg)

	if p.AutoEnabled() {
		t.Fatalf("expected auto heuristic disabled")
	}
	if len(s.Notices) != 1 || s.Notices[0].Level != host.Warn {
		t.Fatalf("expected one warning notice, got %v", s.Notices)
	}

	b := s.NewBuffer("notes.md", "markdown", prose(5))
	s.ShowBuffer(b.ID())
	if got := p.Machine().Current(b.ID()); got != wrap.Unset {
		t.Fatalf("expected no automatic decision, got %v", got)
	}

	// The manual surface still works.
	if !s.RunCommand("SoftWrapMode") {
		t.Fatalf("expected commands still registered")
	}
	if got := p.Machine().Current(b.ID()); got != wrap.Soft {
		t.Fatalf("expected manual command functional, got %v", got)
	}
}

func TestAutoHeuristicFlagOff(t *testing.T) {
	cfg := config.Default()
	cfg.AutoHeuristic = false

	s := host.NewSim()
	p := Setup(s, cfg)

	b := s.NewBuffer("notes.md", "markdown", prose(5))
	s.ShowBuffer(b.ID())
	if got := p.Machine().Current(b.ID()); got != wrap.Unset {
		t.Fatalf("expected no decision with auto disabled, got %v", got)
	}
}
