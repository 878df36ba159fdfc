// Package plugin wires the wrap engine into a host: user commands,
// normal-mode key sequences, and the buffer-visible subscription that
// triggers the automatic heuristic.
package plugin

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"autowrap/config"
	"autowrap/heuristic"
	"autowrap/host"
	"autowrap/wrap"
)

type Plugin struct {
	h           host.Host
	cfg         *config.Config
	machine     *wrap.Machine
	engine      *heuristic.Engine
	keymap      *Keymap
	autoEnabled bool
}

// Setup registers the integration surface. A config with both filetype
// lists populated is reported once as a warning and leaves the automatic
// heuristic off; commands and keymaps register regardless.
func Setup(h host.Host, cfg *config.Config) *Plugin {
	p := &Plugin{h: h, cfg: cfg}
	p.machine = wrap.NewMachine(h)
	p.engine = heuristic.NewEngine(h, cfg, p.machine)

	auto := cfg.AutoHeuristic
	if err := cfg.Validate(); err != nil {
		h.Notify(host.Warn, err.Error())
		auto = false
	}

	if cfg.CreateCommands {
		h.RegisterCommand("SoftWrapMode", func() { p.withCurrent(p.machine.EnterSoft) })
		h.RegisterCommand("HardWrapMode", func() { p.withCurrent(p.machine.EnterHard) })
		h.RegisterCommand("ToggleWrapMode", func() { p.withCurrent(p.machine.Toggle) })
	}

	if cfg.CreateKeymaps {
		p.keymap = NewKeymap(map[string]func(){
			"[ow": func() { p.withCurrent(p.machine.EnterSoft) },
			"]ow": func() { p.withCurrent(p.machine.EnterHard) },
			"yow": func() { p.withCurrent(p.machine.Toggle) },
		})
	}

	if auto {
		h.OnBufferVisible(func(id host.BufferID) {
			if err := p.engine.Decide(id); err != nil {
				h.Notify(host.Error, fmt.Sprintf("wrap decision failed: %v", err))
			}
		})
	}
	p.autoEnabled = auto

	return p
}

func (p *Plugin) withCurrent(fn func(host.Buffer) error) {
	buf, err := p.h.Current()
	if err != nil {
		return
	}
	if err := fn(buf); err != nil {
		p.h.Notify(host.Error, err.Error())
	}
}

// HandleKey feeds a normal-mode key event to the sequence matcher. It
// returns true when the event was consumed as part of a wrap binding.
func (p *Plugin) HandleKey(ev *tcell.EventKey) bool {
	return p.keymap != nil && p.keymap.Handle(ev)
}

func (p *Plugin) Machine() *wrap.Machine    { return p.machine }
func (p *Plugin) Engine() *heuristic.Engine { return p.engine }
func (p *Plugin) AutoEnabled() bool         { return p.autoEnabled }
