// Package heuristic decides which wrap mode a buffer should be in and
// applies it through the state machine.
package heuristic

import (
	"regexp"
	"slices"

	"autowrap/config"
	"autowrap/host"
	"autowrap/syntax"
	"autowrap/wrap"
)

var blankLine = regexp.MustCompile(`^\s*$`)

type Engine struct {
	h       host.Host
	cfg     *config.Config
	machine *wrap.Machine
}

func NewEngine(h host.Host, cfg *config.Config, machine *wrap.Machine) *Engine {
	return &Engine{h: h, cfg: cfg, machine: machine}
}

// Decide computes the mode the buffer should be in and enters it. Each step
// short-circuits on a definitive answer:
//
//  1. special buffers are left alone
//  2. filetype deny/allow gating
//  3. a boolean softener forces the mode
//  4. code-intelligence capabilities mean source code: hard
//  5. a column limit differing from the global default was set deliberately
//     by a modeline or filetype script: hard
//  6. scaled average line length vs. the reference column limit
func (e *Engine) Decide(id host.BufferID) error {
	buf, err := e.h.Buffer(id)
	if err != nil {
		return err
	}
	if buf.Kind() != host.Ordinary {
		return nil
	}

	ft := buf.Filetype()
	if slices.Contains(e.cfg.AutoDenylist, ft) {
		return nil
	}
	if len(e.cfg.AutoAllowlist) > 0 && !slices.Contains(e.cfg.AutoAllowlist, ft) {
		return nil
	}

	softener := e.cfg.SoftenerFor(ft)
	if on, ok := softener.Override(); ok {
		if on {
			return e.machine.EnterSoft(buf)
		}
		return e.machine.EnterHard(buf)
	}

	for _, caps := range buf.Intel() {
		if caps.Definition || caps.SignatureHelp {
			return e.machine.EnterHard(buf)
		}
	}

	if buf.ColumnLimit() != e.h.GlobalColumnLimit() {
		return e.machine.EnterHard(buf)
	}

	view := buf.View()
	blanks := buf.MatchingLines(blankLine)
	buf.SetView(view)

	nonBlank := buf.LineCount() - blanks
	if nonBlank <= 0 {
		// An empty document carries no wrapping signal.
		return e.machine.EnterHard(buf)
	}
	avg := float64(buf.SizeBytes()) / float64(nonBlank)

	reference := buf.ColumnLimit()
	if saved, ok := e.machine.SavedColumnLimit(id); ok {
		reference = saved
	}

	if avg*softener.Factor() < float64(reference) {
		return e.machine.EnterHard(buf)
	}
	return e.machine.EnterSoft(buf)
}

// CommentStats is the syntax-counter signal a richer heuristic or a caller
// can use to weight decisions by comment-vs-code content.
type CommentStats struct {
	syntax.CountResult
	CursorInComment bool
}

func (e *Engine) CommentStats(id host.BufferID) (CommentStats, error) {
	buf, err := e.h.Buffer(id)
	if err != nil {
		return CommentStats{}, err
	}
	return CommentStats{
		CountResult:     syntax.CountMatches(buf, syntax.CommentQuery),
		CursorInComment: syntax.CursorInComment(buf),
	}, nil
}
