// Package host abstracts the editor the wrap engine runs inside. The engine
// never touches text storage, rendering, or key dispatch directly; it goes
// through these interfaces so it can be driven by a real editor or by the
// in-memory Sim host in tests.
package host

import (
	"regexp"

	"github.com/gdamore/tcell/v2"
)

type BufferID int

// Kind distinguishes ordinary file-backed buffers from special ones
// (scratch panes, terminals, pickers) that the heuristic must leave alone.
type Kind int

const (
	Ordinary Kind = iota
	Special
)

type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// KeyAction names a host-interpreted motion a bound key should trigger.
type KeyAction int

const (
	CursorUpDisplay KeyAction = iota
	CursorDownDisplay
)

// View is a window position snapshot: cursor plus scroll offsets.
type View struct {
	Line    int
	Col     int
	ScrollY int
	ScrollX int
}

// IntelCapabilities summarizes what one attached code-intelligence provider
// advertises for a buffer.
type IntelCapabilities struct {
	Definition    bool
	SignatureHelp bool
}

type Buffer interface {
	ID() BufferID
	Name() string
	Filetype() string
	// Language is the syntax-provider language name, which may differ from
	// the filetype ("markdown" vs "Markdown").
	Language() string
	Kind() Kind

	ColumnLimit() int
	SetColumnLimit(n int) error
	VisualWrap() bool
	SetVisualWrap(on bool) error

	SizeBytes() int64
	LineCount() int
	Line(i int) string
	Text() string
	Cursor() (line, col int)

	// MatchingLines counts lines matching re. The scan may move the cursor;
	// callers that must not disturb it bracket the call with View/SetView.
	MatchingLines(re *regexp.Regexp) int
	View() View
	SetView(v View)

	// BindKey installs a buffer-scoped binding. UnbindKey of a key that was
	// never bound is a no-op.
	BindKey(key tcell.Key, act KeyAction) error
	UnbindKey(key tcell.Key)

	Intel() []IntelCapabilities
}

type Host interface {
	// Buffer fails when the id refers to a buffer the host has discarded.
	Buffer(id BufferID) (Buffer, error)
	Current() (Buffer, error)
	GlobalColumnLimit() int
	Notify(level Level, msg string)
	RegisterCommand(name string, fn func())
	OnBufferVisible(fn func(BufferID))
	OnBufferClosed(fn func(BufferID))
}
