package host

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Sim is an in-memory host, playing the role tcell's SimulationScreen plays
// for terminal code: tests and the demo binary drive the engine against it
// without a real editor attached.
type Sim struct {
	mu          sync.Mutex
	globalLimit int
	buffers     map[BufferID]*SimBuffer
	nextID      BufferID
	current     BufferID
	commands    map[string]func()
	visible     []func(BufferID)
	closed      []func(BufferID)

	// Notices records everything passed to Notify, oldest first.
	Notices []Notice
}

type Notice struct {
	Level   Level
	Message string
}

func NewSim() *Sim {
	return &Sim{
		globalLimit: 79,
		buffers:     make(map[BufferID]*SimBuffer),
		nextID:      1,
		commands:    make(map[string]func()),
	}
}

// NewBuffer creates an ordinary buffer inheriting the global column limit.
func (s *Sim) NewBuffer(name, filetype string, lines []string) *SimBuffer {
	b := &SimBuffer{
		sim:         s,
		id:          s.nextID,
		name:        name,
		filetype:    filetype,
		lines:       append([]string(nil), lines...),
		columnLimit: s.globalLimit,
		keymaps:     make(map[tcell.Key]KeyAction),
	}
	s.nextID++
	s.buffers[b.id] = b
	if s.current == 0 {
		s.current = b.id
	}
	return b
}

func (s *Sim) Buffer(id BufferID) (Buffer, error) {
	b, ok := s.buffers[id]
	if !ok {
		return nil, fmt.Errorf("no such buffer %d", id)
	}
	return b, nil
}

func (s *Sim) Current() (Buffer, error) {
	return s.Buffer(s.current)
}

func (s *Sim) GlobalColumnLimit() int { return s.globalLimit }

func (s *Sim) SetGlobalColumnLimit(n int) { s.globalLimit = n }

func (s *Sim) Notify(level Level, msg string) {
	s.mu.Lock()
	s.Notices = append(s.Notices, Notice{Level: level, Message: msg})
	s.mu.Unlock()
}

func (s *Sim) RegisterCommand(name string, fn func()) {
	s.commands[name] = fn
}

// RunCommand invokes a registered command, reporting whether it existed.
func (s *Sim) RunCommand(name string) bool {
	fn, ok := s.commands[name]
	if ok {
		fn()
	}
	return ok
}

func (s *Sim) OnBufferVisible(fn func(BufferID)) {
	s.visible = append(s.visible, fn)
}

func (s *Sim) OnBufferClosed(fn func(BufferID)) {
	s.closed = append(s.closed, fn)
}

// ShowBuffer makes a buffer current and fires the visible event, the point
// where any deferred filetype setup would already have run in a real host.
func (s *Sim) ShowBuffer(id BufferID) {
	if _, ok := s.buffers[id]; !ok {
		return
	}
	s.current = id
	for _, fn := range s.visible {
		fn(id)
	}
}

// CloseBuffer discards a buffer and fires the closed event.
func (s *Sim) CloseBuffer(id BufferID) {
	if _, ok := s.buffers[id]; !ok {
		return
	}
	delete(s.buffers, id)
	for _, fn := range s.closed {
		fn(id)
	}
}

// SimBuffer is Sim's Buffer implementation. The setters without interface
// counterparts exist so tests and the demo binary can shape buffer metadata.
type SimBuffer struct {
	sim         *Sim
	id          BufferID
	name        string
	filetype    string
	language    string
	kind        Kind
	lines       []string
	columnLimit int
	visualWrap  bool
	view        View
	keymaps     map[tcell.Key]KeyAction
	intel       []IntelCapabilities
}

func (b *SimBuffer) ID() BufferID     { return b.id }
func (b *SimBuffer) Name() string     { return b.name }
func (b *SimBuffer) Filetype() string { return b.filetype }
func (b *SimBuffer) Language() string { return b.language }
func (b *SimBuffer) Kind() Kind       { return b.kind }

func (b *SimBuffer) SetLanguage(lang string)           { b.language = lang }
func (b *SimBuffer) SetKind(k Kind)                    { b.kind = k }
func (b *SimBuffer) SetIntel(caps []IntelCapabilities) { b.intel = caps }

func (b *SimBuffer) ColumnLimit() int { return b.columnLimit }

func (b *SimBuffer) SetColumnLimit(n int) error {
	b.columnLimit = n
	return nil
}

func (b *SimBuffer) VisualWrap() bool { return b.visualWrap }

func (b *SimBuffer) SetVisualWrap(on bool) error {
	b.visualWrap = on
	return nil
}

// SetLines replaces the buffer content, clamping the view like an editor
// reloading a file from disk would.
func (b *SimBuffer) SetLines(lines []string) {
	b.lines = append([]string(nil), lines...)
	if b.view.Line >= len(b.lines) {
		b.view.Line = len(b.lines) - 1
		if b.view.Line < 0 {
			b.view.Line = 0
		}
		b.view.Col = 0
	}
}

// SizeBytes reports what the buffer would occupy on disk, one terminator
// per line.
func (b *SimBuffer) SizeBytes() int64 {
	var n int64
	for _, line := range b.lines {
		n += int64(len(line)) + 1
	}
	return n
}

func (b *SimBuffer) LineCount() int { return len(b.lines) }

func (b *SimBuffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

func (b *SimBuffer) Text() string {
	return strings.Join(b.lines, "\n")
}

func (b *SimBuffer) Cursor() (int, int) {
	return b.view.Line, b.view.Col
}

func (b *SimBuffer) SetCursor(line, col int) {
	b.view.Line = line
	b.view.Col = col
}

// MatchingLines jumps the cursor to each match like an editor search would,
// so callers actually exercise their view save/restore.
func (b *SimBuffer) MatchingLines(re *regexp.Regexp) int {
	count := 0
	for i, line := range b.lines {
		if re.MatchString(line) {
			b.view.Line = i
			b.view.Col = 0
			count++
		}
	}
	return count
}

func (b *SimBuffer) View() View     { return b.view }
func (b *SimBuffer) SetView(v View) { b.view = v }

func (b *SimBuffer) BindKey(key tcell.Key, act KeyAction) error {
	b.keymaps[key] = act
	return nil
}

func (b *SimBuffer) UnbindKey(key tcell.Key) {
	delete(b.keymaps, key)
}

// BoundKey reports the action bound to a key, for test assertions.
func (b *SimBuffer) BoundKey(key tcell.Key) (KeyAction, bool) {
	act, ok := b.keymaps[key]
	return act, ok
}

func (b *SimBuffer) Intel() []IntelCapabilities { return b.intel }
