// Package syntax aggregates line and character counts over syntax-token
// regions. It is signal for wrapping decisions, not a hard dependency: when
// no lexer exists for a buffer's language every operation degrades to a zero
// result.
package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/mattn/go-runewidth"

	"autowrap/host"
)

// CountResult aggregates matched regions. Chars is raw storage bytes; Cells
// is the rendered display width of the same lines.
type CountResult struct {
	Lines int
	Chars int
	Cells int
}

// Query selects which token types count as a match.
type Query func(chroma.TokenType) bool

// CommentQuery matches comment tokens plus doc-string literals, which some
// grammars label separately from ordinary comments.
func CommentQuery(t chroma.TokenType) bool {
	return t.InCategory(chroma.Comment) || t == chroma.LiteralStringDoc
}

// resolve decides provider availability once per call rather than probing
// on every token.
func resolve(language string) (chroma.Lexer, bool) {
	if language == "" {
		return nil, false
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return nil, false
	}
	return chroma.Coalesce(lexer), true
}

// CountMatches tokenizes the buffer and sums counts over matching token
// regions. A region spanning lines [row1, row2) contributes row2-row1 lines;
// a single-line region (row1 == row2) is widened to cover one line, so
// matches whose boundaries omit the trailing line terminator still count.
// Line lengths are fetched fresh from the buffer on every call; content may
// have changed since the last one, so nothing is cached. The view is
// restored afterwards.
func CountMatches(buf host.Buffer, q Query) CountResult {
	lexer, ok := resolve(buf.Language())
	if !ok {
		return CountResult{}
	}

	view := buf.View()
	defer buf.SetView(view)

	it, err := lexer.Tokenise(nil, buf.Text())
	if err != nil {
		return CountResult{}
	}

	var res CountResult
	line := 0
	for _, tok := range it.Tokens() {
		newlines := strings.Count(tok.Value, "\n")
		if q(tok.Type) {
			row1, row2 := line, line+newlines
			if row1 == row2 {
				row2 = row1 + 1
			}
			res.Lines += row2 - row1
			for i := row1; i < row2; i++ {
				s := buf.Line(i)
				res.Chars += len(s)
				res.Cells += runewidth.StringWidth(s)
			}
		}
		line += newlines
	}
	return res
}

// CursorInComment reports whether the token under the cursor is a comment or
// doc-string node. It never moves the cursor and returns false when no lexer
// is available.
func CursorInComment(buf host.Buffer) bool {
	lexer, ok := resolve(buf.Language())
	if !ok {
		return false
	}

	it, err := lexer.Tokenise(nil, buf.Text())
	if err != nil {
		return false
	}

	target := cursorOffset(buf)
	off := 0
	for _, tok := range it.Tokens() {
		next := off + len(tok.Value)
		if target >= off && target < next {
			return CommentQuery(tok.Type)
		}
		off = next
	}
	return false
}

// cursorOffset converts the cursor's line/rune position into a byte offset
// within Text.
func cursorOffset(buf host.Buffer) int {
	line, col := buf.Cursor()
	off := 0
	for i := 0; i < line && i < buf.LineCount(); i++ {
		off += len(buf.Line(i)) + 1
	}
	runes := []rune(buf.Line(line))
	if col > len(runes) {
		col = len(runes)
	}
	if col < 0 {
		col = 0
	}
	return off + len(string(runes[:col]))
}
