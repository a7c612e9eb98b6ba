// Package ansi measures and slices strings that embed SGR color escape
// sequences. Escape sequences occupy zero cells; printable runes are
// measured with go-runewidth.
package ansi

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	esc        = '\x1b'
	terminator = 'm'
)

// Reset clears all SGR attributes.
const Reset = "\x1b[0m"

// Token is a run of either printable text or a single escape sequence.
type Token struct {
	Esc  bool
	Text string
}

// Tokens splits s into printable runs and escape sequences. An escape
// sequence starts at ESC and ends at the terminator byte 'm'; an
// unterminated sequence extends to the end of the string.
func Tokens(s string) []Token {
	var tokens []Token
	var text strings.Builder
	inEscape := false
	var escSeq strings.Builder

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Text: text.String()})
			text.Reset()
		}
	}
	for _, r := range s {
		if inEscape {
			escSeq.WriteRune(r)
			if r == terminator {
				tokens = append(tokens, Token{Esc: true, Text: escSeq.String()})
				escSeq.Reset()
				inEscape = false
			}
			continue
		}
		if r == esc {
			flush()
			inEscape = true
			escSeq.WriteRune(r)
			continue
		}
		text.WriteRune(r)
	}
	flush()
	if escSeq.Len() > 0 {
		tokens = append(tokens, Token{Esc: true, Text: escSeq.String()})
	}
	return tokens
}

// VisibleWidth returns the number of terminal cells s occupies, counting
// only printable runes.
func VisibleWidth(s string) int {
	width := 0
	for _, tok := range Tokens(s) {
		if tok.Esc {
			continue
		}
		width += runewidth.StringWidth(tok.Text)
	}
	return width
}

// Truncate cuts s down to at most max printable cells. Escape sequences
// before the cut point are preserved, and if the cut lands inside styled
// text the result is closed with a reset so color does not bleed past it.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	var b strings.Builder
	width := 0
	cut := false
	styled := false
	for _, tok := range Tokens(s) {
		if tok.Esc {
			b.WriteString(tok.Text)
			styled = tok.Text != Reset
			continue
		}
		for _, r := range tok.Text {
			w := runewidth.RuneWidth(r)
			if width+w > max {
				cut = true
				break
			}
			b.WriteRune(r)
			width += w
		}
		if cut {
			break
		}
	}
	out := b.String()
	if cut && styled && !strings.HasSuffix(out, Reset) {
		out += Reset
	}
	return out
}
