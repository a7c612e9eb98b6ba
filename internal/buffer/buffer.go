// Package buffer holds the in-memory line storage for a single document.
//
// A Buffer is never empty: it always contains at least one (possibly empty)
// line. All row arguments are preconditions; passing a row outside
// [0, LineCount()) is a caller bug and panics.
package buffer

import (
	"fmt"
	"strings"
)

type Buffer struct {
	lines [][]rune
}

func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// Load replaces the buffer content. Any byte sequence is representable;
// CRLF line endings are normalized to LF.
func (b *Buffer) Load(data []byte) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	if len(lines) == 0 {
		lines = [][]rune{{}}
	}
	b.lines = lines
}

// Serialize joins the lines with newlines. The result always ends in
// exactly one trailing newline.
func (b *Buffer) Serialize() []byte {
	var sb strings.Builder
	for _, line := range b.lines {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func (b *Buffer) LineCount() int {
	return len(b.lines)
}

func (b *Buffer) LineLen(row int) int {
	b.checkRow(row)
	return len(b.lines[row])
}

// Line returns the backing rune slice for row. Callers must not hold the
// slice across mutations.
func (b *Buffer) Line(row int) []rune {
	b.checkRow(row)
	return b.lines[row]
}

func (b *Buffer) Text(row int) string {
	b.checkRow(row)
	return string(b.lines[row])
}

func (b *Buffer) InsertRune(row, col int, r rune) {
	b.checkRow(row)
	line := b.lines[row]
	col = clampCol(col, len(line))
	line = append(line, 0)
	copy(line[col+1:], line[col:])
	line[col] = r
	b.lines[row] = line
}

func (b *Buffer) DeleteRune(row, col int) {
	b.checkRow(row)
	line := b.lines[row]
	if col < 0 || col >= len(line) {
		return
	}
	copy(line[col:], line[col+1:])
	b.lines[row] = line[:len(line)-1]
}

// SplitLine splits row at col: text before col stays, text at/after col
// becomes a new line inserted immediately below.
func (b *Buffer) SplitLine(row, col int) {
	b.checkRow(row)
	line := b.lines[row]
	col = clampCol(col, len(line))
	left := append([]rune(nil), line[:col]...)
	right := append([]rune(nil), line[col:]...)

	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:row]...)
	lines = append(lines, left, right)
	lines = append(lines, b.lines[row+1:]...)
	b.lines = lines
}

// JoinLines appends line row+1 onto the end of row and removes it.
// No-op when row is the last line.
func (b *Buffer) JoinLines(row int) {
	b.checkRow(row)
	if row+1 >= len(b.lines) {
		return
	}
	merged := append(b.lines[row], b.lines[row+1]...)

	lines := make([][]rune, 0, len(b.lines)-1)
	lines = append(lines, b.lines[:row]...)
	lines = append(lines, merged)
	lines = append(lines, b.lines[row+2:]...)
	b.lines = lines
}

func (b *Buffer) InsertLine(row int, line []rune) {
	if row < 0 || row > len(b.lines) {
		panic(fmt.Sprintf("buffer: insert row %d out of range [0,%d]", row, len(b.lines)))
	}
	lines := make([][]rune, 0, len(b.lines)+1)
	lines = append(lines, b.lines[:row]...)
	lines = append(lines, append([]rune(nil), line...))
	lines = append(lines, b.lines[row:]...)
	b.lines = lines
}

// RemoveLine deletes row. Refuses (no-op) when it is the only remaining
// line, preserving the never-empty invariant.
func (b *Buffer) RemoveLine(row int) {
	b.checkRow(row)
	if len(b.lines) == 1 {
		return
	}
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
}

func (b *Buffer) checkRow(row int) {
	if row < 0 || row >= len(b.lines) {
		panic(fmt.Sprintf("buffer: row %d out of range [0,%d)", row, len(b.lines)))
	}
}

func clampCol(col, lineLen int) int {
	if col < 0 {
		return 0
	}
	if col > lineLen {
		return lineLen
	}
	return col
}
