package buffer

import (
	"bytes"
	"testing"
)

func TestLoadEmptyKeepsOneLine(t *testing.T) {
	b := New()
	b.Load(nil)
	if b.LineCount() != 1 {
		t.Fatalf("line count = %d, want 1", b.LineCount())
	}
	if b.LineLen(0) != 0 {
		t.Fatalf("line len = %d, want 0", b.LineLen(0))
	}
}

func TestLoadSplitsAndNormalizesCRLF(t *testing.T) {
	b := New()
	b.Load([]byte("one\r\ntwo\nthree"))
	if b.LineCount() != 3 {
		t.Fatalf("line count = %d, want 3", b.LineCount())
	}
	if got := b.Text(1); got != "two" {
		t.Fatalf("line1 = %q, want %q", got, "two")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"abc", "abc\n"},
		{"abc\n", "abc\n"},
		{"a\nb", "a\nb\n"},
		{"a\n\n", "a\n\n"},
		{"", "\n"},
	}
	for _, c := range cases {
		b := New()
		b.Load([]byte(c.in))
		if got := string(b.Serialize()); got != c.want {
			t.Fatalf("serialize(load(%q)) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSerializeSingleTrailingNewline(t *testing.T) {
	b := New()
	b.Load([]byte("x\n"))
	out := b.Serialize()
	if !bytes.HasSuffix(out, []byte("\n")) {
		t.Fatalf("output %q has no trailing newline", out)
	}
	if bytes.HasSuffix(out, []byte("\n\n")) {
		t.Fatalf("output %q has duplicated trailing newline", out)
	}
}

func TestInsertDeleteRune(t *testing.T) {
	b := New()
	b.Load([]byte("ac"))
	b.InsertRune(0, 1, 'b')
	if got := b.Text(0); got != "abc" {
		t.Fatalf("line = %q, want %q", got, "abc")
	}
	b.DeleteRune(0, 1)
	if got := b.Text(0); got != "ac" {
		t.Fatalf("line = %q, want %q", got, "ac")
	}
	b.DeleteRune(0, 5)
	if got := b.Text(0); got != "ac" {
		t.Fatalf("out-of-range delete mutated line: %q", got)
	}
}

func TestSplitAndJoin(t *testing.T) {
	b := New()
	b.Load([]byte("abcdef"))
	b.SplitLine(0, 3)
	if b.LineCount() != 2 {
		t.Fatalf("line count = %d, want 2", b.LineCount())
	}
	if got := b.Text(0); got != "abc" {
		t.Fatalf("line0 = %q, want %q", got, "abc")
	}
	if got := b.Text(1); got != "def" {
		t.Fatalf("line1 = %q, want %q", got, "def")
	}
	b.JoinLines(0)
	if b.LineCount() != 1 {
		t.Fatalf("line count after join = %d, want 1", b.LineCount())
	}
	if got := b.Text(0); got != "abcdef" {
		t.Fatalf("joined line = %q, want %q", got, "abcdef")
	}
}

func TestJoinLastLineNoop(t *testing.T) {
	b := New()
	b.Load([]byte("a\nb"))
	b.JoinLines(1)
	if b.LineCount() != 2 {
		t.Fatalf("line count = %d, want 2", b.LineCount())
	}
}

func TestRemoveLastLineRefused(t *testing.T) {
	b := New()
	b.Load([]byte("only"))
	b.RemoveLine(0)
	if b.LineCount() != 1 {
		t.Fatalf("line count = %d, want 1", b.LineCount())
	}
	if got := b.Text(0); got != "only" {
		t.Fatalf("line = %q, want %q", got, "only")
	}
}

func TestInsertLine(t *testing.T) {
	b := New()
	b.Load([]byte("a\nc"))
	b.InsertLine(1, []rune("b"))
	if b.LineCount() != 3 {
		t.Fatalf("line count = %d, want 3", b.LineCount())
	}
	if got := b.Text(1); got != "b" {
		t.Fatalf("line1 = %q, want %q", got, "b")
	}
	b.InsertLine(3, []rune("d"))
	if got := b.Text(3); got != "d" {
		t.Fatalf("line3 = %q, want %q", got, "d")
	}
}

func TestRemoveLine(t *testing.T) {
	b := New()
	b.Load([]byte("a\nb\nc"))
	b.RemoveLine(1)
	if b.LineCount() != 2 {
		t.Fatalf("line count = %d, want 2", b.LineCount())
	}
	if got := b.Text(1); got != "c" {
		t.Fatalf("line1 = %q, want %q", got, "c")
	}
}

func TestRowPreconditionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Line(5) did not panic")
		}
	}()
	New().Line(5)
}
