// Package term owns the physical terminal: raw mode, the alternate
// screen, and escape-sequence emission. Everything above it works on
// abstract frames.
package term

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/eep-editor/eep/internal/ansi"
	"github.com/eep-editor/eep/internal/editor"
)

type Screen struct {
	tc tcell.Screen
}

// Open acquires the terminal as a scoped resource. The caller must defer
// Close so raw mode and the alternate screen are released on every exit
// path.
func Open() (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := tc.Init(); err != nil {
		return nil, err
	}
	tc.EnableMouse()
	tc.SetStyle(tcell.StyleDefault)
	return &Screen{tc: tc}, nil
}

// NewWith wraps an already initialized screen. Used with tcell's
// simulation screen in tests.
func NewWith(tc tcell.Screen) *Screen {
	return &Screen{tc: tc}
}

func (s *Screen) Close() {
	s.tc.Fini()
}

func (s *Screen) Size() (int, int) {
	return s.tc.Size()
}

func (s *Screen) PollEvent() tcell.Event {
	return s.tc.PollEvent()
}

func (s *Screen) Sync() {
	s.tc.Sync()
}

// Draw paints a composed frame. Every cell of the frame is written, so no
// separate clear pass is needed.
func (s *Screen) Draw(f editor.Frame) {
	for y, row := range f.Cells {
		for x, r := range row {
			s.tc.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	s.drawStatus(f.Rows, f.Status, f.Width)
	_, h := s.tc.Size()
	for y := f.Rows + 1; y < h; y++ {
		for x := 0; x < f.Width; x++ {
			s.tc.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}

	shape := tcell.CursorStyleSteadyBlock
	if f.CursorBar {
		shape = tcell.CursorStyleSteadyBar
	}
	s.tc.SetCursorStyle(shape)
	s.tc.ShowCursor(f.CursorX, f.CursorY)
	s.tc.Show()
}

// drawStatus interprets the SGR escape markers embedded in the status
// string, mapping them onto tcell styles cell by cell.
func (s *Screen) drawStatus(y int, status string, width int) {
	if y < 0 {
		return
	}
	x := 0
	style := tcell.StyleDefault
	for _, tok := range ansi.Tokens(status) {
		if tok.Esc {
			style = applySGR(style, tok.Text)
			continue
		}
		for _, r := range tok.Text {
			if x >= width {
				return
			}
			s.tc.SetContent(x, y, r, nil, style)
			x += runewidth.RuneWidth(r)
		}
	}
}

// applySGR handles the subset of SGR the frame composer emits: reset,
// 256-color foreground/background, and default foreground/background.
func applySGR(style tcell.Style, seq string) tcell.Style {
	if !strings.HasPrefix(seq, "\x1b[") || !strings.HasSuffix(seq, "m") {
		return style
	}
	params := strings.Split(seq[2:len(seq)-1], ";")
	for i := 0; i < len(params); i++ {
		switch params[i] {
		case "", "0":
			style = tcell.StyleDefault
		case "38", "48":
			fg := params[i] == "38"
			if i+2 < len(params) && params[i+1] == "5" {
				if n, err := strconv.Atoi(params[i+2]); err == nil {
					if fg {
						style = style.Foreground(tcell.PaletteColor(n))
					} else {
						style = style.Background(tcell.PaletteColor(n))
					}
				}
				i += 2
			}
		case "39":
			style = style.Foreground(tcell.ColorDefault)
		case "49":
			style = style.Background(tcell.ColorDefault)
		}
	}
	return style
}
