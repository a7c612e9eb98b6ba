package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eep-editor/eep/internal/ansi"
	"github.com/eep-editor/eep/internal/config"
)

// Frame is a backend-agnostic snapshot of the screen: a content grid with
// the gutter baked in, a styled status-bar string, and a target cursor
// cell. The terminal driver turns it into escape sequences.
type Frame struct {
	Width  int
	Rows   int // content rows; the status bar sits on row Rows
	Cells  [][]rune
	Status string
	// Terminal cursor cell, relative to the content grid.
	CursorX int
	CursorY int
	// CursorBar selects the bar cursor shape (insert mode).
	CursorBar bool
}

const transparentBg = "\x1b[49m"

type statusTheme struct {
	filenameFg string
	modeFg     string
	messageFg  string
	commandFg  string
	infoFg     string
}

func newStatusTheme(t config.Theme) statusTheme {
	return statusTheme{
		filenameFg: sgrFg(t.StatusFilenameFg),
		modeFg:     sgrFg(t.StatusModeFg),
		messageFg:  sgrFg(t.StatusMessageFg),
		commandFg:  sgrFg(t.StatusCommandFg),
		infoFg:     sgrFg(t.StatusInfoFg),
	}
}

func sgrFg(palette int) string {
	return fmt.Sprintf("\x1b[38;5;%dm", palette)
}

// ComposeFrame renders the current state into a width x height frame.
// The bottom two rows are reserved: status bar plus a spare row. The
// viewport offsets are not touched here; ReconcileViewport must have run
// since the last cursor move.
func (e *Editor) ComposeFrame(width, height int) Frame {
	rows := height - 2
	if rows < 0 {
		rows = 0
	}
	f := Frame{Width: width, Rows: rows}
	if width <= 0 {
		return f
	}

	gutter := e.gutterWidth()
	textWidth := width - gutter
	if textWidth < 0 {
		textWidth = 0
	}

	f.Cells = make([][]rune, rows)
	for y := 0; y < rows; y++ {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		lineIdx := e.rowOff + y
		if lineIdx < e.buf.LineCount() {
			if gutter > 0 {
				num := strconv.Itoa(lineIdx + 1)
				// right-aligned within the digit field, separator column last
				for i, r := range num {
					x := gutter - 1 - len(num) + i
					if x >= 0 && x < width {
						row[x] = r
					}
				}
			}
			line := e.buf.Line(lineIdx)
			for i := 0; i < textWidth; i++ {
				col := e.colOff + i
				if col >= len(line) {
					break
				}
				row[gutter+i] = line[col]
			}
		}
		f.Cells[y] = row
	}

	f.Status = e.composeStatusBar(width)

	cy := e.cursor.Row - e.rowOff
	if rows > 0 && cy >= rows {
		// transient overshoot during resize
		cy = rows - 1
	}
	if cy < 0 {
		cy = 0
	}
	cx := e.cursor.Col - e.colOff + gutter
	if cx >= width {
		cx = width - 1
	}
	if cx < 0 {
		cx = 0
	}
	f.CursorX = cx
	f.CursorY = cy
	f.CursorBar = e.mode == ModeInsert
	return f
}

// gutterWidth is the digit count of the last line number plus one
// separator column, or zero when line numbers are off.
func (e *Editor) gutterWidth() int {
	if !e.lineNumbers {
		return 0
	}
	return len(strconv.Itoa(e.buf.LineCount())) + 1
}

// composeStatusBar packs three segments left-to-right: filename and mode,
// then the command line or status message truncated to the remaining room,
// then position info. The result spans exactly width printable cells and
// ends with a reset.
func (e *Editor) composeStatusBar(width int) string {
	if width <= 0 {
		return ""
	}
	name := e.filename
	if name == "" {
		name = "[No Name]"
	}
	left := e.theme.filenameFg + name + ansi.Reset + " -- " +
		e.theme.modeFg + e.mode.String() + ansi.Reset + " -- "
	right := e.theme.infoFg + transparentBg +
		fmt.Sprintf("Ln %d/%d Col %d", e.cursor.Row+1, e.buf.LineCount(), e.cursor.Col+1)

	var middle string
	if e.statusMessage != "" {
		middle = e.theme.messageFg + transparentBg + e.statusMessage
	} else if e.showCommand {
		middle = e.theme.commandFg + transparentBg + ":" + string(e.cmd)
	}

	available := width - ansi.VisibleWidth(left) - ansi.VisibleWidth(right)
	if available < 0 {
		available = 0
	}
	if ansi.VisibleWidth(middle) > available {
		middle = ansi.Truncate(middle, available)
	}
	middle += strings.Repeat(" ", available-ansi.VisibleWidth(middle))

	bar := left + middle + right
	if w := ansi.VisibleWidth(bar); w > width {
		bar = ansi.Truncate(bar, width)
	} else if w < width {
		bar += strings.Repeat(" ", width-w)
	}
	if !strings.HasSuffix(bar, ansi.Reset) {
		bar += ansi.Reset
	}
	return bar
}
