package editor

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/eep-editor/eep/internal/buffer"
	"github.com/eep-editor/eep/internal/config"
	"github.com/eep-editor/eep/internal/logger"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "NORMAL"
	}
}

// BackspaceMode selects the backspace policy in insert mode.
type BackspaceMode int

const (
	// BackspaceSimple deletes a single character.
	BackspaceSimple BackspaceMode = iota
	// BackspaceSmartIndent deletes a full tab stop when the runes
	// before the cursor are all spaces.
	BackspaceSmartIndent
)

func ParseBackspaceMode(value string) BackspaceMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "smart-indent", "smart":
		return BackspaceSmartIndent
	default:
		return BackspaceSimple
	}
}

const (
	actionMoveLeft     = "move_left"
	actionMoveRight    = "move_right"
	actionMoveUp       = "move_up"
	actionMoveDown     = "move_down"
	actionLineStart    = "line_start"
	actionLineEnd      = "line_end"
	actionFileStart    = "file_start"
	actionFileEnd      = "file_end"
	actionDeleteChar   = "delete_char"
	actionDeleteLine   = "delete_line"
	actionUndo         = "undo"
	actionSearch       = "search"
	actionEnterInsert  = "enter_insert"
	actionEnterNormal  = "enter_normal"
	actionEnterCommand = "enter_command"
	actionBackspace    = "backspace"
	actionNewline      = "newline"
	actionQuit         = "quit"
)

type Cursor struct {
	Row int
	Col int
}

type keymapSet struct {
	normal map[string]string
	insert map[string]string
}

// tabStop is the number of spaces a literal tab expands to when the
// configured tab width is unset.
const tabStop = 4

type Editor struct {
	buf           *buffer.Buffer
	cursor        Cursor
	rowOff        int
	colOff        int
	mode          Mode
	filename      string
	statusMessage string
	cmd           []rune
	showCommand   bool
	tabbed        bool
	tabWidth      int
	backspaceMode BackspaceMode
	lineNumbers   bool
	keymap        keymapSet
	theme         statusTheme
}

func New(cfg config.Config) *Editor {
	normal := make(map[string]string, len(cfg.Keymap.Normal))
	for k, v := range cfg.Keymap.Normal {
		normal[k] = v
	}
	insert := make(map[string]string, len(cfg.Keymap.Insert))
	for k, v := range cfg.Keymap.Insert {
		insert[k] = v
	}
	tabWidth := cfg.Editor.TabWidth
	if tabWidth < 1 {
		tabWidth = tabStop
	}
	return &Editor{
		buf:           buffer.New(),
		mode:          ModeNormal,
		tabWidth:      tabWidth,
		backspaceMode: ParseBackspaceMode(cfg.Editor.Backspace),
		lineNumbers:   cfg.Editor.LineNumbers,
		keymap:        keymapSet{normal: normal, insert: insert},
		theme:         newStatusTheme(cfg.Theme),
	}
}

var errNoFilename = errors.New("No filename specified. Use :w <filename>")

func (e *Editor) OpenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.buf.Load(data)
	e.cursor = Cursor{}
	e.rowOff = 0
	e.colOff = 0
	e.mode = ModeNormal
	e.filename = path
	e.cmd = e.cmd[:0]
	e.statusMessage = ""
	logger.Info("opened file", "path", path, "lines", e.buf.LineCount())
	return nil
}

func (e *Editor) saveFile() error {
	if e.filename == "" {
		return errNoFilename
	}
	if err := os.WriteFile(e.filename, e.buf.Serialize(), 0o644); err != nil {
		return err
	}
	e.setStatus(fmt.Sprintf("Saved '%s'", e.filename))
	logger.Info("saved file", "path", e.filename, "lines", e.buf.LineCount())
	return nil
}

// HandleKey processes one key event. It returns true when the editor
// should terminate.
func (e *Editor) HandleKey(ev *tcell.EventKey) bool {
	switch e.mode {
	case ModeInsert:
		return e.handleInsert(ev)
	case ModeCommand:
		return e.handleCommand(ev)
	default:
		return e.handleNormal(ev)
	}
}

// HandleMouse applies wheel scrolling: a fixed three-line cursor move per
// event, not proportional to the wheel delta.
func (e *Editor) HandleMouse(ev *tcell.EventMouse) {
	switch ev.Buttons() {
	case tcell.WheelUp:
		for i := 0; i < 3; i++ {
			e.moveUp()
		}
	case tcell.WheelDown:
		for i := 0; i < 3; i++ {
			e.moveDown()
		}
	}
}

func (e *Editor) handleNormal(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if key == "" {
		return false
	}
	action, ok := e.keymap.normal[key]
	if !ok {
		return false
	}
	return e.execAction(action)
}

func (e *Editor) handleInsert(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyRune:
		e.insertRune(ev.Rune())
		return false
	case tcell.KeyTab:
		e.insertRune('\t')
		return false
	}
	key := keyString(ev)
	if key == "" {
		return false
	}
	action, ok := e.keymap.insert[key]
	if !ok {
		return false
	}
	return e.execAction(action)
}

func (e *Editor) handleCommand(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		e.cmd = e.cmd[:0]
		e.showCommand = false
		e.mode = ModeNormal
		return false
	case tcell.KeyEnter:
		quit := e.execCommand(strings.TrimSpace(string(e.cmd)))
		e.cmd = e.cmd[:0]
		e.showCommand = false
		e.mode = ModeNormal
		return quit
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(e.cmd) > 0 {
			e.cmd = e.cmd[:len(e.cmd)-1]
		}
		return false
	case tcell.KeyRune:
		e.cmd = append(e.cmd, ev.Rune())
		return false
	}
	return false
}

func (e *Editor) execAction(action string) bool {
	switch action {
	case actionMoveLeft:
		e.moveLeft()
	case actionMoveRight:
		e.moveRight()
	case actionMoveUp:
		e.moveUp()
	case actionMoveDown:
		e.moveDown()
	case actionLineStart:
		e.moveLineStart()
	case actionLineEnd:
		e.moveLineEnd()
	case actionFileStart:
		e.moveFileStart()
	case actionFileEnd:
		e.moveFileEnd()
	case actionDeleteChar:
		e.deleteCharForward()
	case actionDeleteLine:
		e.deleteLine()
	case actionUndo:
		e.setStatus("Undo not implemented yet")
	case actionSearch:
		e.setStatus("Search not implemented yet")
	case actionEnterInsert:
		e.mode = ModeInsert
	case actionEnterNormal:
		e.mode = ModeNormal
	case actionEnterCommand:
		e.mode = ModeCommand
		e.cmd = e.cmd[:0]
		e.showCommand = true
		e.statusMessage = ""
	case actionBackspace:
		e.backspace()
	case actionNewline:
		e.insertNewline()
	case actionQuit:
		return true
	}
	return false
}

// execCommand dispatches an accumulated command line. It returns true when
// the editor should terminate.
func (e *Editor) execCommand(cmd string) bool {
	switch {
	case cmd == "q":
		return true
	case cmd == "w":
		if err := e.saveFile(); err != nil {
			e.setStatus(saveErrorMessage(err))
		}
	case cmd == "wq":
		if err := e.saveFile(); err != nil {
			e.setStatus(saveErrorMessage(err))
			return false
		}
		return true
	case strings.HasPrefix(cmd, "w "):
		e.filename = strings.TrimSpace(cmd[2:])
		if err := e.saveFile(); err != nil {
			e.setStatus(saveErrorMessage(err))
		}
	case cmd == "":
	default:
		e.setStatus("Unknown command: " + cmd)
	}
	return false
}

func saveErrorMessage(err error) string {
	if errors.Is(err, errNoFilename) {
		return err.Error()
	}
	return "Error saving file: " + err.Error()
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
}

func (e *Editor) moveLeft() {
	if e.cursor.Col > 0 {
		e.cursor.Col--
		return
	}
	if e.cursor.Row == 0 {
		return
	}
	e.cursor.Row--
	e.cursor.Col = e.buf.LineLen(e.cursor.Row)
}

func (e *Editor) moveRight() {
	if e.cursor.Col < e.buf.LineLen(e.cursor.Row) {
		e.cursor.Col++
		return
	}
	if e.cursor.Row >= e.buf.LineCount()-1 {
		return
	}
	e.cursor.Row++
	e.cursor.Col = 0
}

func (e *Editor) moveUp() {
	if e.cursor.Row == 0 {
		return
	}
	e.cursor.Row--
	e.clampCursorCol()
}

func (e *Editor) moveDown() {
	if e.cursor.Row >= e.buf.LineCount()-1 {
		return
	}
	e.cursor.Row++
	e.clampCursorCol()
}

func (e *Editor) moveLineStart() {
	e.cursor.Col = 0
}

func (e *Editor) moveLineEnd() {
	e.cursor.Col = e.buf.LineLen(e.cursor.Row)
}

func (e *Editor) moveFileStart() {
	e.cursor = Cursor{}
}

func (e *Editor) moveFileEnd() {
	e.cursor.Row = e.buf.LineCount() - 1
	e.cursor.Col = e.buf.LineLen(e.cursor.Row)
}

// clampCursorCol snaps the column onto the current line after a vertical
// move; a shorter target line pulls the cursor to its end.
func (e *Editor) clampCursorCol() {
	lineLen := e.buf.LineLen(e.cursor.Row)
	if e.cursor.Col > lineLen {
		e.cursor.Col = lineLen
	}
}

func (e *Editor) insertRune(r rune) {
	if r == '\t' {
		for i := 0; i < e.tabWidth; i++ {
			e.buf.InsertRune(e.cursor.Row, e.cursor.Col, ' ')
		}
		e.cursor.Col += e.tabWidth
		e.tabbed = true
		return
	}
	e.tabbed = false
	e.buf.InsertRune(e.cursor.Row, e.cursor.Col, r)
	e.cursor.Col++
}

func (e *Editor) backspace() {
	if e.cursor.Col == 0 && e.cursor.Row == 0 {
		return
	}
	if e.cursor.Col > 0 {
		// a backspace right after a tab insert takes back the whole
		// expansion, in either backspace mode
		if (e.tabbed || e.backspaceMode == BackspaceSmartIndent) && e.precededByTabStop() {
			for i := 0; i < e.tabWidth; i++ {
				e.buf.DeleteRune(e.cursor.Row, e.cursor.Col-1)
				e.cursor.Col--
			}
			e.tabbed = false
			return
		}
		e.buf.DeleteRune(e.cursor.Row, e.cursor.Col-1)
		e.cursor.Col--
		return
	}
	prevLen := e.buf.LineLen(e.cursor.Row - 1)
	e.buf.JoinLines(e.cursor.Row - 1)
	e.cursor = Cursor{Row: e.cursor.Row - 1, Col: prevLen}
}

func (e *Editor) precededByTabStop() bool {
	if e.cursor.Col < e.tabWidth {
		return false
	}
	line := e.buf.Line(e.cursor.Row)
	for i := e.cursor.Col - e.tabWidth; i < e.cursor.Col; i++ {
		if line[i] != ' ' {
			return false
		}
	}
	return true
}

func (e *Editor) insertNewline() {
	e.buf.SplitLine(e.cursor.Row, e.cursor.Col)
	e.cursor = Cursor{Row: e.cursor.Row + 1, Col: 0}
}

func (e *Editor) deleteCharForward() {
	if e.cursor.Col < e.buf.LineLen(e.cursor.Row) {
		e.buf.DeleteRune(e.cursor.Row, e.cursor.Col)
	}
}

func (e *Editor) deleteLine() {
	if e.buf.LineCount() == 1 {
		return
	}
	e.buf.RemoveLine(e.cursor.Row)
	if e.cursor.Row >= e.buf.LineCount() {
		e.cursor.Row = e.buf.LineCount() - 1
	}
	e.cursor.Col = 0
}

// ReconcileViewport shifts the offsets by the minimal amount that brings
// the cursor back inside a visibleRows x visibleCols window. Calling it
// again without an intervening cursor move changes nothing.
func (e *Editor) ReconcileViewport(visibleRows, visibleCols int) {
	if visibleRows > 0 {
		if e.cursor.Row < e.rowOff {
			e.rowOff = e.cursor.Row
		} else if e.cursor.Row >= e.rowOff+visibleRows {
			e.rowOff = e.cursor.Row - visibleRows + 1
		}
	}
	if visibleCols > 0 {
		if e.cursor.Col < e.colOff {
			e.colOff = e.cursor.Col
		} else if e.cursor.Col >= e.colOff+visibleCols {
			e.colOff = e.cursor.Col - visibleCols + 1
		}
	}
}

func keyString(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyHome:
		return "home"
	case tcell.KeyEnd:
		return "end"
	}
	return ""
}

func (e *Editor) Mode() Mode {
	return e.mode
}

func (e *Editor) Cursor() Cursor {
	return e.cursor
}

func (e *Editor) Filename() string {
	return e.filename
}

func (e *Editor) LineCount() int {
	return e.buf.LineCount()
}

func (e *Editor) Content() string {
	return string(e.buf.Serialize())
}
