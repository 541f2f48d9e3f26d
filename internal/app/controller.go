package app

import (
	"example.com/ted/internal/term"
	"example.com/ted/pkg/buffer"
	"example.com/ted/pkg/logs"
)

// Mode represents the current editor mode.
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

type promptKind int

const (
	promptCommand promptKind = iota
	promptFilename
)

// State is the session state a command can change.
type State struct {
	Filename string
	Quit     bool
	// Message is shown once on the next render, then cleared.
	Message string
}

// Controller interprets key events according to the current mode. It keeps
// only its own state between calls; the buffer is passed in per dispatch.
type Controller struct {
	Mode   Mode
	Input  string
	Logger *logs.Logger

	prompt        promptKind
	quitAfterSave bool
	pendingG      bool
}

// NewController returns a controller in normal mode.
func NewController(logger *logs.Logger) *Controller {
	return &Controller{Mode: ModeNormal, Logger: logger}
}

// PendingG reports whether a 'g' is waiting for its second key.
func (c *Controller) PendingG() bool { return c.pendingG }

// CommandLine is the text shown on the message line in command mode.
func (c *Controller) CommandLine() string {
	if c.prompt == promptFilename {
		return "Enter filename: " + c.Input
	}
	return ":" + c.Input
}

// Dispatch applies one key event to buf and st.
func (c *Controller) Dispatch(ev term.KeyEvent, buf *buffer.TextBuffer, st *State) {
	switch c.Mode {
	case ModeInsert:
		c.insertKey(ev, buf)
	case ModeCommand:
		c.commandKey(ev, buf, st)
	default:
		c.normalKey(ev, buf, st)
	}
}

func (c *Controller) action(name string, buf *buffer.TextBuffer) {
	if !c.Logger.Enabled() {
		return
	}
	row, col := buf.Cursor()
	c.Logger.Event("action", map[string]any{
		"name":  name,
		"mode":  c.Mode.String(),
		"row":   row,
		"col":   col,
		"lines": buf.LineCount(),
	})
}

// moveKey handles the arrow keys shared by normal and insert mode.
func (c *Controller) moveKey(ev term.KeyEvent, buf *buffer.TextBuffer) bool {
	switch ev.Kind {
	case term.KeyLeft:
		buf.MoveLeft()
	case term.KeyRight:
		buf.MoveRight()
	case term.KeyUp:
		buf.MoveUp()
	case term.KeyDown:
		buf.MoveDown()
	default:
		return false
	}
	return true
}

func (c *Controller) normalKey(ev term.KeyEvent, buf *buffer.TextBuffer, st *State) {
	if c.pendingG {
		c.pendingG = false
		if ev.IsChar('g') {
			buf.Top()
			c.action("top", buf)
			return
		}
		// Not a gg: handle the key on its own.
	}
	if c.moveKey(ev, buf) {
		return
	}
	if ev.Kind != term.KeyPrintable {
		return
	}
	switch ev.Rune {
	case 'i':
		c.Mode = ModeInsert
	case 'a':
		buf.MoveRight()
		c.Mode = ModeInsert
	case 'h':
		buf.MoveLeft()
	case 'l':
		buf.MoveRight()
	case 'j':
		buf.MoveDown()
	case 'k':
		buf.MoveUp()
	case '0':
		buf.LineStart()
	case '$':
		buf.LineEnd()
	case 'G':
		buf.Bottom()
	case 'g':
		c.pendingG = true
	case 'x':
		if buf.DeleteUnderCursor() {
			c.action("delete.char", buf)
		}
	case 'o':
		buf.OpenLineBelow()
		c.Mode = ModeInsert
		c.action("open.below", buf)
	case 'O':
		buf.OpenLineAbove()
		c.Mode = ModeInsert
		c.action("open.above", buf)
	case ':':
		c.enterCommand(promptCommand)
	}
}

func (c *Controller) insertKey(ev term.KeyEvent, buf *buffer.TextBuffer) {
	if c.moveKey(ev, buf) {
		return
	}
	switch ev.Kind {
	case term.KeyEscape:
		c.Mode = ModeNormal
	case term.KeyBackspace:
		if buf.Backspace() {
			c.action("backspace", buf)
		}
	case term.KeyEnter:
		buf.SplitLine()
		c.action("newline", buf)
	case term.KeyPrintable:
		buf.InsertChar(ev.Rune)
		c.action("insert", buf)
	}
}

func (c *Controller) enterCommand(kind promptKind) {
	c.Mode = ModeCommand
	c.prompt = kind
	c.Input = ""
}

func (c *Controller) leaveCommand() {
	c.Mode = ModeNormal
	c.prompt = promptCommand
	c.quitAfterSave = false
	c.Input = ""
}

func (c *Controller) commandKey(ev term.KeyEvent, buf *buffer.TextBuffer, st *State) {
	switch ev.Kind {
	case term.KeyPrintable:
		c.Input += string(ev.Rune)
	case term.KeyBackspace:
		if c.Input == "" {
			return
		}
		r := []rune(c.Input)
		c.Input = string(r[:len(r)-1])
	case term.KeyEscape:
		c.leaveCommand()
	case term.KeyEnter:
		text, kind, quit := c.Input, c.prompt, c.quitAfterSave
		c.leaveCommand()
		if kind == promptFilename {
			c.saveAs(text, quit, buf, st)
			return
		}
		if err := c.Execute(text, buf, st); err != nil {
			st.Message = err.Error()
		}
	}
}
