package app

import (
	"errors"
	"fmt"
	"strings"

	"example.com/ted/pkg/buffer"
)

const msgNoWrite = "No write since last change (add ! to override)"

// UnknownCommandError is returned by Execute for text it does not understand.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return "Not an editor command: " + e.Command
}

// Execute runs a command-line command (the text typed after ':'). Save
// failures are reported through st.Message, not as an error.
func (c *Controller) Execute(text string, buf *buffer.TextBuffer, st *State) error {
	cmd := strings.TrimSpace(text)
	if c.Logger.Enabled() {
		c.Logger.Event("command", map[string]any{"text": cmd})
	}
	verb, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch {
	case cmd == "q":
		if buf.Dirty() {
			st.Message = msgNoWrite
			return nil
		}
		st.Quit = true
	case cmd == "q!":
		st.Quit = true
	case verb == "w" || verb == "wq":
		quit := verb == "wq"
		if arg != "" {
			st.Filename = arg
		}
		if st.Filename == "" {
			c.enterCommand(promptFilename)
			c.quitAfterSave = quit
			return nil
		}
		if c.save(buf, st) && quit {
			st.Quit = true
		}
	default:
		return &UnknownCommandError{Command: cmd}
	}
	return nil
}

func (c *Controller) saveAs(name string, quit bool, buf *buffer.TextBuffer, st *State) {
	name = strings.TrimSpace(name)
	if name == "" {
		st.Message = "No file name"
		return
	}
	st.Filename = name
	if c.save(buf, st) && quit {
		st.Quit = true
	}
}

// save writes buf to st.Filename and reports the outcome in st.Message.
func (c *Controller) save(buf *buffer.TextBuffer, st *State) bool {
	n, err := buf.Save(st.Filename)
	if err != nil {
		msg := err.Error()
		var ioErr *buffer.IOError
		if errors.As(err, &ioErr) {
			msg = ioErr.Err.Error()
		}
		st.Message = "Error writing file: " + msg
		if c.Logger.Enabled() {
			c.Logger.Event("save.error", map[string]any{"file": st.Filename, "error": msg})
		}
		return false
	}
	st.Message = fmt.Sprintf("'%s' %dL written", st.Filename, n)
	if c.Logger.Enabled() {
		c.Logger.Event("save.success", map[string]any{"file": st.Filename, "lines": n})
	}
	return true
}
