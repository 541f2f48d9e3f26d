package app

import (
	"fmt"

	"example.com/ted/internal/term"
	"example.com/ted/pkg/syntax"
)

// Status renders the status bar text.
func (s *Session) Status() string {
	name := s.State.Filename
	if name == "" {
		name = "[No Name]"
	}
	if s.Buf.Dirty() {
		name += " [+]"
	}
	row, _ := s.Buf.Cursor()
	return fmt.Sprintf("Ted - %s | %s | Line %d/%d", name, s.Controller.Mode, row+1, s.Buf.LineCount())
}

// viewportTop places the cursor row half a screen below the top, but never
// below the last text row.
func viewportTop(cursorRow, height, textRows int) int {
	top := cursorRow - height/2
	if cursorRow-top >= textRows {
		top = cursorRow - textRows + 1
	}
	if top < 0 {
		top = 0
	}
	return top
}

// Frame snapshots the session for drawing and consumes the pending message.
func (s *Session) Frame() term.Frame {
	_, height := s.Term.Size()
	textRows := height - 2
	if textRows < 1 {
		textRows = 1
	}
	row, col := s.Buf.Cursor()
	top := viewportTop(row, height, textRows)

	f := term.Frame{
		CursorRow:  row - top,
		CursorCol:  col,
		CurrentRow: row - top,
		Status:     s.Status(),
		Message:    s.State.Message,
	}
	for i := top; i < s.Buf.LineCount() && i < top+textRows; i++ {
		text := s.Buf.Line(i)
		f.Lines = append(f.Lines, term.Line{Text: text, Spans: syntax.Colorize(text, s.Rules)})
	}
	if s.Controller.Mode == ModeCommand {
		f.Message = s.Controller.CommandLine()
		f.Prompt = true
	}
	s.State.Message = ""
	return f
}
