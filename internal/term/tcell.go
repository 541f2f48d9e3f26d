package term

import (
	"errors"
	"unicode"

	"example.com/ted/pkg/config"
	"example.com/ted/pkg/syntax"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ErrClosed is returned by NextEvent once the screen has been finalized.
var ErrClosed = errors.New("terminal closed")

// Screen implements Terminal on top of a tcell screen.
type Screen struct {
	S     tcell.Screen
	Theme config.Theme
}

// NewScreen opens and initializes the real terminal.
func NewScreen(theme config.Theme) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	return &Screen{S: s, Theme: theme}, nil
}

// Fini restores the terminal to the state it was in before NewScreen:
// cursor, echo and line buffering. Safe to call more than once.
func (t *Screen) Fini() {
	if t.S != nil {
		t.S.Fini()
		t.S = nil
	}
}

// NextEvent blocks for the next key or resize.
func (t *Screen) NextEvent() (KeyEvent, error) {
	for {
		if t.S == nil {
			return KeyEvent{}, ErrClosed
		}
		ev := t.S.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return KeyEvent{}, ErrClosed
		case *tcell.EventKey:
			return Convert(ev), nil
		case *tcell.EventResize:
			t.S.Sync()
			return Key(KeyResize), nil
		}
	}
}

// Convert maps a tcell key event onto the editor's key set. Control and
// function keys outside that set become KeyUnknown.
func Convert(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return Key(KeyUnknown)
		}
		if r := ev.Rune(); unicode.IsPrint(r) {
			return Char(r)
		}
		return Key(KeyUnknown)
	case tcell.KeyEnter:
		return Key(KeyEnter)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Key(KeyBackspace)
	case tcell.KeyEsc:
		return Key(KeyEscape)
	case tcell.KeyUp:
		return Key(KeyUp)
	case tcell.KeyDown:
		return Key(KeyDown)
	case tcell.KeyLeft:
		return Key(KeyLeft)
	case tcell.KeyRight:
		return Key(KeyRight)
	}
	return Key(KeyUnknown)
}

// Size returns the screen size in cells.
func (t *Screen) Size() (int, int) {
	if t.S == nil {
		return 0, 0
	}
	return t.S.Size()
}

func cellWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// Render draws f: text rows, then the status bar and the message line on
// the last two rows.
func (t *Screen) Render(f Frame) {
	s := t.S
	if s == nil {
		return
	}
	width, height := s.Size()
	s.Clear()
	textRows := height - 2
	if textRows < 0 {
		textRows = 0
	}

	cursorX := 0
	for i := 0; i < textRows && i < len(f.Lines); i++ {
		line := f.Lines[i]
		current := i == f.CurrentRow
		base := t.Theme.TextStyle()
		if current {
			base = base.Reverse(true)
			for x := 0; x < width; x++ {
				s.SetContent(x, i, ' ', nil, base)
			}
		}
		colors := syntax.Paint(line.Text, line.Spans)
		x := 0
		for j, r := range []rune(line.Text) {
			if x >= width {
				break
			}
			style := base
			if c := colors[j]; c != config.ColorNone {
				style = style.Foreground(t.Theme.SyntaxColor(c))
			}
			s.SetContent(x, i, r, nil, style)
			x += cellWidth(r)
		}
		if i == f.CursorRow {
			cursorX = columnX(line.Text, f.CursorCol)
		}
	}

	if height >= 2 {
		drawBar(s, height-2, width, f.Status, t.Theme.StatusStyle())
	}
	if height >= 1 {
		drawBar(s, height-1, width, f.Message, t.Theme.MessageStyle())
	}

	if f.Prompt && height >= 1 {
		s.ShowCursor(clampInt(runewidth.StringWidth(f.Message), 0, width-1), height-1)
	} else {
		s.ShowCursor(clampInt(cursorX, 0, width-1), clampInt(f.CursorRow, 0, textRows-1))
	}
	s.Show()
}

// columnX is the screen column of rune index col in text.
func columnX(text string, col int) int {
	x := 0
	for j, r := range []rune(text) {
		if j >= col {
			break
		}
		x += cellWidth(r)
	}
	return x
}

// drawBar fills row y with text padded to the full width.
func drawBar(s tcell.Screen, y, width int, text string, style tcell.Style) {
	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += cellWidth(r)
	}
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
