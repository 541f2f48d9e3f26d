// Package term is the boundary between the editor core and the terminal.
// The core sees key events and draws whole frames; screen geometry, colors
// and raw input decoding live behind these interfaces.
package term

import (
	"fmt"

	"example.com/ted/pkg/syntax"
)

// KeyKind identifies a key event.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyPrintable
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	// KeyResize is emitted when the screen size changes so the caller can
	// redraw. It carries no input.
	KeyResize
)

var keyNames = [...]string{
	KeyUnknown:   "unknown",
	KeyPrintable: "printable",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyResize:    "resize",
}

func (k KeyKind) String() string {
	if k >= 0 && int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("KeyKind(%d)", int(k))
}

// KeyEvent is a single decoded key press. Rune is set only for KeyPrintable.
type KeyEvent struct {
	Kind KeyKind
	Rune rune
}

// Char returns a printable key event.
func Char(r rune) KeyEvent { return KeyEvent{Kind: KeyPrintable, Rune: r} }

// Key returns a named key event.
func Key(k KeyKind) KeyEvent { return KeyEvent{Kind: k} }

// IsChar reports whether e is the printable rune r.
func (e KeyEvent) IsChar(r rune) bool { return e.Kind == KeyPrintable && e.Rune == r }

func (e KeyEvent) String() string {
	if e.Kind == KeyPrintable {
		return fmt.Sprintf("%q", e.Rune)
	}
	return e.Kind.String()
}

// KeySource yields key events one at a time, blocking until one arrives.
type KeySource interface {
	NextEvent() (KeyEvent, error)
}

// Line is one visible buffer line with its syntax spans.
type Line struct {
	Text  string
	Spans []syntax.Span
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Lines []Line
	// CursorRow indexes Lines; CursorCol is in runes.
	CursorRow int
	CursorCol int
	// CurrentRow is drawn highlighted; -1 for none.
	CurrentRow int
	Status     string
	Message    string
	// Prompt puts the cursor at the end of Message instead of in the text.
	Prompt bool
}

// Display draws frames and reports the screen size in cells.
type Display interface {
	Size() (width, height int)
	Render(f Frame)
}

// Terminal is a full backend: input and output.
type Terminal interface {
	KeySource
	Display
}
