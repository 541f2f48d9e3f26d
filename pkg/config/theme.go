package config

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Color is a syntax color token from the rule file.
type Color int

const (
	ColorNone Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

var colorNames = map[string]Color{
	"black":   ColorBlack,
	"red":     ColorRed,
	"green":   ColorGreen,
	"yellow":  ColorYellow,
	"blue":    ColorBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorWhite,
}

// ParseColor maps a color name to its token. Names are case-insensitive;
// anything unknown becomes ColorWhite.
func ParseColor(name string) Color {
	if c, ok := colorNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return ColorWhite
}

func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return "none"
}

// Theme holds the tcell colors used to draw the editor.
type Theme struct {
	Text tcell.Color

	// Status bar and message line
	StatusBackground  tcell.Color
	StatusForeground  tcell.Color
	MessageBackground tcell.Color
	MessageForeground tcell.Color

	// Syntax tokens, in the terminal's 8-color palette
	SyntaxColors map[Color]tcell.Color
}

// DefaultTheme mirrors the classic curses layout: white on blue status bar,
// black on white message line.
func DefaultTheme() Theme {
	return Theme{
		Text: tcell.ColorDefault,

		StatusBackground:  tcell.ColorNavy,
		StatusForeground:  tcell.ColorWhite,
		MessageBackground: tcell.ColorSilver,
		MessageForeground: tcell.ColorBlack,

		SyntaxColors: map[Color]tcell.Color{
			ColorBlack:   tcell.ColorBlack,
			ColorRed:     tcell.ColorMaroon,
			ColorGreen:   tcell.ColorGreen,
			ColorYellow:  tcell.ColorOlive,
			ColorBlue:    tcell.ColorNavy,
			ColorMagenta: tcell.ColorPurple,
			ColorCyan:    tcell.ColorTeal,
			ColorWhite:   tcell.ColorSilver,
		},
	}
}

// SyntaxColor returns the tcell color for a token, falling back to Text.
func (t Theme) SyntaxColor(c Color) tcell.Color {
	if col, ok := t.SyntaxColors[c]; ok {
		return col
	}
	return t.Text
}

// TextStyle is the base style for buffer text.
func (t Theme) TextStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.Text)
}

// StatusStyle is used for the status bar.
func (t Theme) StatusStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.StatusForeground).Background(t.StatusBackground)
}

// MessageStyle is used for the message / command line.
func (t Theme) MessageStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(t.MessageForeground).Background(t.MessageBackground)
}
