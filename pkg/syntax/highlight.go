package syntax

import (
	"unicode/utf8"

	"example.com/ted/pkg/config"
)

// Span is a colored half-open range [Start, End) of a line, in runes.
type Span struct {
	Start int
	End   int
	Color config.Color
}

// Highlighter produces color spans for a single line of text.
type Highlighter interface {
	Highlight(line string) []Span
}

// Highlight implements Highlighter.
func (rs RuleSet) Highlight(line string) []Span {
	return Colorize(line, rs)
}

// Colorize scans every rule over the unmodified line, in rule order, and
// returns the spans in the order they were produced. Later spans are meant
// to be drawn over earlier ones; overlaps are not resolved here.
func Colorize(line string, rs RuleSet) []Span {
	if rs.Empty() || line == "" {
		return nil
	}
	var spans []Span
	for _, rule := range rs.Rules {
		for _, m := range rule.Re.FindAllStringIndex(line, -1) {
			if m[0] == m[1] {
				continue
			}
			start := utf8.RuneCountInString(line[:m[0]])
			end := start + utf8.RuneCountInString(line[m[0]:m[1]])
			spans = append(spans, Span{Start: start, End: end, Color: rule.Color})
		}
	}
	return spans
}

// Paint flattens spans onto the runes of line; the last span covering a rune
// wins. Uncolored runes are ColorNone.
func Paint(line string, spans []Span) []config.Color {
	n := utf8.RuneCountInString(line)
	colors := make([]config.Color, n)
	for _, s := range spans {
		start, end := s.Start, s.End
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			colors[i] = s.Color
		}
	}
	return colors
}
