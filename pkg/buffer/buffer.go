package buffer

import "unicode/utf8"

// TextBuffer is a sequence of lines with a cursor. Columns are counted in
// runes. The buffer always holds at least one line and every operation
// clamps the cursor back into range before acting.
type TextBuffer struct {
	lines []string
	row   int
	col   int
	dirty bool
}

// New returns a buffer holding a single empty line.
func New() *TextBuffer {
	return &TextBuffer{lines: []string{""}}
}

// NewFromLines returns a clean buffer holding a copy of lines.
func NewFromLines(lines []string) *TextBuffer {
	b := &TextBuffer{}
	b.setLines(lines)
	return b
}

func (b *TextBuffer) setLines(lines []string) {
	if len(lines) == 0 {
		b.lines = []string{""}
	} else {
		b.lines = append([]string(nil), lines...)
	}
	b.row, b.col = 0, 0
}

// Lines returns a copy of the buffer contents.
func (b *TextBuffer) Lines() []string {
	return append([]string(nil), b.lines...)
}

// Line returns line i, or "" when i is out of range.
func (b *TextBuffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

func (b *TextBuffer) LineCount() int { return len(b.lines) }

// Cursor returns the clamped cursor position.
func (b *TextBuffer) Cursor() (row, col int) {
	b.clamp()
	return b.row, b.col
}

// SetCursor moves the cursor, clamping into range.
func (b *TextBuffer) SetCursor(row, col int) {
	b.row, b.col = row, col
	b.clamp()
}

func (b *TextBuffer) Dirty() bool { return b.dirty }

func lineLen(s string) int { return utf8.RuneCountInString(s) }

func (b *TextBuffer) clamp() {
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	if b.row < 0 {
		b.row = 0
	}
	if b.row > len(b.lines)-1 {
		b.row = len(b.lines) - 1
	}
	if b.col < 0 {
		b.col = 0
	}
	if n := lineLen(b.lines[b.row]); b.col > n {
		b.col = n
	}
}

// InsertChar splices r into the current line at the cursor.
func (b *TextBuffer) InsertChar(r rune) {
	b.clamp()
	line := []rune(b.lines[b.row])
	out := make([]rune, 0, len(line)+1)
	out = append(out, line[:b.col]...)
	out = append(out, r)
	out = append(out, line[b.col:]...)
	b.lines[b.row] = string(out)
	b.col++
	b.dirty = true
}

// DeleteUnderCursor removes the rune under the cursor. At end of line it
// does nothing.
func (b *TextBuffer) DeleteUnderCursor() bool {
	b.clamp()
	line := []rune(b.lines[b.row])
	if b.col >= len(line) {
		return false
	}
	b.lines[b.row] = string(line[:b.col]) + string(line[b.col+1:])
	b.dirty = true
	return true
}

// Backspace removes the rune before the cursor. At column 0 it joins the
// current line onto the previous one. At (0,0) it does nothing.
func (b *TextBuffer) Backspace() bool {
	b.clamp()
	if b.col > 0 {
		line := []rune(b.lines[b.row])
		b.lines[b.row] = string(line[:b.col-1]) + string(line[b.col:])
		b.col--
		b.dirty = true
		return true
	}
	if b.row == 0 {
		return false
	}
	prev := b.lines[b.row-1]
	b.lines[b.row-1] = prev + b.lines[b.row]
	b.lines = append(b.lines[:b.row], b.lines[b.row+1:]...)
	b.row--
	b.col = lineLen(prev)
	b.dirty = true
	return true
}

// SplitLine breaks the current line at the cursor; the suffix becomes a new
// line below and the cursor moves to its start.
func (b *TextBuffer) SplitLine() {
	b.clamp()
	line := []rune(b.lines[b.row])
	head, tail := string(line[:b.col]), string(line[b.col:])
	b.lines[b.row] = head
	b.insertLine(b.row+1, tail)
	b.row++
	b.col = 0
	b.dirty = true
}

// OpenLineBelow inserts an empty line after the cursor row and moves to it.
func (b *TextBuffer) OpenLineBelow() {
	b.clamp()
	b.insertLine(b.row+1, "")
	b.row++
	b.col = 0
	b.dirty = true
}

// OpenLineAbove inserts an empty line at the cursor row and moves to it.
func (b *TextBuffer) OpenLineAbove() {
	b.clamp()
	b.insertLine(b.row, "")
	b.col = 0
	b.dirty = true
}

func (b *TextBuffer) insertLine(at int, s string) {
	b.lines = append(b.lines, "")
	copy(b.lines[at+1:], b.lines[at:])
	b.lines[at] = s
}

func (b *TextBuffer) MoveLeft() {
	b.clamp()
	if b.col > 0 {
		b.col--
	}
}

func (b *TextBuffer) MoveRight() {
	b.col++
	b.clamp()
}

// MoveUp and MoveDown keep the column where possible and snap it to the end
// of shorter lines.
func (b *TextBuffer) MoveUp() {
	b.clamp()
	b.row--
	b.clamp()
}

func (b *TextBuffer) MoveDown() {
	b.clamp()
	b.row++
	b.clamp()
}

func (b *TextBuffer) LineStart() {
	b.clamp()
	b.col = 0
}

func (b *TextBuffer) LineEnd() {
	b.clamp()
	b.col = lineLen(b.lines[b.row])
}

// Top moves to the first line, keeping the column where possible.
func (b *TextBuffer) Top() {
	b.clamp()
	b.row = 0
	b.clamp()
}

// Bottom moves to the last line, keeping the column where possible.
func (b *TextBuffer) Bottom() {
	b.clamp()
	b.row = len(b.lines) - 1
	b.clamp()
}
