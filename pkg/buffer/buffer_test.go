package buffer

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertInvariants(t *testing.T, b *TextBuffer) {
	t.Helper()
	require.GreaterOrEqual(t, len(b.lines), 1)
	require.GreaterOrEqual(t, b.row, 0)
	require.Less(t, b.row, len(b.lines))
	require.GreaterOrEqual(t, b.col, 0)
	require.LessOrEqual(t, b.col, lineLen(b.lines[b.row]))
}

func TestNewIsSingleEmptyLine(t *testing.T) {
	b := New()
	assert.Equal(t, []string{""}, b.Lines())
	row, col := b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
	assert.False(t, b.Dirty())
}

func TestInsertChar(t *testing.T) {
	b := NewFromLines([]string{"ac"})
	b.SetCursor(0, 1)
	b.InsertChar('b')
	assert.Equal(t, []string{"abc"}, b.Lines())
	_, col := b.Cursor()
	assert.Equal(t, 2, col)
	assert.True(t, b.Dirty())
}

func TestInsertCharMultibyte(t *testing.T) {
	b := NewFromLines([]string{"héllo"})
	b.SetCursor(0, 2)
	b.InsertChar('ß')
	assert.Equal(t, "héßllo", b.Line(0))
	b.LineEnd()
	_, col := b.Cursor()
	assert.Equal(t, 6, col)
}

func TestDeleteUnderCursor(t *testing.T) {
	b := NewFromLines([]string{"abc"})
	b.SetCursor(0, 3)
	assert.False(t, b.DeleteUnderCursor())
	assert.Equal(t, []string{"abc"}, b.Lines())
	assert.False(t, b.Dirty())

	b.MoveLeft()
	assert.True(t, b.DeleteUnderCursor())
	assert.Equal(t, []string{"ab"}, b.Lines())
	row, col := b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 2, col)
	assert.True(t, b.Dirty())
}

func TestBackspaceWithinLine(t *testing.T) {
	b := NewFromLines([]string{"abc"})
	b.SetCursor(0, 2)
	assert.True(t, b.Backspace())
	assert.Equal(t, []string{"ac"}, b.Lines())
	_, col := b.Cursor()
	assert.Equal(t, 1, col)
}

func TestBackspaceMergesLines(t *testing.T) {
	b := NewFromLines([]string{"hello", "world", "!"})
	b.SetCursor(1, 0)
	assert.True(t, b.Backspace())
	assert.Equal(t, []string{"helloworld", "!"}, b.Lines())
	row, col := b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 5, col)
	assert.True(t, b.Dirty())
}

func TestBackspaceAtOriginIsNoop(t *testing.T) {
	b := NewFromLines([]string{"abc", "d"})
	assert.False(t, b.Backspace())
	assert.Equal(t, []string{"abc", "d"}, b.Lines())
	assert.False(t, b.Dirty())
}

func TestSplitLine(t *testing.T) {
	b := NewFromLines([]string{"foobar", "x"})
	b.SetCursor(0, 3)
	b.SplitLine()
	assert.Equal(t, []string{"foo", "bar", "x"}, b.Lines())
	row, col := b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
	assert.True(t, b.Dirty())
}

func TestSplitThenBackspaceRestores(t *testing.T) {
	for _, col := range []int{0, 2, 5} {
		b := NewFromLines([]string{"first", "hello", "last"})
		b.SetCursor(1, col)
		b.SplitLine()
		b.Backspace()
		assert.Equal(t, []string{"first", "hello", "last"}, b.Lines())
		row, c := b.Cursor()
		assert.Equal(t, 1, row)
		assert.Equal(t, col, c)
	}
}

func TestOpenLines(t *testing.T) {
	b := New()
	b.OpenLineBelow()
	assert.Equal(t, []string{"", ""}, b.Lines())
	row, col := b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	b = NewFromLines([]string{"a", "b"})
	b.SetCursor(1, 1)
	b.OpenLineAbove()
	assert.Equal(t, []string{"a", "", "b"}, b.Lines())
	row, col = b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)
	assert.True(t, b.Dirty())
}

func TestVerticalMotionSnapsColumn(t *testing.T) {
	b := NewFromLines([]string{"long line", "ab", "another long"})
	b.SetCursor(0, 8)
	b.MoveDown()
	row, col := b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	b.MoveDown()
	_, col = b.Cursor()
	assert.Equal(t, 2, col)

	b.MoveDown()
	row, _ = b.Cursor()
	assert.Equal(t, 2, row)

	b.LineEnd()
	b.Top()
	row, col = b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 9, col)

	b.MoveUp()
	row, _ = b.Cursor()
	assert.Equal(t, 0, row)

	b.Bottom()
	row, _ = b.Cursor()
	assert.Equal(t, 2, row)
}

func TestHorizontalMotionClamps(t *testing.T) {
	b := NewFromLines([]string{"ab"})
	b.MoveLeft()
	_, col := b.Cursor()
	assert.Equal(t, 0, col)
	b.MoveRight()
	b.MoveRight()
	b.MoveRight()
	_, col = b.Cursor()
	assert.Equal(t, 2, col)
	b.LineStart()
	_, col = b.Cursor()
	assert.Equal(t, 0, col)
}

func TestSetCursorClamps(t *testing.T) {
	b := NewFromLines([]string{"abc", "d"})
	b.SetCursor(10, 10)
	row, col := b.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)
	b.SetCursor(-3, -3)
	row, col = b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}

func TestInvariantsUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewFromLines([]string{"alpha", "", "gamma delta"})
	ops := []func(){
		func() { b.InsertChar(rune('a' + rng.Intn(26))) },
		func() { b.DeleteUnderCursor() },
		func() { b.Backspace() },
		func() { b.SplitLine() },
		func() { b.OpenLineBelow() },
		func() { b.OpenLineAbove() },
		b.MoveLeft, b.MoveRight, b.MoveUp, b.MoveDown,
		b.LineStart, b.LineEnd, b.Top, b.Bottom,
		func() { b.SetCursor(rng.Intn(20)-5, rng.Intn(40)-5) },
	}
	for i := 0; i < 5000; i++ {
		ops[rng.Intn(len(ops))]()
		assertInvariants(t, b)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{""}, SplitLines(""))
	assert.Equal(t, []string{""}, SplitLines("\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\nb\n"))
	assert.Equal(t, []string{"a", "b", ""}, SplitLines("a\r\nb\r\n\r\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\rb"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	for _, lines := range [][]string{
		{""},
		{"one"},
		{"one", "", "three"},
		{"trailing", ""},
		{"", "", ""},
	} {
		b := NewFromLines(lines)
		b.InsertChar('x')
		b.Backspace()
		n, err := b.Save(path)
		require.NoError(t, err)
		assert.Equal(t, len(lines), n)
		assert.False(t, b.Dirty())

		loaded := New()
		require.NoError(t, loaded.Load(path))
		assert.Equal(t, lines, loaded.Lines())
		assert.False(t, loaded.Dirty())
	}
}

func TestSaveTwiceIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	b := NewFromLines([]string{"a", "b"})
	_, err := b.Save(path)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = b.Save(path)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "a\nb\n", string(second))
	assert.False(t, b.Dirty())
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	b := New()
	b.InsertChar('z')
	_, err := b.Save(filepath.Join(t.TempDir(), "missing", "dir", "f.txt"))
	require.Error(t, err)

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "write", ioErr.Op)
	assert.True(t, b.Dirty())
	assert.Equal(t, []string{"z"}, b.Lines())
}

func TestSaveWithoutPath(t *testing.T) {
	b := New()
	_, err := b.Save("")
	assert.ErrorIs(t, err, os.ErrInvalid)
}

func TestLoadMissingLeavesBuffer(t *testing.T) {
	b := NewFromLines([]string{"keep"})
	b.InsertChar('!')
	err := b.Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, []string{"!keep"}, b.Lines())
	assert.True(t, b.Dirty())
}

func TestLoadResetsCursor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\r\ny\r\n"), 0644))
	b := NewFromLines([]string{"a", "b", "c"})
	b.SetCursor(2, 1)
	require.NoError(t, b.Load(path))
	assert.Equal(t, []string{"x", "y"}, b.Lines())
	row, col := b.Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}
