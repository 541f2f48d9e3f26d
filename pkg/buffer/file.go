package buffer

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// IOError reports a failed read or write of the buffer's file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

// SplitLines splits file contents on \n, \r\n or \r. One trailing line
// terminator is dropped, so "a\nb\n" and "a\nb" both give [a b]. Empty input
// gives a single empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines: every line is terminated by \n.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}

// Load replaces the buffer contents with the file at path and clears the
// dirty flag. On error the buffer is left untouched.
func (b *TextBuffer) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &IOError{Op: "read", Path: path, Err: err}
	}
	b.setLines(SplitLines(string(data)))
	b.dirty = false
	return nil
}

// Save writes the buffer to path atomically and returns the number of lines
// written. The dirty flag is cleared only when the write succeeds.
func (b *TextBuffer) Save(path string) (int, error) {
	if path == "" {
		return 0, &IOError{Op: "write", Path: path, Err: os.ErrInvalid}
	}
	created, err := createNew(path)
	if err != nil {
		return 0, &IOError{Op: "write", Path: path, Err: err}
	}
	if err := atomic.WriteFile(path, strings.NewReader(JoinLines(b.lines))); err != nil {
		if created {
			_ = os.Remove(path)
		}
		return 0, &IOError{Op: "write", Path: path, Err: err}
	}
	b.dirty = false
	return len(b.lines), nil
}

// createNew makes an empty 0644 file (subject to umask) when path does not
// exist yet. atomic.WriteFile keeps the mode of an existing destination, so
// new files end up with the usual permissions instead of the temp file's.
func createNew(path string) (bool, error) {
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	return true, f.Close()
}
