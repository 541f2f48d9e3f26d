package logs

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Logger writes one JSON object per event: time, event name and fields.
// A disabled logger drops everything, so callers never need a nil check
// beyond the pointer itself.
type Logger struct {
	mu      sync.Mutex
	w       *bufio.Writer
	c       io.Closer
	log     *slog.Logger
	enabled bool
}

// Disabled returns a logger that records nothing.
func Disabled() *Logger {
	return &Logger{}
}

// New returns a logger writing JSON lines to w. If w is also an io.Closer it
// is closed by Close.
func New(w io.Writer) *Logger {
	bw := bufio.NewWriter(w)
	l := &Logger{w: bw, enabled: true}
	if c, ok := w.(io.Closer); ok {
		l.c = c
	}
	l.log = slog.New(slog.NewJSONHandler(bw, &slog.HandlerOptions{
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.MessageKey:
				a.Key = "event"
			case slog.LevelKey:
				return slog.Attr{}
			}
			return a
		},
	}))
	return l
}

// NewFromEnv returns a logger when TED_LOG is truthy or TED_LOG_FILE is set,
// otherwise a disabled one. Without TED_LOG_FILE it appends to ./ted.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("TED_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("TED_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return Disabled()
	}
	if lf == "" {
		lf = filepath.Join(".", "ted.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		// An unwritable log file must never stop the editor.
		return Disabled()
	}
	return New(f)
}

// Enabled reports whether events are recorded.
func (l *Logger) Enabled() bool { return l != nil && l.enabled }

// Close flushes and closes the underlying writer.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Flush()
	if l.c != nil {
		_ = l.c.Close()
	}
	l.enabled = false
}

// Event records a named event. Common fields: key, rune, mode, action,
// row, col, lines, file, error.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.log.LogAttrs(context.Background(), slog.LevelInfo, event, attrs...)
	_ = l.w.Flush()
}
