package app

import (
	"errors"
	"io/fs"

	"example.com/ted/internal/term"
	"example.com/ted/pkg/buffer"
	"example.com/ted/pkg/config"
	"example.com/ted/pkg/logs"
	"example.com/ted/pkg/syntax"
)

// Session owns the buffer and runs the render, read, dispatch loop.
type Session struct {
	Buf        *buffer.TextBuffer
	State      State
	Controller *Controller
	Config     *config.Config
	Rules      syntax.RuleSet
	Term       term.Terminal
	Logger     *logs.Logger

	rulesFor string
}

// NewSession creates a session with an empty buffer and no file.
func NewSession(t term.Terminal, cfg *config.Config, logger *logs.Logger) *Session {
	if cfg == nil {
		cfg = config.Empty()
	}
	if logger == nil {
		logger = logs.Disabled()
	}
	return &Session{
		Buf:        buffer.New(),
		Controller: NewController(logger),
		Config:     cfg,
		Term:       t,
		Logger:     logger,
	}
}

// Open makes path the session's file. An existing file is loaded; a missing
// one leaves the buffer empty with path as the save target. Other read
// errors are shown as a message and returned.
func (s *Session) Open(path string) error {
	if path == "" {
		return nil
	}
	s.State.Filename = path
	s.refreshRules()
	s.Logger.Event("open.attempt", map[string]any{"file": path})
	if err := s.Buf.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.Logger.Event("open.new", map[string]any{"file": path})
			return nil
		}
		var ioErr *buffer.IOError
		msg := err.Error()
		if errors.As(err, &ioErr) {
			msg = ioErr.Err.Error()
		}
		s.State.Message = "Error reading file: " + msg
		s.Logger.Event("open.error", map[string]any{"file": path, "error": msg})
		return err
	}
	s.Logger.Event("open.success", map[string]any{"file": path, "lines": s.Buf.LineCount()})
	return nil
}

// refreshRules compiles the syntax rules for the current filename.
func (s *Session) refreshRules() {
	s.rulesFor = s.State.Filename
	s.Rules = syntax.Compile(s.Config, s.State.Filename)
	s.Logger.Event("syntax.rules", map[string]any{
		"file":    s.State.Filename,
		"pattern": s.Rules.Pattern,
		"rules":   len(s.Rules.Rules),
	})
}

// Step dispatches a single key event.
func (s *Session) Step(ev term.KeyEvent) {
	if s.Logger.Enabled() {
		s.Logger.Event("key", map[string]any{"key": ev.String(), "mode": s.Controller.Mode.String()})
	}
	s.Controller.Dispatch(ev, s.Buf, &s.State)
	if s.State.Filename != s.rulesFor {
		s.refreshRules()
	}
}

// Run draws the screen and processes keys until a command sets Quit or the
// key source fails.
func (s *Session) Run() error {
	s.Logger.Event("run.start", map[string]any{"file": s.State.Filename})
	defer func() {
		s.Logger.Event("run.end", map[string]any{"file": s.State.Filename, "dirty": s.Buf.Dirty()})
	}()
	for !s.State.Quit {
		s.Term.Render(s.Frame())
		ev, err := s.Term.NextEvent()
		if err != nil {
			return err
		}
		s.Step(ev)
	}
	return nil
}
