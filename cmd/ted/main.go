// Command ted is a small modal terminal text editor.
package main

import (
	"fmt"
	"io"
	"os"

	"example.com/ted/internal/app"
	"example.com/ted/internal/term"
	"example.com/ted/pkg/config"
	"example.com/ted/pkg/logs"
	xterm "golang.org/x/term"
)

// isTerminal is swapped out in tests.
var isTerminal = func(fd int) bool { return xterm.IsTerminal(fd) }

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) (code int) {
	if len(args) > 1 {
		fmt.Fprintln(stderr, "usage: ted [file]")
		return 2
	}
	if !isTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(stderr, "ted: standard input is not a terminal")
		return 1
	}

	logger := logs.NewFromEnv()
	defer logger.Close()

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		logger.Event("config.error", map[string]any{"error": err.Error()})
	}

	scr, err := term.NewScreen(config.DefaultTheme())
	if err != nil {
		fmt.Fprintf(stderr, "Editor error: %v\n", err)
		return 1
	}
	defer scr.Fini()
	defer func() {
		if r := recover(); r != nil {
			scr.Fini()
			logger.Event("panic", map[string]any{"error": fmt.Sprint(r)})
			fmt.Fprintf(stderr, "Editor error: %v\n", r)
			code = 1
		}
	}()

	s := app.NewSession(scr, cfg, logger)
	if len(args) == 1 {
		// read errors are already on the message line
		_ = s.Open(args[0])
	}
	if err := s.Run(); err != nil {
		scr.Fini()
		fmt.Fprintf(stderr, "Editor error: %v\n", err)
		return 1
	}
	return 0
}
