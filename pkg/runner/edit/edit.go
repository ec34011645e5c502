// Package edit opens the terminal editor on a file.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/datepick/pkg/settings"
	"tableflip.dev/datepick/pkg/store"
	"tableflip.dev/datepick/pkg/tui/app"
)

// Edit runs the interactive editor.
type Edit struct {
	Path        string
	Settings    settings.Settings
	Persistence store.Persistence
	Watch       bool
	Logger      *slog.Logger

	// run replaces app.Run in tests.
	run func(app.Options) error
}

// ErrNoTerminal is returned when stdin or stdout is not a terminal.
var ErrNoTerminal = errors.New("edit needs an interactive terminal")

func (e *Edit) Do(ctx context.Context) error {
	run := e.run
	if run == nil {
		if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
			return ErrNoTerminal
		}
		run = app.Run
	}

	text, err := os.ReadFile(e.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// A new file; it is created on the first save.
		text = nil
	case err != nil:
		return fmt.Errorf("read %s: %w", e.Path, err)
	}

	if e.Logger != nil {
		e.Logger.Info("editing", "path", e.Path, "bytes", len(text), "layout", e.Settings.DateLayout)
	}
	return run(app.Options{
		Path:     e.Path,
		Text:     string(text),
		Settings: e.Settings,
		Store:    e.Persistence,
		Watch:    e.Watch,
		Logger:   e.Logger,
	})
}
