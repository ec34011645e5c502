package edit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"tableflip.dev/datepick/pkg/settings"
	"tableflip.dev/datepick/pkg/tui/app"
)

func TestDoPassesFileToEditor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("due 2024-01-01"), 0o644); err != nil {
		t.Fatal(err)
	}
	var got app.Options
	e := Edit{Path: path, Settings: settings.Defaults(), Watch: true, run: func(o app.Options) error {
		got = o
		return nil
	}}
	if err := e.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got.Text != "due 2024-01-01" || got.Path != path || !got.Watch {
		t.Fatalf("options = %+v", got)
	}
}

func TestDoMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	called := false
	e := Edit{Path: path, run: func(o app.Options) error {
		called = true
		if o.Text != "" {
			t.Fatalf("text = %q", o.Text)
		}
		return nil
	}}
	if err := e.Do(context.Background()); err != nil || !called {
		t.Fatalf("Do = %v, called %v", err, called)
	}
}
