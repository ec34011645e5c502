package prefs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/settings"
	"tableflip.dev/datepick/pkg/store"
)

func init() {
	color.NoColor = true
}

func newStore(t *testing.T) store.Persistence {
	t.Helper()
	p, err := store.Load(store.StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p
}

func TestSetGetReset(t *testing.T) {
	ctx := context.Background()
	p := newStore(t)

	var out bytes.Buffer
	set := Prefs{Persistence: p, Key: settings.KeyDateLayout, Value: "dd.mm.yyyy", Out: &out}
	if err := set.Do(ctx); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "DD.MM.YYYY" {
		t.Fatalf("set printed %q", got)
	}

	out.Reset()
	list := Prefs{Persistence: p, Out: &out}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	var found bool
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, settings.KeyDateLayout) {
			found = true
			if !strings.Contains(line, "stored") {
				t.Fatalf("date layout not marked stored: %q", line)
			}
		}
		if strings.HasPrefix(line, settings.KeyAutoApply) && !strings.Contains(line, "default") {
			t.Fatalf("auto apply not marked default: %q", line)
		}
	}
	if !found {
		t.Fatalf("listing lacks %s:\n%s", settings.KeyDateLayout, out.String())
	}

	reset := Prefs{Persistence: p, Key: settings.KeyDateLayout, Reset: true, Out: &out}
	if err := reset.Do(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(p.Stored(ctx)) != 0 {
		t.Fatalf("stored after reset: %v", p.Stored(ctx))
	}
}

func TestUnknownKey(t *testing.T) {
	p := newStore(t)
	var out bytes.Buffer
	if err := (&Prefs{Persistence: p, Key: "nope", Out: &out}).Do(context.Background()); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if err := (&Prefs{Persistence: p, Key: settings.KeyBlurDelay, Value: "soon", Out: &out}).Do(context.Background()); err == nil {
		t.Fatalf("expected error for bad value")
	}
}
