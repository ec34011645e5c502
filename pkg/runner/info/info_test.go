package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/datepick/pkg/store"
)

func TestInfo(t *testing.T) {
	cfg := store.StaticConfig{Path: t.TempDir(), Settings: map[string]string{"use_24_hour": "true"}}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Put("auto_apply", "false"); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	i := Info{Config: cfg, Persistence: p, Out: &out}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, want := range []string{cfg.Path, "use_24_hour = true", "auto_apply = false"} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("output lacks %q:\n%s", want, out.String())
		}
	}
}
