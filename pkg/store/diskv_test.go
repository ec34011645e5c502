package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/settings"
)

func TestSettingsLayering(t *testing.T) {
	ctx := context.Background()
	p, err := Load(StaticConfig{
		Path:     t.TempDir(),
		Settings: map[string]string{settings.KeyUse24Hour: "true"},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s, err := p.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if want := settings.Defaults(); s.DateLayout != want.DateLayout || !s.Use24Hour {
		t.Fatalf("settings = %+v", s)
	}

	if err := p.Put(settings.KeyDateLayout, "dd.mm.yyyy"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := p.Put(settings.KeyBlurDelay, "1500"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := p.Put(settings.KeyUse24Hour, "false"); err != nil {
		t.Fatalf("put: %v", err)
	}

	stored := p.Stored(ctx)
	if stored[settings.KeyDateLayout] != "DD.MM.YYYY" || stored[settings.KeyBlurDelay] != "1s500ms" {
		t.Fatalf("stored = %v", stored)
	}

	s, err = p.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if s.DateLayout != format.LayoutDMYDot || s.BlurDelay != 1500*time.Millisecond {
		t.Fatalf("settings = %+v", s)
	}
	if !s.Use24Hour {
		t.Fatalf("config override lost to stored value")
	}

	if err := p.Reset(settings.KeyDateLayout); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := p.Reset(settings.KeyDateLayout); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	if _, ok := p.Stored(ctx)[settings.KeyDateLayout]; ok {
		t.Fatalf("reset key still stored")
	}
}

func TestPutRejectsBadValues(t *testing.T) {
	p, err := Load(StaticConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := p.Put("colour", "blue"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if err := p.Put(settings.KeyAutoApply, "sometimes"); err == nil {
		t.Fatalf("expected error for bad value")
	}
	if len(p.Stored(context.Background())) != 0 {
		t.Fatalf("bad values were stored")
	}
}
