// Package prefs reads and writes the stored widget settings.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/datepick/pkg/settings"
	"tableflip.dev/datepick/pkg/store"
)

type Prefs struct {
	Persistence store.Persistence
	Key         string
	Value       string
	// Reset erases the stored value of Key, or of every key when Key is
	// empty.
	Reset bool
	JSON  bool
	Out   io.Writer
}

// Entry is one setting as listed.
type Entry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Stored bool   `json:"stored"`
}

func (p *Prefs) Do(ctx context.Context) error {
	if p.Persistence == nil {
		return errors.New("no settings store")
	}
	if p.Out == nil {
		p.Out = color.Output
	}

	switch {
	case p.Reset && p.Key == "":
		for _, k := range settings.Keys() {
			if err := p.Persistence.Reset(k); err != nil {
				return err
			}
		}
		_, _ = fmt.Fprintln(p.Out, "all settings reset to defaults")
		return nil
	case p.Reset:
		if err := p.Persistence.Reset(p.Key); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(p.Out, "%s reset\n", p.Key)
		return nil
	case p.Key != "" && p.Value != "":
		if err := p.Persistence.Put(p.Key, p.Value); err != nil {
			return err
		}
	}

	entries, err := p.entries(ctx)
	if err != nil {
		return err
	}
	if p.Key != "" {
		for _, e := range entries {
			if e.Key == p.Key {
				entries = []Entry{e}
				break
			}
		}
		if len(entries) != 1 {
			return fmt.Errorf("unknown setting %q", p.Key)
		}
	}

	if p.JSON {
		enc := json.NewEncoder(p.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if p.Key != "" {
		_, err := fmt.Fprintln(p.Out, entries[0].Value)
		return err
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Value"), bold.Sprint("Source"))
	for _, e := range entries {
		source := faint.Sprint("default")
		if e.Stored {
			source = "stored"
		}
		tbl.AddRow(e.Key, e.Value, source)
	}
	_, err = fmt.Fprintln(p.Out, tbl)
	return err
}

func (p *Prefs) entries(ctx context.Context) ([]Entry, error) {
	s, err := p.Persistence.Settings(ctx)
	if err != nil {
		return nil, err
	}
	stored := p.Persistence.Stored(ctx)
	entries := make([]Entry, 0, len(settings.Keys()))
	for _, k := range settings.Keys() {
		v, err := s.Get(k)
		if err != nil {
			return nil, err
		}
		_, ok := stored[k]
		entries = append(entries, Entry{Key: k, Value: v, Stored: ok})
	}
	return entries, nil
}
