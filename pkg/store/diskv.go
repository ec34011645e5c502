package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/datepick/pkg/settings"
)

const settingsBucket = "settings"

// Persistence stores settings, one diskv key per setting.
type Persistence interface {
	// Settings returns the defaults, overlaid with stored values, overlaid
	// with config overrides.
	Settings(ctx context.Context) (settings.Settings, error)
	// Stored returns only the values that were saved.
	Stored(ctx context.Context) map[string]string
	Put(key, value string) error
	Reset(key string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      64 * 1024,
	}), basePath: basePath, overrides: cfg.Overrides()}, nil
}

type persistence struct {
	d         *diskv.Diskv
	basePath  string
	overrides map[string]string
}

func (p *persistence) Settings(ctx context.Context) (settings.Settings, error) {
	s := settings.Defaults()
	if err := s.Apply(p.Stored(ctx)); err != nil {
		return s, fmt.Errorf("store: stored settings: %w", err)
	}
	if err := s.Apply(p.overrides); err != nil {
		return s, fmt.Errorf("store: config overrides: %w", err)
	}
	return s, nil
}

func (p *persistence) Stored(ctx context.Context) map[string]string {
	out := make(map[string]string)
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != 1 || pk.Path[0] != settingsBucket {
			continue
		}
		val, err := p.d.Read(key)
		if err != nil {
			continue
		}
		out[pk.FileName] = strings.TrimSpace(string(val))
	}
	return out
}

func (p *persistence) Put(key, value string) error {
	s := settings.Defaults()
	if err := s.Set(key, value); err != nil {
		return err
	}
	canonical, _ := s.Get(key)
	if err := p.d.Write(toKey(key), []byte(canonical)); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Reset(key string) error {
	if !settings.Known(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := p.d.Erase(toKey(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `settings-name`
func toKey(name string) string {
	return fmt.Sprintf("%s-%s", settingsBucket, name)
}

// SortedKeys returns the keys of m in order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
