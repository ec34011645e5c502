// Package settings holds the user options of the date widget and their
// string encoding for persistence.
package settings

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/timeutil"
)

// Keys under which settings are persisted.
const (
	KeyDateLayout        = "date_layout"
	KeyOverrideFormat    = "override_format"
	KeyShowDateButtons   = "show_date_buttons"
	KeyShowTimeButtons   = "show_time_buttons"
	KeyShowAutomatically = "show_automatically"
	KeyAutoApply         = "auto_apply"
	KeyShowCalendar      = "show_calendar"
	KeyAutofocus         = "autofocus"
	KeyFocusOnArrowDown  = "focus_on_arrow_down"
	KeyUse24Hour         = "use_24_hour"
	KeySelectOnFocus     = "select_on_focus"
	KeyBlurDelay         = "blur_delay"
	KeySuppressWindow    = "suppress_window"
)

// Settings are the options the controller and the commit pipeline read.
type Settings struct {
	DateLayout        format.Layout
	OverrideFormat    bool
	ShowDateButtons   bool
	ShowTimeButtons   bool
	ShowAutomatically bool
	AutoApply         bool
	ShowCalendar      bool
	Autofocus         bool
	FocusOnArrowDown  bool
	Use24Hour         bool
	SelectOnFocus     bool
	// BlurDelay is how long after focus leaves the widget it commits.
	BlurDelay time.Duration
	// SuppressWindow is how long a just-inserted value or a button-opened
	// session keeps the widget from reopening on the same match.
	SuppressWindow time.Duration
}

// Defaults returns the settings used when nothing is stored.
func Defaults() Settings {
	return Settings{
		DateLayout:        format.DefaultLayout,
		ShowDateButtons:   true,
		ShowTimeButtons:   true,
		ShowAutomatically: true,
		AutoApply:         true,
		FocusOnArrowDown:  true,
		BlurDelay:         300 * time.Millisecond,
		SuppressWindow:    500 * time.Millisecond,
	}
}

type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

func boolField(p func(*Settings) *bool) field {
	return field{
		get: func(s *Settings) string { return strconv.FormatBool(*p(s)) },
		set: func(s *Settings, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("want true or false, got %q", v)
			}
			*p(s) = b
			return nil
		},
	}
}

func delayField(p func(*Settings) *time.Duration) field {
	return field{
		get: func(s *Settings) string { return timeutil.FormatDelay(*p(s)) },
		set: func(s *Settings, v string) error {
			d, _, err := timeutil.ParseDelay(v)
			if err != nil {
				return err
			}
			*p(s) = d
			return nil
		},
	}
}

var fields = map[string]field{
	KeyDateLayout: {
		get: func(s *Settings) string { return s.DateLayout.String() },
		set: func(s *Settings, v string) error {
			l, err := format.ParseLayout(v)
			if err != nil {
				return err
			}
			s.DateLayout = l
			return nil
		},
	},
	KeyOverrideFormat:    boolField(func(s *Settings) *bool { return &s.OverrideFormat }),
	KeyShowDateButtons:   boolField(func(s *Settings) *bool { return &s.ShowDateButtons }),
	KeyShowTimeButtons:   boolField(func(s *Settings) *bool { return &s.ShowTimeButtons }),
	KeyShowAutomatically: boolField(func(s *Settings) *bool { return &s.ShowAutomatically }),
	KeyAutoApply:         boolField(func(s *Settings) *bool { return &s.AutoApply }),
	KeyShowCalendar:      boolField(func(s *Settings) *bool { return &s.ShowCalendar }),
	KeyAutofocus:         boolField(func(s *Settings) *bool { return &s.Autofocus }),
	KeyFocusOnArrowDown:  boolField(func(s *Settings) *bool { return &s.FocusOnArrowDown }),
	KeyUse24Hour:         boolField(func(s *Settings) *bool { return &s.Use24Hour }),
	KeySelectOnFocus:     boolField(func(s *Settings) *bool { return &s.SelectOnFocus }),
	KeyBlurDelay:         delayField(func(s *Settings) *time.Duration { return &s.BlurDelay }),
	KeySuppressWindow:    delayField(func(s *Settings) *time.Duration { return &s.SuppressWindow }),
}

// Keys returns every setting key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Known reports whether key names a setting.
func Known(key string) bool {
	_, ok := fields[key]
	return ok
}

// Get returns the string form of a setting.
func (s Settings) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("unknown setting %q", key)
	}
	return f.get(&s), nil
}

// Set parses value into the setting named key.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := f.set(s, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Map returns every setting in string form.
func (s Settings) Map() map[string]string {
	out := make(map[string]string, len(fields))
	for k, f := range fields {
		out[k] = f.get(&s)
	}
	return out
}

// Apply sets every known key of values on top of s. Unknown keys are
// reported after the known ones are applied.
func (s *Settings) Apply(values map[string]string) error {
	var unknown []string
	for _, k := range sortedKeys(values) {
		if !Known(k) {
			unknown = append(unknown, k)
			continue
		}
		if err := s.Set(k, values[k]); err != nil {
			return err
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown settings %v", unknown)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
