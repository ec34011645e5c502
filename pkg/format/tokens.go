package format

import (
	"fmt"
	"strings"
	"time"
)

// Canonical values exchanged with the editing control.
const (
	PickerDate     = "YYYY-MM-DD"
	PickerDateTime = "YYYY-MM-DDTHH:mm"
	PickerTime     = "HH:mm"
)

// Order matters: longer tokens are listed before the tokens they contain.
var tokenReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"hh", "03",
	"mm", "04",
	"A", "PM",
	"a", "pm",
)

// GoLayout converts a user format such as "DD.MM.YYYY hh:mm A" into the Go
// reference layout "02.01.2006 03:04 PM".
func GoLayout(userFormat string) string {
	return tokenReplacer.Replace(userFormat)
}

// Render formats t with a user format.
func Render(t time.Time, userFormat string) string {
	return t.Format(GoLayout(userFormat))
}

// PickerFormat is the canonical format the editing control works in.
func PickerFormat(k Kind) string {
	switch k {
	case DateTime:
		return PickerDateTime
	case Time:
		return PickerTime
	default:
		return PickerDate
	}
}

// PickerValue renders t as the editing control expects it for kind k.
func PickerValue(t time.Time, k Kind) string {
	return Render(t, PickerFormat(k))
}

// ParsePicker parses a raw value from the editing control. A space is
// accepted in place of the T between date and time.
func ParsePicker(raw string, k Kind) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if k == DateTime {
		raw = strings.Replace(raw, " ", "T", 1)
	}
	t, err := time.Parse(GoLayout(PickerFormat(k)), raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s %q: %w", k, raw, err)
	}
	return t, nil
}

// Clock returns the user format for a time of day.
func Clock(use24h bool) string {
	if use24h {
		return "HH:mm"
	}
	return "hh:mm A"
}

// Preferred is the user format used when the user's own settings decide the
// spelling: inserted values, and edits when overriding existing formats.
func Preferred(l Layout, k Kind, use24h bool) string {
	switch k {
	case Time:
		return Clock(use24h)
	case DateTime:
		return l.DateFormat() + " " + Clock(use24h)
	default:
		return l.DateFormat()
	}
}
