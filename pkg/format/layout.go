// Package format holds the catalog of date and time shapes the widget
// recognises, and the conversions between user-facing format strings and Go
// time layouts.
package format

import (
	"fmt"
	"strings"
)

// Order is the position of year, month and day in a date layout.
type Order int

const (
	YearMonthDay Order = iota
	DayMonthYear
	MonthDayYear
)

// Layout is one of the supported date spellings, e.g. "DD.MM.YYYY".
type Layout int

const (
	LayoutYMDDash Layout = iota
	LayoutYMDDot
	LayoutYMDSlash
	LayoutDMYDash
	LayoutDMYDot
	LayoutDMYSlash
	LayoutMDYDash
	LayoutMDYDot
	LayoutMDYSlash
)

// DefaultLayout is used when no preference is configured.
const DefaultLayout = LayoutYMDDash

var layoutInfo = []struct {
	name  string
	order Order
	sep   string
}{
	LayoutYMDDash:  {"YYYY-MM-DD", YearMonthDay, "-"},
	LayoutYMDDot:   {"YYYY.MM.DD", YearMonthDay, "."},
	LayoutYMDSlash: {"YYYY/MM/DD", YearMonthDay, "/"},
	LayoutDMYDash:  {"DD-MM-YYYY", DayMonthYear, "-"},
	LayoutDMYDot:   {"DD.MM.YYYY", DayMonthYear, "."},
	LayoutDMYSlash: {"DD/MM/YYYY", DayMonthYear, "/"},
	LayoutMDYDash:  {"MM-DD-YYYY", MonthDayYear, "-"},
	LayoutMDYDot:   {"MM.DD.YYYY", MonthDayYear, "."},
	LayoutMDYSlash: {"MM/DD/YYYY", MonthDayYear, "/"},
}

// Layouts returns every supported layout in catalog order.
func Layouts() []Layout {
	out := make([]Layout, len(layoutInfo))
	for i := range layoutInfo {
		out[i] = Layout(i)
	}
	return out
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l >= 0 && int(l) < len(layoutInfo)
}

func (l Layout) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return layoutInfo[l].name
}

// Order reports the field order of the layout.
func (l Layout) Order() Order {
	if !l.Valid() {
		return YearMonthDay
	}
	return layoutInfo[l].order
}

// Separator is the character placed between the date fields.
func (l Layout) Separator() string {
	if !l.Valid() {
		return "-"
	}
	return layoutInfo[l].sep
}

// DateFormat is the user format for the date part, which is the layout name.
func (l Layout) DateFormat() string {
	return l.String()
}

// ParseLayout accepts a layout name such as "DD/MM/YYYY" (case-insensitive).
func ParseLayout(s string) (Layout, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for i, info := range layoutInfo {
		if info.name == want {
			return Layout(i), nil
		}
	}
	return DefaultLayout, fmt.Errorf("unknown date layout %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Layout) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("unknown date layout %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(b []byte) error {
	parsed, err := ParseLayout(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Kind says which parts of a value a format carries.
type Kind int

const (
	Date Kind = iota
	DateTime
	Time
)

func (k Kind) String() string {
	switch k {
	case Date:
		return "date"
	case DateTime:
		return "datetime"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HasDate reports whether values of this kind carry a calendar date.
func (k Kind) HasDate() bool { return k == Date || k == DateTime }

// HasClock reports whether values of this kind carry a time of day.
func (k Kind) HasClock() bool { return k == DateTime || k == Time }

// ParseKind accepts "date", "time" or "datetime".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date", "d":
		return Date, nil
	case "datetime", "date-time", "dt":
		return DateTime, nil
	case "time", "t":
		return Time, nil
	}
	return Date, fmt.Errorf("unknown kind %q, want date, time or datetime", s)
}
