// Package match finds date and time values in document text and keeps the
// per-view index of what was found.
package match

import (
	"fmt"
	"time"

	"tableflip.dev/datepick/pkg/format"
)

// Match is a recognised value. Start and End are absolute rune offsets,
// half-open.
type Match struct {
	Start int
	End   int
	Raw   string
	Spec  *format.Spec
	// UserFormat is the spec's format adjusted to how Raw is spelled.
	UserFormat string
	Value      time.Time
}

// Kind is the kind of the spec that recognised the match.
func (m Match) Kind() format.Kind {
	if m.Spec == nil {
		return format.Date
	}
	return m.Spec.Kind
}

// Len is the length of the match in runes.
func (m Match) Len() int { return m.End - m.Start }

// Contains reports whether a cursor at offset is on the match. A cursor
// right after the last character still counts.
func (m Match) Contains(offset int) bool {
	return m.Start <= offset && offset <= m.End
}

// Covers reports whether offset is on a character of the match.
func (m Match) Covers(offset int) bool {
	return m.Start <= offset && offset < m.End
}

// Overlaps reports whether [start, end) shares any character with the match.
func (m Match) Overlaps(start, end int) bool {
	return start < m.End && m.Start < end
}

// Same reports whether o is the same match after a recomputation.
func (m Match) Same(o Match) bool { return m.Start == o.Start }

// PickerValue is the match value in the editing control's format.
func (m Match) PickerValue() string {
	return format.PickerValue(m.Value, m.Kind())
}

func (m Match) String() string {
	return fmt.Sprintf("[%d,%d) %q %s", m.Start, m.End, m.Raw, m.Kind())
}
