package session

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/datepick/pkg/format"
)

var (
	// ErrEmpty is returned when the user commits an empty value.
	ErrEmpty = errors.New("enter a value")
	// ErrInvalid is returned when the value cannot be parsed.
	ErrInvalid = errors.New("not a valid value")
)

// Result is the outcome of a commit.
type Result int

const (
	// Skipped means the session was already committed or cancelled.
	Skipped Result = iota
	// Rejected means the value failed validation or could not be written.
	Rejected
	// Unchanged means the formatted value equals the text already there.
	Unchanged
	// Written means the document was changed.
	Written
)

func (r Result) String() string {
	switch r {
	case Skipped:
		return "skipped"
	case Rejected:
		return "rejected"
	case Unchanged:
		return "unchanged"
	case Written:
		return "written"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Replacer is the part of the editor a commit writes through.
type Replacer interface {
	ReplaceRange(start, end int, text string) error
}

// Options decide how committed values are spelled.
type Options struct {
	// Override formats edits with the preferred format instead of the
	// format they were written in.
	Override  bool
	Layout    format.Layout
	Use24Hour bool
}

// Committer writes sessions back to the document.
type Committer struct {
	Editor  Replacer
	Options Options
}

// Format returns the user format a commit of s is spelled with.
func (c *Committer) Format(s *Session) string {
	if !c.keepsFormat(s) {
		return format.Preferred(c.Options.Layout, s.Kind, c.Options.Use24Hour)
	}
	return s.Match.UserFormat
}

// keepsFormat reports whether s is written back in the format it was found in.
func (c *Committer) keepsFormat(s *Session) bool {
	return !s.Insert && !c.Options.Override && s.Match.UserFormat != ""
}

// Commit validates raw and writes it over the session's match. Validation
// failures leave the session open and the document untouched.
func (c *Committer) Commit(s *Session, raw string) (Result, error) {
	if s.committed || s.cancelled {
		return Skipped, nil
	}
	if strings.TrimSpace(raw) == "" {
		return Rejected, fmt.Errorf("%w: %s", ErrEmpty, kindNoun(s.Kind))
	}
	value, err := format.ParsePicker(raw, s.Kind)
	if err != nil {
		return Rejected, fmt.Errorf("%w: %s %q", ErrInvalid, kindNoun(s.Kind), raw)
	}

	text := format.Render(value, c.Format(s))
	if !s.Insert && sameSpelling(text, s.Match.Raw, c.keepsFormat(s)) {
		s.committed = true
		return Unchanged, nil
	}
	if err := c.Editor.ReplaceRange(s.Match.Start, s.Match.End, text); err != nil {
		return Rejected, fmt.Errorf("write %s at %d: %w", kindNoun(s.Kind), s.Match.Start, err)
	}
	s.committed = true
	return Written, nil
}

// sameSpelling reports whether writing text over raw would change nothing the
// user cares about. In the match's own format only letter case can differ,
// from a meridiem such as "pM" that no format token renders.
func sameSpelling(text, raw string, ownFormat bool) bool {
	if text == raw {
		return true
	}
	return ownFormat && strings.EqualFold(text, raw)
}

func kindNoun(k format.Kind) string {
	switch k {
	case format.DateTime:
		return "date and time"
	default:
		return k.String()
	}
}
