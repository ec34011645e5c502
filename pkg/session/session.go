// Package session holds the state of one edit of a recognised value and the
// pipeline that writes the edit back to the document.
package session

import (
	"fmt"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/match"
)

// OpenedBy records what opened a session.
type OpenedBy int

const (
	OpenedAutomatic OpenedBy = iota
	OpenedButton
	OpenedCommand
)

func (o OpenedBy) String() string {
	switch o {
	case OpenedAutomatic:
		return "automatic"
	case OpenedButton:
		return "button"
	case OpenedCommand:
		return "command"
	}
	return fmt.Sprintf("OpenedBy(%d)", int(o))
}

// ClosedBy records what closed a session.
type ClosedBy int

const (
	ClosedUnset ClosedBy = iota
	ClosedEscape
	ClosedEnter
	ClosedButton
	ClosedBlur
	ClosedLeafChange
	ClosedCursor
)

func (c ClosedBy) String() string {
	switch c {
	case ClosedUnset:
		return "unset"
	case ClosedEscape:
		return "escape"
	case ClosedEnter:
		return "enter"
	case ClosedButton:
		return "button"
	case ClosedBlur:
		return "blur"
	case ClosedLeafChange:
		return "leaf-change"
	case ClosedCursor:
		return "cursor"
	}
	return fmt.Sprintf("ClosedBy(%d)", int(c))
}

// Session is one edit. Committed and cancelled are terminal.
type Session struct {
	ID    uint64
	Match match.Match
	// Insert sessions write a new value at Match's span instead of editing
	// a recognised one.
	Insert   bool
	Kind     format.Kind
	RawValue string
	OpenedBy OpenedBy
	ClosedBy ClosedBy

	CalendarShown bool
	Focused       bool
	// BlurToken changes whenever focus moves, invalidating queued blur
	// commits.
	BlurToken uint64

	committed bool
	cancelled bool
	closed    bool
}

// New opens a session on a recognised match, seeded with its picker value.
func New(id uint64, m match.Match, by OpenedBy) *Session {
	return &Session{
		ID:       id,
		Match:    m,
		Kind:     m.Kind(),
		RawValue: m.PickerValue(),
		OpenedBy: by,
	}
}

// NewInsert opens a session that will write a new value of kind over
// [start, end), usually a cursor. seed is the initial raw value.
func NewInsert(id uint64, start, end int, text string, kind format.Kind, seed string) *Session {
	return &Session{
		ID:       id,
		Match:    match.Match{Start: start, End: end, Raw: text},
		Insert:   true,
		Kind:     kind,
		RawValue: seed,
		OpenedBy: OpenedCommand,
	}
}

// Committed reports whether the edit was written or found unchanged.
func (s *Session) Committed() bool { return s.committed }

// Cancelled reports whether the edit was abandoned.
func (s *Session) Cancelled() bool { return s.cancelled }

// Active reports whether the session still accepts input.
func (s *Session) Active() bool {
	return !s.committed && !s.cancelled && !s.closed
}

// Cancel abandons the session. It has no effect once committed.
func (s *Session) Cancel(by ClosedBy) {
	if s.committed || s.cancelled {
		return
	}
	s.cancelled = true
	s.Close(by)
}

// Close records why the session ended. The first reason wins.
func (s *Session) Close(by ClosedBy) {
	if s.closed {
		return
	}
	s.closed = true
	s.ClosedBy = by
}

// Rebind points the session at m, the same match recomputed after a document
// change.
func (s *Session) Rebind(m match.Match) {
	if s.Insert {
		return
	}
	s.Match = m
}

// Start is the document offset the session is anchored at.
func (s *Session) Start() int { return s.Match.Start }

func (s *Session) String() string {
	state := "open"
	switch {
	case s.committed:
		state = "committed"
	case s.cancelled:
		state = "cancelled"
	case s.closed:
		state = "closed"
	}
	return fmt.Sprintf("session %d %s %s at %d (%s)", s.ID, s.Kind, state, s.Match.Start, s.OpenedBy)
}
