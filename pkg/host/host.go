// Package host declares what the date widget needs from the editor that
// embeds it: a document, a selection, positioning, and somewhere to draw.
package host

import "tableflip.dev/datepick/pkg/format"

// Range is a span of document text in rune offsets.
type Range struct {
	Start int
	End   int
	Text  string
}

// Line is one line of the document. To excludes the line break.
type Line struct {
	Number int
	From   int
	To     int
	Text   string
}

// Selection is a single selection range. Anchor and Head are equal when the
// selection is a cursor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns a collapsed selection at offset.
func Cursor(offset int) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// Empty reports whether the selection is a cursor.
func (s Selection) Empty() bool { return s.Anchor == s.Head }

// From is the lower bound of the selection.
func (s Selection) From() int {
	if s.Anchor < s.Head {
		return s.Anchor
	}
	return s.Head
}

// To is the upper bound of the selection.
func (s Selection) To() int {
	if s.Anchor > s.Head {
		return s.Anchor
	}
	return s.Head
}

// Coords locate a document offset on screen. Top and Bottom are rows, Left is
// a column, all relative to the viewport.
type Coords struct {
	Top    int
	Left   int
	Bottom int
}

// Change describes one update notification from the host. Hosts may deliver
// a document change and the resulting selection move as separate changes.
type Change struct {
	DocChanged      bool
	SelectionSet    bool
	ViewportChanged bool
	GeometryChanged bool
}

// Document is read access to the edited text.
type Document interface {
	Text() string
	// Version increases on every document change.
	Version() uint64
	VisibleRanges() []Range
	LineAt(offset int) Line
}

// Editor is a document with a selection that can be edited.
type Editor interface {
	Document
	Selection() Selection
	SetSelection(Selection)
	ReplaceRange(start, end int, text string) error
	// CoordsAt reports where offset is drawn, or false when it is not on
	// screen.
	CoordsAt(offset int) (Coords, bool)
}

// Widget is the inline editing control the host should draw.
type Widget struct {
	Anchor int
	Coords Coords
	Kind   format.Kind
	Value  string
	Focus  bool
}

// Button is an inline affordance placed before a recognised value.
type Button struct {
	Start int
	Kind  format.Kind
}

// Widgets draws the editing control and the inline buttons.
type Widgets interface {
	ShowWidget(Widget)
	HideWidget()
	FocusWidget()
	ShowCalendar()
	SetButtons([]Button)
}

// Notifier surfaces short user-visible messages.
type Notifier interface {
	Notice(msg string)
}
