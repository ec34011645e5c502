package session

import (
	"errors"
	"testing"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/match"
)

type replacement struct {
	start, end int
	text       string
}

type fakeEditor struct {
	writes []replacement
	err    error
}

func (f *fakeEditor) ReplaceRange(start, end int, text string) error {
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, replacement{start, end, text})
	return nil
}

func recognizeOne(t *testing.T, text string) match.Match {
	t.Helper()
	ms := match.Recognize(text, 0, format.Build(format.LayoutYMDDash))
	if len(ms) != 1 {
		t.Fatalf("Recognize(%q) = %v, want one match", text, ms)
	}
	return ms[0]
}

func TestCommitSeedIsUnchanged(t *testing.T) {
	for _, text := range []string{"2024-03-05", "2024-03-05 10:30 PM", "2024-03-05T10:30", "10:30 pm", "31.12.2024"} {
		ed := &fakeEditor{}
		c := Committer{Editor: ed}
		s := New(1, recognizeOne(t, text), OpenedAutomatic)
		res, err := c.Commit(s, s.RawValue)
		if err != nil || res != Unchanged {
			t.Fatalf("%q: Commit = %v, %v, want unchanged", text, res, err)
		}
		if len(ed.writes) != 0 || !s.Committed() {
			t.Fatalf("%q: writes = %v committed = %v", text, ed.writes, s.Committed())
		}
	}
}

func TestCommitMixedCaseMeridiemIsUnchanged(t *testing.T) {
	ed := &fakeEditor{}
	c := Committer{Editor: ed}
	s := New(1, recognizeOne(t, "2024-03-05 10:30 pM"), OpenedAutomatic)
	if res, err := c.Commit(s, s.RawValue); err != nil || res != Unchanged {
		t.Fatalf("Commit = %v, %v, want unchanged", res, err)
	}
	if len(ed.writes) != 0 {
		t.Fatalf("writes = %v", ed.writes)
	}

	// Overriding still spells the meridiem the preferred way.
	ed = &fakeEditor{}
	c = Committer{Editor: ed, Options: Options{Override: true}}
	s = New(2, recognizeOne(t, "2024-03-05 10:30 pM"), OpenedAutomatic)
	if res, err := c.Commit(s, s.RawValue); err != nil || res != Written {
		t.Fatalf("override Commit = %v, %v", res, err)
	}
	if len(ed.writes) != 1 || ed.writes[0].text != "2024-03-05 10:30 PM" {
		t.Fatalf("writes = %v", ed.writes)
	}
}

func TestCommitWritesOnce(t *testing.T) {
	ed := &fakeEditor{}
	c := Committer{Editor: ed}
	s := New(1, recognizeOne(t, "2024-03-05 10:30 PM"), OpenedAutomatic)

	res, err := c.Commit(s, "2024-03-06T09:15")
	if err != nil || res != Written {
		t.Fatalf("Commit = %v, %v", res, err)
	}
	if len(ed.writes) != 1 || ed.writes[0] != (replacement{0, 19, "2024-03-06 09:15 AM"}) {
		t.Fatalf("writes = %v", ed.writes)
	}

	res, err = c.Commit(s, "2024-03-07T09:15")
	if err != nil || res != Skipped || len(ed.writes) != 1 {
		t.Fatalf("second Commit = %v, %v, writes %d", res, err, len(ed.writes))
	}
}

func TestCommitValidation(t *testing.T) {
	ed := &fakeEditor{}
	c := Committer{Editor: ed}
	s := New(1, recognizeOne(t, "2024-03-05"), OpenedAutomatic)

	if res, err := c.Commit(s, "  "); res != Rejected || !errors.Is(err, ErrEmpty) {
		t.Fatalf("empty = %v, %v", res, err)
	}
	if res, err := c.Commit(s, "2024-02-30"); res != Rejected || !errors.Is(err, ErrInvalid) {
		t.Fatalf("invalid = %v, %v", res, err)
	}
	if s.Committed() || s.Cancelled() || !s.Active() {
		t.Fatalf("validation changed session state: %v", s)
	}
	if len(ed.writes) != 0 {
		t.Fatalf("writes = %v", ed.writes)
	}
}

func TestCommitCancelledIsSkipped(t *testing.T) {
	ed := &fakeEditor{}
	c := Committer{Editor: ed}
	s := New(1, recognizeOne(t, "2024-03-05"), OpenedAutomatic)
	s.Cancel(ClosedEscape)
	if res, err := c.Commit(s, "2024-03-09"); res != Skipped || err != nil {
		t.Fatalf("Commit = %v, %v", res, err)
	}
	if s.ClosedBy != ClosedEscape {
		t.Fatalf("closed by %v", s.ClosedBy)
	}
}

func TestCommitOverrideUsesPreferredFormat(t *testing.T) {
	ed := &fakeEditor{}
	c := Committer{Editor: ed, Options: Options{Override: true, Layout: format.LayoutDMYDot, Use24Hour: true}}
	s := New(1, recognizeOne(t, "2024-03-05 10:30 PM"), OpenedAutomatic)
	if res, err := c.Commit(s, s.RawValue); res != Written || err != nil {
		t.Fatalf("Commit = %v, %v", res, err)
	}
	if ed.writes[0].text != "05.03.2024 22:30" {
		t.Fatalf("text = %q", ed.writes[0].text)
	}
}

func TestCommitInsert(t *testing.T) {
	ed := &fakeEditor{}
	c := Committer{Editor: ed, Options: Options{Layout: format.LayoutMDYSlash}}
	s := NewInsert(3, 4, 4, "", format.Time, "")
	if res, err := c.Commit(s, "18:05"); res != Written || err != nil {
		t.Fatalf("Commit = %v, %v", res, err)
	}
	if ed.writes[0] != (replacement{4, 4, "06:05 PM"}) {
		t.Fatalf("writes = %v", ed.writes)
	}
}

func TestCommitEditorError(t *testing.T) {
	ed := &fakeEditor{err: errors.New("read only")}
	c := Committer{Editor: ed}
	s := New(1, recognizeOne(t, "2024-03-05"), OpenedAutomatic)
	res, err := c.Commit(s, "2024-03-06")
	if res != Rejected || err == nil {
		t.Fatalf("Commit = %v, %v", res, err)
	}
	if s.Committed() {
		t.Fatalf("failed write marked the session committed")
	}
}
