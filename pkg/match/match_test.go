package match

import (
	"strings"
	"testing"

	"tableflip.dev/datepick/pkg/buffer"
	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
)

var ymd = format.Build(format.LayoutYMDDash)

func spans(ms []Match) [][2]int {
	out := make([][2]int, len(ms))
	for i, m := range ms {
		out[i] = [2]int{m.Start, m.End}
	}
	return out
}

func TestRecognizeKinds(t *testing.T) {
	text := "Meet 2024-03-05 10:30 PM, then 11:15 on 5/3/2024 and 2024-04-01T09:00."
	ms := Recognize(text, 0, ymd)
	want := []struct {
		raw  string
		kind format.Kind
	}{
		{"2024-03-05 10:30 PM", format.DateTime},
		{"11:15", format.Time},
		{"5/3/2024", format.Date},
		{"2024-04-01T09:00", format.DateTime},
	}
	if len(ms) != len(want) {
		t.Fatalf("got %v, want %d matches", ms, len(want))
	}
	for i, w := range want {
		if ms[i].Raw != w.raw || ms[i].Kind() != w.kind {
			t.Fatalf("match %d = %v, want %q %s", i, ms[i], w.raw, w.kind)
		}
		if got := string([]rune(text)[ms[i].Start:ms[i].End]); got != ms[i].Raw {
			t.Fatalf("match %d span text %q != raw %q", i, got, ms[i].Raw)
		}
	}
	if ms[3].UserFormat != "YYYY-MM-DDTHH:mm" {
		t.Fatalf("T spelling format = %q", ms[3].UserFormat)
	}
}

func TestRecognizeTieBreakPrefersDateTime(t *testing.T) {
	ms := Recognize("2024-03-05 10:30 PM", 0, ymd)
	if len(ms) != 1 {
		t.Fatalf("got %v, want one match", ms)
	}
	if ms[0].Kind() != format.DateTime || ms[0].Start != 0 || ms[0].End != 19 {
		t.Fatalf("got %v", ms[0])
	}
}

func TestRecognizeNoOverlap(t *testing.T) {
	tests := []string{
		"2024-01-012024-02-02",
		"2024-01-01 10:30 10:30 PM 2024-01-01T10:30pm",
		"01/02/2024/03/04/2025",
		"12:30:45 2024.1.2.3",
		strings.Repeat("2024-01-01 ", 20),
	}
	for _, text := range tests {
		ms := Recognize(text, 0, ymd)
		for i := 1; i < len(ms); i++ {
			if ms[i].Start < ms[i-1].End {
				t.Fatalf("%q: %v overlaps %v", text, ms[i-1], ms[i])
			}
		}
	}

	ms := Recognize("2024-01-012024-02-02", 0, ymd)
	if got := spans(ms); len(got) != 2 || got[0] != [2]int{0, 10} || got[1] != [2]int{10, 20} {
		t.Fatalf("spans = %v", got)
	}
}

func TestRecognizeDropsImpossibleValues(t *testing.T) {
	ms := Recognize("2024-13-01 and 2023-02-29 and 25:00", 0, ymd)
	if len(ms) != 0 {
		t.Fatalf("got %v", ms)
	}
}

func TestRecognizeAmbiguousOrder(t *testing.T) {
	text := "03/04/2024 and 25/04/2024"

	dmy := Recognize(text, 0, format.Build(format.LayoutDMYSlash))
	if len(dmy) != 2 || dmy[0].Value.Month() != 4 || dmy[0].Value.Day() != 3 {
		t.Fatalf("dmy = %v", dmy)
	}

	mdy := Recognize(text, 0, format.Build(format.LayoutMDYSlash))
	if len(mdy) != 2 || mdy[0].Value.Month() != 3 || mdy[0].Value.Day() != 4 {
		t.Fatalf("mdy = %v", mdy)
	}
	if mdy[1].Spec.Layout != format.LayoutDMYSlash {
		t.Fatalf("25/04/2024 should fall through to day-first, got %v", mdy[1].Spec)
	}
}

func TestRecognizeRuneOffsets(t *testing.T) {
	text := "Café ☕ 2024-01-02"
	ms := Recognize(text, 100, ymd)
	if len(ms) != 1 || ms[0].Start != 107 || ms[0].End != 117 {
		t.Fatalf("got %v", ms)
	}
}

func TestRoundTripIsUnchanged(t *testing.T) {
	text := "2024-03-05 10:30 PM, 2024-03-05T22:30, 05.03.2024, 09:05 am, 23:59, 03/05/2024 07:00pm"
	for _, m := range Recognize(text, 0, ymd) {
		v, err := format.ParsePicker(m.PickerValue(), m.Kind())
		if err != nil {
			t.Fatalf("%v: %v", m, err)
		}
		if got := format.Render(v, m.UserFormat); got != m.Raw {
			t.Fatalf("%v rendered back as %q", m, got)
		}
	}
}

func TestIndexNavigation(t *testing.T) {
	text := "aaaaa2024-01-01" + strings.Repeat("x", 25) + "2024-02-02 tail"
	x := NewIndex(ymd)
	x.Refresh(buffer.New(text))

	if got := spans(x.All()); len(got) != 2 || got[0] != [2]int{5, 15} || got[1] != [2]int{40, 50} {
		t.Fatalf("all = %v", got)
	}
	if m, ok := x.After(20); !ok || m.Start != 40 {
		t.Fatalf("After(20) = %v %v", m, ok)
	}
	if m, ok := x.Before(20); !ok || m.Start != 5 {
		t.Fatalf("Before(20) = %v %v", m, ok)
	}
	if _, ok := x.After(45); ok {
		t.Fatalf("After(45) found a match")
	}
	if m, ok := x.Before(45); !ok || m.Start != 5 {
		t.Fatalf("Before(45) = %v %v", m, ok)
	}
	if m, ok := x.At(15); !ok || m.Start != 5 {
		t.Fatalf("At(15) = %v %v", m, ok)
	}
	if _, ok := x.At(16); ok {
		t.Fatalf("At(16) found a match")
	}
}

func TestIndexVisibleAndFull(t *testing.T) {
	b := buffer.New("2024-01-01\nnothing\n2024-02-02")
	b.SetViewport(0, 2)
	x := NewIndex(ymd)
	x.Refresh(b)
	if len(x.Visible()) != 1 {
		t.Fatalf("visible = %v", x.Visible())
	}
	if m, ok := x.At(20); !ok || m.Raw != "2024-02-02" {
		t.Fatalf("At outside viewport = %v %v", m, ok)
	}
	if x.Stale(b) {
		t.Fatalf("fresh index reported stale")
	}
	b.Insert("x")
	if !x.Stale(b) {
		t.Fatalf("index not stale after edit")
	}
}

func TestIndexAtAdjacentMatches(t *testing.T) {
	x := NewIndex(ymd)
	x.Refresh(buffer.New("2024-01-012024-02-02"))

	tests := []struct {
		offset int
		start  int
	}{
		{0, 0},
		{9, 0},
		{10, 10},
		{19, 10},
		{20, 10},
	}
	for _, tt := range tests {
		m, ok := x.At(tt.offset)
		if !ok || m.Start != tt.start {
			t.Fatalf("At(%d) = %v, %v, want start %d", tt.offset, m, ok, tt.start)
		}
	}
}

func TestIndexSpan(t *testing.T) {
	x := NewIndex(ymd)
	x.Refresh(buffer.New("on 10:30"))
	if _, ok := x.Span(3, 8); !ok {
		t.Fatalf("exact span not found")
	}
	if _, ok := x.Span(3, 7); ok {
		t.Fatalf("partial span matched")
	}
}

func TestRecognizeRangesMergesRanges(t *testing.T) {
	ranges := []host.Range{
		{Start: 50, End: 60, Text: "2024-09-09"},
		{Start: 0, End: 5, Text: "10:30"},
	}
	got := spans(RecognizeRanges(ranges, ymd))
	if len(got) != 2 || got[0] != [2]int{0, 5} || got[1] != [2]int{50, 60} {
		t.Fatalf("spans = %v", got)
	}
}
