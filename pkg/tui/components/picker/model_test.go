package picker

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/tui/theme"
)

func stripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func today() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }

func TestStepDate(t *testing.T) {
	m := New(theme.Default(), today)
	m.Show(host.Widget{Kind: format.Date, Value: "2024-01-31", Focus: true})
	changed, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if !changed || m.Value() != "2024-02-01" {
		t.Fatalf("up = %v %q", changed, m.Value())
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if m.Value() != "2024-03-01" {
		t.Fatalf("pgup = %q", m.Value())
	}
}

func TestStepTime(t *testing.T) {
	m := New(theme.Default(), today)
	m.Show(host.Widget{Kind: format.Time, Value: "23:59", Focus: true})
	m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Value() != "00:00" {
		t.Fatalf("up = %q", m.Value())
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
	if m.Value() != "23:00" {
		t.Fatalf("pgdown = %q", m.Value())
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m := New(theme.Default(), today)
	m.Show(host.Widget{Kind: format.Date, Value: "2024-01-31"})
	if changed, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyUp}); changed || m.Value() != "2024-01-31" {
		t.Fatalf("unfocused widget changed: %q", m.Value())
	}
}

func TestCalendarOnlyForDates(t *testing.T) {
	m := New(theme.Default(), today)
	m.Show(host.Widget{Kind: format.Time, Value: "10:30"})
	m.ShowCalendar()
	if m.CalendarShown() {
		t.Fatalf("calendar shown for a time")
	}

	m.Show(host.Widget{Kind: format.DateTime, Value: "2024-02-29T10:30"})
	m.ShowCalendar()
	view := stripANSI(m.View())
	if !strings.Contains(view, "February 2024") || !strings.Contains(view, "datetime") {
		t.Fatalf("view = %s", view)
	}

	m.Hide()
	if m.View() != "" || m.CalendarShown() {
		t.Fatalf("hidden widget still renders")
	}
}
