package app

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/settings"
	"tableflip.dev/datepick/pkg/tui/events"
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

func fixedNow() time.Time { return time.Date(2024, time.June, 1, 18, 45, 0, 0, time.UTC) }

func newModel(t *testing.T, text string, mutate func(*settings.Settings)) *Model {
	t.Helper()
	s := settings.Defaults()
	if mutate != nil {
		mutate(&s)
	}
	m := New(Options{Text: text, Settings: s, Now: fixedNow})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
	settle(m)
	return m
}

// settle delivers every immediate task, as the event loop would.
func settle(m *Model) {
	for {
		var due []schedule.Task
		for _, task := range m.tasks {
			if task.Delay == 0 {
				due = append(due, task)
			}
		}
		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
		for _, task := range due {
			m.Update(events.TaskMsg{Task: task})
		}
	}
}

// fire delivers the pending tasks of kind as if their delay elapsed.
func fire(m *Model, kind schedule.Kind) {
	var due []schedule.Task
	for _, task := range m.tasks {
		if task.Kind == kind {
			due = append(due, task)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ID < due[j].ID })
	for _, task := range due {
		m.Update(events.TaskMsg{Task: task})
	}
	settle(m)
}

func press(m *Model, code rune) {
	m.Update(tea.KeyPressMsg{Code: code})
	settle(m)
}

func ctrl(m *Model, code rune) {
	m.Update(tea.KeyPressMsg{Code: code, Mod: tea.ModCtrl})
	settle(m)
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	settle(m)
}

func right(m *Model, n int) {
	for i := 0; i < n; i++ {
		press(m, tea.KeyRight)
	}
}

func TestCursorOnDateOpensWidget(t *testing.T) {
	m := newModel(t, "Due 2024-03-05 today", nil)
	if m.picker.Visible() {
		t.Fatalf("widget open before the cursor reached a date")
	}
	right(m, 5)
	if !m.picker.Visible() || m.picker.Value() != "2024-03-05" {
		t.Fatalf("visible %v value %q", m.picker.Visible(), m.picker.Value())
	}
	view := stripANSI(m.View())
	if strings.Count(view, "2024-03-05") < 2 {
		t.Fatalf("widget not drawn:\n%s", view)
	}
	right(m, 12)
	if m.picker.Visible() {
		t.Fatalf("widget still open after leaving the date")
	}
}

func TestWidgetEnterCommits(t *testing.T) {
	m := newModel(t, "Due 2024-03-05 today", nil)
	right(m, 5)
	press(m, tea.KeyDown)
	if !m.picker.Focused() {
		t.Fatalf("arrow down did not focus the widget")
	}
	press(m, tea.KeyUp)
	press(m, tea.KeyEnter)
	if got := m.buf.Text(); got != "Due 2024-03-06 today" {
		t.Fatalf("text = %q", got)
	}
	if m.picker.Visible() || !m.buf.Dirty() {
		t.Fatalf("visible %v dirty %v", m.picker.Visible(), m.buf.Dirty())
	}
}

func TestWidgetEscapeDiscards(t *testing.T) {
	m := newModel(t, "Due 2024-03-05 today", nil)
	right(m, 5)
	press(m, tea.KeyDown)
	press(m, tea.KeyUp)
	press(m, tea.KeyEscape)
	if got := m.buf.Text(); got != "Due 2024-03-05 today" {
		t.Fatalf("text = %q", got)
	}
	if m.picker.Visible() {
		t.Fatalf("widget still open")
	}
	right(m, 1)
	if m.picker.Visible() {
		t.Fatalf("widget reopened on the cancelled value")
	}
}

func TestTabOutCommitsAfterBlurDelay(t *testing.T) {
	m := newModel(t, "Due 2024-03-05 today", nil)
	right(m, 5)
	press(m, tea.KeyDown)
	press(m, tea.KeyUp)
	press(m, tea.KeyTab)
	if m.picker.Focused() || m.buf.Text() != "Due 2024-03-05 today" {
		t.Fatalf("focused %v text %q", m.picker.Focused(), m.buf.Text())
	}
	fire(m, schedule.BlurCommit)
	if got := m.buf.Text(); got != "Due 2024-03-06 today" {
		t.Fatalf("text = %q", got)
	}
}

func TestInsertNowDoesNotOpenWidget(t *testing.T) {
	m := newModel(t, "Today: ", nil)
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	ctrl(m, 'd')
	if got := m.buf.Text(); got != "Today: 2024-06-01" {
		t.Fatalf("text = %q", got)
	}
	if m.picker.Visible() {
		t.Fatalf("widget opened on the inserted date")
	}
}

func TestPaletteRunsCommand(t *testing.T) {
	m := newModel(t, "a 10:30 b 2024-01-01", nil)
	ctrl(m, 'k')
	typeText(m, "next")
	press(m, tea.KeyEnter)
	if sel := m.buf.Selection(); sel.From() != 2 || sel.To() != 7 {
		t.Fatalf("selection = %+v", sel)
	}
	if !m.picker.Visible() {
		t.Fatalf("selecting a value did not open the widget")
	}
}

func TestButtonToggle(t *testing.T) {
	m := newModel(t, "x 2024-01-01", func(s *settings.Settings) { s.ShowAutomatically = false })
	right(m, 3)
	if m.picker.Visible() {
		t.Fatalf("widget opened automatically")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, buttonGlyph+"2024-01-01") {
		t.Fatalf("button not drawn:\n%s", view)
	}
	ctrl(m, 'b')
	if !m.picker.Visible() {
		t.Fatalf("button did not open the widget")
	}
	ctrl(m, 'b')
	if m.picker.Visible() {
		t.Fatalf("button did not close the widget")
	}
}

func TestHiddenTimeButtons(t *testing.T) {
	m := newModel(t, "10:30 2024-01-01", func(s *settings.Settings) { s.ShowTimeButtons = false })
	view := stripANSI(m.View())
	if strings.Contains(view, buttonGlyph+"10:30") || !strings.Contains(view, buttonGlyph+"2024-01-01") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestReload(t *testing.T) {
	m := newModel(t, "old", nil)
	m.Update(reloadedMsg{text: "new 2024-01-01"})
	if m.buf.Text() != "new 2024-01-01" || m.buf.Dirty() {
		t.Fatalf("text %q dirty %v", m.buf.Text(), m.buf.Dirty())
	}

	typeText(m, "!")
	m.Update(reloadedMsg{text: "other"})
	if m.buf.Text() == "other" {
		t.Fatalf("reload dropped unsaved edits")
	}
	if !strings.Contains(m.footer.Notice(), "changed on disk") {
		t.Fatalf("notice = %q", m.footer.Notice())
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	s := settings.Defaults()
	m := New(Options{Path: path, Text: "x", Settings: s, Now: fixedNow})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	typeText(m, "y")

	m.save()
	cmds := m.drain()
	if len(cmds) != 1 {
		t.Fatalf("save queued %d commands", len(cmds))
	}
	m.Update(cmds[0]())
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "yx" {
		t.Fatalf("file = %q, %v", data, err)
	}
	if m.buf.Dirty() {
		t.Fatalf("buffer still dirty after save")
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, "x", nil)
	m.Update(tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	if m.ctx.Err() == nil {
		t.Fatalf("context not cancelled on quit")
	}
}
