// Package picker is the inline date and time input drawn under a recognised
// value: a text field holding the picker value and an optional month grid.
package picker

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/tui/components/calendar"
	"tableflip.dev/datepick/pkg/tui/theme"
)

// Model renders the widget. It never talks to the controller itself; the
// host reads Value after Update reports a change.
type Model struct {
	theme    theme.WidgetTheme
	calendar calendar.Options
	today    func() time.Time

	input         textinput.Model
	widget        host.Widget
	visible       bool
	focused       bool
	calendarShown bool
}

// New returns a hidden picker.
func New(t theme.Theme, today func() time.Time) *Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = len(format.PickerDateTime) + 2
	ti.SetWidth(len(format.PickerDateTime))
	if today == nil {
		today = time.Now
	}
	return &Model{
		theme:    t.Widget,
		calendar: calendar.FromTheme(t.Calendar),
		today:    today,
		input:    ti,
	}
}

// Show draws the widget for w, replacing whatever was shown.
func (m *Model) Show(w host.Widget) tea.Cmd {
	m.widget = w
	m.visible = true
	m.calendarShown = false
	m.input.SetValue(w.Value)
	m.input.CursorEnd()
	if w.Focus {
		return m.Focus()
	}
	m.Blur()
	return nil
}

// Hide removes the widget.
func (m *Model) Hide() {
	m.visible = false
	m.calendarShown = false
	m.Blur()
}

// Visible reports whether the widget is drawn.
func (m *Model) Visible() bool { return m.visible }

// Widget returns what the widget was last asked to show.
func (m *Model) Widget() host.Widget { return m.widget }

// Focus moves keyboard focus into the widget.
func (m *Model) Focus() tea.Cmd {
	if !m.visible {
		return nil
	}
	m.focused = true
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

// Blur takes keyboard focus away from the widget.
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Focused reports whether the widget has keyboard focus.
func (m *Model) Focused() bool { return m.focused }

// ShowCalendar opens the month grid for date values.
func (m *Model) ShowCalendar() {
	if m.visible && m.widget.Kind.HasDate() {
		m.calendarShown = true
	}
}

// CalendarShown reports whether the month grid is open.
func (m *Model) CalendarShown() bool { return m.calendarShown }

// Value is the current picker value.
func (m *Model) Value() string { return m.input.Value() }

// Update handles input while the widget is focused and reports whether the
// value changed. Up and down step the value by a day, or a minute for times;
// page up and page down step by a month, or an hour.
func (m *Model) Update(msg tea.Msg) (bool, tea.Cmd) {
	if !m.visible || !m.focused {
		return false, nil
	}
	before := m.input.Value()
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "up":
			m.step(1, false)
			return m.input.Value() != before, nil
		case "down":
			m.step(-1, false)
			return m.input.Value() != before, nil
		case "pgup":
			m.step(1, true)
			return m.input.Value() != before, nil
		case "pgdown":
			m.step(-1, true)
			return m.input.Value() != before, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m.input.Value() != before, cmd
}

func (m *Model) step(n int, large bool) {
	kind := m.widget.Kind
	v, err := format.ParsePicker(strings.TrimSpace(m.input.Value()), kind)
	if err != nil {
		return
	}
	switch {
	case kind == format.Time && large:
		v = v.Add(time.Duration(n) * time.Hour)
	case kind == format.Time:
		v = v.Add(time.Duration(n) * time.Minute)
	case large:
		v = v.AddDate(0, n, 0)
	default:
		v = v.AddDate(0, 0, n)
	}
	m.input.SetValue(format.PickerValue(v, kind))
	m.input.CursorEnd()
}

// View renders the widget box, with the month grid under it when open.
func (m *Model) View() string {
	if !m.visible {
		return ""
	}
	frame := m.theme.Frame
	if m.focused {
		frame = m.theme.Focused
	}
	label := m.theme.Label.Render(m.widget.Kind.String())
	body := label + " " + m.input.View()
	if m.focused {
		body += "\n" + m.theme.Hint.Render("enter apply · esc cancel · ↑↓ step")
	}
	box := frame.Render(body)
	if !m.calendarShown {
		return box
	}
	v, err := format.ParsePicker(strings.TrimSpace(m.input.Value()), m.widget.Kind)
	if err != nil {
		return box
	}
	grid := frame.Render(calendar.Render(v, m.today(), m.calendar))
	return lipgloss.JoinVertical(lipgloss.Left, box, grid)
}
