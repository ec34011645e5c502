package app

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/tui/events"
)

// ShowWidget implements host.Widgets.
func (m *Model) ShowWidget(w host.Widget) {
	m.queue(m.picker.Show(w))
	// The grid stays open when the widget is only being moved.
	if s := m.ctrl.Session(); s != nil && s.CalendarShown {
		m.picker.ShowCalendar()
	}
}

// HideWidget implements host.Widgets.
func (m *Model) HideWidget() { m.picker.Hide() }

// FocusWidget implements host.Widgets.
func (m *Model) FocusWidget() { m.queue(m.picker.Focus()) }

// ShowCalendar implements host.Widgets.
func (m *Model) ShowCalendar() { m.picker.ShowCalendar() }

// SetButtons implements host.Widgets.
func (m *Model) SetButtons(buttons []host.Button) {
	m.buttons = make(map[int]bool, len(buttons))
	for _, b := range buttons {
		m.buttons[b.Start] = true
	}
}

// Notice implements host.Notifier. The message clears itself after a while
// unless a newer one replaced it.
func (m *Model) Notice(msg string) {
	m.noticeSeq++
	m.footer.SetNotice(msg)
	m.queue(events.ClearNoticeCmd(m.noticeSeq, noticeTTL))
}

// tickScheduler turns controller tasks into Bubble Tea ticks. A cancelled
// task still ticks but is dropped on arrival.
type tickScheduler struct {
	m *Model
}

func (s tickScheduler) Schedule(t schedule.Task) {
	s.m.tasks[t.ID] = t
	s.m.queue(events.TaskCmd(t))
}

func (s tickScheduler) Cancel(id uint64) {
	delete(s.m.tasks, id)
}

var _ host.Widgets = (*Model)(nil)
var _ host.Notifier = (*Model)(nil)
var _ schedule.Scheduler = tickScheduler{}
var _ tea.Model = (*Model)(nil)
