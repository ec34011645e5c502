package widget

import (
	"time"

	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/session"
)

// schedule queues a task for s, or an unbound task when s is nil, and returns
// its ID.
func (c *Controller) schedule(kind schedule.Kind, s *session.Session, delay time.Duration) uint64 {
	c.taskSeq++
	t := schedule.Task{ID: c.taskSeq, Kind: kind, Delay: delay}
	if s != nil {
		t.Session = s.ID
		t.Start = s.Start()
		t.Token = s.BlurToken
	}
	c.tasks[t.ID] = t
	if c.sched != nil {
		c.sched.Schedule(t)
	}
	return t.ID
}

func (c *Controller) cancelTask(id uint64) {
	if _, ok := c.tasks[id]; !ok {
		return
	}
	delete(c.tasks, id)
	if c.sched != nil {
		c.sched.Cancel(id)
	}
}

func (c *Controller) cancelSessionTasks(s *session.Session, kind schedule.Kind) {
	for id, t := range c.tasks {
		if t.Session == s.ID && t.Kind == kind {
			c.cancelTask(id)
		}
	}
}

// reposition replaces any pending positioning of s with a fresh one.
func (c *Controller) reposition(s *session.Session) {
	c.cancelSessionTasks(s, schedule.Position)
	c.schedule(schedule.Position, s, 0)
}

// Pending returns the number of tasks the controller still expects to run.
func (c *Controller) Pending() int { return len(c.tasks) }

// Run performs a task the scheduler handed back. Tasks that were cancelled,
// or whose session has since ended, do nothing.
func (c *Controller) Run(t schedule.Task) {
	if _, ok := c.tasks[t.ID]; !ok {
		return
	}
	delete(c.tasks, t.ID)

	switch t.Kind {
	case schedule.ClearInserted:
		if c.inserted.task == t.ID {
			c.inserted = flag{}
		}
		return
	case schedule.ClearButton:
		if c.button.task == t.ID {
			c.button = flag{}
		}
		return
	}

	s := c.session
	if s == nil || s.ID != t.Session || !s.Active() {
		return
	}
	switch t.Kind {
	case schedule.Position:
		c.position(s)
	case schedule.ShowCalendar:
		if !s.CalendarShown {
			s.CalendarShown = true
			c.widgets.ShowCalendar()
		}
	case schedule.BlurCommit:
		if s.Focused || t.Token != s.BlurToken {
			return
		}
		c.blurCommit(s)
	}
}

func (c *Controller) position(s *session.Session) {
	coords, ok := c.editor.CoordsAt(s.Start())
	if !ok {
		c.log.Warn("no screen position for widget anchor", "session", s.ID, "start", s.Start())
		s.Cancel(session.ClosedUnset)
		c.teardown()
		return
	}
	c.widgets.HideWidget()
	c.widgets.ShowWidget(host.Widget{
		Anchor: s.Start(),
		Coords: coords,
		Kind:   s.Kind,
		Value:  s.RawValue,
		Focus:  s.Focused || c.settings.Autofocus,
	})
	if s.Focused || c.settings.Autofocus {
		c.focusWidget(s)
	}
	if c.settings.ShowCalendar && !s.CalendarShown {
		c.schedule(schedule.ShowCalendar, s, 0)
	}
}

// blurCommit closes s after focus left the widget. With auto-apply the value
// is committed first; a value that fails validation keeps the session open.
func (c *Controller) blurCommit(s *session.Session) {
	if c.settings.AutoApply && !s.Insert {
		if _, err := c.commit(s); err != nil {
			c.notify(err)
			return
		}
		s.Close(session.ClosedBlur)
	} else {
		s.Cancel(session.ClosedBlur)
	}
	c.teardown()
}
