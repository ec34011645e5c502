package widget

import (
	"fmt"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/session"
)

// Command is an action the host can bind to a key or list in a palette.
type Command struct {
	ID    string
	Title string
	Run   func(*Controller)
}

// Commands lists the commands a controller offers, in display order.
var Commands = []Command{
	{ID: "insert-date", Title: "Insert date", Run: func(c *Controller) { c.Insert(format.Date) }},
	{ID: "insert-time", Title: "Insert time", Run: func(c *Controller) { c.Insert(format.Time) }},
	{ID: "insert-datetime", Title: "Insert date and time", Run: func(c *Controller) { c.Insert(format.DateTime) }},
	{ID: "now-date", Title: "Insert current date", Run: func(c *Controller) { c.InsertNow(format.Date) }},
	{ID: "now-time", Title: "Insert current time", Run: func(c *Controller) { c.InsertNow(format.Time) }},
	{ID: "now-datetime", Title: "Insert current date and time", Run: func(c *Controller) { c.InsertNow(format.DateTime) }},
	{ID: "edit", Title: "Edit date or time under cursor", Run: func(c *Controller) { c.EditAtCursor() }},
	{ID: "next", Title: "Select next date or time", Run: func(c *Controller) { c.SelectNext() }},
	{ID: "prev", Title: "Select previous date or time", Run: func(c *Controller) { c.SelectPrevious() }},
}

// LookupCommand finds a command by ID.
func LookupCommand(id string) (Command, bool) {
	for _, cmd := range Commands {
		if cmd.ID == id {
			return cmd, true
		}
	}
	return Command{}, false
}

// Insert opens the widget to write a new value of kind at the selection.
func (c *Controller) Insert(kind format.Kind) {
	c.closeSession(session.ClosedCursor)
	sel := c.editor.Selection()
	from, to := sel.From(), sel.To()
	text := ""
	if from < to {
		text = string([]rune(c.editor.Text())[from:to])
	}
	c.sessions++
	seed := format.PickerValue(c.now(), kind)
	s := session.NewInsert(c.sessions, from, to, text, kind, seed)
	c.start(s)
	c.focusWidget(s)
}

// InsertNow writes the current date, time or both at the selection in the
// preferred format. The widget does not open on the inserted value.
func (c *Controller) InsertNow(kind format.Kind) {
	c.closeSession(session.ClosedCursor)
	sel := c.editor.Selection()
	text := format.Render(c.now(), format.Preferred(c.settings.DateLayout, kind, c.settings.Use24Hour))
	c.setFlag(&c.inserted, schedule.ClearInserted, sel.From())
	if err := c.editor.ReplaceRange(sel.From(), sel.To(), text); err != nil {
		c.clearFlag(&c.inserted)
		c.notify(fmt.Errorf("insert %s: %w", kind, err))
	}
}

// EditAtCursor opens the widget on the value under the cursor whatever the
// automatic settings say.
func (c *Controller) EditAtCursor() {
	head := c.editor.Selection().Head
	m, ok := c.index.At(head)
	if !ok {
		c.notice("No date or time under the cursor")
		return
	}
	if s := c.session; s != nil && s.Active() && !s.Insert && s.Start() == m.Start {
		c.focusWidget(s)
		return
	}
	c.inside = m.Start
	c.open(m, session.OpenedCommand)
	c.focusWidget(c.session)
}

// SelectNext selects the first value after the selection.
func (c *Controller) SelectNext() {
	m, ok := c.index.After(c.editor.Selection().To())
	if !ok {
		c.notice("No later date or time")
		return
	}
	c.editor.SetSelection(host.Selection{Anchor: m.Start, Head: m.End})
}

// SelectPrevious selects the last value before the selection.
func (c *Controller) SelectPrevious() {
	m, ok := c.index.Before(c.editor.Selection().From())
	if !ok {
		c.notice("No earlier date or time")
		return
	}
	c.editor.SetSelection(host.Selection{Anchor: m.Start, Head: m.End})
}

func (c *Controller) notice(msg string) {
	if c.notifier != nil {
		c.notifier.Notice(msg)
	}
}
