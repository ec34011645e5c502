// Package widget is the per-view controller that watches an editor for
// recognised dates and times, opens the inline editing widget on them, and
// commits edits back exactly once.
package widget

import (
	"errors"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/match"
	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/session"
	"tableflip.dev/datepick/pkg/settings"
)

// Key is an editor or widget key the controller reacts to.
type Key int

const (
	Escape Key = iota
	Enter
	ArrowDown
)

// Deps are the host collaborators of a controller.
type Deps struct {
	Editor    host.Editor
	Widgets   host.Widgets
	Notifier  host.Notifier
	Scheduler schedule.Scheduler
	Logger    *slog.Logger
	// Now is the clock used by insert commands. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns the match index, the current edit session and the single
// widget of one view. All methods must be called from the host's event loop.
type Controller struct {
	editor   host.Editor
	widgets  host.Widgets
	notifier host.Notifier
	sched    schedule.Scheduler
	log      *slog.Logger
	now      func() time.Time

	settings  settings.Settings
	catalogs  format.Cache
	index     *match.Index
	committer session.Committer

	session  *session.Session
	sessions uint64
	taskSeq  uint64
	tasks    map[uint64]schedule.Task

	last   snapshot
	inside int
	reopen int

	inserted flag
	button   flag

	queue    []host.Change
	updating bool
}

type snapshot struct {
	valid   bool
	version uint64
	sel     host.Selection
}

// flag suppresses automatic opening on the match starting at start.
type flag struct {
	active bool
	start  int
	task   uint64
}

// New returns a controller for one view.
func New(deps Deps, s settings.Settings) *Controller {
	c := &Controller{
		editor:   deps.Editor,
		widgets:  deps.Widgets,
		notifier: deps.Notifier,
		sched:    deps.Scheduler,
		log:      deps.Logger,
		now:      deps.Now,
		settings: s,
		tasks:    make(map[uint64]schedule.Task),
		inside:   -1,
		reopen:   -1,
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.index = match.NewIndex(c.catalogs.Get(s.DateLayout))
	c.committer = session.Committer{Editor: deps.Editor, Options: commitOptions(s)}
	return c
}

func commitOptions(s settings.Settings) session.Options {
	return session.Options{Override: s.OverrideFormat, Layout: s.DateLayout, Use24Hour: s.Use24Hour}
}

// Settings returns the settings in use.
func (c *Controller) Settings() settings.Settings { return c.settings }

// SetSettings applies new settings. A layout change rebuilds the catalog and
// the index.
func (c *Controller) SetSettings(s settings.Settings) {
	old := c.settings
	c.settings = s
	c.committer.Options = commitOptions(s)
	if old.DateLayout != s.DateLayout {
		c.index.SetCatalog(c.catalogs.Get(s.DateLayout))
		c.index.Refresh(c.editor)
		c.rebind()
	}
	c.publishButtons()
}

// Session returns the open session, or nil.
func (c *Controller) Session() *session.Session { return c.session }

// Index returns the match index of the view.
func (c *Controller) Index() *match.Index { return c.index }

// Update handles a host change notification. Notifications that arrive while
// one is being handled are queued and handled in order.
func (c *Controller) Update(ch host.Change) {
	c.queue = append(c.queue, ch)
	if c.updating {
		return
	}
	c.updating = true
	defer func() { c.updating = false }()
	for len(c.queue) > 0 {
		next := c.queue[0]
		c.queue = c.queue[1:]
		c.update(next)
	}
}

func (c *Controller) update(ch host.Change) {
	layout := ch.DocChanged || ch.ViewportChanged || ch.GeometryChanged
	if layout || c.index.Stale(c.editor) {
		c.index.Refresh(c.editor)
		c.publishButtons()
	}

	snap := snapshot{valid: true, version: c.editor.Version(), sel: c.editor.Selection()}
	if snap == c.last {
		if layout && c.session != nil && c.session.Active() {
			c.reposition(c.session)
		}
		return
	}
	docChanged := !c.last.valid || snap.version != c.last.version
	c.last = snap

	if docChanged {
		c.rebind()
	}
	c.track(snap.sel)
	if layout && c.session != nil && c.session.Active() {
		c.reposition(c.session)
	}
}

// rebind points the open session at its recomputed match, or cancels it
// when the match is gone.
func (c *Controller) rebind() {
	s := c.session
	if s == nil || s.Insert || !s.Active() {
		return
	}
	m, ok := c.index.SameStart(s.Start())
	if !ok {
		c.log.Debug("match gone, cancelling session", "session", s.ID, "start", s.Start())
		s.Cancel(session.ClosedCursor)
		c.teardown()
		return
	}
	s.Rebind(m)
}

// track reacts to the selection.
func (c *Controller) track(sel host.Selection) {
	if s := c.session; s != nil && s.Insert && s.Active() {
		if sel.From() == s.Match.Start && sel.To() == s.Match.End {
			return
		}
		c.closeSession(session.ClosedCursor)
	}

	m, on := c.under(sel)
	if !on {
		c.closeSession(session.ClosedCursor)
		c.leave(-1)
		return
	}

	entering := c.inside != m.Start
	if entering {
		c.leave(m.Start)
	}
	c.inside = m.Start

	if s := c.session; s != nil && s.Active() {
		if !s.Insert && s.Start() == m.Start {
			return
		}
		c.closeSession(session.ClosedCursor)
		// The commit may have moved the text after it.
		if c.refresh() {
			if m, on = c.under(c.editor.Selection()); !on {
				c.leave(-1)
				return
			}
			c.inside = m.Start
		}
	}

	if !entering || !c.settings.ShowAutomatically || c.suppressed(m.Start) {
		return
	}
	c.open(m, session.OpenedAutomatic)
}

// under returns the match the selection is on.
func (c *Controller) under(sel host.Selection) (match.Match, bool) {
	if sel.Empty() {
		return c.index.At(sel.Head)
	}
	return c.index.Span(sel.From(), sel.To())
}

// refresh catches up with a commit made while handling an event: the index
// is recomputed and the notifications the commit queued become duplicates.
// It reports whether the document had moved on.
func (c *Controller) refresh() bool {
	if !c.index.Stale(c.editor) {
		return false
	}
	c.index.Refresh(c.editor)
	c.publishButtons()
	c.last = snapshot{valid: true, version: c.editor.Version(), sel: c.editor.Selection()}
	return true
}

// leave forgets state tied to a match the cursor is no longer on. next is
// the start of the match the cursor moved to, or -1.
func (c *Controller) leave(next int) {
	c.inside = next
	if c.reopen != next {
		c.reopen = -1
	}
	if c.inserted.active && c.inserted.start != next {
		c.clearFlag(&c.inserted)
	}
	if c.button.active && c.button.start != next {
		c.clearFlag(&c.button)
	}
}

func (c *Controller) suppressed(start int) bool {
	switch {
	case c.reopen == start:
		return true
	case c.inserted.active && c.inserted.start == start:
		return true
	case c.button.active && c.button.start == start:
		return true
	}
	return false
}

func (c *Controller) setFlag(f *flag, kind schedule.Kind, start int) {
	c.clearFlag(f)
	f.active = true
	f.start = start
	f.task = c.schedule(kind, nil, c.settings.SuppressWindow)
}

func (c *Controller) clearFlag(f *flag) {
	if f.task != 0 {
		c.cancelTask(f.task)
	}
	*f = flag{}
}

// open starts a session on m, closing any open session first.
func (c *Controller) open(m match.Match, by session.OpenedBy) {
	c.closeSession(session.ClosedCursor)
	c.sessions++
	s := session.New(c.sessions, m, by)
	c.start(s)
	if c.settings.SelectOnFocus {
		c.editor.SetSelection(host.Selection{Anchor: m.Start, Head: m.End})
	}
}

func (c *Controller) start(s *session.Session) {
	c.session = s
	c.widgets.HideWidget()
	c.log.Debug("session opened", "session", s.ID, "start", s.Start(), "kind", s.Kind, "by", s.OpenedBy)
	c.reposition(s)
}

// closeSession ends the open session because the user moved on, committing
// it first when auto-apply is on. A value that fails validation is dropped
// with a notice. Insert sessions only write on Enter.
func (c *Controller) closeSession(by session.ClosedBy) {
	s := c.session
	if s == nil {
		return
	}
	if c.settings.AutoApply && !s.Insert && s.Active() {
		if _, err := c.commit(s); err != nil {
			c.notify(err)
		}
	}
	if s.Active() {
		s.Cancel(by)
	} else {
		s.Close(by)
	}
	c.teardown()
}

// teardown hides the widget and withdraws every task of the session.
func (c *Controller) teardown() {
	s := c.session
	c.session = nil
	c.widgets.HideWidget()
	if s == nil {
		return
	}
	for id, t := range c.tasks {
		if t.Session == s.ID {
			c.cancelTask(id)
		}
	}
	c.log.Debug("session closed", "session", s.ID, "by", s.ClosedBy, "committed", s.Committed())
}

func (c *Controller) commit(s *session.Session) (session.Result, error) {
	res, err := c.committer.Commit(s, s.RawValue)
	c.log.Debug("commit", "session", s.ID, "raw", s.RawValue, "result", res, "err", err)
	if err == nil && res == session.Written && s.Insert {
		c.setFlag(&c.inserted, schedule.ClearInserted, s.Start())
	}
	return res, err
}

func (c *Controller) notify(err error) {
	if c.notifier == nil || err == nil {
		return
	}
	switch {
	case errors.Is(err, session.ErrEmpty), errors.Is(err, session.ErrInvalid):
		c.notifier.Notice(err.Error())
	default:
		c.log.Warn("commit failed", "err", err)
		c.notifier.Notice(err.Error())
	}
}

// Input records the widget's current raw value.
func (c *Controller) Input(value string) {
	if s := c.session; s != nil && s.Active() {
		s.RawValue = value
	}
}

// Focus tells the controller the widget gained focus. A pending blur commit
// is invalidated.
func (c *Controller) Focus() {
	s := c.session
	if s == nil || !s.Active() {
		return
	}
	s.Focused = true
	s.BlurToken++
	c.cancelSessionTasks(s, schedule.BlurCommit)
}

// Blur tells the controller the widget lost focus. The session closes after
// the blur delay unless focus comes back or it ends another way first.
func (c *Controller) Blur() {
	s := c.session
	if s == nil || !s.Active() {
		return
	}
	s.Focused = false
	s.BlurToken++
	c.cancelSessionTasks(s, schedule.BlurCommit)
	c.schedule(schedule.BlurCommit, s, c.settings.BlurDelay)
}

// Key handles a key press. It reports whether the key was consumed.
func (c *Controller) Key(k Key) bool {
	s := c.session
	if s == nil || !s.Active() {
		return false
	}
	switch k {
	case Escape:
		s.Cancel(session.ClosedEscape)
		if !s.Insert {
			c.reopen = s.Start()
		}
		c.teardown()
		return true
	case Enter:
		if _, err := c.commit(s); err != nil {
			c.notify(err)
			return true
		}
		s.Close(session.ClosedEnter)
		c.teardown()
		return true
	case ArrowDown:
		if s.Focused || !c.settings.FocusOnArrowDown {
			return false
		}
		c.focusWidget(s)
		return true
	}
	return false
}

func (c *Controller) focusWidget(s *session.Session) {
	s.Focused = true
	s.BlurToken++
	c.cancelSessionTasks(s, schedule.BlurCommit)
	c.widgets.FocusWidget()
}

// Button toggles the widget for the match starting at start.
func (c *Controller) Button(start int) {
	m, ok := c.index.SameStart(start)
	if !ok {
		return
	}
	if s := c.session; s != nil && s.Active() && !s.Insert && s.Start() == start {
		c.closeSession(session.ClosedButton)
		c.reopen = start
		return
	}
	prev := c.session
	before := utf8.RuneCountInString(c.editor.Text())
	c.closeSession(session.ClosedButton)
	if c.refresh() {
		// A committed value before the button changed length.
		if prev != nil && prev.Match.End <= start {
			start += utf8.RuneCountInString(c.editor.Text()) - before
		}
		if m, ok = c.index.SameStart(start); !ok {
			return
		}
	}
	c.setFlag(&c.button, schedule.ClearButton, start)
	c.sessions++
	s := session.New(c.sessions, m, session.OpenedButton)
	c.start(s)
}

// LeafChange cancels the open session because the host switched documents.
func (c *Controller) LeafChange() {
	if s := c.session; s != nil {
		s.Cancel(session.ClosedLeafChange)
		c.teardown()
	}
	c.leave(-1)
	c.last = snapshot{}
}

// Close cancels everything; the view is going away.
func (c *Controller) Close() {
	c.LeafChange()
	for id := range c.tasks {
		c.cancelTask(id)
	}
}

func (c *Controller) publishButtons() {
	var buttons []host.Button
	for _, m := range c.index.Visible() {
		k := m.Kind()
		if k == format.Time && !c.settings.ShowTimeButtons {
			continue
		}
		if k != format.Time && !c.settings.ShowDateButtons {
			continue
		}
		buttons = append(buttons, host.Button{Start: m.Start, Kind: k})
	}
	c.widgets.SetButtons(buttons)
}
