// Package schedule describes deferred work the widget controller asks its host
// to run later, and a virtual-clock queue that runs it deterministically.
package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Kind names what a task does when it runs.
type Kind int

const (
	// Position places the widget after the current update has settled.
	Position Kind = iota
	// BlurCommit closes the session after focus left the widget.
	BlurCommit
	// ShowCalendar opens the calendar right after the widget appears.
	ShowCalendar
	// ClearInserted ends the reopen suppression after an insert.
	ClearInserted
	// ClearButton ends the reopen suppression after a button opened a session.
	ClearButton
)

func (k Kind) String() string {
	switch k {
	case Position:
		return "position"
	case BlurCommit:
		return "blur-commit"
	case ShowCalendar:
		return "show-calendar"
	case ClearInserted:
		return "clear-inserted"
	case ClearButton:
		return "clear-button"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Task is one piece of deferred work. Session is zero for tasks that are not
// bound to a session.
type Task struct {
	ID      uint64
	Kind    Kind
	Session uint64
	Start   int
	Token   uint64
	Delay   time.Duration
}

func (t Task) String() string {
	return fmt.Sprintf("%s#%d(session %d, start %d, after %s)", t.Kind, t.ID, t.Session, t.Start, t.Delay)
}

// Scheduler runs tasks after their delay by handing them back to the
// controller. Cancel is best effort; tasks revalidate when they run.
type Scheduler interface {
	Schedule(Task)
	Cancel(id uint64)
}

// Queue is a Scheduler driven by a virtual clock.
type Queue struct {
	now     time.Duration
	seq     int
	pending []queued
}

type queued struct {
	at   time.Duration
	seq  int
	task Task
}

var _ Scheduler = (*Queue)(nil)

// NewQueue returns an empty queue at time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule adds t to run at now + t.Delay.
func (q *Queue) Schedule(t Task) {
	q.seq++
	q.pending = append(q.pending, queued{at: q.now + t.Delay, seq: q.seq, task: t})
}

// Cancel withdraws the task with the given ID.
func (q *Queue) Cancel(id uint64) {
	for i, p := range q.pending {
		if p.task.ID == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Now is the virtual time elapsed so far.
func (q *Queue) Now() time.Duration { return q.now }

// Pending returns the tasks still waiting, in run order.
func (q *Queue) Pending() []Task {
	q.sort()
	out := make([]Task, len(q.pending))
	for i, p := range q.pending {
		out[i] = p.task
	}
	return out
}

// Advance moves the clock forward by d, passing every task that comes due to
// run in due order. Tasks scheduled by run are considered too.
func (q *Queue) Advance(d time.Duration, run func(Task)) {
	target := q.now + d
	for {
		q.sort()
		if len(q.pending) == 0 || q.pending[0].at > target {
			break
		}
		next := q.pending[0]
		q.pending = q.pending[1:]
		if next.at > q.now {
			q.now = next.at
		}
		run(next.task)
	}
	q.now = target
}

// Flush runs every task due now without moving the clock.
func (q *Queue) Flush(run func(Task)) {
	q.Advance(0, run)
}

func (q *Queue) sort() {
	sort.SliceStable(q.pending, func(i, j int) bool {
		if q.pending[i].at != q.pending[j].at {
			return q.pending[i].at < q.pending[j].at
		}
		return q.pending[i].seq < q.pending[j].seq
	})
}
