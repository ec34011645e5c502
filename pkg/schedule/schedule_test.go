package schedule

import (
	"testing"
	"time"
)

func TestQueueRunsInDueOrder(t *testing.T) {
	q := NewQueue()
	q.Schedule(Task{ID: 1, Kind: BlurCommit, Delay: 300 * time.Millisecond})
	q.Schedule(Task{ID: 2, Kind: Position})
	q.Schedule(Task{ID: 3, Kind: ShowCalendar})

	var ran []uint64
	q.Advance(100*time.Millisecond, func(task Task) { ran = append(ran, task.ID) })
	if len(ran) != 2 || ran[0] != 2 || ran[1] != 3 {
		t.Fatalf("ran %v, want [2 3]", ran)
	}
	if q.Now() != 100*time.Millisecond {
		t.Fatalf("now = %s", q.Now())
	}

	q.Advance(200*time.Millisecond, func(task Task) { ran = append(ran, task.ID) })
	if len(ran) != 3 || ran[2] != 1 {
		t.Fatalf("ran %v, want blur last", ran)
	}
}

func TestQueueCancel(t *testing.T) {
	q := NewQueue()
	q.Schedule(Task{ID: 7, Delay: time.Second})
	q.Cancel(7)
	q.Advance(2*time.Second, func(task Task) { t.Fatalf("cancelled task ran: %v", task) })
	if n := len(q.Pending()); n != 0 {
		t.Fatalf("pending = %d", n)
	}
}

func TestQueueRunsTasksScheduledWhileRunning(t *testing.T) {
	q := NewQueue()
	q.Schedule(Task{ID: 1})
	var ran []uint64
	q.Flush(func(task Task) {
		ran = append(ran, task.ID)
		if task.ID == 1 {
			q.Schedule(Task{ID: 2})
			q.Schedule(Task{ID: 3, Delay: time.Millisecond})
		}
	})
	if len(ran) != 2 || ran[1] != 2 {
		t.Fatalf("ran %v, want [1 2]", ran)
	}
	if p := q.Pending(); len(p) != 1 || p[0].ID != 3 {
		t.Fatalf("pending %v", p)
	}
}
