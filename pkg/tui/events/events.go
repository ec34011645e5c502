package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/store"
)

// Describer is implemented by messages that can summarise themselves for
// the debug log.
type Describer interface {
	Describe() string
}

// TaskMsg delivers a deferred controller task once its delay elapsed.
type TaskMsg struct {
	Task schedule.Task
}

// Describe renders the task in a human-friendly format for logs.
func (m TaskMsg) Describe() string {
	return fmt.Sprintf(`task:%d kind:%q session:%d`, m.Task.ID, m.Task.Kind, m.Task.Session)
}

// TaskCmd waits for the task's delay and then delivers it.
func TaskCmd(t schedule.Task) tea.Cmd {
	if t.Delay <= 0 {
		return func() tea.Msg { return TaskMsg{Task: t} }
	}
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return TaskMsg{Task: t}
	})
}

// NoticeMsg shows a short message in the status line.
type NoticeMsg struct {
	Text string
	// Seq identifies the notice so a stale ClearNoticeMsg leaves newer ones.
	Seq uint64
}

// Describe renders the notice for logs.
func (m NoticeMsg) Describe() string {
	return fmt.Sprintf(`notice:%q`, m.Text)
}

// ClearNoticeMsg removes the notice with Seq once it has been shown long
// enough.
type ClearNoticeMsg struct {
	Seq uint64
}

// Describe renders the clear request for logs.
func (m ClearNoticeMsg) Describe() string {
	return fmt.Sprintf(`clear-notice:%d`, m.Seq)
}

// ClearNoticeCmd clears the notice with seq after d.
func ClearNoticeCmd(seq uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearNoticeMsg{Seq: seq}
	})
}

// FileEventMsg wraps a watcher event for the edited file.
type FileEventMsg struct {
	Event store.Event
}

// Describe renders the event for logs.
func (m FileEventMsg) Describe() string {
	return fmt.Sprintf(`file:%q type:%q`, m.Event.Path, m.Event.Type)
}

// SavedMsg reports the result of writing the document to disk.
type SavedMsg struct {
	Path string
	// Version is the document version that was written.
	Version uint64
	Err     error
}

// Describe renders the save result for logs.
func (m SavedMsg) Describe() string {
	if m.Err != nil {
		return fmt.Sprintf(`saved:%q err:%q`, m.Path, m.Err.Error())
	}
	return fmt.Sprintf(`saved:%q`, m.Path)
}
