package app

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datepick/pkg/store"
	"tableflip.dev/datepick/pkg/tui/events"
)

type watchSource int

const (
	sourceFile watchSource = iota
	sourceSettings
)

type watcher struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
}

type watchStartedMsg struct {
	source watchSource
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchStoppedMsg struct {
	source watchSource
}

type reloadedMsg struct {
	text string
	err  error
}

func startWatchCmd(parent context.Context, source watchSource, path string, p store.Persistence) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		var (
			ch  <-chan store.Event
			err error
		)
		switch source {
		case sourceSettings:
			ch, err = p.Watch(ctx)
		default:
			ch, err = store.WatchFile(ctx, path)
		}
		if err != nil {
			cancel()
			return watchStartedMsg{source: source, err: err}
		}
		return watchStartedMsg{source: source, ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch(source watchSource) tea.Cmd {
	w := m.watches[source]
	if w == nil {
		return nil
	}
	ch := w.ch
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return events.FileEventMsg{Event: ev}
		}
		return watchStoppedMsg{source: source}
	}
}

func (m *Model) stopWatches() {
	for source, w := range m.watches {
		w.cancel()
		delete(m.watches, source)
	}
}

func (m *Model) handleWatchStarted(msg watchStartedMsg) {
	if msg.err != nil {
		m.log.Warn("watch failed", "source", msg.source, "err", msg.err)
		m.Notice("Not watching for changes: " + msg.err.Error())
		return
	}
	if old := m.watches[msg.source]; old != nil {
		old.cancel()
	}
	m.watches[msg.source] = &watcher{ch: msg.ch, cancel: msg.cancel}
	m.queue(m.waitForWatch(msg.source))
}

func (m *Model) handleWatchStopped(msg watchStoppedMsg) {
	if w := m.watches[msg.source]; w != nil {
		w.cancel()
		delete(m.watches, msg.source)
	}
	if m.ctx.Err() != nil {
		return
	}
	m.queue(startWatchCmd(m.ctx, msg.source, m.opts.Path, m.opts.Store))
}

func (m *Model) handleWatchEvent(ev store.Event) {
	switch ev.Type {
	case store.EventSettingsChanged:
		m.queue(m.waitForWatch(sourceSettings))
		m.reloadSettings()
	case store.EventFileRemoved:
		m.queue(m.waitForWatch(sourceFile))
		m.Notice("File was removed on disk; ctrl+s writes it again")
	default:
		m.queue(m.waitForWatch(sourceFile))
		path := m.opts.Path
		m.queue(func() tea.Msg {
			data, err := os.ReadFile(path)
			return reloadedMsg{text: string(data), err: err}
		})
	}
}

func (m *Model) handleReload(msg reloadedMsg) {
	switch {
	case msg.err != nil:
		m.log.Warn("reload failed", "path", m.opts.Path, "err", msg.err)
	case msg.text == m.buf.Text():
		// Our own save, or a touch.
	case m.buf.Dirty():
		m.Notice("File changed on disk; ctrl+s overwrites it")
	default:
		m.ctrl.LeafChange()
		m.buf.SetText(msg.text)
		m.Notice("Reloaded from disk")
	}
}

func (m *Model) reloadSettings() {
	s, err := m.opts.Store.Settings(m.ctx)
	if err != nil {
		m.log.Warn("reload settings", "err", err)
		m.Notice("Settings not reloaded: " + err.Error())
		return
	}
	m.ctrl.SetSettings(s)
	m.log.Debug("settings reloaded", "settings", s.Map())
}
