// Package app is the terminal editor that hosts the date widget: a plain
// text buffer with inline buttons before every recognised date or time and
// an input widget that opens on them.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datepick/pkg/buffer"
	"tableflip.dev/datepick/pkg/schedule"
	"tableflip.dev/datepick/pkg/settings"
	"tableflip.dev/datepick/pkg/store"
	"tableflip.dev/datepick/pkg/tui/components/bottombar"
	"tableflip.dev/datepick/pkg/tui/components/picker"
	"tableflip.dev/datepick/pkg/tui/events"
	"tableflip.dev/datepick/pkg/tui/theme"
	"tableflip.dev/datepick/pkg/widget"
)

// noticeTTL is how long a notice stays in the status line.
const noticeTTL = 4 * time.Second

// Options configure the editor.
type Options struct {
	// Path is the file being edited. Empty edits a scratch buffer that
	// cannot be saved.
	Path string
	Text string

	Settings settings.Settings
	// Store, when set, is watched so that settings saved from another
	// process apply immediately.
	Store store.Persistence
	// Watch reloads the file when it changes on disk and has no unsaved
	// edits.
	Watch bool

	Logger *slog.Logger
	Now    func() time.Time
}

// Model is the Bubble Tea model of the editor.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	opts  Options
	theme theme.Theme
	log   *slog.Logger

	buf    *buffer.Buffer
	ctrl   *widget.Controller
	picker *picker.Model
	footer bottombar.Model

	width  int
	height int

	buttons   map[int]bool
	tasks     map[uint64]schedule.Task
	cmds      []tea.Cmd
	noticeSeq uint64
	showHelp  bool

	watches map[watchSource]*watcher
}

// New creates the editor model.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		opts:    opts,
		theme:   th,
		log:     opts.Logger,
		buf:     buffer.New(opts.Text),
		picker:  picker.New(th, opts.Now),
		footer:  bottombar.New(th.Footer),
		buttons: make(map[int]bool),
		tasks:   make(map[uint64]schedule.Task),
		watches: make(map[watchSource]*watcher),
	}
	m.ctrl = widget.New(widget.Deps{
		Editor:    m.buf,
		Widgets:   m,
		Notifier:  m,
		Scheduler: tickScheduler{m},
		Logger:    opts.Logger,
		Now:       opts.Now,
	}, opts.Settings)

	var defs []bottombar.CommandOption
	for _, c := range widget.Commands {
		defs = append(defs, bottombar.CommandOption{Name: c.ID, Description: c.Title})
	}
	m.footer.SetCommandDefinitions(defs)
	m.footer.SetHelp("ctrl+k commands · ctrl+e edit · ctrl+s save · f1 help")
	m.updateFooter()
	return m
}

// Controller exposes the widget controller of the editor.
func (m *Model) Controller() *widget.Controller { return m.ctrl }

// Buffer exposes the edited document.
func (m *Model) Buffer() *buffer.Buffer { return m.buf }

// Init starts the file and settings watchers.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.Watch && m.opts.Path != "" {
		cmds = append(cmds, startWatchCmd(m.ctx, sourceFile, m.opts.Path, m.opts.Store))
	}
	if m.opts.Store != nil {
		cmds = append(cmds, startWatchCmd(m.ctx, sourceSettings, m.opts.Path, m.opts.Store))
	}
	// Recognise what is on screen before the first key.
	m.sync()
	cmds = append(cmds, m.drain()...)
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if d, ok := msg.(events.Describer); ok {
		m.log.Debug("event", "msg", fmt.Sprintf("%T", msg), "detail", d.Describe())
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
	case tea.KeyPressMsg:
		m.handleKeyPress(msg)
	case events.TaskMsg:
		if _, ok := m.tasks[msg.Task.ID]; ok {
			delete(m.tasks, msg.Task.ID)
			m.ctrl.Run(msg.Task)
		}
	case events.ClearNoticeMsg:
		if msg.Seq == m.noticeSeq {
			m.footer.SetNotice("")
		}
	case events.SavedMsg:
		m.handleSaved(msg)
	case reloadedMsg:
		m.handleReload(msg)
	case watchStartedMsg:
		m.handleWatchStarted(msg)
	case events.FileEventMsg:
		m.handleWatchEvent(msg.Event)
	case watchStoppedMsg:
		m.handleWatchStopped(msg)
	}

	m.updateFooter()
	if m.height > 0 {
		m.layout()
	}
	m.sync()
	m.updateFooter()
	return m, tea.Batch(m.drain()...)
}

// sync hands the buffer's queued change notifications to the controller.
// Commits made while handling them queue more, so it loops until quiet.
func (m *Model) sync() {
	for i := 0; i < 16; i++ {
		changes := m.buf.Changes()
		if len(changes) == 0 {
			return
		}
		for _, ch := range changes {
			m.ctrl.Update(ch)
		}
	}
	m.log.Warn("change notifications did not settle")
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.cmds = append(m.cmds, cmd)
	}
}

func (m *Model) drain() []tea.Cmd {
	out := m.cmds
	m.cmds = nil
	return out
}

func (m *Model) editorHeight() int {
	h := m.height - m.footer.Height()
	if h < 1 {
		h = 1
	}
	return h
}

// layout fits the buffer viewport to the screen.
func (m *Model) layout() {
	top, _ := m.buf.Viewport()
	m.buf.SetViewport(top, m.editorHeight())
	m.buf.ScrollTo(m.buf.Selection().Head)
}

func (m *Model) updateFooter() {
	name := "[scratch]"
	if m.opts.Path != "" {
		name = filepath.Base(m.opts.Path)
	}
	m.footer.SetFile(name, m.buf.Dirty())
	line, col := m.buf.Position(m.buf.Selection().Head)
	status := fmt.Sprintf("Ln %d, Col %d", line+1, col+1)
	if s := m.ctrl.Session(); s != nil && s.Active() {
		status += " · " + s.Kind.String()
	}
	m.footer.SetStatus(status)
	switch {
	case m.showHelp:
		m.footer.SetMode(bottombar.ModeHelp)
	case m.footer.Mode() == bottombar.ModeCommand:
	case m.picker.Focused():
		m.footer.SetMode(bottombar.ModeWidget)
	default:
		m.footer.SetMode(bottombar.ModeNormal)
	}
}

func (m *Model) quit() {
	m.ctrl.Close()
	m.stopWatches()
	m.cancel()
	m.queue(tea.Quit)
}

func (m *Model) save() {
	if m.opts.Path == "" {
		m.Notice("Scratch buffer has no file to save to")
		return
	}
	path, text, version := m.opts.Path, m.buf.Text(), m.buf.Version()
	m.queue(func() tea.Msg {
		err := os.WriteFile(path, []byte(text), 0o644)
		return events.SavedMsg{Path: path, Version: version, Err: err}
	})
}

func (m *Model) handleSaved(msg events.SavedMsg) {
	if msg.Err != nil {
		m.log.Error("save failed", "path", msg.Path, "err", msg.Err)
		m.Notice("Save failed: " + msg.Err.Error())
		return
	}
	if m.buf.Version() == msg.Version {
		m.buf.MarkClean()
	}
	m.Notice("Saved " + filepath.Base(msg.Path))
}

// Run launches the interactive editor.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
