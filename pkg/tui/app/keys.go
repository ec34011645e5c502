package app

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datepick/pkg/host"
	"tableflip.dev/datepick/pkg/tui/components/bottombar"
	"tableflip.dev/datepick/pkg/widget"
)

// commandKeys binds editor keys to widget commands.
var commandKeys = map[string]string{
	"ctrl+e": "edit",
	"ctrl+n": "next",
	"ctrl+p": "prev",
	"ctrl+d": "now-date",
	"ctrl+t": "now-time",
	"ctrl+y": "now-datetime",
	"alt+d":  "insert-date",
	"alt+t":  "insert-time",
	"alt+y":  "insert-datetime",
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "ctrl+c", "ctrl+q":
		m.quit()
		return
	}

	switch {
	case m.showHelp:
		m.showHelp = false
	case m.footer.Mode() == bottombar.ModeCommand:
		m.handleCommandKey(msg)
	case m.picker.Focused():
		m.handleWidgetKey(msg)
	default:
		m.handleEditorKey(msg)
	}
}

func (m *Model) handleWidgetKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc":
		m.ctrl.Key(widget.Escape)
	case "enter":
		m.ctrl.Input(m.picker.Value())
		m.ctrl.Key(widget.Enter)
	case "tab", "shift+tab":
		m.picker.Blur()
		m.ctrl.Blur()
	default:
		changed, cmd := m.picker.Update(msg)
		m.queue(cmd)
		if changed {
			m.ctrl.Input(m.picker.Value())
		}
	}
}

func (m *Model) handleCommandKey(msg tea.KeyPressMsg) {
	switch msg.String() {
	case "esc":
		m.footer.SetMode(bottombar.ModeNormal)
	case "enter":
		opt, ok := m.footer.Selected()
		m.footer.SetMode(bottombar.ModeNormal)
		if ok {
			m.runCommand(opt.Name)
		}
	case "up", "ctrl+p", "shift+tab":
		m.footer.MoveSelection(-1)
	case "down", "ctrl+n", "tab":
		m.footer.MoveSelection(1)
	case "backspace":
		in := []rune(m.footer.CommandInput())
		if len(in) > 0 {
			m.footer.UpdateCommandInput(string(in[:len(in)-1]))
		}
	default:
		if msg.Text != "" {
			m.footer.UpdateCommandInput(m.footer.CommandInput() + msg.Text)
		}
	}
}

func (m *Model) runCommand(id string) {
	cmd, ok := widget.LookupCommand(id)
	if !ok {
		m.Notice("Unknown command " + id)
		return
	}
	m.log.Debug("command", "id", id)
	cmd.Run(m.ctrl)
}

func (m *Model) handleEditorKey(msg tea.KeyPressMsg) {
	key := msg.String()
	if id, ok := commandKeys[key]; ok {
		m.runCommand(id)
		m.buf.ScrollTo(m.buf.Selection().Head)
		return
	}

	sel := m.buf.Selection()
	switch key {
	case "ctrl+s":
		m.save()
	case "ctrl+k":
		m.footer.SetMode(bottombar.ModeCommand)
	case "f1":
		m.showHelp = true
	case "ctrl+b":
		m.toggleButton()
	case "shift+tab":
		if m.picker.Visible() {
			m.queue(m.picker.Focus())
			m.ctrl.Focus()
		}
	case "esc":
		m.ctrl.Key(widget.Escape)
	case "down":
		if !m.ctrl.Key(widget.ArrowDown) {
			m.buf.MoveLine(1)
		}
	case "up":
		m.buf.MoveLine(-1)
	case "pgdown":
		m.buf.MoveLine(m.editorHeight())
	case "pgup":
		m.buf.MoveLine(-m.editorHeight())
	case "left":
		m.buf.MoveCursor(-1)
	case "right":
		m.buf.MoveCursor(1)
	case "shift+left":
		m.buf.SetSelection(host.Selection{Anchor: sel.Anchor, Head: sel.Head - 1})
	case "shift+right":
		m.buf.SetSelection(host.Selection{Anchor: sel.Anchor, Head: sel.Head + 1})
	case "home", "ctrl+a":
		m.buf.Home()
	case "end":
		m.buf.End()
	case "backspace":
		m.buf.Backspace()
	case "delete":
		m.buf.Delete()
	case "enter":
		m.buf.Insert("\n")
	case "tab":
		m.buf.Insert("    ")
	default:
		if msg.Text != "" {
			m.buf.Insert(msg.Text)
		}
	}
	m.buf.ScrollTo(m.buf.Selection().Head)
}

// toggleButton presses the inline button of the value under the cursor.
func (m *Model) toggleButton() {
	at, ok := m.ctrl.Index().At(m.buf.Selection().Head)
	if !ok || !m.buttons[at.Start] {
		m.Notice("No date or time button under the cursor")
		return
	}
	m.ctrl.Button(at.Start)
}
