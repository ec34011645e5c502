package bottombar

import (
	"fmt"
	"strings"

	"tableflip.dev/datepick/pkg/tui/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeWidget
	ModeCommand
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeWidget:
		return "WIDGET"
	case ModeCommand:
		return "COMMAND"
	case ModeHelp:
		return "HELP"
	default:
		return "EDIT"
	}
}

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	theme theme.FooterTheme

	mode     Mode
	helpLine string
	status   string
	notice   string
	file     string
	dirty    bool

	commandInput    string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	selected        int
	maxSuggestions  int
}

// New returns a footer model with sensible defaults.
func New(t theme.FooterTheme) Model {
	return Model{
		theme:          t,
		mode:           ModeNormal,
		maxSuggestions: 6,
	}
}

// Mode reports the current mode.
func (m Model) Mode() Mode { return m.mode }

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	m.commandInput = ""
	m.selected = 0
	m.filterSuggestions()
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) { m.helpLine = help }

// SetStatus sets the persistent status segment, e.g. the cursor position.
func (m *Model) SetStatus(status string) { m.status = status }

// SetNotice shows a transient message. An empty string clears it.
func (m *Model) SetNotice(notice string) { m.notice = notice }

// Notice returns the message currently shown.
func (m Model) Notice() string { return m.notice }

// SetFile sets the name of the edited file and whether it has unsaved
// changes.
func (m *Model) SetFile(name string, dirty bool) {
	m.file = name
	m.dirty = dirty
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions()
}

// UpdateCommandInput refreshes the command palette filter.
func (m *Model) UpdateCommandInput(value string) {
	m.commandInput = value
	m.selected = 0
	m.filterSuggestions()
}

// CommandInput returns the palette filter text.
func (m Model) CommandInput() string { return m.commandInput }

// MoveSelection moves the palette highlight by delta, wrapping around.
func (m *Model) MoveSelection(delta int) {
	n := len(m.filteredOptions)
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

// Selected returns the highlighted palette entry.
func (m Model) Selected() (CommandOption, bool) {
	if m.mode != ModeCommand || len(m.filteredOptions) == 0 {
		return CommandOption{}, false
	}
	return m.filteredOptions[m.selected], true
}

// Height reports the number of lines consumed by the footer.
func (m Model) Height() int {
	_, h := m.View()
	return h
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	if m.mode == ModeCommand {
		return m.renderCommandMode()
	}
	return m.renderStatusLine(), 1
}

func (m Model) renderStatusLine() string {
	var segments []string
	segments = append(segments, m.theme.Help.Render(m.mode.String()))
	if m.file != "" {
		name := m.file
		if m.dirty {
			name += " [+]"
		}
		segments = append(segments, m.theme.File.Render(name))
	}
	if m.status != "" {
		segments = append(segments, m.theme.Status.Render(m.status))
	}
	if m.notice != "" {
		segments = append(segments, m.theme.Notice.Render(m.notice))
	} else if m.helpLine != "" {
		segments = append(segments, m.theme.Help.Render(m.helpLine))
	}
	return strings.Join(segments, " │ ")
}

func (m Model) visibleSuggestions() int {
	n := len(m.filteredOptions)
	if m.maxSuggestions > 0 && n > m.maxSuggestions {
		n = m.maxSuggestions
	}
	return n
}

func (m Model) renderCommandMode() (string, int) {
	var lines []string
	limit := m.visibleSuggestions()
	first := 0
	if m.selected >= limit {
		first = m.selected - limit + 1
	}
	for i := first; i < first+limit; i++ {
		opt := m.filteredOptions[i]
		nameStyle, descStyle := m.theme.CommandName, m.theme.CommandDescription
		if i == m.selected {
			nameStyle, descStyle = m.theme.CommandSelectedName, m.theme.CommandSelectedDesc
		}
		name := nameStyle.Render(opt.Name)
		if opt.Description == "" {
			lines = append(lines, name)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s  %s", name, descStyle.Render(opt.Description)))
	}
	if len(m.filteredOptions) == 0 && m.notice != "" {
		lines = append(lines, m.theme.Notice.Render(m.notice))
	}
	lines = append(lines, ":"+m.commandInput)
	return strings.Join(lines, "\n"), len(lines)
}

// filterSuggestions keeps the commands whose name or description contains
// every word of the input.
func (m *Model) filterSuggestions() {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	words := strings.Fields(strings.ToLower(m.commandInput))
	m.filteredOptions = m.filteredOptions[:0]
	for _, opt := range m.commandOptions {
		hay := strings.ToLower(opt.Name + " " + opt.Description)
		ok := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				ok = false
				break
			}
		}
		if ok {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
	if m.selected >= len(m.filteredOptions) {
		m.selected = 0
	}
}
