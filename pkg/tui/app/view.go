package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/datepick/pkg/match"
	"tableflip.dev/datepick/pkg/tui/ui/overlay"
)

const (
	buttonGlyph = "▸"
	emptyLine   = "~"
)

var helpLines = [][2]string{
	{"ctrl+e", "edit the date or time under the cursor"},
	{"ctrl+b", "toggle the widget with the inline button"},
	{"ctrl+n / ctrl+p", "select the next or previous value"},
	{"ctrl+d / ctrl+t / ctrl+y", "insert the current date, time, or both"},
	{"alt+d / alt+t / alt+y", "insert through the widget"},
	{"down / shift+tab", "move into the open widget"},
	{"enter / esc / tab", "apply, cancel, or leave the widget"},
	{"↑ ↓ pgup pgdown", "step the value inside the widget"},
	{"ctrl+k", "command palette"},
	{"ctrl+s", "save"},
	{"ctrl+q", "quit"},
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	edHeight := m.editorHeight()
	editor := m.renderEditor(edHeight)

	if m.picker.Visible() {
		if fg := m.picker.View(); fg != "" {
			editor = overlay.Compose(editor, m.width, edHeight, fg, m.widgetPlacement(fg, edHeight))
		}
	}
	if m.showHelp {
		editor = overlay.Compose(editor, m.width, edHeight, m.renderHelp(), overlay.Centered())
	}

	footer, _ := m.footer.View()
	lines := strings.Split(footer, "\n")
	for i, l := range lines {
		lines[i] = truncate.String(l, uint(m.width))
	}
	return editor + "\n" + strings.Join(lines, "\n")
}

// lineStyle says how one rune of the document is drawn.
type lineStyle int

const (
	styleText lineStyle = iota
	styleMatch
	styleActive
	styleSelection
	styleCursor
)

func (m *Model) style(s lineStyle) lipgloss.Style {
	t := m.theme.Editor
	switch s {
	case styleMatch:
		return t.Match
	case styleActive:
		return t.Active
	case styleSelection:
		return t.Selection
	case styleCursor:
		return t.Cursor
	default:
		return t.Text
	}
}

func (m *Model) renderEditor(height int) string {
	top, _ := m.buf.Viewport()
	matches := m.ctrl.Index().Visible()
	out := make([]string, 0, height)
	for n := top; n < top+height; n++ {
		if n >= m.buf.LineCount() {
			out = append(out, m.theme.Editor.Gutter.Render(emptyLine))
			continue
		}
		out = append(out, truncate.String(m.renderLine(n, matches), uint(m.width)))
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderLine(n int, matches []match.Match) string {
	line := m.buf.Line(n)
	runes := []rune(line.Text)
	sel := m.buf.Selection()
	showCursor := !m.picker.Focused()

	var activeStart, activeEnd = -1, -1
	if s := m.ctrl.Session(); s != nil && s.Active() {
		activeStart, activeEnd = s.Match.Start, s.Match.End
	}

	styleAt := func(off int) lineStyle {
		switch {
		case showCursor && sel.Head == off:
			return styleCursor
		case off >= sel.From() && off < sel.To():
			return styleSelection
		case off >= activeStart && off < activeEnd:
			return styleActive
		}
		for _, mt := range matches {
			if off >= mt.Start && off < mt.End {
				return styleMatch
			}
		}
		return styleText
	}

	var b strings.Builder
	var run strings.Builder
	current := styleText
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(m.style(current).Render(run.String()))
			run.Reset()
		}
	}
	for i := 0; i <= len(runes); i++ {
		off := line.From + i
		if m.buttons[off] {
			flush()
			b.WriteString(m.theme.Editor.Button.Render(buttonGlyph))
		}
		if i == len(runes) {
			if showCursor && sel.Head == off {
				flush()
				b.WriteString(m.style(styleCursor).Render(" "))
			}
			break
		}
		st := styleAt(off)
		if st != current {
			flush()
			current = st
		}
		run.WriteRune(runes[i])
	}
	flush()
	return b.String()
}

// displayColumn is the screen column offset is drawn at, counting the inline
// buttons before it on its line.
func (m *Model) displayColumn(offset int) int {
	line := m.buf.LineAt(offset)
	runes := []rune(line.Text)
	col := 0
	for off := line.From; off <= offset && off <= line.To; off++ {
		if m.buttons[off] {
			col += lipgloss.Width(buttonGlyph)
		}
		if off == offset || off == line.To {
			break
		}
		col += lipgloss.Width(string(runes[off-line.From]))
	}
	return col
}

// widgetPlacement puts the widget under its anchor, or above it when there is
// no room below.
func (m *Model) widgetPlacement(fg string, height int) overlay.Placement {
	w := m.picker.Widget()
	x := m.displayColumn(w.Anchor)
	y := w.Coords.Bottom
	h := lipgloss.Height(fg)
	if y+h > height && w.Coords.Top-h >= 0 {
		y = w.Coords.Top - h
	}
	return overlay.At(x, y)
}

func (m *Model) renderHelp() string {
	keyWidth := 0
	for _, l := range helpLines {
		if w := lipgloss.Width(l[0]); w > keyWidth {
			keyWidth = w
		}
	}
	descWidth := m.width - keyWidth - 8
	if descWidth < 10 {
		descWidth = 10
	}
	keyStyle := m.theme.Footer.CommandName.Width(keyWidth)
	var rows []string
	rows = append(rows, m.theme.Calendar.Title.Render("Keys"), "")
	for _, l := range helpLines {
		desc := wordwrap.String(l[1], descWidth)
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(l[0]), "  ", m.theme.Footer.CommandDescription.Render(desc)))
	}
	rows = append(rows, "", m.theme.Widget.Hint.Render("any key closes"))
	return m.theme.Widget.Frame.Render(strings.Join(rows, "\n"))
}
