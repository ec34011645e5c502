package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	accent     = "#ff5fd7"
	background = "#1c1c1c"
)

// Theme centralizes Lip Gloss styles for the terminal editor.
type Theme struct {
	Editor   EditorTheme
	Widget   WidgetTheme
	Calendar CalendarTheme
	Footer   FooterTheme
}

// EditorTheme styles the document area.
type EditorTheme struct {
	Text      lipgloss.Style
	Cursor    lipgloss.Style
	Selection lipgloss.Style
	Match     lipgloss.Style
	Active    lipgloss.Style
	Button    lipgloss.Style
	Gutter    lipgloss.Style
}

// WidgetTheme styles the inline input widget.
type WidgetTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Label   lipgloss.Style
	Hint    lipgloss.Style
}

// CalendarTheme styles the month grid shown under the widget.
type CalendarTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/command bar.
type FooterTheme struct {
	Help                lipgloss.Style
	Status              lipgloss.Style
	Notice              lipgloss.Style
	File                lipgloss.Style
	CommandName         lipgloss.Style
	CommandDescription  lipgloss.Style
	CommandSelectedName lipgloss.Style
	CommandSelectedDesc lipgloss.Style
}

// Blend mixes two hex colors in Lab space; t=0 is a, t=1 is b. Unparsable
// input falls back to a.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	// Selections and the selected day are tinted with the accent so they
	// stay readable on dark terminals.
	tint := lipgloss.Color(Blend(background, accent, 0.35))

	commandName := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	commandDesc := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return Theme{
		Editor: EditorTheme{
			Text:      lipgloss.NewStyle(),
			Cursor:    lipgloss.NewStyle().Reverse(true),
			Selection: lipgloss.NewStyle().Background(tint),
			Match:     lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Underline(true),
			Active:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("63")),
			Gutter:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Widget: WidgetTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(lipgloss.Color("212")),
			Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Calendar: CalendarTheme{
			Frame:    frame,
			Title:    lipgloss.NewStyle().Bold(true),
			Header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Day:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Today:    lipgloss.NewStyle().Underline(true),
			Selected: lipgloss.NewStyle().Background(tint).Foreground(lipgloss.Color("15")).Bold(true),
		},
		Footer: FooterTheme{
			Help:                lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:              lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Notice:              lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			File:                lipgloss.NewStyle().Bold(true),
			CommandName:         commandName,
			CommandDescription:  commandDesc,
			CommandSelectedName: commandName.Reverse(true),
			CommandSelectedDesc: commandDesc.Reverse(true),
		},
	}
}
