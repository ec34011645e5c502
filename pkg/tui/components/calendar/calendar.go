// Package calendar renders the month grid shown under the date widget.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/tui/theme"
)

// Options controls calendar styling.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	DayStyle      lipgloss.Style
	EmptyStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
	ShowHeader    bool
}

// Render produces a multi-line calendar for the month of selected, with the
// selected day highlighted. today is underlined when it falls in the month.
func Render(selected, today time.Time, opts Options) string {
	if selected.IsZero() {
		return ""
	}

	year, month := selected.Year(), selected.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := format.DaysIn(year, month)

	var lines []string
	if opts.ShowTitle {
		title := first.Format("January 2006")
		lines = append(lines, opts.TitleStyle.Render(center(title, 20)))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	startOffset := int(first.Weekday())
	rows := (startOffset + daysInMonth + 6) / 7

	for row := 0; row < rows; row++ {
		cells := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			isToday := today.Year() == year && today.Month() == month && today.Day() == day
			cells = append(cells, renderDay(day, isToday, day == selected.Day(), opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(day int, today, selected bool, opts Options) string {
	style := opts.DayStyle
	if today {
		style = style.Inherit(opts.TodayStyle)
	}
	if selected {
		style = opts.SelectedStyle.Inherit(style)
	}
	return style.Render(fmt.Sprintf("%2d", day))
}

func center(s string, width int) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// DefaultOptions returns the calendar styling of the default theme.
func DefaultOptions() Options {
	return FromTheme(theme.Default().Calendar)
}

// FromTheme builds options from a calendar theme.
func FromTheme(t theme.CalendarTheme) Options {
	return Options{
		TitleStyle:    t.Title,
		HeaderStyle:   t.Header,
		DayStyle:      t.Day,
		EmptyStyle:    t.Day,
		TodayStyle:    t.Today,
		SelectedStyle: t.Selected,
		ShowTitle:     true,
		ShowHeader:    true,
	}
}
