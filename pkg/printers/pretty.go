package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/datepick/pkg/match"
)

// Row is a match with its human position in the document.
type Row struct {
	Line   int
	Column int
	Match  match.Match
}

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// ShowFormat adds the detected user format and the catalog entry.
	ShowFormat bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " match")
	default:
		_, _ = c.Fprintln(pp.out(), " matches")
	}
}

// Matches prints one row per match.
func (pp *PrettyPrint) Matches(rows ...Row) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	pos := color.New(color.FgHiYellow, color.Faint)
	kind := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Pos"), bold.Sprint("Kind"), bold.Sprint("Text"), bold.Sprint("Value")}
	if pp.ShowFormat {
		header = append(header, bold.Sprint("Format"), bold.Sprint("Spec"))
	}
	tbl.AddRow(header...)
	for _, r := range rows {
		m := r.Match
		cells := []interface{}{
			pos.Sprintf("%d:%d", r.Line, r.Column),
			kind.Sprint(m.Kind()),
			m.Raw,
			m.PickerValue(),
		}
		if pp.ShowFormat {
			cells = append(cells, m.UserFormat, m.Spec.Name)
		}
		tbl.AddRow(cells...)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
