// Package scan lists the dates and times recognised in a file.
package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/buffer"
	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/match"
	"tableflip.dev/datepick/pkg/printers"
)

type Scan struct {
	// Path is the file to scan; "-" reads In.
	Path       string
	In         io.Reader
	Out        io.Writer
	Layout     format.Layout
	JSON       bool
	ShowFormat bool
	Calendar   bool
}

// Result is the JSON form of one match.
type Result struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Raw    string `json:"raw"`
	Kind   string `json:"kind"`
	Format string `json:"format"`
	Value  string `json:"value"`
}

func (s *Scan) Do(ctx context.Context) error {
	text, err := s.read()
	if err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = color.Output
	}

	buf := buffer.New(text)
	ms := match.Recognize(text, 0, format.Build(s.Layout))

	rows := make([]printers.Row, 0, len(ms))
	for _, m := range ms {
		line, col := buf.Position(m.Start)
		rows = append(rows, printers.Row{Line: line + 1, Column: col + 1, Match: m})
	}

	if s.JSON {
		results := make([]Result, 0, len(rows))
		for _, r := range rows {
			results = append(results, Result{
				Start:  r.Match.Start,
				End:    r.Match.End,
				Line:   r.Line,
				Column: r.Column,
				Raw:    r.Match.Raw,
				Kind:   r.Match.Kind().String(),
				Format: r.Match.UserFormat,
				Value:  r.Match.PickerValue(),
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	pp := printers.PrettyPrint{Out: out, ShowFormat: s.ShowFormat}
	pp.TitleWithCount(s.name(), len(rows))
	pp.Matches(rows...)
	if s.Calendar {
		pp.Calendars(ms...)
	}
	return nil
}

func (s *Scan) name() string {
	if s.Path == "" || s.Path == "-" {
		return "stdin"
	}
	return s.Path
}

func (s *Scan) read() (string, error) {
	if s.Path == "" || s.Path == "-" {
		in := s.In
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.Path, err)
	}
	return string(b), nil
}
