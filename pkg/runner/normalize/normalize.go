// Package normalize rewrites every recognised value in a file in the
// preferred format.
package normalize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/buffer"
	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/match"
	"tableflip.dev/datepick/pkg/session"
	"tableflip.dev/datepick/pkg/settings"
)

type Normalize struct {
	Path     string
	Settings settings.Settings
	// Write saves the result to Path instead of printing it.
	Write  bool
	Out    io.Writer
	Logger *slog.Logger
}

// Report counts what a run did.
type Report struct {
	Found     int
	Rewritten int
}

func (n *Normalize) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	data, err := os.ReadFile(n.Path)
	if err != nil {
		return fmt.Errorf("read %s: %w", n.Path, err)
	}

	text, report, err := Text(string(data), n.Settings)
	if err != nil {
		return err
	}
	if n.Logger != nil {
		n.Logger.Info("normalized", "path", n.Path, "found", report.Found, "rewritten", report.Rewritten)
	}

	if !n.Write {
		_, err := io.WriteString(out, text)
		return err
	}
	if report.Rewritten > 0 {
		if err := os.WriteFile(n.Path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", n.Path, err)
		}
	}
	faint := color.New(color.Faint)
	_, _ = faint.Fprintf(out, "%s: rewrote %d of %d values\n", n.Path, report.Rewritten, report.Found)
	return nil
}

// Text rewrites the values in text through the commit pipeline with the
// preferred format forced. Values are committed last to first so earlier
// offsets stay valid.
func Text(text string, s settings.Settings) (string, Report, error) {
	buf := buffer.New(text)
	ms := match.Recognize(text, 0, format.Build(s.DateLayout))
	c := session.Committer{
		Editor:  buf,
		Options: session.Options{Override: true, Layout: s.DateLayout, Use24Hour: s.Use24Hour},
	}

	report := Report{Found: len(ms)}
	for i := len(ms) - 1; i >= 0; i-- {
		sess := session.New(uint64(i+1), ms[i], session.OpenedCommand)
		res, err := c.Commit(sess, sess.RawValue)
		if err != nil {
			return "", report, fmt.Errorf("rewrite %q: %w", ms[i].Raw, err)
		}
		if res == session.Written {
			report.Rewritten++
		}
	}
	return buf.Text(), report, nil
}
