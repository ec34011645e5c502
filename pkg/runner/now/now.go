// Package now prints the current date or time the way the editor would
// insert it.
package now

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/settings"
)

type Now struct {
	Kind     format.Kind
	Settings settings.Settings
	// At replaces the clock when set.
	At  time.Time
	Out io.Writer
}

func (n *Now) Do(ctx context.Context) error {
	at := n.At
	if at.IsZero() {
		at = time.Now()
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	f := format.Preferred(n.Settings.DateLayout, n.Kind, n.Settings.Use24Hour)
	_, err := fmt.Fprintln(out, format.Render(at, f))
	return err
}
