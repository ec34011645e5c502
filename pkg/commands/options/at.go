package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/format"
)

// AtOptions pin the clock to a fixed moment.
type AtOptions struct {
	AtString string
}

func AddAtArgs(cmd *cobra.Command, o *AtOptions) {
	cmd.Flags().StringVar(&o.AtString, "at", "",
		`Use this moment instead of now, example: --at="2020-02-28" or --at="2020-02-28T09:30".`)
}

// GetAt returns the pinned moment, or the zero time when none was given.
func (o *AtOptions) GetAt() (time.Time, error) {
	if o.AtString == "" {
		return time.Time{}, nil
	}
	if t, err := format.ParsePicker(o.AtString, format.DateTime); err == nil {
		return t, nil
	}
	t, err := format.ParsePicker(o.AtString, format.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at %q: want %s or %s", o.AtString, format.PickerDate, format.PickerDateTime)
	}
	return t, nil
}
