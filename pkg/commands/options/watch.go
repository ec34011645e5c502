package options

import (
	"github.com/spf13/cobra"
)

// WatchOptions
type WatchOptions struct {
	NoWatch bool
}

func AddWatchArgs(cmd *cobra.Command, o *WatchOptions) {
	cmd.Flags().BoolVar(&o.NoWatch, "no-watch", false,
		"Do not reload the file when it changes on disk.")
}
