package options

import (
	"github.com/spf13/cobra"
)

// WriteOptions
type WriteOptions struct {
	Write bool
}

func AddWriteArgs(cmd *cobra.Command, o *WriteOptions) {
	cmd.Flags().BoolVarP(&o.Write, "write", "w", false,
		"Write the result back to the file instead of printing it.")
}
