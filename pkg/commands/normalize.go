package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/commands/options"
	"tableflip.dev/datepick/pkg/runner/normalize"
	"tableflip.dev/datepick/pkg/store"
)

func addNormalize(topLevel *cobra.Command) {
	lo := &options.LayoutOptions{}
	wo := &options.WriteOptions{}
	logo := &options.LogOptions{}

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Rewrite every date and time in a file in the preferred format.",
		Example: `
datepick normalize notes.txt
datepick normalize --layout=MM/DD/YYYY --12h -w notes.txt
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a file")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s, err := p.Settings(ctx)
			if err != nil {
				return err
			}
			if err := lo.Apply(&s); err != nil {
				return err
			}
			logger, closeLog, err := logo.Logger()
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()

			n := normalize.Normalize{
				Path:     args[0],
				Settings: s,
				Write:    wo.Write,
				Logger:   logger,
			}
			return n.Do(ctx)
		},
	}

	options.AddLayoutArgs(cmd, lo)
	options.AddWriteArgs(cmd, wo)
	options.AddLogArgs(cmd, logo)
	topLevel.AddCommand(cmd)
}
