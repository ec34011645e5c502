package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/commands/options"
	"tableflip.dev/datepick/pkg/runner/edit"
	"tableflip.dev/datepick/pkg/store"
)

func addEdit(topLevel *cobra.Command) {
	lo := &options.LayoutOptions{}
	logo := &options.LogOptions{}
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a file with an inline date and time picker.",
		Example: `
datepick edit notes.txt
datepick edit --layout=DD.MM.YYYY --24h notes.txt
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

			e := edit.Edit{
				Path:        args[0],
				Settings:    s,
				Persistence: p,
				Watch:       !wo.NoWatch,
				Logger:      logger,
			}
			return e.Do(ctx)
		},
	}

	options.AddLayoutArgs(cmd, lo)
	options.AddLogArgs(cmd, logo)
	options.AddWatchArgs(cmd, wo)
	topLevel.AddCommand(cmd)
}
