package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/commands/options"
	"tableflip.dev/datepick/pkg/runner/scan"
	"tableflip.dev/datepick/pkg/store"
)

func addScan(topLevel *cobra.Command) {
	lo := &options.LayoutOptions{}
	showFormat := false
	calendar := false

	cmd := &cobra.Command{
		Use:   "scan [FILE]",
		Short: "List the dates and times found in a file.",
		Example: `
datepick scan notes.txt
datepick scan --format --calendar notes.txt
cat notes.txt | datepick scan --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			st, err := p.Settings(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			if err := lo.Apply(&st); err != nil {
				return oo.HandleError(err)
			}

			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			s := scan.Scan{
				Path:       path,
				Layout:     st.DateLayout,
				JSON:       oo.JSON,
				ShowFormat: showFormat,
				Calendar:   calendar,
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddLayoutArgs(cmd, lo)
	cmd.Flags().BoolVar(&showFormat, "format", false, "Show the format each value was written in.")
	cmd.Flags().BoolVar(&calendar, "calendar", false, "Print a month calendar for every month that has dates.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
