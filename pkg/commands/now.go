package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/commands/options"
	"tableflip.dev/datepick/pkg/runner/now"
	"tableflip.dev/datepick/pkg/store"
)

func addNow(topLevel *cobra.Command) {
	ko := &options.KindOptions{}
	lo := &options.LayoutOptions{}
	ao := &options.AtOptions{}

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current date or time in the preferred format.",
		Example: `
datepick now
datepick now --kind=datetime --24h
datepick now -k time --at=2020-02-28T21:15
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			kind, err := ko.GetKind()
			if err != nil {
				return err
			}
			at, err := ao.GetAt()
			if err != nil {
				return err
			}
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

			n := now.Now{
				Kind:     kind,
				Settings: s,
				At:       at,
			}
			return n.Do(ctx)
		},
	}

	options.AddKindArgs(cmd, ko)
	options.AddLayoutArgs(cmd, lo)
	options.AddAtArgs(cmd, ao)
	topLevel.AddCommand(cmd)
}
