package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/runner/prefs"
	"tableflip.dev/datepick/pkg/store"
)

func addSettings(topLevel *cobra.Command) {
	reset := false

	cmd := &cobra.Command{
		Use:   "settings [KEY [VALUE]]",
		Short: "Show or change the stored widget settings.",
		Example: `
datepick settings
datepick settings date_layout DD.MM.YYYY
datepick settings use_24_hour
datepick settings --reset blur_delay
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 2 {
				return errors.New("accepts at most a key and a value")
			}
			if reset && len(args) == 2 {
				return errors.New("--reset takes only a key")
			}
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return settingCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := store.Load(nil)
			if err != nil {
				return oo.HandleError(err)
			}
			s := prefs.Prefs{
				Persistence: p,
				Reset:       reset,
				JSON:        oo.JSON,
			}
			if len(args) > 0 {
				s.Key = args[0]
			}
			if len(args) > 1 {
				s.Value = args[1]
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Erase the stored value so the default applies again.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
