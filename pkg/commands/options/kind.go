package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/format"
)

// KindOptions choose between a date, a time, or both.
type KindOptions struct {
	Kind string
}

func AddKindArgs(cmd *cobra.Command, o *KindOptions) {
	cmd.Flags().StringVarP(&o.Kind, "kind", "k", format.Date.String(),
		`What to print: "date", "time" or "datetime".`)
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{format.Date.String(), format.Time.String(), format.DateTime.String()}, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *KindOptions) GetKind() (format.Kind, error) {
	return format.ParseKind(o.Kind)
}
