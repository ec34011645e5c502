package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/datepick/pkg/format"
	"tableflip.dev/datepick/pkg/settings"
)

// LayoutOptions select the date layout and clock used for output.
type LayoutOptions struct {
	Layout string
	H24    bool
	h12    bool
}

func AddLayoutArgs(cmd *cobra.Command, o *LayoutOptions) {
	names := make([]string, 0, len(format.Layouts()))
	for _, l := range format.Layouts() {
		names = append(names, l.String())
	}
	cmd.Flags().StringVarP(&o.Layout, "layout", "l", "",
		fmt.Sprintf("Preferred date layout, one of %s. Defaults to the saved setting.", strings.Join(names, ", ")))
	cmd.Flags().BoolVar(&o.H24, "24h", false,
		"Use the 24-hour clock.")
	cmd.Flags().BoolVar(&o.h12, "12h", false,
		"Use the 12-hour clock.")
	cmd.MarkFlagsMutuallyExclusive("24h", "12h")
	_ = cmd.RegisterFlagCompletionFunc("layout", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

// Apply overlays the flags that were given on s.
func (o *LayoutOptions) Apply(s *settings.Settings) error {
	if o.Layout != "" {
		l, err := format.ParseLayout(o.Layout)
		if err != nil {
			return err
		}
		s.DateLayout = l
	}
	switch {
	case o.H24:
		s.Use24Hour = true
	case o.h12:
		s.Use24Hour = false
	}
	return nil
}
