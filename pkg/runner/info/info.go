package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/datepick/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("DATEPICK_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "DATEPICK_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Fprintln(out, "DATEPICK_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	fmt.Fprintf(out, "Overrides:\n")
	overrides := n.Config.Overrides()
	for _, k := range store.SortedKeys(overrides) {
		fmt.Fprintf(out, "  %s = %s\n", k, overrides[k])
	}
	if len(overrides) == 0 {
		fmt.Fprintf(out, "  %s\n", "none")
	}

	fmt.Fprintf(out, "Stored settings:\n")
	stored := n.Persistence.Stored(ctx)
	for _, k := range store.SortedKeys(stored) {
		fmt.Fprintf(out, "  %s = %s\n", k, stored[k])
	}
	if len(stored) == 0 {
		fmt.Fprintf(out, "  %s\n", "no stored settings")
	}

	return nil
}
