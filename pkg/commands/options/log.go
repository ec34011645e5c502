package options

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// LogOptions
type LogOptions struct {
	File  string
	Debug bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.Flags().StringVar(&o.File, "log-file", "",
		"Write a debug log to this file.")
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		"Include debug records in the log.")
}

// Logger opens the log file. Without one, logs are discarded. The returned
// close func is never nil.
func (o *LogOptions) Logger() (*slog.Logger, func() error, error) {
	if o.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	f, err := os.OpenFile(o.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := slog.LevelInfo
	if o.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f.Close, nil
}
