package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/waveportal-cli/internal/adapters/tui"
	"github.com/spf13/cobra"
)

const (
	logFileMode = 0o600
	logDirMode  = 0o700
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Open the interactive wave screen",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			logFile, err := openLogFile(cfg.LogFile())
			if err != nil {
				return err
			}
			defer logFile.Close()

			app, err := wireAppWithConfig(cfg, logFile)
			if err != nil {
				return err
			}
			defer app.close()

			notifier := tui.NewNotifier()
			portal := app.newPortal(notifier)
			defer portal.Close()

			ctx := cmd.Context()
			portal.Start(ctx)

			return tui.Run(ctx, tui.New(ctx, portal, notifier))
		},
	}
}

// openLogFile keeps log lines off the screen the TUI draws on.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), logDirMode); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFileMode)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return file, nil
}
