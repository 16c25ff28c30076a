package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "wp",
		Short:         "WavePortal CLI (wp): wave at a contract from your terminal",
		Long:          "wp connects to a wallet agent, sends messages (waves) to the WavePortal contract and keeps the list of waves in step with the chain.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.waveportal/config.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(opts),
		newAccountsCmd(opts),
		newConnectCmd(opts),
		newListCmd(opts),
		newCountCmd(opts),
		newSendCmd(opts),
		newWatchCmd(opts),
	)

	return rootCmd
}
