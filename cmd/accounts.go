package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/waveportal-cli/internal/application"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts the wallet agent has already authorized",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			accounts, err := app.wallet.Accounts(cmd.Context())
			if errors.Is(err, domain.ErrWalletUnavailable) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), application.NoticeWalletUnavailable)
				return err
			}
			if err != nil {
				return fmt.Errorf("list authorized accounts: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(accounts) == 0 {
				_, err = fmt.Fprintln(out, "no authorized accounts")
				return err
			}
			for _, account := range accounts {
				if _, err := fmt.Fprintln(out, account); err != nil {
					return err
				}
			}

			return nil
		},
	}
}
