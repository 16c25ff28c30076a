package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConnectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Ask the wallet agent to authorize an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			portal := app.newPortal(writerNotifier{w: cmd.OutOrStdout()})
			defer portal.Close()

			// A refused connection is reported, not treated as a command failure.
			if err := portal.Connect(cmd.Context()); err != nil {
				_, writeErr := fmt.Fprintf(cmd.ErrOrStderr(), "connect: %v\n", err)
				return writeErr
			}

			session := portal.Session()
			if !session.Connected() {
				return nil
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "connected as %s (%d waves)\n", session.Account, len(portal.Records()))
			return err
		},
	}
}
