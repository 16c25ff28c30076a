package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/waveportal-cli/internal/application"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>",
		Short: "Send a wave and wait until it is mined",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				return errors.New("message is empty")
			}

			app, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			portal := app.newPortal(writerNotifier{w: cmd.OutOrStdout()})
			defer portal.Close()

			ctx := cmd.Context()
			if !portal.Start(ctx) {
				if err := portal.Connect(ctx); err != nil {
					return fmt.Errorf("connect: %w", err)
				}
			}
			if !portal.Session().Connected() {
				return domain.ErrNotConnected
			}

			portal.SetPendingText(message)

			result, err := runSubmitSpinner(ctx, cmd.ErrOrStderr(), portal, func(ctx context.Context) (application.SubmissionResult, error) {
				return portal.Submit(ctx)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "mined %s in block %d (%d waves)\n", result.Receipt.Hash, result.Receipt.BlockNumber, len(portal.Records()))
			return err
		},
	}
}
