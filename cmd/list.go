package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/waveportal-cli/internal/adapters/render/records"
	"github.com/bnema/waveportal-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every wave recorded by the contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			entries, err := app.readEntries(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			out := cmd.OutOrStdout()
			_, err = fmt.Fprintln(out, records.Render(out, entries, records.RenderOptions{}))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print waves as JSON")
	return cmd
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the total number of waves",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := wireApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			ledger, err := app.ledgers.Open(cmd.Context(), "")
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
			}
			defer ledger.Close()

			count, err := ledger.ReadCount(cmd.Context())
			if err != nil {
				return fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), count)
			return err
		},
	}
}

// readEntries performs one read-only bulk read.
func (a *app) readEntries(ctx context.Context) ([]domain.Entry, error) {
	ledger, err := a.ledgers.Open(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
	}
	defer ledger.Close()

	history, err := ledger.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReadFailed, err)
	}

	entries := make([]domain.Entry, 0, len(history))
	for _, record := range history {
		entries = append(entries, record.Entry(a.location))
	}

	return entries, nil
}
