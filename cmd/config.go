package cmd

import (
	"fmt"

	configtoml "github.com/bnema/waveportal-cli/internal/adapters/config/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the wp config file",
	}

	configCmd.AddCommand(newConfigInitCmd(opts), newConfigShowCmd(opts))
	return configCmd
}

func newConfigInitCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configtoml.Defaults()
			cfg.Path = opts.configPath
			if cfg.Path == "" {
				path, err := configtoml.DefaultPath()
				if err != nil {
					return err
				}
				cfg.Path = path
			}

			if err := configtoml.Write(cfg, force); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.Path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configtoml.Load(viper.New(), opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			data, err := configtoml.Encode(cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfg.Path, data)
			return err
		},
	}
}
