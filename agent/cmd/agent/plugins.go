package main

import (
	"github.com/spf13/cobra"

	"github.com/KaseiFR/sauna/agent/internal/config"
)

func newPluginsCommand(opts *options) *cobra.Command {
	var (
		consumers bool
		format    string
	)
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Print the normalized plugin entries in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPaths...)
			if err != nil {
				return err
			}
			entries := cfg.Plugins
			if consumers {
				entries = cfg.Consumers
			}
			return write(cmd.OutOrStdout(), format, entries)
		},
	}
	cmd.Flags().BoolVar(&consumers, "consumers", false, "print the consumers section instead")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml | json")
	return cmd
}
