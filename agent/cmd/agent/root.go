package main

import (
	"github.com/spf13/cobra"
)

// defaultConfigPath is read when no --config flag is given.
const defaultConfigPath = "sauna.yml"

// options holds the flags shared by every subcommand.
type options struct {
	configPaths []string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sauna-agent",
		Short: "Health-check agent",
		Long: `sauna-agent runs health checks and hands their results to consumers.

Configuration is read from one or more files given with --config, merged in
order: later files override scalars, extend lists and add to sections of
earlier ones. Files may pull in others with a top-level include key.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringArrayVarP(&opts.configPaths, "config", "c",
		[]string{defaultConfigPath}, "config file, repeat to merge several (later wins)")

	root.AddCommand(newRunCommand(opts))
	root.AddCommand(newShowCommand(opts))
	root.AddCommand(newPluginsCommand(opts))
	return root
}
