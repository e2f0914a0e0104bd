package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/KaseiFR/sauna/agent/internal/config"
)

func newShowCommand(opts *options) *cobra.Command {
	var (
		query  string
		format string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective merged configuration",
		Example: `  sauna-agent show -c sauna.yml -c prod.yml
  sauna-agent show --query '.plugins[].type'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPaths...)
			if err != nil {
				return err
			}
			if query == "" {
				return write(cmd.OutOrStdout(), format, cfg.Tree)
			}
			results, err := runQuery(query, cfg.Tree)
			if err != nil {
				return err
			}
			for _, r := range results {
				if err := write(cmd.OutOrStdout(), format, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "jq expression applied to the merged tree")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml | json")
	return cmd
}

// runQuery evaluates a jq expression against the merged tree.
func runQuery(expr string, t map[string]any) ([]any, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	var out []any
	iter := q.Run(t)
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, ok := v.(error); ok {
			if herr, ok := err.(*gojq.HaltError); ok && herr.Value() == nil {
				return out, nil
			}
			return nil, fmt.Errorf("query: %w", err)
		}
		out = append(out, v)
	}
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
