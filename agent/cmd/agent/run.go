package main

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/KaseiFR/sauna/agent/internal/config"
	"github.com/KaseiFR/sauna/agent/internal/logging"
)

func newRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Load the configuration and keep it current until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(opts.configPaths...)
			if err != nil {
				return err
			}
			logger, err := logging.New(os.Stderr, cfg.Settings.Logging)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			slog.Info("sauna-agent starting",
				"id", cfg.ID,
				"sources", cfg.Sources,
				"hostname", cfg.Settings.Hostname,
				"periodicity", cfg.Settings.Interval(),
			)
			logEntries(cfg)

			r := &reloader{logOut: os.Stderr}
			r.current.Store(cfg)

			// Reloads are serialized by Watch; readers only ever see a fully
			// built Config.
			go func() {
				if err := config.Watch(ctx, opts.configPaths, r.apply); err != nil {
					slog.Error("config watcher stopped", "err", err)
				}
			}()

			if len(cfg.Plugins) == 0 {
				slog.Warn("no plugins configured, agent will idle")
			}

			<-ctx.Done()
			slog.Info("sauna-agent shutting down")
			return nil
		},
	}
}

// reloader holds the active Config and keeps the default logger in line with
// its logging settings.
type reloader struct {
	current atomic.Pointer[config.Config]
	logOut  io.Writer
}

func (r *reloader) apply(updated *config.Config) {
	prev := r.current.Swap(updated)
	if prev == nil || prev.Settings.Logging != updated.Settings.Logging {
		logger, err := logging.New(r.logOut, updated.Settings.Logging)
		if err != nil {
			slog.Error("cannot rebuild logger, keeping previous", "err", err)
		} else {
			slog.SetDefault(logger)
		}
	}
	var prevID string
	if prev != nil {
		prevID = prev.ID
	}
	slog.Info("config hot-reloaded", "id", updated.ID, "previous", prevID)
	logEntries(updated)
}

// logEntries logs the plugins and consumers of cfg in execution order.
func logEntries(cfg *config.Config) {
	for _, p := range cfg.Plugins {
		slog.Info("registered plugin", "type", p.Type(), "checks", len(p.Checks()))
	}
	for _, c := range cfg.Consumers {
		slog.Info("registered consumer", "type", c.Type())
	}
}
