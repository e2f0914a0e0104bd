package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/KaseiFR/sauna/agent/internal/config"
)

// consoleTimeFormat is the timestamp layout of the console format.
const consoleTimeFormat = "15:04:05"

// New returns a logger writing to w in the configured format and level.
// Empty settings mean console output at info level.
func New(w io.Writer, cfg config.LogSettings) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(cfg.Format) {
	case config.LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	case config.LogFormatConsole, "":
		// charmbracelet levels share slog's numeric values.
		h := log.NewWithOptions(w, log.Options{
			Level:           log.Level(level),
			ReportTimestamp: true,
			TimeFormat:      consoleTimeFormat,
		})
		return slog.New(h), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging: %w", err)
	}
	return level, nil
}
