package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaseiFR/sauna/agent/internal/plugins"
)

// Default values applied when keys are absent from every source.
const (
	DefaultPeriodicity = 120 // seconds
	DefaultConcurrency = 1
	DefaultLogLevel    = "info"
	DefaultLogFormat   = LogFormatConsole
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config is the effective agent configuration built from one or more sources.
type Config struct {
	// ID identifies this load in logs. Every Load or reload gets a new one.
	ID string

	// Sources lists the files that were merged, in merge order.
	Sources []string

	// Tree is the merged configuration exactly as decoded, include keys removed.
	Tree map[string]any

	Settings Settings

	// Plugins is the normalized plugins section, in check-execution order.
	Plugins []plugins.Entry

	// Consumers is the normalized consumers section.
	Consumers []plugins.Entry
}

// Settings is the typed view of the agent-level keys of the merged tree.
type Settings struct {
	// Periodicity is the number of seconds between two check runs.
	Periodicity int `yaml:"periodicity"`

	// Hostname is reported with every check result. Defaults to the local
	// host name.
	Hostname string `yaml:"hostname"`

	// Concurrency is the number of checks allowed to run at once.
	Concurrency int `yaml:"concurrency"`

	// ExtraPlugins lists directories searched for additional plugins.
	ExtraPlugins []string `yaml:"extra_plugins"`

	Logging LogSettings `yaml:"logging"`
}

// Interval returns Periodicity as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.Periodicity) * time.Second
}

// LogSettings configures the agent's own logging.
type LogSettings struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: console | json.
	Format string `yaml:"format"`
}

// Build derives a Config from an already merged tree. Load calls it; it is
// exported for callers that assemble the tree themselves.
func Build(t map[string]any, sources []string) (*Config, error) {
	if t == nil {
		t = make(map[string]any)
	}
	settings, err := decodeSettings(t)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validate(settings); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Config{
		ID:        uuid.NewString(),
		Sources:   sources,
		Tree:      t,
		Settings:  settings,
		Plugins:   plugins.Section(t, "plugins"),
		Consumers: plugins.Section(t, "consumers"),
	}, nil
}

// decodeSettings reads the agent-level keys out of t and fills defaults for
// the ones left unset.
func decodeSettings(t map[string]any) (Settings, error) {
	var s Settings
	data, err := yaml.Marshal(t)
	if err != nil {
		return s, fmt.Errorf("encode settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decode settings: %w", err)
	}
	if err := mergo.Merge(&s, defaults()); err != nil {
		return s, fmt.Errorf("apply defaults: %w", err)
	}
	return s, nil
}

// defaults returns Settings holding the default values.
func defaults() Settings {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return Settings{
		Periodicity: DefaultPeriodicity,
		Hostname:    host,
		Concurrency: DefaultConcurrency,
		Logging: LogSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// validate checks the agent-level settings. Plugin and consumer entries are
// left to the check runner.
func validate(s Settings) error {
	if s.Periodicity <= 0 {
		return fmt.Errorf("periodicity must be positive")
	}
	if s.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", s.Logging.Level)
	}
	switch s.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("logging.format: unknown format %q", s.Logging.Format)
	}
	return nil
}
