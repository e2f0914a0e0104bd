package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaseiFR/sauna/agent/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogSettings{Level: "info", Format: "json"})
	require.NoError(t, err)

	logger.Debug("config: hidden")
	logger.Info("config: loaded", "plugins", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug record should be filtered at info level")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "config: loaded", rec["msg"])
	assert.Equal(t, float64(2), rec["plugins"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogSettings{Level: "debug", Format: "console"})
	require.NoError(t, err)

	logger.Debug("config: watching for changes", "path", "/etc/sauna.yml")

	out := buf.String()
	assert.Contains(t, out, "config: watching for changes")
	assert.Contains(t, out, "/etc/sauna.yml")
}

func TestNew_ConsoleFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, config.LogSettings{Level: "warn", Format: "console"})
	require.NoError(t, err)

	logger.Info("config: reloaded")
	assert.Empty(t, buf.String())
}

func TestNew_Defaults(t *testing.T) {
	logger, err := New(&bytes.Buffer{}, config.LogSettings{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogSettings
	}{
		{"bad level", config.LogSettings{Level: "loud"}},
		{"bad format", config.LogSettings{Format: "xml"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(&bytes.Buffer{}, tc.cfg)
			assert.Error(t, err)
		})
	}
}
