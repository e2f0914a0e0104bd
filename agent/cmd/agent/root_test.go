package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KaseiFR/sauna/agent/internal/config"
)

const baseYAML = `
periodicity: 60
consumers:
  Stdout: {}
plugins:
  Memory:
    checks:
      - {type: used_percent, warn: 80%, crit: 90%}
  Disk:
    config: {myconf: myvalue}
    checks:
      - {type: used_percent, warn: 80%, crit: 90%}
      - {type: used_inodes_percent, warn: 80%, crit: 90%}
`

const overrideYAML = `
hostname: host-1.domain.tld
consumers:
  NSCA: {}
`

// execute runs the root command with args and returns its standard output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfigs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "sauna.yml")
	override := filepath.Join(dir, "prod.yml")
	require.NoError(t, os.WriteFile(base, []byte(baseYAML), 0o600))
	require.NoError(t, os.WriteFile(override, []byte(overrideYAML), 0o600))
	return base, override
}

func TestShow_MergedTree(t *testing.T) {
	base, override := writeConfigs(t)

	out, err := execute(t, "show", "-c", base, "-c", override)
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "host-1.domain.tld", tree["hostname"])
	assert.Equal(t, 60, tree["periodicity"])
	assert.Len(t, tree["consumers"], 2)
}

func TestShow_Query(t *testing.T) {
	base, override := writeConfigs(t)

	out, err := execute(t, "show", "-c", base, "-c", override,
		"--format", "json", "--query", "[.consumers | keys[]]")
	require.NoError(t, err)

	var keys []string
	require.NoError(t, json.Unmarshal([]byte(out), &keys))
	assert.Equal(t, []string{"NSCA", "Stdout"}, keys)
}

func TestShow_BadQuery(t *testing.T) {
	base, _ := writeConfigs(t)
	_, err := execute(t, "show", "-c", base, "--query", ".plugins[")
	assert.Error(t, err)
}

func TestShow_BadFormat(t *testing.T) {
	base, _ := writeConfigs(t)
	_, err := execute(t, "show", "-c", base, "--format", "xml")
	assert.Error(t, err)
}

func TestPlugins_Normalized(t *testing.T) {
	base, _ := writeConfigs(t)

	out, err := execute(t, "plugins", "-c", base, "--format", "json")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Disk", entries[0]["type"])
	assert.Len(t, entries[0]["checks"], 2)
	assert.Equal(t, map[string]any{"myconf": "myvalue"}, entries[0]["config"])
	assert.Equal(t, "Memory", entries[1]["type"])
	assert.Len(t, entries[1]["checks"], 1)
}

func TestPlugins_Consumers(t *testing.T) {
	base, override := writeConfigs(t)

	out, err := execute(t, "plugins", "--consumers", "-c", base, "-c", override)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "NSCA", entries[0]["type"])
	assert.Equal(t, "Stdout", entries[1]["type"])
}

func TestMissingConfig(t *testing.T) {
	_, err := execute(t, "show", "-c", filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestReloader_RebuildsLogger(t *testing.T) {
	prevLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prevLogger) })

	initial, err := config.Build(map[string]any{}, nil)
	require.NoError(t, err)
	updated, err := config.Build(map[string]any{
		"logging": map[string]any{"level": "debug", "format": "json"},
	}, nil)
	require.NoError(t, err)

	var out bytes.Buffer
	r := &reloader{logOut: &out}
	r.current.Store(initial)
	r.apply(updated)

	assert.Same(t, updated, r.current.Load())
	slog.Debug("after reload")

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var last map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last), "expected JSON output, got %q", out.String())
	assert.Equal(t, "after reload", last["msg"])
	assert.Equal(t, "DEBUG", last["level"])
}

func TestReloader_KeepsLoggerWhenUnchanged(t *testing.T) {
	sentinel := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	prevLogger := slog.Default()
	slog.SetDefault(sentinel)
	t.Cleanup(func() { slog.SetDefault(prevLogger) })

	initial, err := config.Build(map[string]any{"periodicity": 60}, nil)
	require.NoError(t, err)
	updated, err := config.Build(map[string]any{"periodicity": 30}, nil)
	require.NoError(t, err)

	r := &reloader{logOut: &bytes.Buffer{}}
	r.current.Store(initial)
	r.apply(updated)

	assert.Same(t, sentinel, slog.Default())
	assert.Equal(t, 30, r.current.Load().Settings.Periodicity)
}
