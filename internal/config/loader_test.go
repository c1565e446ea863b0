package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig drops a yaml file into a fake XDG config home and points
// the loader at it.
func writeConfig(t *testing.T, name, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const minimalYAML = `
menu:
  - key: t
    desc: Terminal
    cmd: foot
`

func TestLoadMinimal(t *testing.T) {
	writeConfig(t, "config.yaml", minimalYAML)

	cfg, err := Load("")
	require.NoError(t, err)

	// Everything except the menu comes from defaults.
	assert.Equal(t, "#282828", cfg.Background)
	assert.Equal(t, "center", cfg.Anchor)
	assert.Equal(t, "monospace 10", cfg.Font)
	assert.Equal(t, "escape", cfg.CancelKey)
	assert.Equal(t, "backspace", cfg.BackKey)
	assert.Equal(t, "ignore", cfg.OnUnmatched)
	assert.Equal(t, time.Duration(0), cfg.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.Len(t, cfg.Menu, 1)
	assert.Equal(t, "foot", cfg.Menu[0].Cmd)
}

func TestLoadDerivedPadding(t *testing.T) {
	writeConfig(t, "config.yaml", `
corner_radius: 14
menu:
  - {key: t, desc: Terminal, cmd: foot}
`)

	cfg, err := Load("")
	require.NoError(t, err)

	// Unset padding follows the corner radius; unset column padding
	// follows the padding.
	assert.Equal(t, 14.0, cfg.Padding)
	assert.Equal(t, 14.0, cfg.ColumnPadding)
}

func TestLoadExplicitPadding(t *testing.T) {
	writeConfig(t, "config.yaml", `
corner_radius: 14
padding: 4
menu:
  - {key: t, desc: Terminal, cmd: foot}
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.Padding)
	assert.Equal(t, 4.0, cfg.ColumnPadding)
}

func TestLoadNamedConfig(t *testing.T) {
	writeConfig(t, "screenshot.yaml", `
menu:
  - {key: r, desc: Region, cmd: grim -g "$(slurp)"}
`)

	cfg, err := Load("screenshot")
	require.NoError(t, err)
	require.Len(t, cfg.Menu, 1)

	_, err = Load("missing")
	require.Error(t, err)
}

func TestLoadLiteralPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "own.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Menu, 1)
}

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Menu)

	// The sample must be on disk and valid enough to build a tree.
	_, err = os.Stat(filepath.Join(home, appName, "config.yaml"))
	require.NoError(t, err)
	_, err = cfg.BuildTree("")
	require.NoError(t, err)
}

func TestLoadNamedConfigIsNotCreated(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	_, err := Load("screenshot")
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(home, appName, "screenshot.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadEnvOverride(t *testing.T) {
	writeConfig(t, "config.yaml", minimalYAML)
	t.Setenv("KEYHUD_TIMEOUT", "10s")
	t.Setenv("KEYHUD_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad color", "background: red\nmenu: [{key: t, desc: T, cmd: foot}]"},
		{"bad anchor", "anchor: middle\nmenu: [{key: t, desc: T, cmd: foot}]"},
		{"negative timeout", "timeout: -5s\nmenu: [{key: t, desc: T, cmd: foot}]"},
		{"bad cancel key", "cancel_key: hyper+x\nmenu: [{key: t, desc: T, cmd: foot}]"},
		{"bad unmatched policy", "on_unmatched: explode\nmenu: [{key: t, desc: T, cmd: foot}]"},
		{"empty font", "font: \"  \"\nmenu: [{key: t, desc: T, cmd: foot}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeConfig(t, "config.yaml", tt.yaml)
			_, err := Load("")
			require.Error(t, err)
		})
	}
}
