package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, "keyhud")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// run executes a subcommand against a fresh root and returns the exit
// code the process would use, plus captured output.
func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	root := newRootCmd(BuildInfo{Version: "test"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	code := ExitOK
	if err := root.Execute(); err != nil {
		var coded *codedError
		if errors.As(err, &coded) {
			code = coded.code
		} else {
			code = ExitFailure
		}
	}
	return code, stdout.String(), stderr.String()
}

const goodYAML = `
menu:
  - key: t
    desc: Terminal
    cmd: foot
  - key: p
    desc: Power
    submenu:
      - {key: s, desc: Suspend, cmd: systemctl suspend}
menus:
  shot:
    - {key: r, desc: Region, cmd: grim}
`

func TestValidateCommand(t *testing.T) {
	writeConfig(t, "config.yaml", goodYAML)

	code, stdout, _ := run(t, "validate")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, `menu "default"`)
	assert.Contains(t, stdout, `menu "shot"`)
}

func TestValidateCommandBadConfig(t *testing.T) {
	writeConfig(t, "config.yaml", `
menu:
  - {key: x, desc: one, cmd: "true"}
  - {key: x, desc: two, cmd: "false"}
`)

	code, _, stderr := run(t, "validate")
	assert.Equal(t, ExitConfig, code)
	assert.Contains(t, stderr, "duplicate binding")
}

func TestValidateCommandUnreadableConfig(t *testing.T) {
	writeConfig(t, "config.yaml", "menu: [\n")

	code, _, _ := run(t, "validate")
	assert.Equal(t, ExitConfig, code)
}

func TestTreeCommand(t *testing.T) {
	writeConfig(t, "config.yaml", goodYAML)

	code, stdout, _ := run(t, "tree")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "Terminal")
	assert.Contains(t, stdout, "+Power")
	assert.Contains(t, stdout, "systemctl suspend")
}

func TestTreeCommandNamedMenu(t *testing.T) {
	writeConfig(t, "config.yaml", goodYAML)

	code, stdout, _ := run(t, "tree", "--menu", "shot")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "Region")
	assert.NotContains(t, stdout, "Terminal")

	code, _, _ = run(t, "tree", "--menu", "nope")
	assert.Equal(t, ExitConfig, code)
}

func TestVersionCommand(t *testing.T) {
	code, _, _ := run(t, "version")
	assert.Equal(t, ExitOK, code)
}

func TestCodedErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := configErr(inner)
	assert.ErrorIs(t, err, inner)

	var coded *codedError
	require.True(t, errors.As(grabErr(inner), &coded))
	assert.Equal(t, ExitGrab, coded.code)
}
