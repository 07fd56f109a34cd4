package commands_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/getcodekit/codekit/cmd/codekit/commands"
	"github.com/getcodekit/codekit/pkg/paths"
	"github.com/getcodekit/codekit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	var buf bytes.Buffer
	cmd := commands.NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codekit version")
}

func TestNoCommandFails(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)
}

func TestUpThenStatusGlobal(t *testing.T) {
	installDir := filepath.Join(t.TempDir(), ".codekit")
	t.Setenv(paths.EnvHome, installDir)

	releaseDir := t.TempDir()
	testutil.CreateFile(t, releaseDir, "kit-manifest.yaml",
		"kitName: starter\nversion: 1.0.0\nfiles:\n  - rules/go.md\n")
	testutil.CreateFile(t, releaseDir, "rules/go.md", "Always gofmt.\n")

	out, err := execute(t, "up", "--global", "--non-interactive", "--format", "text", releaseDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Synchronized starter")
	assert.Contains(t, out, "1 created")
	assert.FileExists(t, filepath.Join(installDir, "rules/go.md"))

	out, err = execute(t, "status", "--global", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "starter 1.0.0 (global)")
	assert.Contains(t, out, "rules/go.md")
}

func TestUpDryRunWritesNothing(t *testing.T) {
	installDir := filepath.Join(t.TempDir(), ".codekit")
	t.Setenv(paths.EnvHome, installDir)

	releaseDir := t.TempDir()
	testutil.CreateFile(t, releaseDir, "rules/go.md", "content\n")

	out, err := execute(t, "up", "--global", "--non-interactive", "--dry-run", "--format", "text",
		"--kit", "bare", releaseDir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 created")
	assert.NoDirExists(t, installDir)
}

func TestStatusWithoutInstallation(t *testing.T) {
	installDir := filepath.Join(t.TempDir(), ".codekit")
	t.Setenv(paths.EnvHome, installDir)

	out, err := execute(t, "status", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "No tracked installation")
}

func TestConfigShowsOrigins(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, t.TempDir())

	out, err := execute(t, "config", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "sync.conflictPolicy")
	assert.Contains(t, out, "(default)")
}
