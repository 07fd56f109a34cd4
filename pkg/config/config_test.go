package config_test

import (
	"path/filepath"
	"testing"

	"github.com/getcodekit/codekit/pkg/config"
	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsOnly(t *testing.T) {
	r, err := config.Resolve("", "", nil)
	require.NoError(t, err)

	assert.Equal(t, "docs", r.K.String("paths.docs"))
	assert.Equal(t, "keep", r.K.String("sync.conflictPolicy"))
	assert.Equal(t, config.LayerDefault, r.Origins["paths.docs"])
}

func TestResolveLocalOverridesGlobalAtLeafLevel(t *testing.T) {
	dir := t.TempDir()
	globalPath := testutil.CreateFile(t, dir, "global.toml", `
[paths]
docs = "documentation"
plans = "roadmaps"

[sync]
backup = false
`)
	localPath := testutil.CreateFile(t, dir, "local.toml", `
[paths]
docs = "project-docs"
`)

	r, err := config.Resolve(globalPath, localPath, nil)
	require.NoError(t, err)

	// Local leaf wins.
	assert.Equal(t, "project-docs", r.K.String("paths.docs"))
	assert.Equal(t, config.LayerLocal, r.Origins["paths.docs"])

	// Sibling keys under the same object survive the merge.
	assert.Equal(t, "roadmaps", r.K.String("paths.plans"))
	assert.Equal(t, config.LayerGlobal, r.Origins["paths.plans"])

	// Untouched keys come from defaults.
	assert.Equal(t, "skills", r.K.String("paths.skills"))
	assert.Equal(t, config.LayerDefault, r.Origins["paths.skills"])

	assert.False(t, r.K.Bool("sync.backup"))
	assert.Equal(t, config.LayerGlobal, r.Origins["sync.backup"])
}

func TestResolveArrayLeafReplacedWholesale(t *testing.T) {
	dir := t.TempDir()
	globalPath := testutil.CreateFile(t, dir, "global.toml", `
[sync]
exclude = ["*.bak", "*.tmp"]
`)
	localPath := testutil.CreateFile(t, dir, "local.toml", `
[sync]
exclude = ["secrets/**"]
`)

	r, err := config.Resolve(globalPath, localPath, nil)
	require.NoError(t, err)

	// Arrays are not concatenated; the local value replaces the global.
	assert.Equal(t, []string{"secrets/**"}, r.K.Strings("sync.exclude"))
}

func TestResolveOverridesWinOverEverything(t *testing.T) {
	dir := t.TempDir()
	localPath := testutil.CreateFile(t, dir, "local.toml", `
[paths]
docs = "project-docs"
`)

	r, err := config.Resolve("", localPath, map[string]interface{}{"paths.docs": "cli-docs"})
	require.NoError(t, err)

	assert.Equal(t, "cli-docs", r.K.String("paths.docs"))
	assert.Equal(t, config.LayerOverride, r.Origins["paths.docs"])
}

func TestResolveMissingFilesAreFine(t *testing.T) {
	r, err := config.Resolve(filepath.Join(t.TempDir(), "nope.toml"), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "docs", r.K.String("paths.docs"))
}

func TestResolveMalformedConfigFails(t *testing.T) {
	dir := t.TempDir()
	bad := testutil.CreateFile(t, dir, "bad.toml", "not [valid toml")

	_, err := config.Resolve(bad, "", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestPathSettingFallbackChain(t *testing.T) {
	dir := t.TempDir()
	localPath := testutil.CreateFile(t, dir, "local.toml", `
[paths]
plans = "sprints"
`)

	r, err := config.Resolve("", localPath, nil)
	require.NoError(t, err)

	// Explicit argument wins over everything.
	assert.Equal(t, "custom", r.PathSetting("paths.plans", "custom"))
	// Then the persisted config.
	assert.Equal(t, "sprints", r.PathSetting("paths.plans", ""))
	// Then the built-in default.
	assert.Equal(t, "docs", r.PathSetting("paths.docs", ""))
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codekit", "config.toml")

	require.NoError(t, config.WriteDefault(path))

	r, err := config.Resolve(path, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "keep", r.K.String("sync.conflictPolicy"))
	// The written file carries the same values as the built-in layer, so
	// every key still resolves, now from the global layer.
	assert.Equal(t, config.LayerGlobal, r.Origins["sync.conflictPolicy"])
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "config.toml", "[sync]\nbackup = false\n")

	err := config.WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, testutil.ReadFile(t, path), "backup = false")
}
