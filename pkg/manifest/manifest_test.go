package manifest_test

import (
	"os"
	"testing"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/manifest"
	"github.com/getcodekit/codekit/pkg/testutil"
	"github.com/getcodekit/codekit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManifest() *types.InstallManifest {
	m := types.NewInstallManifest("starter", "1.2.0", types.LocalScope)
	m.Upsert(types.TrackedFile{
		Path:             "rules/go.md",
		Checksum:         "sha256:aa",
		BaseChecksum:     "sha256:aa",
		Ownership:        types.OwnershipTool,
		InstalledVersion: "1.2.0",
	})
	m.Upsert(types.TrackedFile{
		Path:             "config.json",
		Checksum:         "sha256:bb",
		Ownership:        types.OwnershipUser,
		InstalledVersion: "1.2.0",
	})
	return m
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := sampleManifest()

	require.NoError(t, manifest.Save(dir, m))
	assert.True(t, manifest.Exists(dir))

	loaded, err := manifest.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "starter", loaded.KitName)
	assert.Equal(t, "1.2.0", loaded.Version)
	require.Len(t, loaded.Files, 2)

	tool := loaded.Find("rules/go.md")
	require.NotNil(t, tool)
	assert.Equal(t, types.OwnershipTool, tool.Ownership)
	assert.Equal(t, "sha256:aa", tool.BaseChecksum)
}

func TestSaveIsByteStable(t *testing.T) {
	dir := t.TempDir()
	m := sampleManifest()

	require.NoError(t, manifest.Save(dir, m))
	first := testutil.ReadFile(t, manifest.Path(dir))

	require.NoError(t, manifest.Save(dir, m))
	second := testutil.ReadFile(t, manifest.Path(dir))

	assert.Equal(t, first, second)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, manifest.Save(dir, sampleManifest()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, manifest.FileName, entries[0].Name())
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := manifest.Load(t.TempDir())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, manifest.FileName, "{not json")

	_, err := manifest.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestBad))
}

func TestLoadRejectsDuplicatePaths(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, manifest.FileName, `{
		"kitName": "starter",
		"version": "1.0.0",
		"scope": "local",
		"files": [
			{"path": "a", "checksum": "sha256:aa", "ownership": "tool", "installedVersion": "1.0.0"},
			{"path": "a", "checksum": "sha256:bb", "ownership": "tool", "installedVersion": "1.0.0"}
		]
	}`)

	_, err := manifest.Load(dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestBad))
}

func TestLoadRejectsUnknownOwnership(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, manifest.FileName, `{
		"kitName": "starter",
		"version": "1.0.0",
		"scope": "local",
		"files": [
			{"path": "a", "checksum": "sha256:aa", "ownership": "borrowed", "installedVersion": "1.0.0"}
		]
	}`)

	_, err := manifest.Load(dir)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestBad))
}

func TestPruneRemovesMissingEntries(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "rules/go.md", "content")

	m := sampleManifest()
	// config.json is tracked but was never written to disk.
	removed := manifest.Prune(m, dir)

	require.Len(t, removed, 1)
	assert.Equal(t, "config.json", removed[0].Path)
	assert.Nil(t, m.Find("config.json"))
	assert.NotNil(t, m.Find("rules/go.md"))
}

func TestPruneNoopWhenAllPresent(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, "rules/go.md", "content")
	testutil.CreateFile(t, dir, "config.json", "{}")

	m := sampleManifest()
	removed := manifest.Prune(m, dir)

	assert.Empty(t, removed)
	assert.Len(t, m.Files, 2)
}
