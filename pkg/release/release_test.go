package release_test

import (
	"testing"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/release"
	"github.com/getcodekit/codekit/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadReleaseManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, release.ManifestFileName, `
kitName: starter
version: 2.0.0
files:
  - rules/go.md
  - skills/alpha/SKILL.md
`)

	m, err := release.Load(dir)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "starter", m.KitName)
	assert.Equal(t, "2.0.0", m.Version)
	assert.True(t, m.Owns("rules/go.md"))
	assert.False(t, m.Owns("config.json"))
}

func TestLoadMissingManifestIsNotAnError(t *testing.T) {
	m, err := release.Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoadMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateFile(t, dir, release.ManifestFileName, "files: [unclosed")

	_, err := release.Load(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrReleaseBad))
}
