package types_test

import (
	"testing"

	"github.com/getcodekit/codekit/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnershipValid(t *testing.T) {
	assert.True(t, types.OwnershipTool.Valid())
	assert.True(t, types.OwnershipUser.Valid())
	assert.True(t, types.OwnershipToolModified.Valid())
	assert.False(t, types.Ownership("owner").Valid())
}

func TestParseOwnership(t *testing.T) {
	o, err := types.ParseOwnership("tool-modified")
	require.NoError(t, err)
	assert.Equal(t, types.OwnershipToolModified, o)

	_, err = types.ParseOwnership("nobody")
	assert.Error(t, err)
}

func TestInstallManifestUpsertKeepsPathUnique(t *testing.T) {
	m := types.NewInstallManifest("starter", "1.0.0", types.LocalScope)

	m.Upsert(types.TrackedFile{Path: "rules/go.md", Checksum: "sha256:aa"})
	m.Upsert(types.TrackedFile{Path: "rules/go.md", Checksum: "sha256:bb"})

	require.Len(t, m.Files, 1)
	assert.Equal(t, "sha256:bb", m.Files[0].Checksum)
}

func TestInstallManifestFindAndRemove(t *testing.T) {
	m := types.NewInstallManifest("starter", "1.0.0", types.GlobalScope)
	m.Upsert(types.TrackedFile{Path: "skills/alpha/SKILL.md"})

	require.NotNil(t, m.Find("skills/alpha/SKILL.md"))
	assert.Nil(t, m.Find("missing"))

	assert.True(t, m.Remove("skills/alpha/SKILL.md"))
	assert.False(t, m.Remove("skills/alpha/SKILL.md"))
	assert.Empty(t, m.Files)
}

func TestInstallManifestSortFiles(t *testing.T) {
	m := types.NewInstallManifest("starter", "1.0.0", types.LocalScope)
	m.Upsert(types.TrackedFile{Path: "b"})
	m.Upsert(types.TrackedFile{Path: "a"})

	m.SortFiles()

	assert.Equal(t, "a", m.Files[0].Path)
	assert.Equal(t, "b", m.Files[1].Path)
}

func TestTrackedFileModified(t *testing.T) {
	f := types.TrackedFile{Checksum: "sha256:aa", BaseChecksum: "sha256:aa"}
	assert.False(t, f.Modified())

	f.Checksum = "sha256:bb"
	assert.True(t, f.Modified())

	// User files carry no baseline and are never "modified".
	u := types.TrackedFile{Checksum: "sha256:cc"}
	assert.False(t, u.Modified())
}

func TestReleaseManifestOwns(t *testing.T) {
	rel := &types.ReleaseManifest{Files: []string{"rules/go.md"}}
	assert.True(t, rel.Owns("rules/go.md"))
	assert.False(t, rel.Owns("config.json"))

	var nilRel *types.ReleaseManifest
	assert.False(t, nilRel.Owns("rules/go.md"))
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", types.GlobalScope.String())
	assert.Equal(t, "local", types.LocalScope.String())
	assert.Equal(t, types.GlobalScope, types.ParseScope("global"))
	assert.Equal(t, types.LocalScope, types.ParseScope("project"))
}

func TestMergeResultCounters(t *testing.T) {
	var r types.MergeResult
	r.Add(types.FileResult{RelPath: "a", Action: types.ActionCreate})
	r.Add(types.FileResult{RelPath: "b", Action: types.ActionOverwrite})
	r.Add(types.FileResult{RelPath: "c", Action: types.ActionSkip, Skipped: true})
	r.Add(types.FileResult{RelPath: "d", Action: types.ActionCreate, Err: assert.AnError})

	assert.Equal(t, 1, r.Created)
	assert.Equal(t, 1, r.Overwritten)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	require.Len(t, r.Failures(), 1)
	assert.Contains(t, r.Failures()[0], "d: ")
}
