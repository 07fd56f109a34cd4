// Package legacy backfills ownership tracking onto installations that
// predate it: directories with kit content on disk but no install
// manifest. Migration scans every existing file, classifies it against
// the release manifest, and writes a fresh manifest. Once a valid
// manifest exists the path is never re-entered.
package legacy

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/logging"
	"github.com/getcodekit/codekit/pkg/manifest"
	"github.com/getcodekit/codekit/pkg/tracker"
	"github.com/getcodekit/codekit/pkg/types"
)

// MinSupportedVersion is the oldest manifest version the current engine
// understands. Older manifests are treated as legacy and rebuilt.
const MinSupportedVersion = "0.3.0"

// Detect reports whether installDir is a legacy installation: it has
// on-disk content but no readable, valid, supported install manifest.
func Detect(installDir string) types.LegacyDetectionResult {
	hasContent, err := dirHasContent(installDir)
	if err != nil || !hasContent {
		return types.LegacyDetectionResult{IsLegacy: false}
	}

	m, err := manifest.Load(installDir)
	if os.IsNotExist(err) {
		return types.LegacyDetectionResult{
			IsLegacy: true,
			Reason:   "install directory has content but no manifest",
		}
	}
	if err != nil {
		return types.LegacyDetectionResult{
			IsLegacy: true,
			Reason:   "install manifest is unreadable or invalid",
		}
	}
	if versionBelow(m.Version, MinSupportedVersion) {
		return types.LegacyDetectionResult{
			IsLegacy: true,
			Reason:   "install manifest version " + m.Version + " predates " + MinSupportedVersion,
		}
	}
	return types.LegacyDetectionResult{IsLegacy: false}
}

// Migrate builds a fresh install manifest for a legacy installation.
// Every existing file is classified tool- or user-owned against the
// release manifest; there is no prior manifest, so no modified-file
// demotion can occur on this first pass. In interactive mode the user
// confirms before anything is written.
func Migrate(installDir string, rel *types.ReleaseManifest, kitName, version string, scope types.Scope, prompter types.Prompter, interactive bool) error {
	logger := logging.GetLogger("legacy")

	relPaths, err := collectFiles(installDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrMigration, "cannot scan install directory %s", installDir)
	}

	if interactive {
		ok, err := prompter.Confirm(
			"Found an untracked installation with "+strconv.Itoa(len(relPaths))+" files. Build an ownership manifest for it?", true)
		if err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "legacy migration cancelled")
		}
		if !ok {
			return errors.New(errors.ErrCancelled, "legacy migration declined")
		}
	}

	tr := tracker.New(0)
	opts := tracker.Options{KitName: kitName, Version: version, Scope: scope}
	if _, err := tr.Track(installDir, relPaths, rel, nil, opts, nil); err != nil {
		return err
	}

	logger.Info().
		Str("dir", installDir).
		Int("files", len(relPaths)).
		Msg("Legacy installation migrated to tracked manifest")
	return nil
}

func dirHasContent(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Name() == manifest.FileName {
			continue
		}
		return true, nil
	}
	return false, nil
}

func collectFiles(root string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == manifest.FileName {
			return nil
		}
		rels = append(rels, rel)
		return nil
	})
	return rels, err
}

// versionBelow compares dotted numeric versions; anything unparseable is
// treated as below the minimum.
func versionBelow(v, min string) bool {
	va, vb := splitVersion(v), splitVersion(min)
	if va == nil {
		return true
	}
	for i := 0; i < 3; i++ {
		if va[i] != vb[i] {
			return va[i] < vb[i]
		}
	}
	return false
}

func splitVersion(v string) []int {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	nums := make([]int, 3)
	for i := 0; i < 3; i++ {
		if i >= len(parts) {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return nil
		}
		nums[i] = n
	}
	return nums
}
