// Package manifest persists the install manifest: the per-scope record of
// every tracked file's checksum, ownership, and installed version.
//
// The save path is the one operation in codekit with a hard atomicity
// guarantee. A torn manifest is unrecoverable, so writes go to a temporary
// file that is fsynced and then renamed over the destination.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/logging"
	"github.com/getcodekit/codekit/pkg/types"
)

// FileName is the fixed manifest location inside an install directory.
const FileName = ".codekit-manifest.json"

// Path returns the manifest path for an install directory.
func Path(installDir string) string {
	return filepath.Join(installDir, FileName)
}

// Exists reports whether an install manifest is present.
func Exists(installDir string) bool {
	_, err := os.Stat(Path(installDir))
	return err == nil
}

// Load reads and validates the install manifest. A missing manifest is
// reported via os.IsNotExist on the returned error; a malformed one is a
// validation error.
func Load(installDir string) (*types.InstallManifest, error) {
	data, err := os.ReadFile(Path(installDir))
	if err != nil {
		return nil, err
	}

	var m types.InstallManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestBad, "manifest at %s is not valid JSON", Path(installDir))
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Save writes the manifest atomically: serialize, write to a temporary
// path in the same directory, fsync, then rename over the destination.
func Save(installDir string, m *types.InstallManifest) error {
	logger := logging.GetLogger("manifest")

	m.SortFiles()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to serialize manifest")
	}
	data = append(data, '\n')

	dest := Path(installDir)
	tmp, err := os.CreateTemp(installDir, FileName+".tmp-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to create temporary manifest")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to write temporary manifest")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to sync temporary manifest")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to close temporary manifest")
	}

	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to replace manifest")
	}

	logger.Debug().Str("path", dest).Int("files", len(m.Files)).Msg("Manifest written")
	return nil
}

// Prune removes entries whose path no longer exists under installDir and
// returns the removed entries so callers can report them.
func Prune(m *types.InstallManifest, installDir string) []types.TrackedFile {
	var removed []types.TrackedFile
	kept := m.Files[:0]
	for _, f := range m.Files {
		if _, err := os.Stat(filepath.Join(installDir, filepath.FromSlash(f.Path))); os.IsNotExist(err) {
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	m.Files = kept
	return removed
}

func validate(m *types.InstallManifest) error {
	if m.KitName == "" {
		return errors.New(errors.ErrManifestBad, "manifest missing kitName")
	}
	seen := make(map[string]struct{}, len(m.Files))
	for _, f := range m.Files {
		if f.Path == "" {
			return errors.New(errors.ErrManifestBad, "manifest entry with empty path")
		}
		if _, dup := seen[f.Path]; dup {
			return errors.Newf(errors.ErrManifestBad, "duplicate manifest entry for %q", f.Path)
		}
		seen[f.Path] = struct{}{}
		if !f.Ownership.Valid() {
			return errors.Newf(errors.ErrManifestBad, "entry %q has unknown ownership %q", f.Path, f.Ownership)
		}
	}
	return nil
}
