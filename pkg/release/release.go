// Package release reads the manifest a kit release ships with. The release
// manifest enumerates every path the tool considers its own for that
// version; the sync engine uses it purely as a classification oracle and
// never mutates it.
package release

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/types"
)

// ManifestFileName is the manifest's location at the release tree root.
const ManifestFileName = "kit-manifest.yaml"

// Load reads the release manifest from a release tree. A release without
// a manifest is legal: Load returns (nil, nil) and every file will be
// classified user-owned. A malformed manifest is a validation error.
func Load(releaseDir string) (*types.ReleaseManifest, error) {
	path := filepath.Join(releaseDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrReleaseBad, "cannot read release manifest at %s", path)
	}

	var m types.ReleaseManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrReleaseBad, "release manifest at %s is not valid YAML", path)
	}
	return &m, nil
}
