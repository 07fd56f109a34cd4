package types

// ReleaseManifest enumerates every relative path a kit release considers
// tool-owned. It ships inside the release bundle and is read-only to the
// sync engine: it serves purely as the ownership classification oracle.
type ReleaseManifest struct {
	KitName string   `yaml:"kitName"`
	Version string   `yaml:"version"`
	Files   []string `yaml:"files"`
}

// Owns reports whether the release claims the given relative path.
func (r *ReleaseManifest) Owns(relPath string) bool {
	if r == nil {
		return false
	}
	for _, f := range r.Files {
		if f == relPath {
			return true
		}
	}
	return false
}
