package types

import "sort"

// TrackedFile records the provenance of one installed file.
type TrackedFile struct {
	// Path is the file's path relative to the install directory. It is the
	// unique key within a manifest.
	Path string `json:"path"`

	// Checksum is the content hash at the time of the last tracking pass,
	// in "sha256:<hex>" form.
	Checksum string `json:"checksum"`

	// BaseChecksum is the checksum at the last tool-managed state. Empty
	// for user-owned files.
	BaseChecksum string `json:"baseChecksum,omitempty"`

	// Ownership classifies who controls this file.
	Ownership Ownership `json:"ownership"`

	// InstalledVersion is the kit version that last touched this file.
	InstalledVersion string `json:"installedVersion"`
}

// Modified reports whether the file's content has drifted from its
// tool-managed baseline.
func (t TrackedFile) Modified() bool {
	return t.BaseChecksum != "" && t.Checksum != t.BaseChecksum
}

// InstallManifest is the persisted record of one installation scope.
type InstallManifest struct {
	KitName string        `json:"kitName"`
	Version string        `json:"version"`
	Scope   string        `json:"scope"`
	Files   []TrackedFile `json:"files"`
}

// NewInstallManifest creates an empty manifest for the given kit and scope.
func NewInstallManifest(kitName, version string, scope Scope) *InstallManifest {
	return &InstallManifest{
		KitName: kitName,
		Version: version,
		Scope:   scope.String(),
		Files:   []TrackedFile{},
	}
}

// Find returns the tracked file for the given relative path, or nil.
// Safe to call on a nil manifest (no install tracked yet).
func (m *InstallManifest) Find(path string) *TrackedFile {
	if m == nil {
		return nil
	}
	for i := range m.Files {
		if m.Files[i].Path == path {
			return &m.Files[i]
		}
	}
	return nil
}

// Upsert inserts or replaces the entry for f.Path, keeping Path unique.
func (m *InstallManifest) Upsert(f TrackedFile) {
	for i := range m.Files {
		if m.Files[i].Path == f.Path {
			m.Files[i] = f
			return
		}
	}
	m.Files = append(m.Files, f)
}

// Remove deletes the entry for the given path. It reports whether an
// entry was removed.
func (m *InstallManifest) Remove(path string) bool {
	for i := range m.Files {
		if m.Files[i].Path == path {
			m.Files = append(m.Files[:i], m.Files[i+1:]...)
			return true
		}
	}
	return false
}

// SortFiles orders entries by path so repeated serializations are
// byte-identical.
func (m *InstallManifest) SortFiles() {
	sort.Slice(m.Files, func(i, j int) bool {
		return m.Files[i].Path < m.Files[j].Path
	})
}
