package types

import "fmt"

// Ownership classifies who controls a tracked file's content.
type Ownership string

const (
	// OwnershipTool marks a file installed and still managed by codekit.
	// It may be refreshed freely while its checksum matches its baseline.
	OwnershipTool Ownership = "tool"

	// OwnershipUser marks a file authored by the user. It is never
	// overwritten without explicit confirmation.
	OwnershipUser Ownership = "user"

	// OwnershipToolModified marks a tool-installed file that the user has
	// since edited. Refreshes must treat it as a conflict, not a plain
	// overwrite.
	OwnershipToolModified Ownership = "tool-modified"
)

// Valid reports whether o is one of the known ownership values.
func (o Ownership) Valid() bool {
	switch o {
	case OwnershipTool, OwnershipUser, OwnershipToolModified:
		return true
	}
	return false
}

// ParseOwnership converts a persisted string into an Ownership value.
func ParseOwnership(s string) (Ownership, error) {
	o := Ownership(s)
	if !o.Valid() {
		return "", fmt.Errorf("unknown ownership %q", s)
	}
	return o, nil
}

func (o Ownership) String() string {
	return string(o)
}
