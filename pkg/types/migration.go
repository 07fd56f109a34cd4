package types

// MigrationStatus describes whether a directory-layout migration is
// needed before a sync can run.
type MigrationStatus string

const (
	// MigrationNone means the layout is already aligned.
	MigrationNone MigrationStatus = "none"

	// MigrationRecommended means both the old and new locations hold
	// content and precedence is ambiguous.
	MigrationRecommended MigrationStatus = "recommended"

	// MigrationRequired means the old location still holds content the
	// new location is missing.
	MigrationRequired MigrationStatus = "required"
)

// MigrationDetectionResult is the outcome of a layout drift check.
type MigrationDetectionResult struct {
	Status MigrationStatus
}

// LegacyDetectionResult reports whether an install directory predates
// ownership tracking.
type LegacyDetectionResult struct {
	IsLegacy bool
	Reason   string
}
