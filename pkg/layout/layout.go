// Package layout detects and repairs directory-layout drift between tool
// versions: a managed subdirectory (skills, rules) moving from an old
// canonical location to a new one. Migration is conservative: collisions
// at the destination are skipped and reported, never overwritten, and the
// whole operation is safe to re-run.
package layout

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/logging"
	"github.com/getcodekit/codekit/pkg/types"
)

// MigrateOptions controls a layout migration run.
type MigrateOptions struct {
	Interactive bool
	Backup      bool
	DryRun      bool
}

// MigrationResult reports what a migration run did (or, for a dry run,
// would do).
type MigrationResult struct {
	// Moved lists relative paths copied into the new location.
	Moved []string

	// Conflicts lists relative paths skipped because the destination
	// already had an entry with that name.
	Conflicts []string

	// BackupPath is the timestamped copy of the old directory, when a
	// backup was requested.
	BackupPath string

	DryRun bool
}

// Detect structurally compares the old canonical layout directory with
// the new one.
func Detect(newDir, oldDir string) types.MigrationDetectionResult {
	oldFiles, err := listFiles(oldDir)
	if err != nil || len(oldFiles) == 0 {
		return types.MigrationDetectionResult{Status: types.MigrationNone}
	}

	newFiles, _ := listFiles(newDir)
	newSet := make(map[string]struct{}, len(newFiles))
	for _, f := range newFiles {
		newSet[f] = struct{}{}
	}

	missing, overlapping := 0, 0
	for _, f := range oldFiles {
		if _, ok := newSet[f]; ok {
			overlapping++
		} else {
			missing++
		}
	}

	switch {
	case missing == 0:
		// Everything old is already consolidated at the new location.
		return types.MigrationDetectionResult{Status: types.MigrationNone}
	case overlapping > 0:
		// Both locations hold shared content; precedence is ambiguous.
		return types.MigrationDetectionResult{Status: types.MigrationRecommended}
	default:
		return types.MigrationDetectionResult{Status: types.MigrationRequired}
	}
}

// Migrate consolidates oldDir's content into newDir. With Backup set, a
// timestamped copy of oldDir is taken before any mutation. With DryRun
// set, the full plan is computed and returned with zero writes. Name
// collisions at the destination are skipped and reported as conflicts.
func Migrate(newDir, oldDir string, prompter types.Prompter, opts MigrateOptions) (*MigrationResult, error) {
	logger := logging.GetLogger("layout")
	result := &MigrationResult{DryRun: opts.DryRun}

	if Detect(newDir, oldDir).Status == types.MigrationNone {
		return result, nil
	}

	oldFiles, err := listFiles(oldDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMigration, "cannot scan old layout at %s", oldDir)
	}

	// Build the plan first so a dry run shares the exact logic.
	for _, rel := range oldFiles {
		if _, err := os.Stat(filepath.Join(newDir, filepath.FromSlash(rel))); err == nil {
			result.Conflicts = append(result.Conflicts, rel)
		} else {
			result.Moved = append(result.Moved, rel)
		}
	}

	if opts.DryRun {
		return result, nil
	}

	if opts.Interactive {
		ok, err := prompter.Confirm("Migrate kit content from "+oldDir+" to "+newDir+"?", true)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCancelled, "layout migration cancelled")
		}
		if !ok {
			return nil, errors.New(errors.ErrCancelled, "layout migration declined")
		}
	}

	if opts.Backup {
		backupPath := oldDir + ".backup-" + time.Now().Format("20060102-150405")
		if err := copyTree(oldDir, backupPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrMigration, "failed to back up %s", oldDir)
		}
		result.BackupPath = backupPath
	}

	for _, rel := range result.Moved {
		src := filepath.Join(oldDir, filepath.FromSlash(rel))
		dst := filepath.Join(newDir, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return nil, errors.Wrapf(err, errors.ErrMigration, "failed to migrate %s", rel)
		}
	}

	logger.Info().
		Str("from", oldDir).
		Str("to", newDir).
		Int("moved", len(result.Moved)).
		Int("conflicts", len(result.Conflicts)).
		Str("backup", result.BackupPath).
		Msg("Layout migration complete")

	return result, nil
}

// listFiles returns the relative slash paths of all regular files under
// root, or an empty list when root does not exist.
func listFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var rels []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
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
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	return rels, err
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func copyTree(srcRoot, dstRoot string) error {
	files, err := listFiles(srcRoot)
	if err != nil {
		return err
	}
	for _, rel := range files {
		src := filepath.Join(srcRoot, filepath.FromSlash(rel))
		dst := filepath.Join(dstRoot, filepath.FromSlash(rel))
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}
