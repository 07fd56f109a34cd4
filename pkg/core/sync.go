// Package core orchestrates a full synchronization run. The phases are
// strictly sequential: layout migration check, change planning and
// application, checksum tracking, manifest write. Only checksum
// computation inside the tracking phase is parallel.
package core

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/layout"
	"github.com/getcodekit/codekit/pkg/legacy"
	"github.com/getcodekit/codekit/pkg/logging"
	"github.com/getcodekit/codekit/pkg/manifest"
	"github.com/getcodekit/codekit/pkg/matcher"
	"github.com/getcodekit/codekit/pkg/merge"
	"github.com/getcodekit/codekit/pkg/paths"
	"github.com/getcodekit/codekit/pkg/release"
	"github.com/getcodekit/codekit/pkg/tracker"
	"github.com/getcodekit/codekit/pkg/types"
)

// managedDirs are the layout subdirectories whose canonical location
// moved inside the tool directory across versions.
var managedDirs = []string{paths.SkillsDirName, paths.RulesDirName}

// SyncOptions configures one end-to-end synchronization run.
type SyncOptions struct {
	// ReleaseDir is the extracted release tree.
	ReleaseDir string

	// InstallDir is the target installation directory.
	InstallDir string

	// KitName and Version identify the kit when the release ships no
	// manifest.
	KitName string
	Version string

	Scope        types.Scope
	IncludeGlobs []string
	ExcludeGlobs []string

	Interactive bool
	DryRun      bool
	Backup      bool

	// Fresh ignores any existing manifest baselines: every file is
	// classified as if this were a first install.
	Fresh bool

	// Policy resolves conflicts in non-interactive runs.
	Policy types.ConflictPolicy

	// Workers sizes the checksum pool; 0 derives it from the host.
	Workers int

	Prompter types.Prompter
	Progress tracker.Progress
}

// SyncResult reports the full run. Per-file failures live inside Merge.
// A failed manifest write surfaces as an "installed but not tracked"
// error so the caller can retry tracking without re-copying files.
type SyncResult struct {
	State types.SyncState

	// Migrations holds one entry per managed directory that was (or in a
	// dry run, would be) consolidated into the new layout.
	Migrations []*layout.MigrationResult

	// LegacyMigrated is set when an untracked pre-existing installation
	// was backfilled with a manifest before merging.
	LegacyMigrated bool

	Merge *types.MergeResult
	Track *tracker.Result

	// Tracked is false when files were written but the manifest update
	// did not complete.
	Tracked bool

	// Cancelled mirrors Merge.Cancelled: the user aborted mid-run and
	// already-written files were kept.
	Cancelled bool
}

// Sync runs the pipeline: layout check, merge, track. A structural error
// leaves the filesystem and any manifest already written in a valid,
// re-runnable state.
func Sync(opts SyncOptions) (*SyncResult, error) {
	logger := logging.GetLogger("core")
	result := &SyncResult{State: types.SyncIdle}

	rel, err := release.Load(opts.ReleaseDir)
	if err != nil {
		return result, err
	}
	kitName, version := opts.KitName, opts.Version
	if rel != nil {
		if rel.KitName != "" {
			kitName = rel.KitName
		}
		if rel.Version != "" {
			version = rel.Version
		}
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.InstallDir, 0755); err != nil {
			return result, errors.Wrapf(err, errors.ErrIO, "cannot create install directory %s", opts.InstallDir)
		}
	}

	// Phase 1: layout drift.
	if err := migrateLayouts(opts, result); err != nil {
		return result, err
	}
	result.State = types.SyncPlanned

	// Legacy backfill: content on disk but nothing tracked yet.
	if !opts.Fresh && !opts.DryRun {
		if det := legacy.Detect(opts.InstallDir); det.IsLegacy {
			logger.Info().Str("reason", det.Reason).Msg("Legacy installation detected")
			if err := legacy.Migrate(opts.InstallDir, rel, kitName, version, opts.Scope, opts.Prompter, opts.Interactive); err != nil {
				return result, err
			}
			result.LegacyMigrated = true
		}
	}

	man, err := loadManifest(opts)
	if err != nil {
		return result, err
	}

	// Phase 2: merge.
	result.State = types.SyncMerging
	merger := merge.New(matcher.New(), opts.Prompter)
	mergeResult, err := merger.Merge(opts.ReleaseDir, opts.InstallDir, man, types.MergeOptions{
		IncludeGlobs: opts.IncludeGlobs,
		ExcludeGlobs: opts.ExcludeGlobs,
		Scope:        opts.Scope,
		Interactive:  opts.Interactive,
		DryRun:       opts.DryRun,
		Policy:       opts.Policy,
	})
	if err != nil {
		result.State = types.SyncFailedPartial
		return result, err
	}
	result.Merge = mergeResult
	result.Cancelled = mergeResult.Cancelled

	if opts.DryRun {
		result.State = types.SyncDone
		return result, nil
	}

	// Phase 3: tracking. Runs even after a cancellation so the manifest
	// stays consistent with what actually landed on disk.
	result.State = types.SyncTracking
	tr := tracker.New(opts.Workers)
	trackResult, err := tr.Track(opts.InstallDir, mergeResult.Installed, rel, man, tracker.Options{
		KitName: kitName,
		Version: version,
		Scope:   opts.Scope,
		Written: mergeResult.Written,
	}, opts.Progress)
	result.Track = trackResult
	if err != nil {
		// Files are installed but not tracked; the caller can retry
		// tracking alone without re-copying anything.
		result.State = types.SyncFailedPartial
		return result, errors.Wrap(err, errors.ErrManifestWrite, "kit installed but not tracked")
	}
	result.Tracked = true
	result.State = types.SyncDone

	logger.Info().
		Str("kit", kitName).
		Str("version", version).
		Str("scope", opts.Scope.String()).
		Bool("cancelled", result.Cancelled).
		Msg("Sync complete")

	return result, nil
}

// Retrack re-runs the tracking phase over everything currently on disk.
// It is the recovery path for an "installed but not tracked" outcome.
func Retrack(installDir, releaseDir, kitName, version string, scope types.Scope, workers int, progress tracker.Progress) (*tracker.Result, error) {
	rel, err := release.Load(releaseDir)
	if err != nil {
		return nil, err
	}
	if rel != nil {
		if rel.KitName != "" {
			kitName = rel.KitName
		}
		if rel.Version != "" {
			version = rel.Version
		}
	}

	man, err := manifest.Load(installDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	relPaths, err := listInstallFiles(installDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrIO, "cannot scan install directory %s", installDir)
	}

	tr := tracker.New(workers)
	return tr.Track(installDir, relPaths, rel, man, tracker.Options{
		KitName: kitName,
		Version: version,
		Scope:   scope,
	}, progress)
}

func migrateLayouts(opts SyncOptions, result *SyncResult) error {
	for _, name := range managedDirs {
		newDir := paths.LayoutDir(opts.InstallDir, name)
		oldDir := paths.LegacyLayoutDir(opts.InstallDir, name)
		if oldDir == newDir {
			continue
		}

		det := layout.Detect(newDir, oldDir)
		if det.Status == types.MigrationNone {
			continue
		}
		if det.Status == types.MigrationRecommended && !opts.Interactive {
			// Ambiguous precedence is not resolved silently.
			continue
		}

		mr, err := layout.Migrate(newDir, oldDir, opts.Prompter, layout.MigrateOptions{
			Interactive: opts.Interactive,
			Backup:      opts.Backup,
			DryRun:      opts.DryRun,
		})
		if err != nil {
			return err
		}
		result.Migrations = append(result.Migrations, mr)
	}
	return nil
}

// listInstallFiles returns every file currently under installDir as a
// relative slash path, excluding the manifest itself.
func listInstallFiles(installDir string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(installDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(installDir, path)
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

func loadManifest(opts SyncOptions) (*types.InstallManifest, error) {
	if opts.Fresh {
		return nil, nil
	}
	man, err := manifest.Load(opts.InstallDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return man, nil
}
