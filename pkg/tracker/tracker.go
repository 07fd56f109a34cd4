// Package tracker classifies installed files and persists the install
// manifest. It is the only concurrent part of the pipeline: checksums for
// the affected files are computed on a bounded worker pool, while the
// classification pass and the manifest write stay sequential.
package tracker

import (
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/getcodekit/codekit/pkg/internal/hashutil"
	"github.com/getcodekit/codekit/pkg/logging"
	"github.com/getcodekit/codekit/pkg/manifest"
	"github.com/getcodekit/codekit/pkg/types"
)

// maxWorkers caps the checksum pool; beyond this the work is I/O bound.
const maxWorkers = 8

// Progress reports monotonic (processed, total) checksum progress.
type Progress func(processed, total int)

// Options carries the identity of the installation being tracked.
type Options struct {
	KitName string
	Version string
	Scope   types.Scope

	// Written lists the paths the merge phase wrote this run. A checksum
	// change on one of these is the tool's own doing, not a user edit, so
	// it takes a fresh baseline instead of a demotion.
	Written []string
}

// Result is the outcome of a tracking pass.
type Result struct {
	// Manifest is the updated, persisted manifest.
	Manifest *types.InstallManifest

	// Pruned lists manifest entries removed because their path no longer
	// exists on disk.
	Pruned []types.TrackedFile

	// Errors holds per-file checksum failures. They do not abort the
	// pass; the affected entries keep their previous state.
	Errors []error
}

// Tracker computes checksums and applies the ownership transition rules.
type Tracker struct {
	workers int
}

// New creates a Tracker. workers <= 0 derives the pool size from host
// parallelism.
func New(workers int) *Tracker {
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > maxWorkers {
			workers = maxWorkers
		}
	}
	return &Tracker{workers: workers}
}

// Track checksums every path in relPaths (relative to installDir),
// classifies ownership against the release manifest, prunes orphaned
// entries, and atomically persists the updated manifest.
//
// Classification per file:
//  1. Paths the release manifest owns are candidates for tool ownership;
//     everything else is user-owned.
//  2. A file previously tool-owned (or tool-modified) whose new checksum
//     differs from its stored baseline is demoted to tool-modified. The
//     demotion overrides the oracle: a hand-edited tool file must not be
//     silently refreshed on a later run. Paths in opts.Written are
//     exempt: their content changed because the merge phase just wrote
//     them, so demoting would turn every routine upgrade into a
//     permanent conflict.
//  3. A clean tool classification takes the new checksum as its baseline.
func (t *Tracker) Track(installDir string, relPaths []string, rel *types.ReleaseManifest, man *types.InstallManifest, opts Options, progress Progress) (*Result, error) {
	logger := logging.GetLogger("tracker")

	if man == nil {
		man = types.NewInstallManifest(opts.KitName, opts.Version, opts.Scope)
	}

	sums, errs := t.checksumAll(installDir, relPaths, progress)

	result := &Result{Manifest: man, Errors: errs}

	written := make(map[string]struct{}, len(opts.Written))
	for _, p := range opts.Written {
		written[p] = struct{}{}
	}

	for i, relPath := range relPaths {
		sum := sums[i]
		if sum == "" {
			// Checksum failed; leave any existing entry untouched.
			continue
		}

		existing := man.Find(relPath)
		entry := types.TrackedFile{
			Path:             relPath,
			Checksum:         sum,
			InstalledVersion: opts.Version,
		}
		_, wroteThisRun := written[relPath]

		switch {
		case existing != nil && !wroteThisRun &&
			(existing.Ownership == types.OwnershipTool || existing.Ownership == types.OwnershipToolModified) &&
			sum != existing.BaseChecksum:
			entry.Ownership = types.OwnershipToolModified
			entry.BaseChecksum = existing.BaseChecksum

		case rel.Owns(relPath):
			entry.Ownership = types.OwnershipTool
			entry.BaseChecksum = sum

		default:
			entry.Ownership = types.OwnershipUser
		}

		man.Upsert(entry)
	}

	result.Pruned = manifest.Prune(man, installDir)

	if opts.Version != "" {
		man.Version = opts.Version
	}

	if err := manifest.Save(installDir, man); err != nil {
		return result, err
	}

	logger.Info().
		Int("tracked", len(relPaths)).
		Int("pruned", len(result.Pruned)).
		Int("checksumErrors", len(errs)).
		Str("version", man.Version).
		Msg("Tracking pass complete")

	return result, nil
}

// checksumAll computes content hashes on a bounded pool. Workers write
// into pre-sized slots and bump a synchronized progress counter; there is
// no other shared state and no mid-batch cancellation.
func (t *Tracker) checksumAll(installDir string, relPaths []string, progress Progress) ([]string, []error) {
	sums := make([]string, len(relPaths))
	errSlots := make([]error, len(relPaths))

	var (
		mu        sync.Mutex
		processed int
	)
	total := len(relPaths)

	var g errgroup.Group
	g.SetLimit(t.workers)

	for i, relPath := range relPaths {
		g.Go(func() error {
			sum, err := hashutil.CalculateFileChecksum(joinInstallPath(installDir, relPath))
			if err != nil {
				errSlots[i] = err
			} else {
				sums[i] = sum
			}

			if progress != nil {
				mu.Lock()
				processed++
				progress(processed, total)
				mu.Unlock()
			}
			return nil
		})
	}
	// Workers never return errors; failures live in their slots.
	_ = g.Wait()

	var errs []error
	for _, err := range errSlots {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return sums, errs
}

func joinInstallPath(installDir, relPath string) string {
	return filepath.Join(installDir, filepath.FromSlash(relPath))
}
