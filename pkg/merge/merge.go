// Package merge implements the change planner: the file-by-file decision
// of what a sync run does to the target directory, plus the writes that
// carry the plan out.
//
// The planner is ownership-aware. A file the manifest records as
// tool-owned and unmodified may be refreshed freely; anything the user
// authored or edited is a conflict and goes through the Prompter (or the
// non-interactive conflict policy). Per-file I/O failures are captured
// into the result and never abort the rest of the run. A user
// cancellation stops the remaining queue but does not revert files
// already written.
package merge

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/internal/hashutil"
	"github.com/getcodekit/codekit/pkg/logging"
	"github.com/getcodekit/codekit/pkg/manifest"
	"github.com/getcodekit/codekit/pkg/matcher"
	"github.com/getcodekit/codekit/pkg/release"
	"github.com/getcodekit/codekit/pkg/types"
)

// Merger applies a release tree onto a target directory.
type Merger struct {
	matcher  *matcher.Matcher
	prompter types.Prompter
}

// New creates a Merger. The prompter resolves conflicts in interactive
// runs; non-interactive runs use the policy in MergeOptions instead.
func New(m *matcher.Matcher, p types.Prompter) *Merger {
	return &Merger{matcher: m, prompter: p}
}

// Merge walks sourceTree and reconciles every eligible file into
// targetDir. Only structural failures (unreadable source tree, malformed
// globs) return an error; everything else lands in the result.
func (mg *Merger) Merge(sourceTree, targetDir string, man *types.InstallManifest, opts types.MergeOptions) (*types.MergeResult, error) {
	logger := logging.GetLogger("merge")

	if err := matcher.ValidatePatterns(opts.IncludeGlobs); err != nil {
		return nil, err
	}
	if err := matcher.ValidatePatterns(opts.ExcludeGlobs); err != nil {
		return nil, err
	}

	rels, err := collectSourceFiles(sourceTree)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceTree, "cannot read release tree at %s", sourceTree)
	}

	result := &types.MergeResult{}

	for _, rel := range rels {
		if !mg.matcher.Allowed(rel, opts.IncludeGlobs, opts.ExcludeGlobs) {
			continue
		}

		fr, installed, cancelled := mg.mergeFile(sourceTree, targetDir, rel, man, opts)
		if cancelled {
			result.Cancelled = true
			logger.Warn().Str("path", rel).Msg("Run cancelled by user; files already written are kept")
			break
		}
		result.Add(fr)
		if installed {
			result.Installed = append(result.Installed, rel)
			if fr.Err == nil && !fr.Skipped &&
				(fr.Action == types.ActionCreate || fr.Action == types.ActionOverwrite) {
				result.Written = append(result.Written, rel)
			}
		}
	}

	logger.Info().
		Int("created", result.Created).
		Int("overwritten", result.Overwritten).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Bool("dryRun", opts.DryRun).
		Msg("Merge finished")

	return result, nil
}

// mergeFile decides and applies the action for one file. The returned
// installed flag marks paths present at the target after the run, which
// the tracker consumes. cancelled is set when the user aborted the whole
// run from a conflict prompt.
func (mg *Merger) mergeFile(sourceTree, targetDir, rel string, man *types.InstallManifest, opts types.MergeOptions) (fr types.FileResult, installed, cancelled bool) {
	fr = types.FileResult{RelPath: rel}

	srcPath := filepath.Join(sourceTree, rel)
	dstPath := filepath.Join(targetDir, rel)

	// A release tree staged inside the install directory can map a file
	// onto itself. That is never a write, whatever the other rules say.
	if same, err := samePath(srcPath, dstPath); err == nil && same {
		fr.Action = types.ActionSkip
		fr.Skipped = true
		fr.Reason = "file already exists at source; skipping self-referential copy"
		return fr, true, false
	}

	srcData, err := os.ReadFile(srcPath)
	if err != nil {
		fr.Err = errors.Wrapf(err, errors.ErrFileRead, "reading %s from release tree", rel)
		return fr, false, false
	}

	dstData, err := os.ReadFile(dstPath)
	switch {
	case os.IsNotExist(err):
		fr.Action = types.ActionCreate
		if writeErr := mg.write(dstPath, srcData, opts.DryRun); writeErr != nil {
			fr.Err = writeErr
			return fr, false, false
		}
		return fr, true, false

	case err != nil:
		fr.Err = errors.Wrapf(err, errors.ErrFileRead, "reading existing target %s", rel)
		return fr, false, false
	}

	if bytes.Equal(srcData, dstData) {
		fr.Action = types.ActionSkip
		fr.Skipped = true
		fr.Reason = "target is identical"
		return fr, true, false
	}

	if tracked := man.Find(rel); tracked != nil &&
		tracked.Ownership == types.OwnershipTool &&
		hashutil.ChecksumData(dstData) == tracked.BaseChecksum {
		// The target still matches its tool-managed baseline: refresh
		// freely. The current bytes are hashed here rather than trusting
		// the stored checksum, so an edit made since the last tracking
		// pass is caught now instead of being clobbered.
		fr.Action = types.ActionOverwrite
		if writeErr := mg.write(dstPath, srcData, opts.DryRun); writeErr != nil {
			fr.Err = writeErr
			return fr, false, false
		}
		return fr, true, false
	}

	// The target is user-owned, user-edited, or untracked. Conflict.
	overwrite, err := mg.resolveConflict(rel, man, opts)
	if err != nil {
		if stderrors.Is(err, types.ErrPromptCancelled) {
			// Explicit user abort: stop the queue, keep what is written.
			return fr, false, true
		}
		fr.Err = errors.Wrapf(err, errors.ErrConflictUnresolved, "resolving conflict for %s", rel)
		return fr, false, false
	}

	if !overwrite {
		fr.Action = types.ActionConflict
		fr.Skipped = true
		fr.Reason = "conflict: kept existing file"
		return fr, true, false
	}

	fr.Action = types.ActionOverwrite
	fr.Reason = "conflict resolved: overwrite"
	if writeErr := mg.write(dstPath, srcData, opts.DryRun); writeErr != nil {
		fr.Err = writeErr
		return fr, false, false
	}
	return fr, true, false
}

func (mg *Merger) resolveConflict(rel string, man *types.InstallManifest, opts types.MergeOptions) (overwrite bool, err error) {
	if !opts.Interactive {
		return opts.Policy == types.PolicyOverwrite, nil
	}

	reason := "exists with different content"
	if tracked := man.Find(rel); tracked != nil {
		switch tracked.Ownership {
		case types.OwnershipUser:
			reason = "is user-owned"
		case types.OwnershipToolModified:
			reason = "was edited after installation"
		}
	}

	ok, err := mg.prompter.Confirm("Overwrite "+rel+"? It "+reason+".", false)
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (mg *Merger) write(dstPath string, data []byte, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "creating parent directory for %s", dstPath)
	}
	if err := os.WriteFile(dstPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "writing %s", dstPath)
	}
	return nil
}

// collectSourceFiles lists every regular file under root as a
// slash-separated relative path, in deterministic order. The release and
// install manifests themselves are metadata, not payload.
func collectSourceFiles(root string) ([]string, error) {
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
		if rel == release.ManifestFileName || rel == manifest.FileName {
			return nil
		}
		rels = append(rels, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(rels)
	return rels, nil
}

// samePath reports whether two paths resolve to the same absolute
// location, following symlinks when the paths exist.
func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, err
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, err
	}
	if resolved, err := filepath.EvalSymlinks(absA); err == nil {
		absA = resolved
	}
	if resolved, err := filepath.EvalSymlinks(absB); err == nil {
		absB = resolved
	}
	return absA == absB, nil
}
