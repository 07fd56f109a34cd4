package types

// MergeAction is the per-file decision the change planner makes.
type MergeAction string

const (
	// ActionCreate writes a file that does not exist at the target.
	ActionCreate MergeAction = "create"

	// ActionSkip leaves a byte-identical target untouched.
	ActionSkip MergeAction = "skip"

	// ActionOverwrite refreshes an unmodified tool-owned file.
	ActionOverwrite MergeAction = "overwrite"

	// ActionConflict marks a target that differs and is user-owned or
	// user-edited; resolution goes through the Prompter or the default
	// conflict policy.
	ActionConflict MergeAction = "conflict"
)

// ConflictPolicy is the deterministic resolution applied to conflicts in
// non-interactive runs.
type ConflictPolicy string

const (
	// PolicyKeep preserves the existing target file.
	PolicyKeep ConflictPolicy = "keep"

	// PolicyOverwrite replaces the target with the release file.
	PolicyOverwrite ConflictPolicy = "overwrite"
)

// MergeOptions controls a change planner run.
type MergeOptions struct {
	IncludeGlobs []string
	ExcludeGlobs []string
	Scope        Scope
	Interactive  bool
	DryRun       bool

	// Policy resolves conflicts when Interactive is false.
	Policy ConflictPolicy
}

// FileResult records the outcome for one file in a merge run.
type FileResult struct {
	RelPath string
	Action  MergeAction
	Skipped bool
	Reason  string
	Err     error
}

// MergeResult summarizes a change planner run. Per-file I/O failures are
// aggregated here rather than raised; only structural failures abort a
// merge.
type MergeResult struct {
	Files []FileResult

	// Installed lists the relative paths present at the target after the
	// run (written this run or confirmed identical). The tracker consumes
	// this list.
	Installed []string

	// Written lists the subset of Installed actually written this run
	// (creates, refreshes, resolved overwrites). The tracker must not
	// mistake these for user edits when their content diverges from the
	// old baseline.
	Written []string

	Created     int
	Overwritten int
	Skipped     int
	Failed      int

	// Cancelled is set when the user aborted the run. Files already
	// written stay in place; there is no rollback.
	Cancelled bool
}

// Add records a file result and updates the counters.
func (r *MergeResult) Add(fr FileResult) {
	r.Files = append(r.Files, fr)
	switch {
	case fr.Err != nil:
		r.Failed++
	case fr.Skipped:
		r.Skipped++
	case fr.Action == ActionCreate:
		r.Created++
	case fr.Action == ActionOverwrite:
		r.Overwritten++
	default:
		r.Skipped++
	}
}

// Failures returns the reasons for every failed file.
func (r *MergeResult) Failures() []string {
	var out []string
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f.RelPath+": "+f.Err.Error())
		}
	}
	return out
}
