package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/getcodekit/codekit/pkg/config"
	"github.com/getcodekit/codekit/pkg/core"
	"github.com/getcodekit/codekit/pkg/types"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Renderer writes human-readable result summaries.
type Renderer struct {
	out    io.Writer
	styled bool
}

// NewRenderer creates a Renderer. FormatAuto must be resolved by the
// caller before this point.
func NewRenderer(out io.Writer, format Format) *Renderer {
	return &Renderer{out: out, styled: format == FormatTerminal}
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

// RenderSync summarizes a full synchronization run.
func (r *Renderer) RenderSync(result *core.SyncResult, kitName string) {
	if result.Merge == nil {
		fmt.Fprintln(r.out, r.style(errorStyle, "sync did not reach the merge phase"))
		return
	}

	verb := "Synchronized"
	if result.Cancelled {
		verb = "Partially synchronized (cancelled)"
	}
	fmt.Fprintln(r.out, r.style(headingStyle, verb+" "+kitName))

	for _, mr := range result.Migrations {
		line := fmt.Sprintf("  layout: moved %d file(s) into the new location", len(mr.Moved))
		if mr.DryRun {
			line += " (dry run)"
		}
		fmt.Fprintln(r.out, r.style(dimStyle, line))
		for _, c := range mr.Conflicts {
			fmt.Fprintln(r.out, r.style(warnStyle, "  layout: kept existing "+c))
		}
		if mr.BackupPath != "" {
			fmt.Fprintln(r.out, r.style(dimStyle, "  layout: backup at "+mr.BackupPath))
		}
	}
	if result.LegacyMigrated {
		fmt.Fprintln(r.out, r.style(dimStyle, "  adopted untracked installation"))
	}

	m := result.Merge
	fmt.Fprintf(r.out, "  %s  %s  %s\n",
		r.style(successStyle, fmt.Sprintf("%d created", m.Created)),
		r.style(successStyle, fmt.Sprintf("%d updated", m.Overwritten)),
		r.style(dimStyle, fmt.Sprintf("%d skipped", m.Skipped)))

	if m.Failed > 0 {
		fmt.Fprintln(r.out, r.style(errorStyle, fmt.Sprintf("  %d failed:", m.Failed)))
		for _, reason := range m.Failures() {
			fmt.Fprintln(r.out, r.style(errorStyle, "    "+reason))
		}
	}

	if result.Track != nil && len(result.Track.Pruned) > 0 {
		fmt.Fprintf(r.out, "  %s\n",
			r.style(dimStyle, fmt.Sprintf("%d stale manifest entries pruned", len(result.Track.Pruned))))
	}
	if !result.Tracked && !result.Merge.Cancelled && result.State == types.SyncFailedPartial {
		fmt.Fprintln(r.out, r.style(warnStyle, "  installed but not tracked; run 'codekit track' to repair"))
	}
}

// RenderManifest lists tracked files grouped by ownership.
func (r *Renderer) RenderManifest(m *types.InstallManifest) {
	fmt.Fprintln(r.out, r.style(headingStyle,
		fmt.Sprintf("%s %s (%s)", m.KitName, m.Version, m.Scope)))

	byOwner := map[types.Ownership][]types.TrackedFile{}
	for _, f := range m.Files {
		byOwner[f.Ownership] = append(byOwner[f.Ownership], f)
	}

	for _, o := range []types.Ownership{types.OwnershipTool, types.OwnershipToolModified, types.OwnershipUser} {
		files := byOwner[o]
		if len(files) == 0 {
			continue
		}
		label := string(o)
		style := dimStyle
		if o == types.OwnershipToolModified {
			style = warnStyle
		}
		fmt.Fprintln(r.out, r.style(headingStyle, label+":"))
		for _, f := range files {
			fmt.Fprintln(r.out, r.style(style, "  "+f.Path))
		}
	}
}

// RenderConfig prints the effective configuration with the layer each
// value came from.
func (r *Renderer) RenderConfig(resolved *config.Resolved) {
	keys := make([]string, 0, len(resolved.Origins))
	for k := range resolved.Origins {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	width := 0
	for _, k := range keys {
		if len(k) > width {
			width = len(k)
		}
	}

	for _, k := range keys {
		value := fmt.Sprintf("%v", resolved.K.Get(k))
		origin := string(resolved.Origins[k])
		pad := strings.Repeat(" ", width-len(k))
		fmt.Fprintf(r.out, "%s%s  %s  %s\n",
			k, pad, value, r.style(dimStyle, "("+origin+")"))
	}
}
