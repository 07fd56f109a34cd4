package commands

import (
	"github.com/spf13/cobra"

	"github.com/getcodekit/codekit/pkg/core"
	"github.com/getcodekit/codekit/pkg/types"
)

func newUpCmd(rf *rootFlags) *cobra.Command {
	var (
		global         bool
		fresh          bool
		overwrite      bool
		noBackup       bool
		nonInteractive bool
		includeGlobs   []string
		excludeGlobs   []string
		kitName        string
		kitVersion     string
		workers        int
	)

	cmd := &cobra.Command{
		Use:     "up <release-dir>",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(global)
			projectRoot, installDir, err := targetDirs(scope)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(projectRoot, nil)
			if err != nil {
				return err
			}

			policy := types.ConflictPolicy(cfg.K.String("sync.conflictPolicy"))
			if overwrite {
				policy = types.PolicyOverwrite
			}
			backup := cfg.K.Bool("sync.backup") && !noBackup
			if workers == 0 {
				workers = cfg.K.Int("sync.workers")
			}
			interactive := !nonInteractive && stdinIsInteractive()

			result, err := core.Sync(core.SyncOptions{
				ReleaseDir:   args[0],
				InstallDir:   installDir,
				KitName:      kitName,
				Version:      kitVersion,
				Scope:        scope,
				IncludeGlobs: includeGlobs,
				ExcludeGlobs: excludeGlobs,
				Interactive:  interactive,
				DryRun:       rf.dryRun,
				Backup:       backup,
				Fresh:        fresh,
				Policy:       policy,
				Workers:      workers,
				Prompter:     newPrompter(interactive),
			})

			if result != nil && result.Merge != nil {
				r, rerr := newRenderer(cmd, rf)
				if rerr != nil {
					return rerr
				}
				name := kitName
				if result.Track != nil && result.Track.Manifest != nil {
					name = result.Track.Manifest.KitName
				}
				if name == "" {
					name = "kit"
				}
				r.RenderSync(result, name)
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, MsgFlagGlobal)
	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore existing baselines and classify every file as a first install")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Resolve conflicts by overwriting instead of keeping existing files")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the backup copy during layout migration")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, MsgFlagNonInteractive)
	cmd.Flags().StringSliceVar(&includeGlobs, "include", nil, "Only sync files matching these globs")
	cmd.Flags().StringSliceVar(&excludeGlobs, "exclude", nil, "Skip files matching these globs")
	cmd.Flags().StringVar(&kitName, "kit", "", "Kit name when the release ships no manifest")
	cmd.Flags().StringVar(&kitVersion, "kit-version", "", "Kit version when the release ships no manifest")
	cmd.Flags().IntVar(&workers, "workers", 0, "Checksum worker pool size (0 derives it from the host)")

	return cmd
}
