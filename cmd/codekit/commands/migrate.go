package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getcodekit/codekit/pkg/layout"
	"github.com/getcodekit/codekit/pkg/paths"
	"github.com/getcodekit/codekit/pkg/types"
)

func newMigrateCmd(rf *rootFlags) *cobra.Command {
	var (
		global         bool
		noBackup       bool
		check          bool
		nonInteractive bool
	)

	cmd := &cobra.Command{
		Use:     "migrate",
		Short:   MsgMigrateShort,
		Long:    MsgMigrateLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(global)
			_, installDir, err := targetDirs(scope)
			if err != nil {
				return err
			}

			interactive := !nonInteractive && stdinIsInteractive()
			prompter := newPrompter(interactive)
			out := cmd.OutOrStdout()

			for _, name := range []string{paths.SkillsDirName, paths.RulesDirName} {
				newDir := paths.LayoutDir(installDir, name)
				oldDir := paths.LegacyLayoutDir(installDir, name)

				det := layout.Detect(newDir, oldDir)
				if det.Status == types.MigrationNone {
					fmt.Fprintf(out, "%s: up to date\n", name)
					continue
				}
				if check {
					fmt.Fprintf(out, "%s: migration %s\n", name, det.Status)
					continue
				}

				result, err := layout.Migrate(newDir, oldDir, prompter, layout.MigrateOptions{
					Interactive: interactive,
					Backup:      !noBackup,
					DryRun:      rf.dryRun,
				})
				if err != nil {
					return err
				}

				verb := "moved"
				if result.DryRun {
					verb = "would move"
				}
				fmt.Fprintf(out, "%s: %s %d file(s)\n", name, verb, len(result.Moved))
				for _, c := range result.Conflicts {
					fmt.Fprintf(out, "%s: kept existing %s\n", name, c)
				}
				if result.BackupPath != "" {
					fmt.Fprintf(out, "%s: backup at %s\n", name, result.BackupPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, MsgFlagGlobal)
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the backup copy of the old location")
	cmd.Flags().BoolVar(&check, "check", false, "Report migration status without changing anything")
	cmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, MsgFlagNonInteractive)

	return cmd
}
