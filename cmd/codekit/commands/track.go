package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getcodekit/codekit/pkg/core"
)

func newTrackCmd(rf *rootFlags) *cobra.Command {
	var (
		global     bool
		kitName    string
		kitVersion string
		workers    int
	)

	cmd := &cobra.Command{
		Use:     "track [release-dir]",
		Short:   MsgTrackShort,
		Long:    MsgTrackLong,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(global)
			_, installDir, err := targetDirs(scope)
			if err != nil {
				return err
			}

			releaseDir := ""
			if len(args) == 1 {
				releaseDir = args[0]
			}

			result, err := core.Retrack(installDir, releaseDir, kitName, kitVersion, scope, workers, nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tracked %d file(s) in %s\n", len(result.Manifest.Files), installDir)
			if len(result.Pruned) > 0 {
				fmt.Fprintf(out, "Pruned %d stale manifest entr(ies)\n", len(result.Pruned))
			}
			for _, e := range result.Errors {
				fmt.Fprintf(out, "warning: %v\n", e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, MsgFlagGlobal)
	cmd.Flags().StringVar(&kitName, "kit", "", "Kit name when no release manifest is available")
	cmd.Flags().StringVar(&kitVersion, "kit-version", "", "Kit version when no release manifest is available")
	cmd.Flags().IntVar(&workers, "workers", 0, "Checksum worker pool size (0 derives it from the host)")

	return cmd
}
