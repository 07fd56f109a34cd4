package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getcodekit/codekit/pkg/legacy"
	"github.com/getcodekit/codekit/pkg/manifest"
)

func newStatusCmd(rf *rootFlags) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(global)
			_, installDir, err := targetDirs(scope)
			if err != nil {
				return err
			}

			m, err := manifest.Load(installDir)
			if os.IsNotExist(err) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "No tracked installation at %s\n", installDir)
				if det := legacy.Detect(installDir); det.IsLegacy {
					fmt.Fprintf(out, "Untracked content found (%s); run 'codekit up' to adopt it\n", det.Reason)
				}
				return nil
			}
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, rf)
			if err != nil {
				return err
			}
			r.RenderManifest(m)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, MsgFlagGlobal)

	return cmd
}
