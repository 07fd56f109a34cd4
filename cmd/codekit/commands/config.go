package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getcodekit/codekit/pkg/config"
	"github.com/getcodekit/codekit/pkg/paths"
)

func newConfigCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectRoot, _, err := targetDirs(resolveScope(false))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(projectRoot, nil)
			if err != nil {
				return err
			}

			r, err := newRenderer(cmd, rf)
			if err != nil {
				return err
			}
			r.RenderConfig(cfg)
			return nil
		},
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file with the built-in defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scope := resolveScope(global)
			path := paths.GlobalConfigPath()
			if !scope.Global {
				projectRoot, _, err := targetDirs(scope)
				if err != nil {
					return err
				}
				path = paths.LocalConfigPath(projectRoot)
			}

			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, MsgFlagGlobal)

	return cmd
}
