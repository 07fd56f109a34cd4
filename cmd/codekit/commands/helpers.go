package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/getcodekit/codekit/pkg/config"
	"github.com/getcodekit/codekit/pkg/paths"
	"github.com/getcodekit/codekit/pkg/prompt"
	"github.com/getcodekit/codekit/pkg/types"
	"github.com/getcodekit/codekit/pkg/ui"
)

func resolveScope(global bool) types.Scope {
	if global {
		return types.GlobalScope
	}
	return types.LocalScope
}

// targetDirs resolves the project root and install directory for a scope.
// Global scope needs no project root.
func targetDirs(scope types.Scope) (projectRoot, installDir string, err error) {
	if !scope.Global {
		projectRoot, err = os.Getwd()
		if err != nil {
			return "", "", err
		}
	}
	installDir, err = paths.InstallDir(scope, projectRoot)
	return projectRoot, installDir, err
}

func loadConfig(projectRoot string, overrides map[string]interface{}) (*config.Resolved, error) {
	return config.Resolve(paths.GlobalConfigPath(), paths.LocalConfigPath(projectRoot), overrides)
}

// stdinIsInteractive reports whether prompting the user makes sense.
func stdinIsInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func newPrompter(interactive bool) types.Prompter {
	if interactive {
		return prompt.NewInteractive()
	}
	return prompt.NewNonInteractive(true)
}

func newRenderer(cmd *cobra.Command, rf *rootFlags) (*ui.Renderer, error) {
	format, err := ui.ParseFormat(rf.format)
	if err != nil {
		return nil, err
	}
	if format == ui.FormatAuto {
		format = ui.DetectFormat(os.Stdout)
	}
	return ui.NewRenderer(cmd.OutOrStdout(), format), nil
}
