// Package paths centralizes codekit's path handling: installation
// directories per scope, config file locations, and the canonical layout
// directories whose drift the layout migrator repairs.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/getcodekit/codekit/pkg/types"
)

// Environment variable names
const (
	// EnvHome overrides the global installation directory.
	EnvHome = "CODEKIT_HOME"

	// EnvConfigDir overrides the XDG config directory for codekit.
	EnvConfigDir = "CODEKIT_CONFIG_DIR"
)

// Directory and file names
// These define codekit's on-disk structure and are not user-configurable.
const (
	// ToolDirName is the tool-owned directory inside a project and the
	// default global install directory name under $HOME.
	ToolDirName = ".codekit"

	// SkillsDirName holds skill bundles inside an installation.
	SkillsDirName = "skills"

	// RulesDirName holds rule files inside an installation.
	RulesDirName = "rules"

	// AppName is used for XDG subdirectories.
	AppName = "codekit"
)

// InstallDir resolves the installation directory for a scope. Local scope
// requires a project root.
func InstallDir(scope types.Scope, projectRoot string) (string, error) {
	if scope.Global {
		if dir := os.Getenv(EnvHome); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrNotFound, "cannot determine home directory for global install")
		}
		return filepath.Join(home, ToolDirName), nil
	}

	if projectRoot == "" {
		return "", errors.New(errors.ErrInvalidInput, "local scope requires a project root")
	}
	return filepath.Join(projectRoot, ToolDirName), nil
}

// GlobalConfigPath is the per-user config document location.
func GlobalConfigPath() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, "config.toml")
	}
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// LocalConfigPath is the per-project config document location.
func LocalConfigPath(projectRoot string) string {
	if projectRoot == "" {
		return ""
	}
	return filepath.Join(projectRoot, ToolDirName, "config.toml")
}

// LegacyLayoutDir is the old canonical location of a managed
// subdirectory: directly under the installation's parent root rather than
// inside the tool directory.
func LegacyLayoutDir(installDir, name string) string {
	return filepath.Join(filepath.Dir(installDir), name)
}

// LayoutDir is the new canonical location of a managed subdirectory,
// inside the tool directory.
func LayoutDir(installDir, name string) string {
	return filepath.Join(installDir, name)
}
