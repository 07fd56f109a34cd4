package commands

// Message constants
const (
	MsgRootShort = "Keep a codekit installation in sync with its release"
	MsgRootLong  = `codekit installs and updates kit releases (skills, rules and related
configuration for your coding assistant) into a project or your home
directory, while tracking which files it owns.

Files you create or edit are never overwritten silently: every installed
file carries an ownership record, and user-owned or user-edited files
turn updates into explicit conflicts.`

	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun         = "Preview changes without executing them"
	MsgFlagFormat         = "Output format: auto, term or text"
	MsgFlagGlobal         = "Operate on the global (per-user) installation"
	MsgFlagNonInteractive = "Never prompt; resolve conflicts with the configured policy"

	MsgUpShort = "Install or update a kit release"
	MsgUpLong  = `The 'up' command synchronizes a release tree into the installation
directory. For every file it decides one of: create, skip (identical),
overwrite (unmodified tool file) or conflict (user-owned or user-edited).

Conflicts are resolved interactively when a terminal is attached,
otherwise by the configured policy (keep by default). Afterwards every
installed file is checksummed and recorded in the install manifest.`

	MsgUpExample = `  # Install a release into the current project
  codekit up ./release

  # Install into the per-user installation
  codekit up --global ./release

  # Preview without writing anything
  codekit up --dry-run ./release

  # Update rules only, accepting release versions of conflicts
  codekit up --include 'rules/**' --overwrite ./release`

	MsgTrackShort = "Rebuild the install manifest from what is on disk"
	MsgTrackLong  = `The 'track' command re-runs ownership tracking over the installation
directory without copying any files. Use it to repair an "installed but
not tracked" outcome, or after moving files around by hand.

Pass the release directory so files the release claims are classified
tool-owned; without it every untracked file is recorded as user-owned.`

	MsgStatusShort = "Show the tracked installation"
	MsgStatusLong  = `The 'status' command prints the install manifest: kit name, version,
scope and every tracked file grouped by ownership. Files you have edited
since installation show up as tool-modified.`

	MsgMigrateShort = "Consolidate managed directories into the current layout"
	MsgMigrateLong  = `Older releases kept skills/ and rules/ next to the tool directory
instead of inside it. The 'migrate' command copies content from the old
location into the new one. Existing files at the destination are never
overwritten; collisions are reported and skipped. A timestamped backup
of the old location is taken first unless --no-backup is given.`

	MsgConfigShort = "Show the effective configuration"
	MsgConfigLong  = `The 'config' command prints every configuration key with its effective
value and the layer that supplied it: built-in default, the global
config file, or the project's config file.`
)
