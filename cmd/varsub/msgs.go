package varsub

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Substitute inline variables in a vault of documents"
	MsgRootLong       = "varsub finds <span class=\"var-start\">name</span>...<span class=\"var-end\">name</span> markers in\nyour documents and replaces the text between them with the value of name from a\nkey:value variable file."
	MsgApplyShort     = "Substitute variables in one document"
	MsgApplyLong      = "Apply resolves every marker in a single document and writes it back when a value\nchanged. Backups are never taken in this mode."
	MsgApplyExample   = "  varsub apply notes/today.md\n  varsub --dry-run apply notes/today.md"
	MsgAllShort       = "Substitute variables in every document of the vault"
	MsgAllLong        = "All processes every document whose extension is configured, one at a time and in\npath order, backing each modified document up first when backups are enabled."
	MsgWatchShort     = "Re-run substitution whenever the variable file changes"
	MsgConfigShort    = "Print the effective configuration"
	MsgGenConfigShort = "Generate a default configuration file"
	MsgGenConfigLong  = "Output the default configuration to stdout, or with -w write it to .varsub.toml\nat the vault root."
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVault        = "Vault root directory (default: $VARSUB_VAULT, git root or current directory)"
	MsgFlagDryRun       = "Resolve and report without writing any file"
	MsgFlagVariableFile = "Variable file, relative to the vault root"
	MsgFlagBackupFolder = "Backup folder, relative to the vault root"
	MsgFlagBackup       = "Back documents up before batch rewrites"
	MsgFlagNoBackup     = "Disable backups for this run"
	MsgFlagDebugPrint   = "Log the status of every variable"
	MsgFlagWrite        = "Write config to .varsub.toml instead of stdout"

	// Status messages
	MsgFallbackWarning = "Warning: using current directory as vault root: %s\n"
	MsgVersionFormat   = "varsub version %s\n  commit: %s\n  built:  %s\n"
	MsgConfigWritten   = "Wrote %s\n"
	MsgWatching        = "Watching %s, press Ctrl-C to stop\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrOutsideVault  = "%s is outside the vault %s"
	MsgErrFailedDocs    = "%d document(s) failed"
	MsgErrConfigExists  = "%s already exists"
	MsgErrBackupFlags   = "--backup and --no-backup are mutually exclusive"
	MsgErrNoVariableSet = "variable_file is not set"
)
