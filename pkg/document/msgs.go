package document

// User-visible notices
const (
	MsgSubstitutionDone = "Substitution is done"
	MsgNothingUpdated   = "Nothing is updated"
	MsgNoVariableFound  = "No variable is found"
	MsgDryRun           = "Dry run: %s would be updated"
	MsgReadFailed       = "Failed to read %s"
	MsgBackupFailed     = "Failed to back up %s, not writing it"
	MsgWriteFailed      = "Failed to write %s"
	MsgMismatchSuffix   = " of %s"
)
