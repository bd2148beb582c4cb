package engine

// User-visible notices
const (
	MsgVariableFileNotFound = "Variable file not found: %s"
	MsgNoDefinitions        = "No definitions found in %s"
	MsgVariableFileUnread   = "Failed to read variable file %s"
	MsgListFailed           = "Failed to list documents"
)
