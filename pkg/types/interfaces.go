package types

// DocumentStore is the host's document storage. Paths are vault-relative
// and use forward slashes.
type DocumentStore interface {
	// ReadText returns the full text of a document
	ReadText(path string) (string, error)

	// WriteText replaces the content of a document
	WriteText(path, content string) error

	// Copy copies srcPath to destPath, creating parent folders as needed
	Copy(srcPath, destPath string) error

	// Remove deletes a file
	Remove(path string) error

	// Exists reports whether a file exists at path
	Exists(path string) bool

	// ListFiles enumerates files in the store. Order is not guaranteed.
	ListFiles(recursive bool) ([]FileDescriptor, error)
}

// Notifier emits transient user-visible messages
type Notifier interface {
	Notify(message string)
}
