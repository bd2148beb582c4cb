package types

import (
	"path"
	"strings"
)

// FileDescriptor describes a document in the store
type FileDescriptor struct {
	// Path is vault-relative, e.g. "notes/today.md"
	Path string
	// Name is the base name including extension, e.g. "today.md"
	Name string
	// Extension is the extension without the leading dot, e.g. "md"
	Extension string
}

// NewFileDescriptor builds a FileDescriptor from a vault-relative path
func NewFileDescriptor(p string) FileDescriptor {
	p = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
	name := path.Base(p)
	return FileDescriptor{
		Path:      p,
		Name:      name,
		Extension: strings.TrimPrefix(path.Ext(name), "."),
	}
}
