// Package backup copies documents into a flat backup folder before they
// are rewritten.
package backup

import (
	"path"
	"strings"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/rs/zerolog"
)

// Extension is appended to the original file name
const Extension = ".bak"

// Backup writes <folder>/<name>.bak copies through a DocumentStore
type Backup struct {
	store  types.DocumentStore
	folder string
	logger zerolog.Logger
}

// New creates a Backup writing into folder, a vault-relative path
func New(store types.DocumentStore, folder string) *Backup {
	return &Backup{
		store:  store,
		folder: strings.Trim(path.Clean("/"+strings.ReplaceAll(folder, "\\", "/")), "/"),
		logger: logging.GetLogger("backup"),
	}
}

// PathFor returns the backup location for doc. Folder structure of the
// original is not preserved.
func (b *Backup) PathFor(doc types.FileDescriptor) string {
	return path.Join(b.folder, doc.Name+Extension)
}

// Create copies doc to its backup location, replacing any previous backup
// at that exact path. It returns the backup path.
func (b *Backup) Create(doc types.FileDescriptor) (string, error) {
	dest := b.PathFor(doc)

	if b.store.Exists(dest) {
		if err := b.store.Remove(dest); err != nil {
			b.logger.Error().Err(err).Str("backup", dest).Msg("Failed to remove previous backup")
			return "", errors.Wrapf(err, errors.ErrBackup, "failed to remove previous backup %s", dest).
				WithDetail("path", doc.Path)
		}
	}

	if err := b.store.Copy(doc.Path, dest); err != nil {
		b.logger.Error().Err(err).Str("document", doc.Path).Str("backup", dest).Msg("Failed to create backup")
		return "", errors.Wrapf(err, errors.ErrBackup, "failed to back up %s to %s", doc.Path, dest).
			WithDetail("path", doc.Path)
	}

	b.logger.Debug().Str("document", doc.Path).Str("backup", dest).Msg("Created backup")
	return dest, nil
}
