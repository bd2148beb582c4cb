package store

import (
	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/go-git/go-billy/v5/osfs"
)

// Driver names accepted by New
const (
	DriverAfero = "afero"
	DriverBilly = "billy"
)

// New creates an on-disk store rooted at root using the named driver.
// An empty driver selects afero.
func New(driver, root string) (types.DocumentStore, error) {
	switch driver {
	case "", DriverAfero:
		return NewOS(root), nil
	case DriverBilly:
		return NewBilly(osfs.New(root)), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown store driver %q", driver)
	}
}
