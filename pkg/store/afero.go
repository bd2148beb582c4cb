package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/spf13/afero"
)

// aferoStore implements types.DocumentStore using afero
type aferoStore struct {
	fs afero.Fs
}

// NewAfero creates a store on top of an afero filesystem. The filesystem
// root is the vault root.
func NewAfero(fs afero.Fs) types.DocumentStore {
	return &aferoStore{fs: fs}
}

// NewOS creates a store rooted at the vault directory on disk
func NewOS(root string) types.DocumentStore {
	return NewAfero(afero.NewBasePathFs(afero.NewOsFs(), root))
}

func (s *aferoStore) real(p string) string {
	return filepath.Join(string(filepath.Separator), filepath.FromSlash(p))
}

func (s *aferoStore) ReadText(p string) (string, error) {
	data, err := afero.ReadFile(s.fs, s.real(p))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRead, "failed to read %s", p).WithDetail("path", p)
	}
	return string(data), nil
}

func (s *aferoStore) WriteText(p, content string) error {
	if err := s.write(s.real(p), []byte(content), s.mode(s.real(p))); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to write %s", p).WithDetail("path", p)
	}
	return nil
}

func (s *aferoStore) Copy(srcPath, destPath string) error {
	src := s.real(srcPath)
	data, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRead, "failed to read %s", srcPath).WithDetail("path", srcPath)
	}
	if err := s.write(s.real(destPath), data, s.mode(src)); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to copy %s to %s", srcPath, destPath).
			WithDetail("path", destPath)
	}
	return nil
}

func (s *aferoStore) Remove(p string) error {
	if err := s.fs.Remove(s.real(p)); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to remove %s", p).WithDetail("path", p)
	}
	return nil
}

func (s *aferoStore) Exists(p string) bool {
	info, err := s.fs.Stat(s.real(p))
	return err == nil && !info.IsDir()
}

func (s *aferoStore) ListFiles(recursive bool) ([]types.FileDescriptor, error) {
	root := string(filepath.Separator)
	var files []types.FileDescriptor

	if !recursive {
		entries, err := afero.ReadDir(s.fs, root)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrList, "failed to list vault")
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				files = append(files, types.NewFileDescriptor(entry.Name()))
			}
		}
		return files, nil
	}

	err := afero.Walk(s.fs, root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if p != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		files = append(files, types.NewFileDescriptor(filepath.ToSlash(p)))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrList, "failed to list vault")
	}
	return files, nil
}

func (s *aferoStore) mode(real string) os.FileMode {
	if info, err := s.fs.Stat(real); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

func (s *aferoStore) write(real string, data []byte, perm os.FileMode) error {
	if err := s.fs.MkdirAll(filepath.Dir(real), 0755); err != nil {
		return err
	}
	return afero.WriteFile(s.fs, real, data, perm)
}
