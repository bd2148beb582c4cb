package store

import (
	"os"
	"path"
	"strings"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// billyStore implements types.DocumentStore using a go-billy filesystem
type billyStore struct {
	fs billy.Filesystem
}

// NewBilly creates a store on top of a billy filesystem. The filesystem
// root is the vault root.
func NewBilly(fs billy.Filesystem) types.DocumentStore {
	return &billyStore{fs: fs}
}

func (s *billyStore) real(p string) string {
	return path.Join("/", strings.ReplaceAll(p, "\\", "/"))
}

func (s *billyStore) ReadText(p string) (string, error) {
	data, err := util.ReadFile(s.fs, s.real(p))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrRead, "failed to read %s", p).WithDetail("path", p)
	}
	return string(data), nil
}

func (s *billyStore) WriteText(p, content string) error {
	real := s.real(p)
	if err := s.write(real, []byte(content), s.mode(real)); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to write %s", p).WithDetail("path", p)
	}
	return nil
}

func (s *billyStore) Copy(srcPath, destPath string) error {
	src := s.real(srcPath)
	data, err := util.ReadFile(s.fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrRead, "failed to read %s", srcPath).WithDetail("path", srcPath)
	}
	if err := s.write(s.real(destPath), data, s.mode(src)); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to copy %s to %s", srcPath, destPath).
			WithDetail("path", destPath)
	}
	return nil
}

func (s *billyStore) Remove(p string) error {
	if err := s.fs.Remove(s.real(p)); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "failed to remove %s", p).WithDetail("path", p)
	}
	return nil
}

func (s *billyStore) Exists(p string) bool {
	info, err := s.fs.Stat(s.real(p))
	return err == nil && !info.IsDir()
}

func (s *billyStore) ListFiles(recursive bool) ([]types.FileDescriptor, error) {
	var files []types.FileDescriptor
	if err := s.walk("/", recursive, &files); err != nil {
		return nil, errors.Wrap(err, errors.ErrList, "failed to list vault")
	}
	return files, nil
}

func (s *billyStore) walk(dir string, recursive bool, files *[]types.FileDescriptor) error {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		p := path.Join(dir, entry.Name())
		if entry.IsDir() {
			if !recursive || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if err := s.walk(p, recursive, files); err != nil {
				return err
			}
			continue
		}
		*files = append(*files, types.NewFileDescriptor(p))
	}
	return nil
}

func (s *billyStore) mode(real string) os.FileMode {
	if info, err := s.fs.Stat(real); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}

func (s *billyStore) write(real string, data []byte, perm os.FileMode) error {
	if err := s.fs.MkdirAll(path.Dir(real), 0755); err != nil {
		return err
	}
	return util.WriteFile(s.fs, real, data, perm)
}
