package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

func CreateDirectoryIfDoesNotExist(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err := os.MkdirAll(directory, 0777)
		if err != nil {
			return err
		}
	}
	return nil
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Writes data to a temporary file next to path and renames it into place,
// so a failed write never leaves a partial file at path.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			err = multierr.Combine(err, os.Remove(tmpPath))
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		err = multierr.Combine(err, tmp.Close())
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Directory holding the output of a tiling run. A run owns its store exclusively.
type OutputStore struct {
	Dir string
}

func NewOutputStore(dir string) *OutputStore {
	return &OutputStore{Dir: dir}
}

func (s *OutputStore) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

func (s *OutputStore) Ensure() error {
	return CreateDirectoryIfDoesNotExist(s.Dir)
}

func (s *OutputStore) Exists(name string) bool {
	return FileExists(s.Path(name))
}

// Removes everything inside the directory, creating it if needed. Destructive.
func (s *OutputStore) Clear() error {
	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return s.Ensure()
	}
	if err != nil {
		return errors.Wrapf(err, "listing output folder %s", s.Dir)
	}
	for _, entry := range entries {
		if err := os.RemoveAll(s.Path(entry.Name())); err != nil {
			return errors.Wrapf(err, "clearing output folder %s", s.Dir)
		}
	}
	return nil
}

// Counts the regular files directly inside the directory with the given extension
func (s *OutputStore) CountFiles(extension string) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), extension) {
			count++
		}
	}
	return count, nil
}

func (s *OutputStore) WriteFile(name string, data []byte) error {
	return WriteFileAtomic(s.Path(name), data, 0644)
}

func (s *OutputStore) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(s.Path(name))
}

func (s *OutputStore) Remove(name string) error {
	return os.Remove(s.Path(name))
}
