// Package store implements the capsule store directory.
package store

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"capsule-go/internal/capsule"
)

const (
	dirPerm  iofs.FileMode = 0o755
	filePerm iofs.FileMode = 0o644
)

// FileSystemStore keeps capsules and auxiliary backups as plain files in
// one directory:
//
//	<root>/
//	  emacs_capsule_<timestamp>.zip
//	  .spacemacs_backup_<timestamp>
type FileSystemStore struct {
	fs   afero.Fs
	root string
}

// NewFileSystemStore returns a store rooted at root. Nothing is created
// until EnsureDir is called.
func NewFileSystemStore(afs afero.Fs, root string) *FileSystemStore {
	return &FileSystemStore{fs: afs, root: root}
}

func (s *FileSystemStore) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Exists reports whether the store directory is present.
func (s *FileSystemStore) Exists() (bool, error) {
	ok, err := afero.DirExists(s.fs, s.root)
	if err != nil {
		return false, fmt.Errorf("checking capsule store: %w", err)
	}
	return ok, nil
}

// EnsureDir creates the store directory and any parents.
func (s *FileSystemStore) EnsureDir() error {
	if err := s.fs.MkdirAll(s.root, dirPerm); err != nil {
		return fmt.Errorf("creating capsule store: %w", err)
	}
	return nil
}

// List returns every regular file in the store except .DS_Store.
func (s *FileSystemStore) List(order capsule.SortOrder) ([]*capsule.Capsule, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil, fmt.Errorf("reading capsule store: %w", err)
	}

	var capsules []*capsule.Capsule
	for _, info := range entries {
		if info.Name() == capsule.DSStore || !info.Mode().IsRegular() {
			continue
		}
		capsules = append(capsules, capsule.NewCapsule(
			info.Name(),
			s.Path(info.Name()),
			info.Size(),
			info.ModTime(),
		))
	}

	capsule.Sort(capsules, order)
	return capsules, nil
}

// Create opens a new store entry for writing. An existing entry is never
// replaced.
func (s *FileSystemStore) Create(name string) (io.WriteCloser, error) {
	path := s.Path(name)

	exists, err := afero.Exists(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", capsule.ErrCapsuleExists, path)
	}

	f, err := s.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", capsule.ErrCapsuleExists, path)
		}
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, nil
}

// PutFile writes r to name via a temp file and rename, so a reader never
// sees a partial entry. size must match the number of bytes in r.
func (s *FileSystemStore) PutFile(name string, r io.Reader, size int64) error {
	tmp, err := afero.TempFile(s.fs, s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			s.fs.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("writing data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := s.fs.Rename(tmpPath, s.Path(name)); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}

	success = true
	return nil
}

var _ capsule.Store = (*FileSystemStore)(nil)
