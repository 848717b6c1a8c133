package capsule

import "io"

// Store manages the directory holding capsules and auxiliary backups.
type Store interface {
	// Path returns the full path of a store entry.
	Path(name string) string

	// Exists reports whether the store directory is present.
	Exists() (bool, error)

	// EnsureDir creates the store directory and its parents. Idempotent.
	EnsureDir() error

	// List returns the regular files in the store, excluding .DS_Store.
	List(order SortOrder) ([]*Capsule, error)

	// Create opens a new entry for writing. It fails with ErrCapsuleExists
	// when the entry is already present; existing entries are never
	// overwritten.
	Create(name string) (io.WriteCloser, error)

	// PutFile atomically stores size bytes read from r under name.
	PutFile(name string, r io.Reader, size int64) error
}
