package capsule

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHome means the home directory could not be resolved.
	ErrNoHome = errors.New("home directory not available")

	// ErrNoCapsules is the normal empty state: no store or nothing in it.
	ErrNoCapsules = errors.New("no capsules found")

	// ErrCapsuleExists is returned when the destination capsule is already on disk.
	ErrCapsuleExists = errors.New("destination already exists")

	// ErrConfigDirMissing is returned by create when there is nothing to archive.
	ErrConfigDirMissing = errors.New("configuration directory not found")
)

// SelectionError describes an unusable answer to the restore menu.
type SelectionError struct {
	Input string
	Count int
}

func (e *SelectionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("invalid selection %q: no capsules to choose from", e.Input)
	}
	return fmt.Sprintf("invalid selection %q: expected a number between 1 and %d", e.Input, e.Count)
}

// AuxiliaryError reports a failed auxiliary file backup after the capsule
// itself was written successfully.
type AuxiliaryError struct {
	Path string
	Err  error
}

func (e *AuxiliaryError) Error() string {
	return fmt.Sprintf("backing up %s: %v", e.Path, e.Err)
}

func (e *AuxiliaryError) Unwrap() error { return e.Err }
