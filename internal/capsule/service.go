package capsule

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"capsule-go/internal/archive"
	"capsule-go/internal/fs"
)

// Options tune how capsules are written.
type Options struct {
	Compression archive.Compression
	// Ignore holds extra ignore patterns on top of the configuration
	// directory's own ignore file.
	Ignore []string
}

// CapsuleService runs the create, list and restore workflows against one
// resolved Layout.
type CapsuleService struct {
	fs          afero.Fs
	layout      Layout
	store       Store
	logger      Logger
	clock       Clock
	compression archive.Compression
	ignore      []string
}

// NewCapsuleService wires a service. Every workflow runs synchronously on
// the caller's goroutine.
func NewCapsuleService(afs afero.Fs, layout Layout, store Store, logger Logger, clock Clock, opts Options) *CapsuleService {
	compression := opts.Compression
	if compression == "" {
		compression = archive.Store
	}
	return &CapsuleService{
		fs:          afs,
		layout:      layout,
		store:       store,
		logger:      logger,
		clock:       clock,
		compression: compression,
		ignore:      opts.Ignore,
	}
}

// ignoreMatcher combines configured patterns with the ignore file in the
// configuration directory.
func (s *CapsuleService) ignoreMatcher() (*fs.IgnoreMatcher, error) {
	patterns, err := fs.ParseIgnoreFile(s.fs, filepath.Join(s.layout.ConfigDir, fs.IgnoreFileName))
	if err != nil {
		return nil, fmt.Errorf("loading ignore patterns: %w", err)
	}
	return fs.NewIgnoreMatcher(append(append([]string{}, s.ignore...), patterns...)), nil
}

// archives returns the store entries that are capsule archives.
func (s *CapsuleService) archives(order SortOrder) ([]*Capsule, error) {
	exists, err := s.store.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNoCapsules
	}

	entries, err := s.store.List(order)
	if err != nil {
		return nil, fmt.Errorf("listing capsules: %w", err)
	}

	capsules := entries[:0]
	for _, c := range entries {
		if IsArchiveName(c.Name) {
			capsules = append(capsules, c)
		}
	}
	if len(capsules) == 0 {
		return nil, ErrNoCapsules
	}
	return capsules, nil
}
