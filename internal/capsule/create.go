package capsule

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"time"

	"capsule-go/internal/archive"
	"capsule-go/internal/fs"
)

// CreateResult describes a written capsule.
type CreateResult struct {
	Capsule *Capsule
	Files   int
	Dirs    int
	// Bytes is the uncompressed size of the archived files.
	Bytes int64

	// AuxBackup is the store path of the auxiliary file copy. It is empty
	// when the auxiliary file does not exist.
	AuxBackup string
}

// Create snapshots the configuration directory into a new capsule, then
// copies the auxiliary file next to it under the same timestamp.
//
// A failed archive leaves the partial capsule on disk; the error names it.
// When only the auxiliary copy fails, the result is returned together with
// an *AuxiliaryError.
func (s *CapsuleService) Create(progress Progress) (*CreateResult, error) {
	now := s.clock.Now()
	name := CapsuleName(now)
	path := s.store.Path(name)

	s.logger.Info("create started", "source", s.layout.ConfigDir, "capsule", path)

	info, err := s.fs.Stat(s.layout.ConfigDir)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigDirMissing, s.layout.ConfigDir)
		}
		return nil, fmt.Errorf("checking configuration directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrConfigDirMissing, s.layout.ConfigDir)
	}

	if err := s.store.EnsureDir(); err != nil {
		return nil, err
	}

	matcher, err := s.ignoreMatcher()
	if err != nil {
		return nil, err
	}

	total, err := fs.CountFiles(s.fs, s.layout.ConfigDir, matcher.Skip)
	if err != nil {
		return nil, err
	}

	w, err := s.store.Create(name)
	if err != nil {
		return nil, err
	}

	progress.Start(total)
	stats, err := archive.Write(w, s.fs, s.layout.ConfigDir, archive.WriteOptions{
		Base:        s.layout.Home,
		Compression: s.compression,
		Skip:        matcher.Skip,
		OnFile:      func(string) { progress.Advance() },
	})
	progress.Finish()
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("writing capsule (partial file left at %s): %w", path, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing capsule %s: %w", path, err)
	}

	for _, skipped := range stats.Skipped {
		s.logger.Debug("skipped non-regular file", "path", skipped)
	}

	written, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat capsule: %w", err)
	}

	result := &CreateResult{
		Capsule: NewCapsule(name, path, written.Size(), written.ModTime()),
		Files:   stats.Files,
		Dirs:    stats.Dirs,
		Bytes:   stats.Bytes,
	}
	s.logger.Info("capsule created", "capsule", path, "files", stats.Files, "size", written.Size())

	auxPath, err := s.backupAuxFile(now)
	if err != nil {
		s.logger.Error("auxiliary backup failed", "path", s.layout.AuxFile, "error", err)
		return result, &AuxiliaryError{Path: s.layout.AuxFile, Err: err}
	}
	result.AuxBackup = auxPath
	return result, nil
}

// backupAuxFile copies the auxiliary file into the store. A missing
// auxiliary file is not an error; it returns an empty path.
func (s *CapsuleService) backupAuxFile(now time.Time) (string, error) {
	f, err := s.fs.Open(s.layout.AuxFile)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			s.logger.Info("auxiliary file not found, skipping", "path", s.layout.AuxFile)
			return "", nil
		}
		return "", fmt.Errorf("opening: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat: %w", err)
	}

	name := AuxBackupName(now)
	if err := s.store.PutFile(name, f, info.Size()); err != nil {
		return "", err
	}
	return s.store.Path(name), nil
}
