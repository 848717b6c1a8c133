package capsule

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"capsule-go/internal/archive"
)

// RestoreResult describes a completed restore.
type RestoreResult struct {
	Capsule *Capsule
	// BackupDir is where the previous configuration directory was moved.
	// Empty when there was none.
	BackupDir string
	Files     int
}

// Restore lets chooser pick a capsule, moves the live configuration
// directory aside and extracts the capsule in its place.
//
// The configuration directory is renamed, never copied, and only after a
// valid selection and a readable archive, so a rejected selection leaves
// it untouched. Extraction failures leave a partially restored directory;
// the moved-aside copy is not touched.
func (s *CapsuleService) Restore(chooser Chooser, progress Progress) (*RestoreResult, error) {
	capsules, err := s.RestoreCandidates()
	if err != nil {
		return nil, err
	}

	selected, err := chooser.Choose(capsules)
	if err != nil {
		return nil, err
	}
	s.logger.Info("restore started", "capsule", selected.Path)

	r, err := archive.Open(s.fs, selected.Path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	backupDir, err := s.moveConfigAside()
	if err != nil {
		return nil, err
	}

	if err := s.fs.MkdirAll(s.layout.ConfigDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating configuration directory: %w", err)
	}

	progress.Start(r.FileCount())
	defer progress.Finish()

	files := 0
	for e := range r.Entries() {
		rel := stripConfigPrefix(e.Name)
		if rel == "" && !e.IsDir {
			s.logger.Warn("skipping entry without a path", "entry", e.RawName)
			continue
		}

		dest := filepath.Join(s.layout.ConfigDir, filepath.FromSlash(rel))
		if err := r.Extract(e, dest); err != nil {
			return nil, fmt.Errorf("extracting %s: %w", e.Name, err)
		}
		if !e.IsDir {
			s.logger.Debug("extracted", "entry", e.Name, "size", e.Size)
			files++
			progress.Advance()
		}
	}

	s.logger.Info("restore complete", "capsule", selected.Path, "files", files, "backup", backupDir)
	return &RestoreResult{
		Capsule:   selected,
		BackupDir: backupDir,
		Files:     files,
	}, nil
}

// moveConfigAside renames an existing configuration directory to its
// timestamped backup path and returns that path.
func (s *CapsuleService) moveConfigAside() (string, error) {
	_, err := s.fs.Stat(s.layout.ConfigDir)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("checking configuration directory: %w", err)
	}

	backupDir := s.layout.BackupDir(s.clock.Now())
	if _, err := s.fs.Stat(backupDir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrCapsuleExists, backupDir)
	}

	if err := s.fs.Rename(s.layout.ConfigDir, backupDir); err != nil {
		return "", fmt.Errorf("moving configuration directory aside: %w", err)
	}
	s.logger.Info("configuration directory moved", "from", s.layout.ConfigDir, "to", backupDir)
	return backupDir, nil
}

// stripConfigPrefix removes a leading configuration directory component
// from a sanitized entry name. Names without it are kept as they are.
func stripConfigPrefix(name string) string {
	first, rest, _ := strings.Cut(name, "/")
	if first == ConfigDirName {
		return rest
	}
	return name
}
