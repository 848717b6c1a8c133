package capsule

import (
	"path/filepath"
	"time"
)

const (
	// ConfigDirName is the configuration directory under the home directory.
	ConfigDirName = ".emacs.d"
	// AuxFileName is the standalone file backed up next to each capsule.
	AuxFileName = ".spacemacs"
	// StoreDirName is the capsule store directory under the home directory.
	StoreDirName = ".emacs_capsules"

	backupDirPrefix = ".emacs.backup_"
	backupLayout    = "20060102150405"
)

// Layout is the set of paths a single invocation works on. It is resolved
// once from the home directory and handed to every workflow.
type Layout struct {
	Home      string
	ConfigDir string
	AuxFile   string
	StoreDir  string
}

// NewLayout derives the fixed layout rooted at home.
func NewLayout(home string) Layout {
	return Layout{
		Home:      home,
		ConfigDir: filepath.Join(home, ConfigDirName),
		AuxFile:   filepath.Join(home, AuxFileName),
		StoreDir:  filepath.Join(home, StoreDirName),
	}
}

// BackupDir returns the path the live configuration directory is moved to
// before a restore started at t.
func (l Layout) BackupDir(t time.Time) string {
	return filepath.Join(filepath.Dir(l.ConfigDir), backupDirPrefix+t.Format(backupLayout))
}
