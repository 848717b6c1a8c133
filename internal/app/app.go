package app

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"capsule-go/internal/archive"
	"capsule-go/internal/capsule"
	"capsule-go/internal/config"
	"capsule-go/internal/store"
)

// CapsuleApp is the application layer between the CLI and CapsuleService.
// It constructs all dependencies from config and the resolved layout, and
// owns the log file until Close.
type CapsuleApp struct {
	service  *capsule.CapsuleService
	progress func() capsule.Progress
	logFile  *os.File
}

// NewCapsuleApp creates a fully wired CapsuleApp working on the real
// filesystem under the current user's home directory.
// operation identifies the CLI action being run (e.g. "Create", "Restore").
// The caller must call Close when done.
func NewCapsuleApp(cfg *config.Config, operation string) (*CapsuleApp, error) {
	layout, err := ResolveLayout()
	if err != nil {
		return nil, err
	}
	return newCapsuleApp(cfg, layout, afero.NewOsFs(), os.Stderr, operation)
}

func newCapsuleApp(cfg *config.Config, layout capsule.Layout, afs afero.Fs, stderr io.Writer, operation string) (*CapsuleApp, error) {
	compression, err := archive.ParseCompression(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("reading compression setting: %w", err)
	}

	logger, logFile, err := newLogger(cfg.LogDir, uuid.NewString(), cfg.LogLevel, stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger = logger.With("op", operation)

	st := store.NewFileSystemStore(afs, layout.StoreDir)
	svc := capsule.NewCapsuleService(afs, layout, st, &slogAdapter{l: logger}, capsule.RealClock{}, capsule.Options{
		Compression: compression,
		Ignore:      cfg.Ignore,
	})

	showProgress := cfg.Progress
	return &CapsuleApp{
		service:  svc,
		progress: func() capsule.Progress { return newProgress(showProgress) },
		logFile:  logFile,
	}, nil
}

// CreateCapsule snapshots the configuration directory into a new capsule.
func (a *CapsuleApp) CreateCapsule() (*capsule.CreateResult, error) {
	return a.service.Create(a.progress())
}

// ListCapsules returns the capsules newest first.
func (a *CapsuleApp) ListCapsules() ([]*capsule.Capsule, error) {
	return a.service.List()
}

// RestoreCapsule shows the capsule menu on out, reads the choice from in
// and restores it.
func (a *CapsuleApp) RestoreCapsule(in io.Reader, out io.Writer) (*capsule.RestoreResult, error) {
	return a.service.Restore(NewLinePrompt(in, out), a.progress())
}

// Close releases the log file.
func (a *CapsuleApp) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}
