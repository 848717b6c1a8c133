package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"capsule-go/internal/capsule"
	"capsule-go/internal/config"
	"capsule-go/internal/testutil"
)

func newTestApp(t *testing.T, cfg *config.Config) (*CapsuleApp, capsule.Layout, *bytes.Buffer) {
	t.Helper()
	cfg.Progress = false
	layout := capsule.NewLayout(t.TempDir())
	var stderr bytes.Buffer

	a, err := newCapsuleApp(cfg, layout, afero.NewOsFs(), &stderr, "Test")
	if err != nil {
		t.Fatalf("newCapsuleApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a, layout, &stderr
}

func TestCapsuleApp(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	a, layout, _ := newTestApp(t, config.NewConfig())

	if _, err := a.ListCapsules(); !errors.Is(err, capsule.ErrNoCapsules) {
		t.Fatalf("ListCapsules() on empty store error = %v, want ErrNoCapsules", err)
	}

	afs := afero.NewOsFs()
	testutil.WriteTree(t, afs, layout.ConfigDir, map[string]string{"init.el": "X", "lisp/a.el": "Y"})

	res, err := a.CreateCapsule()
	if err != nil {
		t.Fatalf("CreateCapsule() error = %v", err)
	}
	if res.Files != 2 {
		t.Errorf("Files = %d, want 2", res.Files)
	}

	list, err := a.ListCapsules()
	if err != nil {
		t.Fatalf("ListCapsules() error = %v", err)
	}
	if len(list) != 1 || list[0].Name != res.Capsule.Name {
		t.Fatalf("ListCapsules() = %v, want only %s", list, res.Capsule.Name)
	}

	if err := os.WriteFile(filepath.Join(layout.ConfigDir, "init.el"), []byte("broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	restored, err := a.RestoreCapsule(strings.NewReader("1\n"), &out)
	if err != nil {
		t.Fatalf("RestoreCapsule() error = %v", err)
	}

	if want := `:(1): "` + res.Capsule.Name + `"`; !strings.Contains(out.String(), want) {
		t.Errorf("menu = %q, want it to contain %q", out.String(), want)
	}

	got := testutil.ReadTree(t, afs, layout.ConfigDir)
	if got["init.el"] != "X" || got["lisp/a.el"] != "Y" || len(got) != 2 {
		t.Errorf("restored tree = %v, want init.el=X lisp/a.el=Y", got)
	}
	if backup := testutil.ReadTree(t, afs, restored.BackupDir); backup["init.el"] != "broken" {
		t.Errorf("backup init.el = %q, want %q", backup["init.el"], "broken")
	}
}

func TestNewCapsuleApp_Logging(t *testing.T) {
	cfg := config.NewConfig()
	cfg.LogLevel = "info"
	cfg.LogDir = filepath.Join(t.TempDir(), "log")

	a, layout, stderr := newTestApp(t, cfg)
	testutil.WriteTree(t, afero.NewOsFs(), layout.ConfigDir, map[string]string{"init.el": "X"})

	if _, err := a.CreateCapsule(); err != nil {
		t.Fatalf("CreateCapsule() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, "capsule.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	for _, want := range []string{"capsule created", "op=Test"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
	if stderr.String() != string(data) {
		t.Errorf("stderr = %q, want same output as log file %q", stderr.String(), data)
	}
}

func TestNewCapsuleApp_DefaultLevelHidesMissingAuxFile(t *testing.T) {
	a, layout, stderr := newTestApp(t, config.NewConfig())
	testutil.WriteTree(t, afero.NewOsFs(), layout.ConfigDir, map[string]string{"init.el": "X"})

	res, err := a.CreateCapsule()
	if err != nil {
		t.Fatalf("CreateCapsule() error = %v", err)
	}
	if res.AuxBackup != "" {
		t.Errorf("AuxBackup = %q, want empty", res.AuxBackup)
	}
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want nothing at the default log level", stderr.String())
	}
}

func TestNewCapsuleApp_InvalidConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Compression = "rar"

	if _, err := newCapsuleApp(cfg, capsule.NewLayout(t.TempDir()), afero.NewOsFs(), &bytes.Buffer{}, "Test"); err == nil {
		t.Error("newCapsuleApp() error = nil, want error for unknown compression")
	}
}
