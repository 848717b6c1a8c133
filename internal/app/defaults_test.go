package app

import (
	"errors"
	"path/filepath"
	"testing"

	"capsule-go/internal/capsule"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env var when set", func(t *testing.T) {
		t.Setenv("CAPSULE_CONFIG_PATH", "/custom/capsule.toml")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/capsule.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/capsule.toml")
		}
	})

	t.Run("falls back to home dir default", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("CAPSULE_CONFIG_PATH", "")
		t.Setenv("HOME", home)

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		want := filepath.Join(home, ".config", "emacs-capsule.toml")
		if defaults["config_path"] != want {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], want)
		}
	})
}

func TestResolveLayout(t *testing.T) {
	t.Run("derives paths from home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		layout, err := ResolveLayout()
		if err != nil {
			t.Fatalf("ResolveLayout() error = %v", err)
		}

		if layout.ConfigDir != filepath.Join(home, ".emacs.d") {
			t.Errorf("ConfigDir = %q", layout.ConfigDir)
		}
		if layout.AuxFile != filepath.Join(home, ".spacemacs") {
			t.Errorf("AuxFile = %q", layout.AuxFile)
		}
		if layout.StoreDir != filepath.Join(home, ".emacs_capsules") {
			t.Errorf("StoreDir = %q", layout.StoreDir)
		}
	})

	t.Run("no home directory", func(t *testing.T) {
		t.Setenv("HOME", "")

		_, err := ResolveLayout()
		if !errors.Is(err, capsule.ErrNoHome) {
			t.Errorf("ResolveLayout() error = %v, want ErrNoHome", err)
		}
	})
}
