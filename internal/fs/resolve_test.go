package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestResolveRoot(t *testing.T) {
	home := t.TempDir()
	target := filepath.Join(home, "dotfiles", "emacs")
	if err := os.MkdirAll(target, 0o755); err != nil {
		t.Fatal(err)
	}

	link := func(t *testing.T, to, name string) string {
		t.Helper()
		path := filepath.Join(home, name)
		if err := os.Symlink(to, path); err != nil {
			t.Fatalf("symlink %s: %v", name, err)
		}
		return path
	}

	absolute := link(t, target, "abs")
	relative := link(t, filepath.Join("dotfiles", "emacs"), "rel")
	chained := link(t, absolute, "chain")
	loopA := filepath.Join(home, "loop-a")
	link(t, loopA, "loop-b")
	link(t, filepath.Join(home, "loop-b"), "loop-a")

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "plain directory", path: target, want: target},
		{name: "absolute link", path: absolute, want: target},
		{name: "relative link", path: relative, want: target},
		{name: "link to a link", path: chained, want: target},
		{name: "link cycle", path: loopA, wantErr: true},
		{name: "missing path", path: filepath.Join(home, "nope"), wantErr: true},
	}

	afs := afero.NewOsFs()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveRoot(afs, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolveRoot() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveRoot_WithoutLinkSupport(t *testing.T) {
	afs := afero.NewMemMapFs()
	if err := afs.MkdirAll("/home/u/.emacs.d", 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := ResolveRoot(afs, "/home/u/.emacs.d")
	if err != nil {
		t.Fatalf("ResolveRoot() error = %v", err)
	}
	if got != "/home/u/.emacs.d" {
		t.Errorf("ResolveRoot() = %q, want unchanged path", got)
	}
}
