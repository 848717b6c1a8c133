package testutil

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// WriteTree creates files under root from a map of slash-separated
// relative paths to contents. A path ending in "/" creates an empty
// directory instead.
func WriteTree(t *testing.T, afs afero.Fs, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if strings.HasSuffix(rel, "/") {
			if err := afs.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("creating directory %s: %v", path, err)
			}
			continue
		}
		if err := afs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating parent of %s: %v", path, err)
		}
		if err := afero.WriteFile(afs, path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
}

// ReadTree returns every regular file under root keyed by slash-separated
// relative path. Empty directories appear with a trailing "/" and empty
// content.
func ReadTree(t *testing.T, afs afero.Fs, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	err := afero.Walk(afs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			if rel == "." {
				return nil
			}
			entries, err := afero.ReadDir(afs, path)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				tree[rel+"/"] = ""
			}
			return nil
		}
		data, err := afero.ReadFile(afs, path)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("reading tree %s: %v", root, err)
	}
	return tree
}
