package fs

import (
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// CountFiles counts the regular files under root in a single pass, using
// the same skip rule as archive creation so the count sizes its progress.
// A symlinked root is followed.
func CountFiles(afs afero.Fs, root string, skip func(rel string, isDir bool) bool) (int, error) {
	root, err := ResolveRoot(afs, root)
	if err != nil {
		return 0, err
	}

	count := 0
	err = afero.Walk(afs, root, func(path string, info iofs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if skip != nil {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if rel != "." && skip(rel, info.IsDir()) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if info.Mode().IsRegular() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting files under %s: %w", root, err)
	}
	return count, nil
}
