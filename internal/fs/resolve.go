package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// maxLinkHops bounds symlink chains, matching the usual ELOOP limit.
const maxLinkHops = 40

var errTooManyLinks = errors.New("too many levels of symbolic links")

// ResolveRoot follows symlinks at path itself until it names a non-link.
// Links inside the tree are left alone. Filesystems without link support
// return path unchanged.
func ResolveRoot(afs afero.Fs, path string) (string, error) {
	lstater, ok := afs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := afs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for range maxLinkHops {
		info, _, err := lstater.LstatIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", path, err)
		}
		if info.Mode()&iofs.ModeSymlink == 0 {
			return path, nil
		}

		target, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", fmt.Errorf("reading link %s: %w", path, err)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return "", fmt.Errorf("resolving %s: %w", path, errTooManyLinks)
}
