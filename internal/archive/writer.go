package archive

import (
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	"capsule-go/internal/fs"
)

const (
	// FileMode is the permission stored on every file entry.
	FileMode iofs.FileMode = 0o755
	// DirMode is the permission stored on every directory entry.
	DirMode iofs.FileMode = 0o755
)

// WriteOptions controls Write.
type WriteOptions struct {
	// Base is the directory entry names are relative to. Empty means the
	// parent of the source root, so entries start with the root's own name.
	Base string

	Compression Compression

	// Skip reports whether a path (relative to the source root) is left
	// out. A skipped directory is not descended into.
	Skip func(rel string, isDir bool) bool

	// OnFile is called after each file entry is written.
	OnFile func(name string)
}

// WriteStats summarizes a completed Write.
type WriteStats struct {
	Files int
	Dirs  int
	Bytes int64

	// Skipped lists entries that were neither regular files nor directories.
	Skipped []string
}

// Write archives every regular file and directory under root into w,
// walking depth-first in lexical order. A symlinked root is followed but
// entries are still named after root itself. The first error aborts the
// walk; nothing already written to w is rolled back.
func Write(w io.Writer, afs afero.Fs, root string, opts WriteOptions) (*WriteStats, error) {
	method, err := opts.Compression.method()
	if err != nil {
		return nil, err
	}

	root = filepath.Clean(root)
	base := opts.Base
	if base == "" {
		base = filepath.Dir(root)
	}

	walkRoot, err := fs.ResolveRoot(afs, root)
	if err != nil {
		return nil, err
	}

	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	stats := &WriteStats{}
	err = afero.Walk(afs, walkRoot, func(path string, info iofs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return err
		}
		if opts.Skip != nil && rel != "." && opts.Skip(rel, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name, err := entryName(base, filepath.Join(root, rel))
		if err != nil {
			return err
		}

		switch {
		case info.IsDir():
			if name == "." {
				return nil
			}
			if err := writeDir(zw, name+"/", info); err != nil {
				return fmt.Errorf("adding directory %s: %w", name, err)
			}
			stats.Dirs++
		case info.Mode().IsRegular():
			n, err := writeFile(zw, afs, path, name, info, method)
			if err != nil {
				return fmt.Errorf("adding %s: %w", name, err)
			}
			stats.Files++
			stats.Bytes += n
			if opts.OnFile != nil {
				opts.OnFile(name)
			}
		default:
			stats.Skipped = append(stats.Skipped, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("archiving %s: %w", root, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return stats, nil
}

// entryName returns path relative to base in slash form.
func entryName(base, path string) (string, error) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", path, err)
	}
	name := filepath.ToSlash(rel)
	if name == ".." || strings.HasPrefix(name, "../") {
		return "", fmt.Errorf("%s is outside %s", path, base)
	}
	return name, nil
}

func writeDir(zw *zip.Writer, name string, info iofs.FileInfo) error {
	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: info.ModTime(),
	}
	hdr.SetMode(iofs.ModeDir | DirMode)
	_, err := zw.CreateHeader(hdr)
	return err
}

func writeFile(zw *zip.Writer, afs afero.Fs, path, name string, info iofs.FileInfo, method uint16) (int64, error) {
	f, err := afs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	hdr := &zip.FileHeader{
		Name:     name,
		Method:   method,
		Modified: info.ModTime(),
	}
	hdr.SetMode(FileMode)

	fw, err := zw.CreateHeader(hdr)
	if err != nil {
		return 0, err
	}
	return io.Copy(fw, f)
}
