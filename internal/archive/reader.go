package archive

import (
	"fmt"
	"io"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"
)

// Modes for paths created while extracting. Stored entry modes are not applied.
const (
	extractFilePerm iofs.FileMode = 0o644
	dirPerm         iofs.FileMode = 0o755
)

// Entry is one record of an opened archive.
type Entry struct {
	// Name is the sanitized, slash-separated entry name without a
	// trailing slash.
	Name string
	// RawName is the name exactly as stored.
	RawName  string
	IsDir    bool
	Modified time.Time
	// Size is the uncompressed size of a file entry.
	Size uint64

	file *zip.File
}

// Reader is an open capsule archive.
type Reader struct {
	fs afero.Fs
	f  afero.File
	zr *zip.Reader
}

// Open opens the archive at path for reading.
func Open(afs afero.Fs, path string) (*Reader, error) {
	f, err := afs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading archive %s: %w", path, err)
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())

	return &Reader{fs: afs, f: f, zr: zr}, nil
}

// Entries yields the archive entries in stored order. Entries whose names
// sanitize to nothing are skipped.
func (r *Reader) Entries() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for _, zf := range r.zr.File {
			name := SanitizeName(zf.Name)
			if name == "" {
				continue
			}
			info := zf.FileInfo()
			e := &Entry{
				Name:     name,
				RawName:  zf.Name,
				IsDir:    info.IsDir(),
				Modified: zf.Modified,
				Size:     zf.UncompressedSize64,
				file:     zf,
			}
			if !yield(e) {
				return
			}
		}
	}
}

// FileCount returns the number of non-directory entries.
func (r *Reader) FileCount() int {
	n := 0
	for _, zf := range r.zr.File {
		if !zf.FileInfo().IsDir() && SanitizeName(zf.Name) != "" {
			n++
		}
	}
	return n
}

// Extract writes e to dest. Directory entries become directories; file
// entries create any missing parents and replace an existing file at dest.
// The entry's modification time is applied when it has one.
func (r *Reader) Extract(e *Entry, dest string) error {
	if e.IsDir {
		if err := r.fs.MkdirAll(dest, dirPerm); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
		return nil
	}

	if err := r.fs.MkdirAll(filepath.Dir(dest), dirPerm); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if err := r.copyOut(e, dest); err != nil {
		return err
	}

	if !e.Modified.IsZero() {
		if err := r.fs.Chtimes(dest, e.Modified, e.Modified); err != nil {
			return fmt.Errorf("setting file times: %w", err)
		}
	}
	return nil
}

func (r *Reader) copyOut(e *Entry, dest string) error {
	rc, err := e.file.Open()
	if err != nil {
		return fmt.Errorf("opening entry %s: %w", e.Name, err)
	}
	defer rc.Close()

	out, err := r.fs.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, extractFilePerm)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	return nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}

// SanitizeName turns a stored entry name into a relative slash path that
// cannot escape the extraction root. Backslashes count as separators;
// empty, ".", ".." and drive-letter segments are dropped, which also
// removes any leading "/".
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	parts := strings.Split(name, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		if len(p) == 2 && p[1] == ':' {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "/")
}
