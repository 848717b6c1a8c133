package archive

import (
	"fmt"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Compression names the method used for file entries.
type Compression string

const (
	// Store writes entries uncompressed.
	Store Compression = "store"
	// Deflate is the standard zip compression method.
	Deflate Compression = "deflate"
	// Zstd uses zip method 93. Fewer third-party tools can read it.
	Zstd Compression = "zstd"
)

// ParseCompression maps a config value onto a Compression. The empty string
// means Store.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case "":
		return Store, nil
	case Store, Deflate, Zstd:
		return c, nil
	default:
		return "", fmt.Errorf("unknown compression %q", s)
	}
}

func (c Compression) method() (uint16, error) {
	switch c {
	case Store, "":
		return zip.Store, nil
	case Deflate:
		return zip.Deflate, nil
	case Zstd:
		return zstd.ZipMethodWinZip, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", string(c))
	}
}
