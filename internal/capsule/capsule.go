package capsule

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

const (
	capsulePrefix = "emacs_capsule_"
	capsuleSuffix = ".zip"
	auxPrefix     = ".spacemacs_backup_"

	// nameLayout renders e.g. "Mon_Jan_15_2024_10_30_00".
	nameLayout = "Mon_Jan_02_2006_15_04_05"

	// DSStore is never listed.
	DSStore = ".DS_Store"
)

// Capsule is one archive file in the capsule store.
type Capsule struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time

	// CreatedAt is decoded from Name. It is zero when the name does not
	// follow the capsule naming scheme.
	CreatedAt time.Time
}

// NewCapsule builds a Capsule from directory entry metadata.
func NewCapsule(name, path string, size int64, modTime time.Time) *Capsule {
	c := &Capsule{
		Name:    name,
		Path:    path,
		Size:    size,
		ModTime: modTime,
	}
	if t, ok := ParseCapsuleName(name); ok {
		c.CreatedAt = t
	}
	return c
}

// CapsuleName returns the capsule file name for a snapshot taken at t.
func CapsuleName(t time.Time) string {
	return capsulePrefix + Timestamp(t) + capsuleSuffix
}

// AuxBackupName returns the name of the auxiliary file copy taken at t.
func AuxBackupName(t time.Time) string {
	return auxPrefix + Timestamp(t)
}

// Timestamp formats t the way capsule and auxiliary names embed it.
func Timestamp(t time.Time) string {
	return t.Format(nameLayout)
}

// ParseCapsuleName extracts the creation time from a capsule file name,
// interpreted in local time.
func ParseCapsuleName(name string) (time.Time, bool) {
	ts, ok := strings.CutPrefix(name, capsulePrefix)
	if !ok {
		return time.Time{}, false
	}
	ts, ok = strings.CutSuffix(ts, capsuleSuffix)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(nameLayout, ts, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsArchiveName reports whether a store entry can be opened as a capsule.
func IsArchiveName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), capsuleSuffix)
}

// SortOrder selects how capsule listings are ordered.
type SortOrder int

const (
	// SortByName orders by file name, ascending. Restore menus use it.
	SortByName SortOrder = iota
	// SortByModTimeDesc orders newest first by modification time. Ties
	// fall back to name so repeated listings are identical.
	SortByModTimeDesc
)

// Sort orders capsules in place.
func Sort(capsules []*Capsule, order SortOrder) {
	switch order {
	case SortByModTimeDesc:
		slices.SortStableFunc(capsules, func(a, b *Capsule) int {
			if c := b.ModTime.Compare(a.ModTime); c != 0 {
				return c
			}
			return cmp.Compare(a.Name, b.Name)
		})
	default:
		slices.SortStableFunc(capsules, func(a, b *Capsule) int {
			return cmp.Compare(a.Name, b.Name)
		})
	}
}
