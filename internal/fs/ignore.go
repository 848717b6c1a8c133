package fs

import (
	"bufio"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// IgnoreFileName is read from the root of the configuration directory.
// The file itself is still archived.
const IgnoreFileName = ".capsuleignore"

type ignorePattern struct {
	pattern   string
	matchPath bool // match the whole relative path instead of the basename
}

// IgnoreMatcher decides which paths are left out of a capsule.
// Patterns without '/' match the basename at any depth; patterns with '/'
// match the slash-separated path relative to the configuration directory.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// NewIgnoreMatcher parses raw patterns. Blank lines and '#' comments are dropped.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	var patterns []ignorePattern
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		raw = strings.TrimSuffix(raw, "/")
		patterns = append(patterns, ignorePattern{
			pattern:   raw,
			matchPath: strings.Contains(raw, "/"),
		})
	}
	return &IgnoreMatcher{patterns: patterns}
}

// Empty reports whether the matcher has no patterns.
func (m *IgnoreMatcher) Empty() bool {
	return m == nil || len(m.patterns) == 0
}

// Match reports whether relativePath is ignored.
func (m *IgnoreMatcher) Match(relativePath string) bool {
	if m.Empty() || relativePath == "" {
		return false
	}

	normalized := filepath.ToSlash(relativePath)
	basename := filepath.Base(relativePath)

	for _, p := range m.patterns {
		target := basename
		if p.matchPath {
			target = normalized
		}
		matched, err := filepath.Match(p.pattern, target)
		if err != nil {
			continue // malformed pattern
		}
		if matched {
			return true
		}
	}
	return false
}

// Skip adapts Match to the archive walker's callback. Ignored directories
// are pruned as a whole.
func (m *IgnoreMatcher) Skip(relativePath string, _ bool) bool {
	return m.Match(relativePath)
}

// ParseIgnoreFile returns the raw lines of an ignore file.
// A missing file yields nil and no error.
func ParseIgnoreFile(afs afero.Fs, path string) ([]string, error) {
	f, err := afs.Open(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return patterns, nil
}
