package capsule

import (
	"strconv"
	"strings"
)

// Chooser picks the capsule to restore from an ordered list.
type Chooser interface {
	Choose(capsules []*Capsule) (*Capsule, error)
}

// ParseSelection converts a 1-based menu answer into a slice index.
// Anything that is not an integer in [1, count] is a *SelectionError.
func ParseSelection(input string, count int) (int, error) {
	trimmed := strings.TrimSpace(input)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 || n > count {
		return 0, &SelectionError{Input: trimmed, Count: count}
	}
	return n - 1, nil
}
