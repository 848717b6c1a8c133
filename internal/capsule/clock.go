package capsule

import "time"

// Clock abstracts time retrieval so capsule names are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the local wall-clock time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }
