package testutil

import "capsule-go/internal/capsule"

// StubChooser answers the restore menu with a fixed 1-based selection,
// validated the same way as typed input.
type StubChooser struct {
	Answer string

	// Offered records the list passed to Choose.
	Offered []*capsule.Capsule
}

func (c *StubChooser) Choose(capsules []*capsule.Capsule) (*capsule.Capsule, error) {
	c.Offered = capsules
	idx, err := capsule.ParseSelection(c.Answer, len(capsules))
	if err != nil {
		return nil, err
	}
	return capsules[idx], nil
}

var _ capsule.Chooser = (*StubChooser)(nil)
