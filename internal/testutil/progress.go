package testutil

import "capsule-go/internal/capsule"

// RecordingProgress counts the signals it receives.
type RecordingProgress struct {
	Total    int
	Advances int
	Starts   int
	Finishes int
}

func (p *RecordingProgress) Start(total int) {
	p.Starts++
	p.Total = total
}

func (p *RecordingProgress) Advance() { p.Advances++ }
func (p *RecordingProgress) Finish()  { p.Finishes++ }

var _ capsule.Progress = (*RecordingProgress)(nil)
