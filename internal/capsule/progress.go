package capsule

// Progress receives per-file signals during create and restore. It is
// purely cosmetic; workflows never depend on what it does.
type Progress interface {
	// Start announces how many units the operation will advance by.
	Start(total int)
	Advance()
	Finish()
}

// NopProgress ignores all signals.
type NopProgress struct{}

func (NopProgress) Start(int) {}
func (NopProgress) Advance()  {}
func (NopProgress) Finish()   {}
