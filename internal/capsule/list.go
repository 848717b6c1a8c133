package capsule

// List returns the capsules in the store, newest first by modification
// time. It returns ErrNoCapsules when the store is missing or holds no
// archives, and never writes to the filesystem.
func (s *CapsuleService) List() ([]*Capsule, error) {
	return s.archives(SortByModTimeDesc)
}

// RestoreCandidates returns the capsules offered by Restore, ordered by
// file name.
//
// Names embed weekday and month abbreviations, so name order is not
// chronological across days, months or years.
func (s *CapsuleService) RestoreCandidates() ([]*Capsule, error) {
	return s.archives(SortByName)
}
