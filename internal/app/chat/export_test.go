package chat

// SetPick replaces the uniform picker so tests get deterministic filler
// and emoji choices.
func (s *Service) SetPick(pick func(n int) int) {
	s.pick = pick
}
