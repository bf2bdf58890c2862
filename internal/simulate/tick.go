package simulate

// TickAll advances lines, effects, and judgement by one engine frame, in
// that order, refreshing statistics only when a note was judged this
// tick.
func (s *State) TickAll(timeInSecond, deltaTimeInSecond float64, auto bool) {
	s.TickLines(timeInSecond)
	s.TickEffects(deltaTimeInSecond)
	if s.TickJudge(deltaTimeInSecond, auto) {
		s.RefreshStatistics()
	}
}
