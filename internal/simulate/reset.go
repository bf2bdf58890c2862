package simulate

// ResetNoteState rewinds judgement outcomes relative to
// beforeTimeInSecond: a note that starts at or after the boundary has
// both scores cleared; a hold still straddling the boundary keeps its
// extra_score but clears the final score; anything fully in the past is
// forced to Perfect. Always triggers a statistics refresh.
func (s *State) ResetNoteState(beforeTimeInSecond float64) {
	for i := range s.Lines {
		line := &s.Lines[i]
		spt := secondsPerTick(line.BPM)
		resetNotes(line.NotesAboveState, spt, beforeTimeInSecond)
		resetNotes(line.NotesBelowState, spt, beforeTimeInSecond)
	}
	s.RefreshStatistics()
}

func resetNotes(notes []NoteState, spt, beforeTime float64) {
	for i := range notes {
		n := &notes[i]
		n.HoldCoolDown = 0
		noteTime := float64(n.Note.Time) * spt
		holdTime := (float64(n.Note.Time) + n.Note.HoldTime) * spt
		switch {
		case noteTime >= beforeTime:
			n.Score = ScoreNone
			n.ExtraScore = ScoreNone
		case holdTime >= beforeTime:
			n.Score = ScoreNone
		default:
			n.Score = ScorePerfect
			n.ExtraScore = ScorePerfect
		}
	}
}
