package simulate

import "sort"

// initFlattenNoteIndex rebuilds the flat, time-ordered note index the
// statistics pass walks. Notes are ordered by (time+hold_time)*seconds_
// per_tick, quantized to 1e5 for stable sort keys across platforms.
func (s *State) initFlattenNoteIndex() {
	var flat []noteIndex
	for i := range s.Lines {
		line := &s.Lines[i]
		spt := secondsPerTick(line.BPM)
		for j, n := range line.NotesAboveState {
			flat = append(flat, noteIndex{
				lineIndex:    i,
				above:        true,
				noteIndex:    j,
				timeInSecond: (float64(n.Note.Time) + n.Note.HoldTime) * spt,
			})
		}
		for j, n := range line.NotesBelowState {
			flat = append(flat, noteIndex{
				lineIndex:    i,
				above:        false,
				noteIndex:    j,
				timeInSecond: (float64(n.Note.Time) + n.Note.HoldTime) * spt,
			})
		}
	}
	sort.SliceStable(flat, func(a, b int) bool {
		return int32(flat[a].timeInSecond*100000.0) < int32(flat[b].timeInSecond*100000.0)
	})
	s.flatten = flat
}

// RefreshStatistics recomputes combo and score from the flattened note
// index: combo segments split on Bad/Miss, accuracy weights Good at 0.65,
// and score blends max-combo ratio with accuracy.
func (s *State) RefreshStatistics() {
	combos := []uint32{0}
	var perfects, goods uint32

	for _, idx := range s.flatten {
		note := idx.lookup(&s.Lines)
		if note == nil {
			continue
		}
		switch note.Score {
		case ScorePerfect, ScoreGood:
			combos[len(combos)-1]++
		case ScoreBad, ScoreMiss:
			combos = append(combos, 0)
		}
		switch note.Score {
		case ScorePerfect:
			perfects++
		case ScoreGood:
			goods++
		}
	}

	var maxCombo uint32
	for _, c := range combos {
		if c > maxCombo {
			maxCombo = c
		}
	}
	currentCombo := combos[len(combos)-1]

	total := len(s.flatten)
	var accurate, score float64
	if total > 0 {
		accurate = (float64(perfects) + float64(goods)*0.65) / float64(total)
		score = (float64(maxCombo)/float64(total))*100000.0 + accurate*900000.0
	}

	s.Statistics = ChartStatistics{
		Combo:    currentCombo,
		MaxCombo: maxCombo,
		Score:    score,
		Accurate: accurate,
	}
}
