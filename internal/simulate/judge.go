package simulate

import (
	"github.com/phasetida/phasetida-core/internal/chart"
	"github.com/phasetida/phasetida-core/internal/geometry"
)

// judgeWidth is the half-width, in world units, of the band a touch must
// land in to count as inside a note's judge range.
const judgeWidth = 300.0

// flickArmDistance is the minimum touch travel, in screen units, that
// arms a Flick note.
const flickArmDistance = 50.0

// TickJudge runs one judgement pass over every enabled line's notes and
// reports whether any note was judged this tick (the caller should
// refresh statistics when true). It clears sound counters up front and,
// once every note has been dispatched, invalidates every touch that was
// enabled this tick (each touch grants at most one judgement per tick).
func (s *State) TickJudge(deltaTimeInSecond float64, auto bool) bool {
	s.ClearSoundCounts()
	judged := false
	for i := range s.Lines {
		line := &s.Lines[i]
		if !line.Enable {
			continue
		}
		currentTick := line.TickTime
		for j := range line.NotesAboveState {
			judged = tickOneNote(s, deltaTimeInSecond, currentTick, &line.NotesAboveState[j], line, auto) || judged
		}
		for j := range line.NotesBelowState {
			judged = tickOneNote(s, deltaTimeInSecond, currentTick, &line.NotesBelowState[j], line, auto) || judged
		}
	}
	for i := range s.Touches {
		if s.Touches[i].Enable {
			s.Touches[i].TouchValid = false
		}
	}
	return judged
}

func tickOneNote(s *State, deltaTime, currentTick float64, note *NoteState, line *LineState, auto bool) bool {
	lineX, lineY, lineRotate, bpm := line.X, line.Y, line.Rotate, line.BPM
	touches := s.Touches[:]
	if auto {
		if note.Note.Type == chart.NoteHold {
			return tickHoldNoteAuto(s, deltaTime, currentTick, note, touches, lineX, lineY, lineRotate, bpm)
		}
		return tickNormalNoteAuto(s, currentTick, note, lineX, lineY, lineRotate, bpm)
	}
	switch note.Note.Type {
	case chart.NoteTap:
		return tickTapNote(s, currentTick, note, touches, lineX, lineY, lineRotate, bpm)
	case chart.NoteDrag:
		return tickDragNote(s, currentTick, note, touches, lineX, lineY, lineRotate, bpm)
	case chart.NoteHold:
		return tickHoldNote(s, deltaTime, currentTick, note, touches, lineX, lineY, lineRotate, bpm)
	case chart.NoteFlick:
		return tickFlickNote(s, currentTick, note, touches, lineX, lineY, lineRotate, bpm)
	}
	return false
}

// checkPointInJudgeRange projects the note out of the line and the touch
// onto the line's perpendicular, then tests whether the two roots lie
// within judgeWidth of each other along the line.
func checkPointInJudgeRange(lineX, lineY, lineRotate float64, note *chart.Note, touch *TouchInfo) (bool, geometry.Point) {
	root := geometry.GetPosOutOfLine(lineX, lineY, lineRotate, note.PositionX*geometry.UnitWidth)
	touchRoot := geometry.GetPosPointVerticalInLine(lineX, lineY, lineRotate, float64(touch.X), float64(touch.Y))
	ok := geometry.IsPointInJudgeRange(root.X, root.Y, geometry.FixDegree(lineRotate), touchRoot.X, touchRoot.Y, judgeWidth)
	return ok, root
}

// checkJudgeResult classifies the current tick's offset from a note's
// scheduled time into Perfect/Good/Bad/Miss.
func checkJudgeResult(currentTick float64, note *NoteState, bpm float64) (float64, NoteScore) {
	spt := secondsPerTick(bpm)
	perfectRange := 0.08 / spt
	goodRange := 0.16 / spt
	badRange := 0.18 / spt
	delta := currentTick - float64(note.Note.Time)
	abs := delta
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= perfectRange:
		return delta, ScorePerfect
	case abs <= goodRange:
		return delta, ScoreGood
	case abs <= badRange:
		return delta, ScoreBad
	default:
		return delta, ScoreMiss
	}
}

// tickNormalNoteAuto implements Auto mode for Tap/Drag/Flick: the note
// settles to Perfect the instant its scheduled time is reached.
func tickNormalNoteAuto(s *State, currentTick float64, note *NoteState, lineX, lineY, lineRotate, bpm float64) bool {
	if note.Score != ScoreNone {
		return false
	}
	delta, _ := checkJudgeResult(currentTick, note, bpm)
	if delta >= 0 {
		root := geometry.GetPosOutOfLine(lineX, lineY, lineRotate, note.Note.PositionX*geometry.UnitWidth)
		note.Score = ScorePerfect
		createSplash(s, root.X, root.Y, ScorePerfect)
		s.newSoundEffect(note.Note.Type)
		return true
	}
	return false
}

// tickFlickNote implements the Flick state machine (spec §4.3): same
// shape as Drag, but arming requires touch travel ≥ flickArmDistance.
func tickFlickNote(s *State, currentTick float64, note *NoteState, touches []TouchInfo, lineX, lineY, lineRotate, bpm float64) bool {
	if note.Score != ScoreNone {
		return false
	}
	delta, result := checkJudgeResult(currentTick, note, bpm)
	if delta < 0 && result == ScoreMiss {
		return false
	}
	if note.ExtraScore != ScoreNone {
		if delta > 0 {
			root := geometry.GetPosOutOfLine(lineX, lineY, lineRotate, note.Note.PositionX*geometry.UnitWidth)
			note.Score = ScorePerfect
			createSplash(s, root.X, root.Y, ScorePerfect)
			s.newSoundEffect(chart.NoteFlick)
			return true
		}
		return false
	}
	if delta > 0 && result == ScoreMiss {
		note.Score = ScoreMiss
		return true
	}
	for i := range touches {
		touch := &touches[i]
		if !touch.Enable {
			continue
		}
		inRange, _ := checkPointInJudgeRange(lineX, lineY, lineRotate, &note.Note, touch)
		if inRange && touch.Length() >= flickArmDistance {
			note.ExtraScore = ScorePerfect
			touch.ResetLength()
			return false
		}
	}
	return false
}

// tickHoldNoteAuto arms the hold automatically once its time is reached,
// then defers to the shared hold-ticking subroutine.
func tickHoldNoteAuto(s *State, deltaTime, currentTick float64, note *NoteState, touches []TouchInfo, lineX, lineY, lineRotate, bpm float64) bool {
	if note.Score != ScoreNone {
		return false
	}
	delta, _ := checkJudgeResult(currentTick, note, bpm)
	if delta >= 0 && note.ExtraScore != ScorePerfect {
		note.ExtraScore = ScorePerfect
		s.newSoundEffect(chart.NoteHold)
	}
	_, judged := tickHoldNoteCommon(s, deltaTime, currentTick, note, touches, lineX, lineY, lineRotate, bpm, true)
	return judged
}

// tickHoldNoteCommon runs the hold cool-down ticking shared by the
// player and auto paths. Returns (handled, judged): handled reports
// whether the hold is currently active (extra_score set).
func tickHoldNoteCommon(s *State, deltaTime, currentTick float64, note *NoteState, touches []TouchInfo, lineX, lineY, lineRotate, bpm float64, auto bool) (bool, bool) {
	if note.ExtraScore == ScoreNone {
		return false, false
	}
	spt := secondsPerTick(bpm)
	deltaTick := deltaTime / spt
	judged := false
	note.HoldCoolDown -= deltaTick
	if note.HoldCoolDown <= 0 {
		root := geometry.GetPosOutOfLine(lineX, lineY, lineRotate, note.Note.PositionX*geometry.UnitWidth)
		touchedInRange := auto
		if !touchedInRange {
			for i := range touches {
				touch := &touches[i]
				inRange, _ := checkPointInJudgeRange(lineX, lineY, lineRotate, &note.Note, touch)
				if inRange && touch.Enable {
					touchedInRange = true
					break
				}
			}
		}
		if touchedInRange {
			if note.HoldCoolDown < -16.0 {
				note.HoldCoolDown = 0
			} else {
				note.HoldCoolDown += 16.0
			}
			createSplash(s, root.X, root.Y, note.ExtraScore)
		} else {
			note.Score = ScoreMiss
			judged = true
		}
	}
	if note.Note.HoldTime+float64(note.Note.Time) <= currentTick {
		note.Score = note.ExtraScore
		judged = true
	}
	return true, judged
}

// tickHoldNote implements the player-driven Hold state machine: arm via
// a touch match, then let tickHoldNoteCommon carry the hold to
// completion.
func tickHoldNote(s *State, deltaTime, currentTick float64, note *NoteState, touches []TouchInfo, lineX, lineY, lineRotate, bpm float64) bool {
	if note.Score != ScoreNone {
		return false
	}
	handled, judged := tickHoldNoteCommon(s, deltaTime, currentTick, note, touches, lineX, lineY, lineRotate, bpm, false)
	if handled {
		return judged
	}
	delta, result := checkJudgeResult(currentTick, note, bpm)
	if delta < 0 && result == ScoreMiss {
		return false
	}
	if delta > 0 && result == ScoreMiss {
		note.Score = ScoreMiss
		return true
	}
	for i := range touches {
		touch := &touches[i]
		if !touch.Enable {
			continue
		}
		inRange, _ := checkPointInJudgeRange(lineX, lineY, lineRotate, &note.Note, touch)
		if inRange && touch.TouchValid {
			if result != ScorePerfect && result != ScoreGood {
				continue
			}
			touch.TouchValid = false
			note.ExtraScore = result
			s.newSoundEffect(chart.NoteHold)
			return false
		}
	}
	return false
}

// tickDragNote implements the Drag state machine: arms on any touch in
// range (without consuming touch_valid), confirms Perfect once the note's
// time has passed.
func tickDragNote(s *State, currentTick float64, note *NoteState, touches []TouchInfo, lineX, lineY, lineRotate, bpm float64) bool {
	if note.Score != ScoreNone {
		return false
	}
	delta, result := checkJudgeResult(currentTick, note, bpm)
	if delta < 0 && result == ScoreMiss {
		return false
	}
	if note.ExtraScore != ScoreNone {
		if delta > 0 {
			root := geometry.GetPosOutOfLine(lineX, lineY, lineRotate, note.Note.PositionX*geometry.UnitWidth)
			note.Score = ScorePerfect
			s.newSoundEffect(chart.NoteDrag)
			createSplash(s, root.X, root.Y, ScorePerfect)
			return true
		}
		return false
	}
	if delta > 0 && result == ScoreMiss {
		note.Score = ScoreMiss
		return true
	}
	for i := range touches {
		touch := &touches[i]
		if !touch.Enable {
			continue
		}
		inRange, _ := checkPointInJudgeRange(lineX, lineY, lineRotate, &note.Note, touch)
		if inRange {
			note.ExtraScore = ScorePerfect
			return false
		}
	}
	return false
}

// tickTapNote implements the Tap state machine: the first enabled,
// touch_valid touch in range consumes the touch and settles the score.
func tickTapNote(s *State, currentTick float64, note *NoteState, touches []TouchInfo, lineX, lineY, lineRotate, bpm float64) bool {
	if note.Score != ScoreNone {
		return false
	}
	delta, result := checkJudgeResult(currentTick, note, bpm)
	if delta < 0 && result == ScoreMiss {
		return false
	}
	if delta > 0 && result == ScoreMiss {
		note.Score = ScoreMiss
		return true
	}
	for i := range touches {
		touch := &touches[i]
		if !touch.Enable {
			continue
		}
		inRange, root := checkPointInJudgeRange(lineX, lineY, lineRotate, &note.Note, touch)
		if inRange && touch.TouchValid {
			touch.TouchValid = false
			note.Score = result
			s.newSoundEffect(chart.NoteTap)
			createSplash(s, root.X, root.Y, result)
			return true
		}
	}
	return false
}
