package simulate

import (
	"math"
	"sort"

	"github.com/phasetida/phasetida-core/internal/chart"
)

// ClearStates resets every pool (lines, touches, effects, sounds,
// statistics) to its default, empty value.
func (s *State) ClearStates() {
	for i := range s.Lines {
		s.Lines[i] = newLineState()
	}
	for i := range s.Touches {
		s.Touches[i] = newTouchInfo()
	}
	s.HitEffects = [MaxHitEffects]EffectSlot{}
	s.SplashEffects = [MaxSplashEffects]EffectSlot{}
	s.Sounds = SoundCounts{}
	s.Statistics = ChartStatistics{}
	s.flatten = s.flatten[:0]
}

// ClearTouch disables every touch point without resetting their position.
func (s *State) ClearTouch() {
	for i := range s.Touches {
		s.Touches[i].Enable = false
	}
}

// LoadImageOffset preloads the hold-cap image section heights used to
// offset hold head/end projection.
func (s *State) LoadImageOffset(holdHeadHeight, holdHeadHighlightHeight, holdEndHeight, holdEndHighlightHeight float64) {
	s.ImageOffset = DrawImageOffset{
		HoldHeadHeight:          holdHeadHeight,
		HoldHeadHighlightHeight: holdHeadHighlightHeight,
		HoldEndHeight:           holdEndHeight,
		HoldEndHighlightHeight:  holdEndHighlightHeight,
	}
}

// InitFromJSON decodes chart JSON text and initializes line state from it.
func (s *State) InitFromJSON(data []byte) (Metadata, error) {
	c, version, err := chart.LoadFromJSON(data)
	if err != nil {
		return Metadata{}, err
	}
	return s.Init(c, version), nil
}

// Init populates line state from an already-decoded chart: sorts each
// line's notes, pairs highlights, builds the flattened statistics index,
// and returns summary metadata.
func (s *State) Init(c *chart.Chart, formatVersion int) Metadata {
	for i := range s.Lines {
		s.Lines[i] = newLineState()
	}

	available := len(c.JudgeLineList)
	if available > MaxLines {
		available = MaxLines
	}
	for i := 0; i < available; i++ {
		line := c.JudgeLineList[i]

		above := append([]chart.Note(nil), line.NotesAbove...)
		below := append([]chart.Note(nil), line.NotesBelow...)
		sort.SliceStable(above, func(a, b int) bool { return above[a].Time < above[b].Time })
		sort.SliceStable(below, func(a, b int) bool { return below[a].Time < below[b].Time })

		aboveState := make([]NoteState, len(above))
		for j, n := range above {
			aboveState[j] = newNoteState(n)
		}
		belowState := make([]NoteState, len(below))
		for j, n := range below {
			belowState[j] = newNoteState(n)
		}

		s.Lines[i] = LineState{
			Enable:          true,
			Speed:           1.0,
			BPM:             line.BPM,
			NotesAboveState: aboveState,
			NotesBelowState: belowState,
			SpeedEvents:     line.SpeedEvents,
			MoveEvents:      line.MoveEvents,
			RotateEvents:    line.RotateEvents,
			AlphaEvents:     line.AlphaEvents,
		}
	}

	processHighlight(s.Lines[:])
	s.initFlattenNoteIndex()

	return Metadata{
		LengthInSecond: estimatedLength(s.Lines[:]),
		Offset:         c.Offset,
		FormatVersion:  formatVersion,
	}
}

// processHighlight flags every note that shares a real-time instant with
// another note (any line, any side) as highlighted. The key is the
// fixed-point tick time `floor(seconds_per_tick*32768) * note.time`; a key
// seen twice marks both notes involved.
func processHighlight(lines []LineState) {
	seen := make(map[int32]bool)
	paired := make(map[int32]bool)

	mark := func(notes []NoteState, spt float64) {
		scale := int32(math.Floor(spt * 32768.0))
		for _, n := range notes {
			key := scale * n.Note.Time
			if seen[key] {
				paired[key] = true
			} else {
				seen[key] = true
			}
		}
	}
	for i := range lines {
		if !lines[i].Enable {
			continue
		}
		spt := secondsPerTick(lines[i].BPM)
		mark(lines[i].NotesAboveState, spt)
		mark(lines[i].NotesBelowState, spt)
	}

	flag := func(notes []NoteState, spt float64) {
		scale := int32(math.Floor(spt * 32768.0))
		for j := range notes {
			key := scale * notes[j].Note.Time
			if paired[key] {
				notes[j].Highlight = true
			}
		}
	}
	for i := range lines {
		if !lines[i].Enable {
			continue
		}
		spt := secondsPerTick(lines[i].BPM)
		flag(lines[i].NotesAboveState, spt)
		flag(lines[i].NotesBelowState, spt)
	}
}

// estimatedLength returns the later of the last note's end time and the
// last event's start time, across every enabled line.
func estimatedLength(lines []LineState) float64 {
	var noteMax float64
	for i := range lines {
		spt := secondsPerTick(lines[i].BPM)
		noteEnd := func(notes []NoteState) float64 {
			if len(notes) == 0 {
				return 0
			}
			last := notes[len(notes)-1].Note
			return (float64(last.Time) + last.HoldTime) * spt
		}
		if v := noteEnd(lines[i].NotesAboveState); v > noteMax {
			noteMax = v
		}
		if v := noteEnd(lines[i].NotesBelowState); v > noteMax {
			noteMax = v
		}
	}

	var eventMax float64
	for i := range lines {
		spt := secondsPerTick(lines[i].BPM)
		fold := func(starts []float64) float64 {
			var m float64
			for _, st := range starts {
				if v := st * spt; v > m {
					m = v
				}
			}
			return m
		}
		if v := fold(event4Starts(lines[i].MoveEvents)); v > eventMax {
			eventMax = v
		}
		if v := fold(event2Starts(lines[i].AlphaEvents)); v > eventMax {
			eventMax = v
		}
		if v := fold(event1Starts(lines[i].SpeedEvents)); v > eventMax {
			eventMax = v
		}
		if v := fold(event2Starts(lines[i].RotateEvents)); v > eventMax {
			eventMax = v
		}
	}

	if eventMax > noteMax {
		return eventMax
	}
	return noteMax
}

func event1Starts(events []chart.Event1) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.StartTime
	}
	return out
}

func event2Starts(events []chart.Event2) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.StartTime
	}
	return out
}

func event4Starts(events []chart.Event4) []float64 {
	out := make([]float64, len(events))
	for i, e := range events {
		out[i] = e.StartTime
	}
	return out
}
