// Package chart holds the chart wire format: parsed JSON structures, the
// V1->V3 upgrade, and the note/event shapes the simulation layer consumes.
package chart

// NoteType is the note's judgement kind (spec §3).
type NoteType int8

const (
	NoteTap NoteType = iota + 1
	NoteDrag
	NoteHold
	NoteFlick
)

// NoteTypeFromRaw validates a raw chart integer into a NoteType.
func NoteTypeFromRaw(raw int) (NoteType, error) {
	switch raw {
	case 1:
		return NoteTap, nil
	case 2:
		return NoteDrag, nil
	case 3:
		return NoteHold, nil
	case 4:
		return NoteFlick, nil
	default:
		return 0, &InvalidNoteTypeError{Value: raw}
	}
}

// Note is an immutable chart note (spec §3).
type Note struct {
	Type          NoteType
	Time          int32
	PositionX     float64
	HoldTime      float64
	Speed         float64
	FloorPosition float64
}

// Event1 is a piecewise-constant event (speed).
type Event1 struct {
	StartTime, EndTime float64
	Value              float64
}

// Event2 is a linear-interpolation event over a single scalar
// (rotate/alpha, and V1's packed move).
type Event2 struct {
	StartTime, EndTime float64
	Start, End         float64
}

// Event4 is a linear-interpolation event over an (x,y) pair (move).
type Event4 struct {
	StartTime, EndTime float64
	Start, End         float64
	Start2, End2       float64
}

// JudgeLine is one line's full event+note payload, already in V3 shape.
type JudgeLine struct {
	BPM          float64
	NotesAbove   []Note
	NotesBelow   []Note
	SpeedEvents  []Event1
	MoveEvents   []Event4
	RotateEvents []Event2
	AlphaEvents  []Event2
}

// Chart is the normalized (always-V3-shape) chart payload.
type Chart struct {
	Offset        float64
	JudgeLineList []JudgeLine
}
