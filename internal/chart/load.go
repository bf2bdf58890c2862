package chart

import (
	"encoding/json"
	"math"
)

// LoadFromJSON parses chart JSON text, upgrading a V1 chart to the V3
// shape, and returns the normalized chart plus the format version that was
// read from the input. Errors from the JSON decoder are returned verbatim.
func LoadFromJSON(data []byte) (*Chart, int, error) {
	var sniff struct {
		FormatVersion *float64 `json:"formatVersion"`
	}
	if err := json.Unmarshal(data, &sniff); err != nil {
		return nil, 0, err
	}
	if sniff.FormatVersion == nil {
		return nil, 0, ErrMissingFormatVersion
	}
	version := int64(*sniff.FormatVersion)
	switch version {
	case 1:
		var raw chartV1JSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, 0, err
		}
		c, err := raw.upgrade()
		if err != nil {
			return nil, 0, err
		}
		return c, 1, nil
	case 3:
		var raw chartJSON
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, 0, err
		}
		c, err := raw.toChart()
		if err != nil {
			return nil, 0, err
		}
		return c, 3, nil
	default:
		return nil, 0, &UnknownVersionError{Version: version}
	}
}

type noteJSON struct {
	Type          int     `json:"type"`
	Time          int32   `json:"time"`
	PositionX     float64 `json:"positionX"`
	HoldTime      float64 `json:"holdTime"`
	Speed         float64 `json:"speed"`
	FloorPosition float64 `json:"floorPosition"`
}

func (n noteJSON) toNote() (Note, error) {
	t, err := NoteTypeFromRaw(n.Type)
	if err != nil {
		return Note{}, err
	}
	return Note{
		Type:          t,
		Time:          n.Time,
		PositionX:     n.PositionX,
		HoldTime:      n.HoldTime,
		Speed:         n.Speed,
		FloorPosition: n.FloorPosition,
	}, nil
}

func toNotes(raw []noteJSON) ([]Note, error) {
	notes := make([]Note, len(raw))
	for i, n := range raw {
		note, err := n.toNote()
		if err != nil {
			return nil, err
		}
		notes[i] = note
	}
	return notes, nil
}

type event1JSON struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Value     float64 `json:"value"`
}

func toEvent1s(raw []event1JSON) []Event1 {
	out := make([]Event1, len(raw))
	for i, e := range raw {
		out[i] = Event1{StartTime: e.StartTime, EndTime: e.EndTime, Value: e.Value}
	}
	return out
}

type event2JSON struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

func toEvent2s(raw []event2JSON) []Event2 {
	out := make([]Event2, len(raw))
	for i, e := range raw {
		out[i] = Event2{StartTime: e.StartTime, EndTime: e.EndTime, Start: e.Start, End: e.End}
	}
	return out
}

type event4JSON struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Start2    float64 `json:"start2"`
	End2      float64 `json:"end2"`
}

func toEvent4s(raw []event4JSON) []Event4 {
	out := make([]Event4, len(raw))
	for i, e := range raw {
		out[i] = Event4{
			StartTime: e.StartTime, EndTime: e.EndTime,
			Start: e.Start, End: e.End,
			Start2: e.Start2, End2: e.End2,
		}
	}
	return out
}

type judgeLineJSON struct {
	BPM          float64      `json:"bpm"`
	NotesAbove   []noteJSON   `json:"notesAbove"`
	NotesBelow   []noteJSON   `json:"notesBelow"`
	SpeedEvents  []event1JSON `json:"speedEvents"`
	MoveEvents   []event4JSON `json:"judgeLineMoveEvents"`
	RotateEvents []event2JSON `json:"judgeLineRotateEvents"`
	AlphaEvents  []event2JSON `json:"judgeLineDisappearEvents"`
}

func (j judgeLineJSON) toJudgeLine() (JudgeLine, error) {
	above, err := toNotes(j.NotesAbove)
	if err != nil {
		return JudgeLine{}, err
	}
	below, err := toNotes(j.NotesBelow)
	if err != nil {
		return JudgeLine{}, err
	}
	return JudgeLine{
		BPM:          j.BPM,
		NotesAbove:   above,
		NotesBelow:   below,
		SpeedEvents:  toEvent1s(j.SpeedEvents),
		MoveEvents:   toEvent4s(j.MoveEvents),
		RotateEvents: toEvent2s(j.RotateEvents),
		AlphaEvents:  toEvent2s(j.AlphaEvents),
	}, nil
}

type chartJSON struct {
	Offset        float64         `json:"offset"`
	JudgeLineList []judgeLineJSON `json:"judgeLineList"`
}

func (c chartJSON) toChart() (*Chart, error) {
	lines := make([]JudgeLine, len(c.JudgeLineList))
	for i, l := range c.JudgeLineList {
		line, err := l.toJudgeLine()
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return &Chart{Offset: c.Offset, JudgeLineList: lines}, nil
}

// judgeLineV1JSON mirrors judgeLineJSON except its move events are packed
// V1 values: Start/End hold `x*1000+y` rather than separate x/y.
type judgeLineV1JSON struct {
	BPM          float64      `json:"bpm"`
	NotesAbove   []noteJSON   `json:"notesAbove"`
	NotesBelow   []noteJSON   `json:"notesBelow"`
	SpeedEvents  []event1JSON `json:"speedEvents"`
	MoveEvents   []event2JSON `json:"judgeLineMoveEvents"`
	RotateEvents []event2JSON `json:"judgeLineRotateEvents"`
	AlphaEvents  []event2JSON `json:"judgeLineDisappearEvents"`
}

// upgradeMoveEvent decodes a V1 packed move event into the V3 (x,y) shape,
// grounded on chart.rs's `From<JudgeLineV1> for JudgeLine`.
func upgradeMoveEvent(e event2JSON) Event4 {
	startX := math.Floor(e.Start / 1000.0)
	startY := e.Start - startX*1000.0
	endX := math.Floor(e.End / 1000.0)
	endY := e.End - endX*1000.0
	return Event4{
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Start:     startX / 880.0,
		End:       endX / 880.0,
		Start2:    startY / 520.0,
		End2:      endY / 520.0,
	}
}

func (j judgeLineV1JSON) toJudgeLine() (JudgeLine, error) {
	above, err := toNotes(j.NotesAbove)
	if err != nil {
		return JudgeLine{}, err
	}
	below, err := toNotes(j.NotesBelow)
	if err != nil {
		return JudgeLine{}, err
	}
	moveEvents := make([]Event4, len(j.MoveEvents))
	for i, e := range j.MoveEvents {
		moveEvents[i] = upgradeMoveEvent(e)
	}
	return JudgeLine{
		BPM:          j.BPM,
		NotesAbove:   above,
		NotesBelow:   below,
		SpeedEvents:  toEvent1s(j.SpeedEvents),
		MoveEvents:   moveEvents,
		RotateEvents: toEvent2s(j.RotateEvents),
		AlphaEvents:  toEvent2s(j.AlphaEvents),
	}, nil
}

type chartV1JSON struct {
	Offset        float64           `json:"offset"`
	JudgeLineList []judgeLineV1JSON `json:"judgeLineList"`
}

func (c chartV1JSON) upgrade() (*Chart, error) {
	lines := make([]JudgeLine, len(c.JudgeLineList))
	for i, l := range c.JudgeLineList {
		line, err := l.toJudgeLine()
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return &Chart{Offset: c.Offset, JudgeLineList: lines}, nil
}
