package render

import (
	"math"

	"github.com/phasetida/phasetida-core/internal/chart"
	"github.com/phasetida/phasetida-core/internal/geometry"
	"github.com/phasetida/phasetida-core/internal/simulate"
)

// wireNote is an alias of noteRecord: hold/normal note gathering builds
// plain values of it before appendTo writes them into a buffer.
type wireNote = noteRecord

// appendNotes gathers every visible note across all enabled lines and
// writes them hold-bodies-first, matching the renderer's expectation that
// a hold's body draws under later normal notes.
func appendNotes(buf []byte, lines []simulate.LineState, offset simulate.DrawImageOffset) []byte {
	var normal, hold []wireNote
	for i := range lines {
		line := &lines[i]
		if !line.Enable {
			continue
		}
		gatherHalf(line, offset, line.NotesAboveState, false, &normal, &hold)
		gatherHalf(line, offset, line.NotesBelowState, true, &normal, &hold)
	}
	for _, n := range hold {
		buf = n.appendTo(buf)
	}
	for _, n := range normal {
		buf = n.appendTo(buf)
	}
	return buf
}

func gatherHalf(line *simulate.LineState, offset simulate.DrawImageOffset, notes []simulate.NoteState, reverse bool, normal, hold *[]wireNote) {
	for i := range notes {
		n := &notes[i]
		if n.Score != simulate.ScoreNone && n.Note.Type != chart.NoteHold {
			continue
		}
		switch n.Note.Type {
		case chart.NoteTap, chart.NoteDrag, chart.NoteFlick:
			if rec, ok := projectNormalNote(reverse, line, n); ok {
				*normal = append(*normal, rec)
			}
		case chart.NoteHold:
			*hold = append(*hold, projectHoldNote(reverse, line, n, offset)...)
		}
	}
}

// projectNormalNote ports process_normal_note: project the note's lane
// offset out of the line, then its floor-position delta perpendicular to
// it, culling notes that already crossed the line or fell off-screen.
func projectNormalNote(reverse bool, line *simulate.LineState, n *simulate.NoteState) (wireNote, bool) {
	note := n.Note
	if note.Time <= int32(line.TickTime) || line.LineY > note.FloorPosition+0.001 {
		return wireNote{}, false
	}

	lanePoint := geometry.GetPosOutOfLine(line.X, line.Y, line.Rotate, note.PositionX*geometry.UnitWidth)
	perpDegree := line.Rotate - 90.0
	if reverse {
		perpDegree = line.Rotate + 90.0
	}
	deltaY := note.FloorPosition - line.LineY
	p := geometry.GetPosOutOfLine(lanePoint.X, lanePoint.Y, perpDegree, deltaY*geometry.UnitHeight*note.Speed)

	if !checkInBound(p.X, p.Y) {
		return wireNote{}, false
	}

	highlight := int8(0)
	if n.Highlight {
		highlight = 1
	}
	return wireNote{
		NoteType:  int8(note.Type),
		X:         float32(p.X),
		Y:         float32(p.Y),
		Rotate:    float32(line.Rotate),
		Height:    0,
		HighLight: highlight,
	}, true
}

// projectHoldNote ports process_hold_note: compute head/body/end points
// along the line's perpendicular, cull via OBB/SAT against the screen
// rectangle, and emit end, body, then head (head omitted once consumed).
func projectHoldNote(reverse bool, line *simulate.LineState, n *simulate.NoteState, offset simulate.DrawImageOffset) []wireNote {
	note := n.Note
	secondsPerTick := 60.0 / line.BPM / 32.0
	headPosition := note.FloorPosition - line.LineY
	negHead := 0.0
	if -headPosition > 0 {
		negHead = -headPosition
	}
	bodyHeight := note.HoldTime*note.Speed*secondsPerTick - negHead
	bodyPosition := note.FloorPosition + bodyHeight/2.0 - line.LineY + negHead

	if note.Time+int32(note.HoldTime) <= int32(line.TickTime) {
		return nil
	}
	if bodyPosition <= -bodyHeight/2.0 {
		return nil
	}

	lanePoint := geometry.GetPosOutOfLine(line.X, line.Y, line.Rotate, note.PositionX*geometry.UnitWidth)
	perpDegree := geometry.FixDegree(line.Rotate - 90.0)
	if reverse {
		perpDegree = geometry.FixDegree(line.Rotate + 90.0)
	}

	headHeightOffset := offset.HoldHeadHeight / 2.0
	if n.Highlight {
		headHeightOffset = offset.HoldHeadHighlightHeight / 2.0
	}
	headPoint := geometry.GetPosOutOfLine(lanePoint.X, lanePoint.Y, perpDegree,
		headPosition*geometry.UnitHeight-headHeightOffset)

	bodyExtra := 0.0
	if bodyPosition <= 0.0 {
		bodyExtra = bodyHeight / 2.0
	}
	bodyPoint := geometry.GetPosOutOfLine(lanePoint.X, lanePoint.Y, perpDegree,
		bodyPosition*geometry.UnitHeight+bodyExtra)

	holdRect := geometry.Rect{
		CX:     bodyPoint.X,
		CY:     bodyPoint.Y,
		Width:  geometry.WorldWidth / 4.0,
		Height: bodyHeight * geometry.UnitHeight,
		Rotate: line.Rotate * (math.Pi / 180.0),
	}
	if !geometry.CheckRectanglesOverlap(geometry.WorldRect, holdRect) {
		return nil
	}

	endHeightOffset := offset.HoldEndHeight / 2.0
	if n.Highlight {
		endHeightOffset = offset.HoldEndHighlightHeight / 2.0
	}
	endPoint := geometry.GetPosOutOfLine(lanePoint.X, lanePoint.Y, perpDegree,
		(bodyPosition+bodyHeight/2.0)*geometry.UnitHeight+endHeightOffset)

	capRotate := line.Rotate
	if reverse {
		capRotate = line.Rotate + 180.0
	}
	capRotate = geometry.FixDegree(capRotate)

	highlight := int8(0)
	if n.Highlight {
		highlight = 1
	}

	out := []wireNote{
		{
			NoteType:  7,
			X:         float32(endPoint.X),
			Y:         float32(endPoint.Y),
			Rotate:    float32(capRotate),
			Height:    0,
			HighLight: 0,
		},
		{
			NoteType:  6,
			X:         float32(bodyPoint.X),
			Y:         float32(bodyPoint.Y),
			Rotate:    float32(capRotate),
			Height:    float32(bodyHeight * geometry.UnitHeight),
			HighLight: highlight,
		},
	}
	if note.Time > int32(line.TickTime) {
		out = append(out, wireNote{
			NoteType:  5,
			X:         float32(headPoint.X),
			Y:         float32(headPoint.Y),
			Rotate:    float32(capRotate),
			Height:    0,
			HighLight: highlight,
		})
	}
	return out
}
