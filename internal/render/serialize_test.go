package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/phasetida/phasetida-core/internal/chart"
	"github.com/phasetida/phasetida-core/internal/simulate"
)

func TestSerializeTerminatesWithZeroByte(t *testing.T) {
	s := simulate.NewState()
	c := &chart.Chart{
		JudgeLineList: []chart.JudgeLine{{
			BPM: 120,
			NotesAbove: []chart.Note{
				{Type: chart.NoteTap, Time: 64, PositionX: 0, FloorPosition: 1, Speed: 1},
			},
			SpeedEvents: []chart.Event1{{StartTime: 0, EndTime: 1000, Value: 1}},
		}},
	}
	s.Init(c, 3)
	s.TickAll(0, 0, false)

	var out bytes.Buffer
	if err := Serialize(&out, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buf := out.Bytes()
	if len(buf) == 0 {
		t.Fatalf("expected non-empty serialized frame")
	}
	if buf[len(buf)-1] != 0 {
		t.Fatalf("expected trailing terminator byte, got %d", buf[len(buf)-1])
	}
	if buf[0] != recordStatistics {
		t.Fatalf("expected first record to be statistics, got %d", buf[0])
	}
}

func TestSerializePropagatesWriteError(t *testing.T) {
	s := simulate.NewState()
	if err := Serialize(failingWriter{}, s); err == nil {
		t.Fatalf("expected the writer's error to propagate")
	}
}

type failingWriter struct{}

var errWriteFailed = errors.New("write failed")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

func TestProjectNormalNoteCullsNoteBehindLine(t *testing.T) {
	line := &simulate.LineState{Enable: true, TickTime: 100, LineY: 0}
	note := &simulate.NoteState{Note: chart.Note{Time: 10, FloorPosition: 0}}
	if _, ok := projectNormalNote(false, line, note); ok {
		t.Fatalf("expected note already crossed by the line to be culled")
	}
}
