package phasetida

import (
	"bytes"
	"testing"
)

func singleTapChartJSON() []byte {
	return []byte(`{
		"formatVersion": 3,
		"offset": 0,
		"judgeLineList": [{
			"bpm": 120,
			"notesAbove": [{"type": 1, "time": 64, "positionX": 0, "holdTime": 0, "speed": 1, "floorPosition": 0}],
			"notesBelow": [],
			"speedEvents": [{"startTime": 0, "endTime": 1000, "value": 1}],
			"judgeLineMoveEvents": [{"startTime": 0, "endTime": 10000, "start": 0, "end": 0, "start2": 1, "end2": 1}],
			"judgeLineRotateEvents": [],
			"judgeLineDisappearEvents": []
		}]
	}`)
}

// TestEngineTapPerfectScenario drives spec §8 scenario S1's inputs through
// the exported Engine surface and checks that the resulting serialized
// frame is non-empty and zero-terminated.
func TestEngineTapPerfectScenario(t *testing.T) {
	e := NewEngine()
	meta, err := e.InitLineStatesFromJSON(singleTapChartJSON())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.FormatVersion != 3 {
		t.Fatalf("expected format version 3, got %d", meta.FormatVersion)
	}

	e.SetTouchDown(0, 0, 0)
	e.TickAll(1.0, 0, false)

	var out bytes.Buffer
	if err := e.ProcessStateToDrawable(&out); err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}
	if out.Len() == 0 {
		t.Fatalf("expected a non-empty serialized frame")
	}
	if out.Bytes()[out.Len()-1] != 0 {
		t.Fatalf("expected trailing terminator byte")
	}
}

func TestEngineInitLineStatesFromJSONMissingFormatVersionPropagates(t *testing.T) {
	e := NewEngine()
	_, err := e.InitLineStatesFromJSON([]byte(`{"offset": 0, "judgeLineList": []}`))
	if err != ErrMissingFormatVersion {
		t.Fatalf("expected ErrMissingFormatVersion, got %v", err)
	}
}

func TestEngineInitLineStatesFromJSONUnknownVersion(t *testing.T) {
	e := NewEngine()
	_, err := e.InitLineStatesFromJSON([]byte(`{"formatVersion": 2, "judgeLineList": []}`))
	var unknown *UnknownVersionError
	if !asUnknownVersionError(err, &unknown) {
		t.Fatalf("expected UnknownVersionError, got %v", err)
	}
	if unknown.Version != 2 {
		t.Fatalf("expected version 2, got %d", unknown.Version)
	}
}

func asUnknownVersionError(err error, target **UnknownVersionError) bool {
	e, ok := err.(*UnknownVersionError)
	if !ok {
		return false
	}
	*target = e
	return true
}

// TestEngineOutOfRangeTouchIDIsNoOp checks spec §7's "runtime operations
// are total" invariant for touch ids outside [0, 30).
func TestEngineOutOfRangeTouchIDIsNoOp(t *testing.T) {
	e := NewEngine()
	if _, err := e.InitLineStatesFromJSON(singleTapChartJSON()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.SetTouchDown(30, 0, 0)
	e.SetTouchMove(-1, 1, 1)
	e.SetTouchUp(100)
	e.TickAll(1.0, 0, false)

	var out bytes.Buffer
	if err := e.ProcessStateToDrawable(&out); err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}
}

func TestEngineClearStatesResetsPools(t *testing.T) {
	e := NewEngine()
	if _, err := e.InitLineStatesFromJSON(singleTapChartJSON()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e.SetTouchDown(0, 0, 0)
	e.TickAll(1.0, 0, false)
	e.ClearStates()

	var out bytes.Buffer
	if err := e.ProcessStateToDrawable(&out); err != nil {
		t.Fatalf("unexpected serialize error: %v", err)
	}
	buf := out.Bytes()
	// A cleared engine has no enabled lines, notes, effects, or touches, so
	// the only records are a zeroed statistics record (1+4+4+4+4=17 bytes),
	// a zeroed sound-counts record (1+4+4+4=13 bytes), and the terminator.
	const wantLen = 17 + 13 + 1
	if len(buf) != wantLen {
		t.Fatalf("expected %d bytes after ClearStates, got %d", wantLen, len(buf))
	}
}
