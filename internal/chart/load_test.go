package chart

import (
	"errors"
	"testing"
)

func TestLoadFromJSONMissingFormatVersion(t *testing.T) {
	_, _, err := LoadFromJSON([]byte(`{"offset":0,"judgeLineList":[]}`))
	if !errors.Is(err, ErrMissingFormatVersion) {
		t.Fatalf("expected ErrMissingFormatVersion, got %v", err)
	}
}

func TestLoadFromJSONUnknownVersion(t *testing.T) {
	_, _, err := LoadFromJSON([]byte(`{"formatVersion":2,"offset":0,"judgeLineList":[]}`))
	var uv *UnknownVersionError
	if !errors.As(err, &uv) {
		t.Fatalf("expected *UnknownVersionError, got %v", err)
	}
	if uv.Version != 2 {
		t.Fatalf("expected version 2 in error, got %d", uv.Version)
	}
}

func TestLoadFromJSONInvalidNoteType(t *testing.T) {
	data := []byte(`{
		"formatVersion": 3,
		"offset": 0,
		"judgeLineList": [{
			"bpm": 120,
			"notesAbove": [{"type": 9, "time": 0, "positionX": 0, "holdTime": 0, "speed": 1, "floorPosition": 0}],
			"notesBelow": [],
			"speedEvents": [],
			"judgeLineMoveEvents": [],
			"judgeLineRotateEvents": [],
			"judgeLineDisappearEvents": []
		}]
	}`)
	_, _, err := LoadFromJSON(data)
	var it *InvalidNoteTypeError
	if !errors.As(err, &it) {
		t.Fatalf("expected *InvalidNoteTypeError, got %v", err)
	}
	if it.Value != 9 {
		t.Fatalf("expected invalid value 9, got %d", it.Value)
	}
}

func TestLoadFromJSONV3RoundTrip(t *testing.T) {
	data := []byte(`{
		"formatVersion": 3,
		"offset": 0.5,
		"judgeLineList": [{
			"bpm": 140,
			"notesAbove": [
				{"type": 1, "time": 100, "positionX": -0.5, "holdTime": 0, "speed": 1, "floorPosition": 0}
			],
			"notesBelow": [],
			"speedEvents": [{"startTime": 0, "endTime": 1000, "value": 1}],
			"judgeLineMoveEvents": [{"startTime": 0, "endTime": 1000, "start": 0.1, "end": 0.2, "start2": 0.3, "end2": 0.4}],
			"judgeLineRotateEvents": [],
			"judgeLineDisappearEvents": []
		}]
	}`)
	c, version, err := LoadFromJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 3 {
		t.Fatalf("expected version 3, got %d", version)
	}
	if len(c.JudgeLineList) != 1 {
		t.Fatalf("expected 1 judge line, got %d", len(c.JudgeLineList))
	}
	line := c.JudgeLineList[0]
	if len(line.MoveEvents) != 1 {
		t.Fatalf("expected 1 move event, got %d", len(line.MoveEvents))
	}
	me := line.MoveEvents[0]
	if me.Start != 0.1 || me.End != 0.2 || me.Start2 != 0.3 || me.End2 != 0.4 {
		t.Fatalf("move event not passed through unchanged: %+v", me)
	}
	if len(line.NotesAbove) != 1 || line.NotesAbove[0].Type != NoteTap {
		t.Fatalf("expected single tap note, got %+v", line.NotesAbove)
	}
}

// TestUpgradeMoveEventMatchesV3Packing checks that a V1 packed move event
// upgrades to the same (x,y) pair a hand-packed V3 value would represent,
// within a tight float tolerance (spec §8 property #5).
func TestUpgradeMoveEventMatchesV3Packing(t *testing.T) {
	// start_x=12, start_y=345 packs to 12345; end_x=7, end_y=88 packs to 7088.
	packed := event2JSON{StartTime: 0, EndTime: 500, Start: 12345, End: 7088}
	got := upgradeMoveEvent(packed)

	wantStart := 12.0 / 880.0
	wantEnd := 7.0 / 880.0
	wantStart2 := 345.0 / 520.0
	wantEnd2 := 88.0 / 520.0

	const eps = 1e-12
	if diff := got.Start - wantStart; diff > eps || diff < -eps {
		t.Fatalf("Start = %v, want %v", got.Start, wantStart)
	}
	if diff := got.End - wantEnd; diff > eps || diff < -eps {
		t.Fatalf("End = %v, want %v", got.End, wantEnd)
	}
	if diff := got.Start2 - wantStart2; diff > eps || diff < -eps {
		t.Fatalf("Start2 = %v, want %v", got.Start2, wantStart2)
	}
	if diff := got.End2 - wantEnd2; diff > eps || diff < -eps {
		t.Fatalf("End2 = %v, want %v", got.End2, wantEnd2)
	}
}

func TestLoadFromJSONV1Upgrade(t *testing.T) {
	data := []byte(`{
		"formatVersion": 1,
		"offset": 0,
		"judgeLineList": [{
			"bpm": 100,
			"notesAbove": [],
			"notesBelow": [
				{"type": 3, "time": 50, "positionX": 0, "holdTime": 200, "speed": 1, "floorPosition": 0}
			],
			"speedEvents": [],
			"judgeLineMoveEvents": [{"startTime": 0, "endTime": 1000, "start": 12345, "end": 7088}],
			"judgeLineRotateEvents": [],
			"judgeLineDisappearEvents": []
		}]
	}`)
	c, version, err := LoadFromJSON(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if version != 1 {
		t.Fatalf("expected version 1, got %d", version)
	}
	line := c.JudgeLineList[0]
	if len(line.MoveEvents) != 1 {
		t.Fatalf("expected upgraded move event, got %d", len(line.MoveEvents))
	}
	if line.NotesBelow[0].Type != NoteHold {
		t.Fatalf("expected hold note, got %v", line.NotesBelow[0].Type)
	}
}
