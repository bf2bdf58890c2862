package render

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestLineRecordByteLayout(t *testing.T) {
	buf := lineRecord{X1: 1, Y1: 2, X2: 3, Y2: 4, Alpha: 0.5}.appendTo(nil)
	if len(buf) != 1+4*5 {
		t.Fatalf("expected %d bytes, got %d", 1+4*5, len(buf))
	}
	if buf[0] != recordLine {
		t.Fatalf("expected record type %d, got %d", recordLine, buf[0])
	}
	x1 := math.Float32frombits(binary.LittleEndian.Uint32(buf[1:5]))
	if x1 != 1 {
		t.Fatalf("expected x1=1, got %v", x1)
	}
	alpha := math.Float32frombits(binary.LittleEndian.Uint32(buf[17:21]))
	if alpha != 0.5 {
		t.Fatalf("expected alpha=0.5, got %v", alpha)
	}
}

func TestNoteRecordByteLayout(t *testing.T) {
	buf := noteRecord{NoteType: 3, X: 10, Y: 20, Rotate: 90, Height: 5, HighLight: 1}.appendTo(nil)
	// type byte + int8 + 4 float32 + int8
	if len(buf) != 1+1+4*4+1 {
		t.Fatalf("expected %d bytes, got %d", 1+1+4*4+1, len(buf))
	}
	if buf[0] != recordNote {
		t.Fatalf("expected record type %d, got %d", recordNote, buf[0])
	}
	if int8(buf[1]) != 3 {
		t.Fatalf("expected note type 3, got %d", int8(buf[1]))
	}
	if int8(buf[len(buf)-1]) != 1 {
		t.Fatalf("expected highlight 1, got %d", int8(buf[len(buf)-1]))
	}
}

func TestSoundCountsRecordByteLayout(t *testing.T) {
	buf := soundCountsRecord{Tap: 1, Drag: 2, Flick: 3}.appendTo(nil)
	if len(buf) != 1+4*3 {
		t.Fatalf("expected %d bytes, got %d", 1+4*3, len(buf))
	}
	if binary.LittleEndian.Uint32(buf[1:5]) != 1 {
		t.Fatalf("expected tap count 1")
	}
	if binary.LittleEndian.Uint32(buf[9:13]) != 3 {
		t.Fatalf("expected flick count 3")
	}
}

func TestFrameIndexClamps(t *testing.T) {
	if frameIndex(-1.0) != 0 {
		t.Fatalf("expected negative progress to clamp to 0")
	}
	if frameIndex(2.0) != 29 {
		t.Fatalf("expected overshoot progress to clamp to 29")
	}
	if frameIndex(0.5) != 15 {
		t.Fatalf("expected progress 0.5 to map to frame 15, got %d", frameIndex(0.5))
	}
}
