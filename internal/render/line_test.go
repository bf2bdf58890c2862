package render

import (
	"testing"

	"github.com/phasetida/phasetida-core/internal/simulate"
)

func TestAppendLineSkipsWhenAlphaZero(t *testing.T) {
	line := &simulate.LineState{Enable: true, X: 960, Y: 540, Rotate: 0, Alpha: 0}
	if buf := appendLine(nil, line); len(buf) != 0 {
		t.Fatalf("expected no bytes written for alpha<=0, got %d", len(buf))
	}
}

func TestAppendLineWritesHorizontalLine(t *testing.T) {
	line := &simulate.LineState{Enable: true, X: 960, Y: 540, Rotate: 0, Alpha: 1}
	buf := appendLine(nil, line)
	if len(buf) == 0 {
		t.Fatalf("expected a line record to be written")
	}
	if buf[0] != recordLine {
		t.Fatalf("expected record type %d, got %d", recordLine, buf[0])
	}
}

func TestCheckInBoundRejectsFarOffScreenPoints(t *testing.T) {
	if checkInBound(-500, 0) {
		t.Fatalf("expected far-left point to be out of bound")
	}
	if !checkInBound(0, 0) {
		t.Fatalf("expected screen-origin point to be in bound")
	}
	if !checkInBound(2120, 1280) {
		t.Fatalf("expected the inclusive corner to be in bound")
	}
	if checkInBound(2121, 0) {
		t.Fatalf("expected just-past-corner point to be out of bound")
	}
}
