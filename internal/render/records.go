// Package render serializes simulation state into the compact binary
// stream a host renderer consumes: one leading record-type byte per
// record, little-endian fields packed without padding, terminated by a
// zero byte.
package render

import (
	"encoding/binary"
	"math"
)

const (
	recordLine        byte = 1
	recordNote        byte = 2
	recordHitEffect   byte = 3
	recordTouchPoint  byte = 4
	recordStatistics  byte = 5
	recordSplash      byte = 6
	recordSoundCounts byte = 7
)

func appendF32(buf []byte, v float32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	return append(buf, b[:]...)
}

func appendU32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendI8(buf []byte, v int8) []byte {
	return append(buf, byte(v))
}

type lineRecord struct {
	X1, Y1, X2, Y2, Alpha float32
}

func (r lineRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordLine)
	buf = appendF32(buf, r.X1)
	buf = appendF32(buf, r.Y1)
	buf = appendF32(buf, r.X2)
	buf = appendF32(buf, r.Y2)
	buf = appendF32(buf, r.Alpha)
	return buf
}

// noteRecord's NoteType overloads the chart note-type range: 1..4 are
// normal notes, 5/6/7 are a hold's head/body/end.
type noteRecord struct {
	NoteType             int8
	X, Y, Rotate, Height float32
	HighLight            int8
}

func (r noteRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordNote)
	buf = appendI8(buf, r.NoteType)
	buf = appendF32(buf, r.X)
	buf = appendF32(buf, r.Y)
	buf = appendF32(buf, r.Rotate)
	buf = appendF32(buf, r.Height)
	buf = appendI8(buf, r.HighLight)
	return buf
}

type hitEffectRecord struct {
	X, Y     float32
	Frame    int8
	TintType int8
}

func (r hitEffectRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordHitEffect)
	buf = appendF32(buf, r.X)
	buf = appendF32(buf, r.Y)
	buf = appendI8(buf, r.Frame)
	buf = appendI8(buf, r.TintType)
	return buf
}

type splashRecord struct {
	X, Y     float32
	Frame    int8
	TintType int8
}

func (r splashRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordSplash)
	buf = appendF32(buf, r.X)
	buf = appendF32(buf, r.Y)
	buf = appendI8(buf, r.Frame)
	buf = appendI8(buf, r.TintType)
	return buf
}

type touchPointRecord struct {
	X, Y float32
}

func (r touchPointRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordTouchPoint)
	buf = appendF32(buf, r.X)
	buf = appendF32(buf, r.Y)
	return buf
}

type statisticsRecord struct {
	Combo, MaxCombo uint32
	Score, Accurate float32
}

func (r statisticsRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordStatistics)
	buf = appendU32(buf, r.Combo)
	buf = appendU32(buf, r.MaxCombo)
	buf = appendF32(buf, r.Score)
	buf = appendF32(buf, r.Accurate)
	return buf
}

type soundCountsRecord struct {
	Tap, Drag, Flick uint32
}

func (r soundCountsRecord) appendTo(buf []byte) []byte {
	buf = append(buf, recordSoundCounts)
	buf = appendU32(buf, r.Tap)
	buf = appendU32(buf, r.Drag)
	buf = appendU32(buf, r.Flick)
	return buf
}

// frameIndex converts an animation progress into the clamped [0,29]
// render frame the host should display.
func frameIndex(progress float64) int8 {
	f := math.Floor(30.0 * progress)
	if f < 0 {
		f = 0
	}
	if f > 29 {
		f = 29
	}
	return int8(f)
}
