// Package simulate holds the per-tick runtime state: line kinematics, the
// note judgement state machine, effect pools, and the statistics
// aggregator. Everything here is plain data plus pure functions operating
// on a *State; nothing here touches I/O.
package simulate

import (
	"math"

	"github.com/phasetida/phasetida-core/internal/chart"
)

// Resource pool sizes (spec §5): fixed-size, overflow silently discarded.
const (
	MaxLines         = 50
	MaxTouches       = 30
	MaxHitEffects    = 64
	MaxSplashEffects = 256
)

// animLength is the duration, in seconds, an effect's progress sweeps
// across before it is recycled.
const animLength = 0.5

// NoteScore is a note's current judgement outcome. The zero value is
// None, matching an unjudged note.
type NoteScore int8

const (
	ScoreNone NoteScore = iota
	ScorePerfect
	ScoreGood
	ScoreBad
	ScoreMiss
)

// NoteState is the mutable judgement state tracked alongside an immutable
// chart Note.
type NoteState struct {
	Note         chart.Note
	Highlight    bool
	Score        NoteScore
	HoldCoolDown float64
	ExtraScore   NoteScore
}

func newNoteState(n chart.Note) NoteState {
	return NoteState{Note: n, Score: ScoreNone, ExtraScore: ScoreNone}
}

// LineState is one judgement line's full per-tick kinematic and note
// state.
type LineState struct {
	Enable bool

	X, Y     float64
	Rotate   float64
	Alpha    float64
	Speed    float64
	LineY    float64
	TickTime float64

	EventSpeedIndexCache  int
	EventMoveIndexCache   int
	EventRotateIndexCache int
	EventAlphaIndexCache  int

	NotesAboveState []NoteState
	NotesBelowState []NoteState

	SpeedEvents  []chart.Event1
	MoveEvents   []chart.Event4
	RotateEvents []chart.Event2
	AlphaEvents  []chart.Event2

	BPM float64
}

func newLineState() LineState {
	return LineState{Speed: 1.0}
}

// secondsPerTick converts a line's BPM into the duration, in seconds, of
// one simulation tick (32 ticks per beat).
func secondsPerTick(bpm float64) float64 {
	return 60.0 / bpm / 32.0
}

// TouchInfo is one input touch point's state.
type TouchInfo struct {
	Enable     bool
	X, Y       float32
	TouchValid bool
	InitX      float32
	InitY      float32
}

func newTouchInfo() TouchInfo {
	return TouchInfo{TouchValid: true}
}

// Length is the Euclidean distance the touch has travelled from its init
// position, used by Flick arming.
func (t *TouchInfo) Length() float32 {
	dx := float64(t.X - t.InitX)
	dy := float64(t.Y - t.InitY)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// ResetLength re-anchors the init position to the touch's current
// position.
func (t *TouchInfo) ResetLength() {
	t.InitX = t.X
	t.InitY = t.Y
}

// EffectSlot is the shared shape of a hit-effect and a splash-effect pool
// entry: a recycled (x, y) with a progress sweep and a tint.
type EffectSlot struct {
	Enable   bool
	X, Y     float64
	Progress float64
	TintType int8
}

// SoundCounts tallies judgement-sound triggers since the last judge tick;
// Hold judgements count toward Tap.
type SoundCounts struct {
	TapCount   uint32
	DragCount  uint32
	FlickCount uint32
}

// ChartStatistics is the combo/score/accuracy summary recomputed after
// every judged tick.
type ChartStatistics struct {
	Combo    uint32
	MaxCombo uint32
	Score    float64
	Accurate float64
}

// DrawImageOffset records preloaded hold-cap image heights, used to offset
// hold head/end projection.
type DrawImageOffset struct {
	HoldHeadHeight          float64
	HoldHeadHighlightHeight float64
	HoldEndHeight           float64
	HoldEndHighlightHeight  float64
}

// Metadata is returned by Init/InitFromJSON: summary facts about the
// chart that was just loaded.
type Metadata struct {
	LengthInSecond float64
	Offset         float64
	FormatVersion  int
}

// noteIndex locates one note within the line-state pool, flattened and
// sorted by its end time for the statistics pass.
type noteIndex struct {
	lineIndex    int
	above        bool
	noteIndex    int
	timeInSecond float64
}

func (n noteIndex) lookup(lines *[MaxLines]LineState) *NoteState {
	if n.lineIndex < 0 || n.lineIndex >= len(lines) {
		return nil
	}
	line := &lines[n.lineIndex]
	var notes []NoteState
	if n.above {
		notes = line.NotesAboveState
	} else {
		notes = line.NotesBelowState
	}
	if n.noteIndex < 0 || n.noteIndex >= len(notes) {
		return nil
	}
	return &notes[n.noteIndex]
}

// State is the full runtime simulation: line/note pools, touch pool,
// effect pools, sound counters, and the statistics summary.
type State struct {
	Lines   [MaxLines]LineState
	Touches [MaxTouches]TouchInfo

	HitEffects    [MaxHitEffects]EffectSlot
	SplashEffects [MaxSplashEffects]EffectSlot

	Sounds     SoundCounts
	Statistics ChartStatistics

	ImageOffset DrawImageOffset

	flatten []noteIndex
}

// NewState returns a State with all pools reset to their defaults.
func NewState() *State {
	s := &State{}
	s.ClearStates()
	return s
}
