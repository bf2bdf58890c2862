// Package phasetida is a deterministic, single-threaded rhythm-game
// simulation core: chart ingestion, per-tick line kinematics, note
// judgement, statistics, and binary render serialization. It performs no
// I/O beyond decoding chart JSON and writing the serialized frame.
package phasetida

import (
	"io"
	"sync"

	"github.com/phasetida/phasetida-core/internal/chart"
	"github.com/phasetida/phasetida-core/internal/render"
	"github.com/phasetida/phasetida-core/internal/simulate"
)

// Metadata summarizes a chart that was just loaded: its estimated length,
// start offset, and the format version it was ingested as.
type Metadata = simulate.Metadata

// Engine is a single chart's full runtime state: line/note pools, touch
// pool, effect pools, and the statistics summary, guarded by a mutex so a
// host that calls it from more than one goroutine fails safe rather than
// racing. Every method is synchronous and non-reentrant; ProcessStateToDrawable's
// writer must not call back into the Engine.
type Engine struct {
	mu    sync.Mutex
	state *simulate.State
}

// NewEngine returns an Engine with all pools reset to their defaults.
func NewEngine() *Engine {
	return &Engine{state: simulate.NewState()}
}

// ClearStates resets all pools (lines, touches, effects, sounds, and
// statistics) to their defaults.
func (e *Engine) ClearStates() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ClearStates()
}

// ClearTouch disables every touch point without resetting their position.
func (e *Engine) ClearTouch() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ClearTouch()
}

// LoadImageOffset preloads the hold-cap image section heights used to
// offset hold head/end projection during serialization.
func (e *Engine) LoadImageOffset(holdHeadHeight, holdHeadHighlightHeight, holdEndHeight, holdEndHighlightHeight float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.LoadImageOffset(holdHeadHeight, holdHeadHighlightHeight, holdEndHeight, holdEndHighlightHeight)
}

// InitLineStates populates line state from an already-decoded chart:
// sorts each line's notes, pairs highlights, and returns summary
// metadata. formatVersion is recorded in the returned Metadata only; it
// does not affect ingestion (the chart is already decoded).
func (e *Engine) InitLineStates(c *chart.Chart, formatVersion int) Metadata {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Init(c, formatVersion)
}

// InitLineStatesFromJSON decodes chart JSON text (V1 or V3) and
// initializes line state from it. Ingestion errors are returned
// verbatim; on error the engine's pools are left in whatever state they
// were in before the call — callers wanting a clean start should call
// ClearStates first.
func (e *Engine) InitLineStatesFromJSON(data []byte) (Metadata, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.InitFromJSON(data)
}

// SetTouchDown marks touch id as active at (x, y). An id outside [0,30)
// is a no-op.
func (e *Engine) SetTouchDown(id int, x, y float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetTouchDown(id, x, y)
}

// SetTouchMove updates the position of active touch id. An id outside
// [0,30) is a no-op.
func (e *Engine) SetTouchMove(id int, x, y float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetTouchMove(id, x, y)
}

// SetTouchUp disables touch id. An id outside [0,30) is a no-op.
func (e *Engine) SetTouchUp(id int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SetTouchUp(id)
}

// TickAll advances lines, effects, and judgement by one engine frame, in
// that order, refreshing statistics only when a note was judged this
// tick. When auto is true, every note settles on its own schedule
// instead of requiring touch input.
func (e *Engine) TickAll(timeInSecond, deltaTimeInSecond float64, auto bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.TickAll(timeInSecond, deltaTimeInSecond, auto)
}

// ResetNoteState rewinds judgement outcomes relative to
// beforeTimeInSecond: a note that starts at or after the boundary has
// both scores cleared; a hold still straddling the boundary keeps its
// extra_score but clears the final score; anything fully in the past is
// forced to Perfect. Triggers a statistics refresh.
func (e *Engine) ResetNoteState(beforeTimeInSecond float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.ResetNoteState(beforeTimeInSecond)
}

// ProcessStateToDrawable serializes the current frame to w in the wire
// format described by internal/render: one leading record-type byte per
// record, little-endian fields packed without padding, terminated by a
// zero byte.
func (e *Engine) ProcessStateToDrawable(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return render.Serialize(w, e.state)
}
