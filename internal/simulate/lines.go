package simulate

import (
	"github.com/phasetida/phasetida-core/internal/chart"
	"github.com/phasetida/phasetida-core/internal/geometry"
)

// timeState classifies a probe of an event's time range relative to a
// tick, mirroring the three-way early/during/late split used by the
// cached cursor search.
type timeState int

const (
	timeEarly timeState = iota
	timeDuring
	timeLate
)

func checkTime(start, end, tick float64) (timeState, float64) {
	switch {
	case tick < start:
		return timeEarly, 0
	case tick > end:
		return timeLate, 0
	default:
		length := end - start
		if length == 0 {
			return timeDuring, 0
		}
		return timeDuring, (tick - start) / length
	}
}

// findCurrentEvent runs the cached bidirectional linear probe described in
// spec §4.2: seed from cacheIndex, classify the probed event, and step
// toward the matching side until a During hit, a sign flip (gap between
// adjacent events, reported at percent 1.0), or the ends of the slice.
// Returns the matched index (or -1 if events is empty or the tick sits
// before the first event with no sign change yet observed) and the
// interpolation fraction. start/end extracts an event's time range
// without requiring an interface or a throwaway slice of spans.
func findCurrentEvent[T any](tick float64, events []T, cacheIndex int, start, end func(T) float64) (int, float64) {
	if len(events) == 0 {
		return -1, 0
	}
	i := cacheIndex
	if i < 0 {
		i = 0
	}
	if i > len(events) {
		i = len(events)
	}
	last := timeDuring
	for {
		if i < 0 {
			return -1, 0
		}
		if i >= len(events) {
			return len(events) - 1, 1.0
		}
		result, percent := checkTime(start(events[i]), end(events[i]), tick)
		switch result {
		case timeEarly:
			if last == timeLate {
				return i, 1.0
			}
			last = timeEarly
			i--
		case timeLate:
			if last == timeEarly {
				return i, 1.0
			}
			last = timeLate
			i++
		case timeDuring:
			return i, percent
		}
	}
}

func lerp(start, end, percent float64) float64 {
	return start + (end-start)*percent
}

// TickLines advances every enabled line's kinematic state (speed, move,
// rotate, alpha, line_y) to timeInSecond.
func (s *State) TickLines(timeInSecond float64) {
	for i := range s.Lines {
		tickLineState(timeInSecond, &s.Lines[i])
	}
}

func tickLineState(timeInSecond float64, line *LineState) {
	spt := secondsPerTick(line.BPM)
	tick := timeInSecond / spt

	if idx, _ := findCurrentEvent(tick, line.SpeedEvents, line.EventSpeedIndexCache,
		func(e chart.Event1) float64 { return e.StartTime }, func(e chart.Event1) float64 { return e.EndTime }); idx >= 0 {
		line.Speed = line.SpeedEvents[idx].Value
		line.EventSpeedIndexCache = idx
	} else {
		line.Speed = 0
		line.EventSpeedIndexCache = 0
	}

	if idx, percent := findCurrentEvent(tick, line.AlphaEvents, line.EventAlphaIndexCache,
		func(e chart.Event2) float64 { return e.StartTime }, func(e chart.Event2) float64 { return e.EndTime }); idx >= 0 {
		e := line.AlphaEvents[idx]
		line.Alpha = lerp(e.Start, e.End, percent)
		line.EventAlphaIndexCache = idx
	} else {
		line.Alpha = 0
		line.EventAlphaIndexCache = 0
	}

	if idx, percent := findCurrentEvent(tick, line.RotateEvents, line.EventRotateIndexCache,
		func(e chart.Event2) float64 { return e.StartTime }, func(e chart.Event2) float64 { return e.EndTime }); idx >= 0 {
		e := line.RotateEvents[idx]
		line.Rotate = geometry.FixDegree(360.0 - lerp(e.Start, e.End, percent))
		line.EventRotateIndexCache = idx
	} else {
		line.Rotate = geometry.FixDegree(360.0)
		line.EventRotateIndexCache = 0
	}

	if idx, percent := findCurrentEvent(tick, line.MoveEvents, line.EventMoveIndexCache,
		func(e chart.Event4) float64 { return e.StartTime }, func(e chart.Event4) float64 { return e.EndTime }); idx >= 0 {
		e := line.MoveEvents[idx]
		line.X = geometry.WorldWidth * lerp(e.Start, e.End, percent)
		line.Y = geometry.WorldHeight * (1.0 - lerp(e.Start2, e.End2, percent))
		line.EventMoveIndexCache = idx
	} else {
		line.X = geometry.WorldWidth * lerp(0, 0, 0)
		line.Y = geometry.WorldHeight * (1.0 - lerp(0, 0, 0))
		line.EventMoveIndexCache = 0
	}

	line.LineY = getLineY(tick, line)
	line.TickTime = tick
}

// getLineY integrates the scrolling offset used for note placement: the
// sum of (end-start)*value over speed events wholly in the past, plus the
// partial contribution of the currently active event.
func getLineY(tickTime float64, line *LineState) float64 {
	var t float64
	spt := secondsPerTick(line.BPM)
	for _, event := range line.SpeedEvents {
		if event.EndTime > tickTime && event.StartTime > tickTime {
			break
		}
		if event.StartTime < tickTime && tickTime < event.EndTime {
			duration := event.EndTime - event.StartTime
			percent := (tickTime - event.StartTime) / duration
			t += duration * percent * event.Value
			break
		}
		if event.EndTime < tickTime {
			t += (event.EndTime - event.StartTime) * event.Value
		}
	}
	return t * spt
}
