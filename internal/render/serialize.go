package render

import (
	"io"

	"github.com/phasetida/phasetida-core/internal/simulate"
)

// Serialize renders the full drawable frame for the given simulation
// state to w: statistics, lines, notes (hold bodies before normal notes),
// hit effects, splash effects, sound counts, and enabled touch points,
// each prefixed by its record-type byte, terminated by a trailing zero
// byte. Each record is built into a small buffer and handed to w in its
// own Write call, except the note records, which are gathered into one
// buffer and written together in a single call.
func Serialize(w io.Writer, s *simulate.State) error {
	if _, err := w.Write(statisticsRecord{
		Combo:    s.Statistics.Combo,
		MaxCombo: s.Statistics.MaxCombo,
		Score:    float32(s.Statistics.Score),
		Accurate: float32(s.Statistics.Accurate),
	}.appendTo(nil)); err != nil {
		return err
	}

	for i := range s.Lines {
		if !s.Lines[i].Enable {
			continue
		}
		if buf := appendLine(nil, &s.Lines[i]); len(buf) > 0 {
			if _, err := w.Write(buf); err != nil {
				return err
			}
		}
	}

	if buf := appendNotes(nil, s.Lines[:], s.ImageOffset); len(buf) > 0 {
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}

	for _, e := range s.HitEffects {
		if !e.Enable {
			continue
		}
		rec := hitEffectRecord{
			X:        float32(e.X),
			Y:        float32(e.Y),
			Frame:    frameIndex(e.Progress),
			TintType: e.TintType,
		}
		if _, err := w.Write(rec.appendTo(nil)); err != nil {
			return err
		}
	}

	for _, e := range s.SplashEffects {
		if !e.Enable {
			continue
		}
		rec := splashRecord{
			X:        float32(e.X),
			Y:        float32(e.Y),
			Frame:    frameIndex(e.Progress),
			TintType: e.TintType,
		}
		if _, err := w.Write(rec.appendTo(nil)); err != nil {
			return err
		}
	}

	if _, err := w.Write(soundCountsRecord{
		Tap:   s.Sounds.TapCount,
		Drag:  s.Sounds.DragCount,
		Flick: s.Sounds.FlickCount,
	}.appendTo(nil)); err != nil {
		return err
	}

	for _, t := range s.Touches {
		if !t.Enable {
			continue
		}
		rec := touchPointRecord{X: t.X, Y: t.Y}
		if _, err := w.Write(rec.appendTo(nil)); err != nil {
			return err
		}
	}

	_, err := w.Write([]byte{0})
	return err
}
