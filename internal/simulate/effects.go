package simulate

import "github.com/phasetida/phasetida-core/internal/chart"

// ClearSoundCounts resets the tap/drag/flick counters; called at the
// start of every judge tick so counts reflect only this tick's events.
func (s *State) ClearSoundCounts() {
	s.Sounds = SoundCounts{}
}

// newSoundEffect increments the counter for the channel a note type
// plays on; Hold shares the Tap channel.
func (s *State) newSoundEffect(noteType chart.NoteType) {
	switch noteType {
	case chart.NoteTap, chart.NoteHold:
		s.Sounds.TapCount++
	case chart.NoteDrag:
		s.Sounds.DragCount++
	case chart.NoteFlick:
		s.Sounds.FlickCount++
	}
}

// newHitEffect populates the first free hit-effect slot; the pool is
// silently exhausted past MaxHitEffects.
func (s *State) newHitEffect(x, y float64, tint int8) {
	for i := range s.HitEffects {
		if !s.HitEffects[i].Enable {
			s.HitEffects[i] = EffectSlot{Enable: true, X: x, Y: y, Progress: 0, TintType: tint}
			return
		}
	}
}

// createSplash emits a hit-effect for a Perfect or Good judgement; any
// other score (including None) emits nothing.
func createSplash(s *State, x, y float64, score NoteScore) {
	switch score {
	case ScorePerfect:
		s.newHitEffect(x, y, 0)
	case ScoreGood:
		s.newHitEffect(x, y, 1)
	}
}

// TickEffects advances every enabled hit/splash effect's animation
// progress, recycling it once the sweep completes.
func (s *State) TickEffects(deltaTimeInSecond float64) {
	step := deltaTimeInSecond / animLength
	for i := range s.HitEffects {
		if !s.HitEffects[i].Enable {
			continue
		}
		s.HitEffects[i].Progress += step
		if s.HitEffects[i].Progress >= 1.0 {
			s.HitEffects[i].Enable = false
		}
	}
	for i := range s.SplashEffects {
		if !s.SplashEffects[i].Enable {
			continue
		}
		s.SplashEffects[i].Progress += step
		if s.SplashEffects[i].Progress >= 1.0 {
			s.SplashEffects[i].Enable = false
		}
	}
}
