package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/june1016/PAC-MAN/internal/game"
)

// Cue builds the sound for an event, or nil for silent events. alt
// alternates the pellet chirp between two pitches.
func Cue(kind game.EventKind, alt bool, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case game.EventPelletEaten:
		if alt {
			return note(520, 390, 60*time.Millisecond, WaveTriangle, rate)
		}
		return note(390, 520, 60*time.Millisecond, WaveTriangle, rate)
	case game.EventPowerPelletEaten:
		return note(220, 880, 250*time.Millisecond, WaveSquare, rate)
	case game.EventAdversaryCaptured:
		return beep.Seq(
			note(660, 660, 70*time.Millisecond, WaveSquare, rate),
			note(990, 990, 110*time.Millisecond, WaveSquare, rate),
		)
	case game.EventPlayerDied:
		return note(700, 110, 700*time.Millisecond, WaveSine, rate)
	case game.EventLevelAdvanced:
		return beep.Seq(
			note(523.25, 523.25, 90*time.Millisecond, WaveSquare, rate),
			note(659.25, 659.25, 90*time.Millisecond, WaveSquare, rate),
			note(783.99, 783.99, 90*time.Millisecond, WaveSquare, rate),
			note(1046.5, 1046.5, 180*time.Millisecond, WaveSquare, rate),
		)
	case game.EventGameOver:
		return beep.Seq(
			newEnvelope(newTone(392, 200*time.Millisecond, WaveSine, rate), 200*time.Millisecond, 10*time.Millisecond, 60*time.Millisecond, rate),
			newEnvelope(newTone(330, 200*time.Millisecond, WaveSine, rate), 200*time.Millisecond, 10*time.Millisecond, 60*time.Millisecond, rate),
			newEnvelope(newTone(262, 400*time.Millisecond, WaveSine, rate), 400*time.Millisecond, 10*time.Millisecond, 200*time.Millisecond, rate),
		)
	default:
		return nil
	}
}
