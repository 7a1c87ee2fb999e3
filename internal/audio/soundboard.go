// Package audio turns simulation events into synthesized sound effects
// played through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/june1016/PAC-MAN/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Sink consumes simulation events.
type Sink interface {
	Play(ev game.Event)
}

// Silent discards every event.
type Silent struct{}

// Play implements Sink.
func (Silent) Play(game.Event) {}

// SoundBoard mixes event cues onto the speaker.
type SoundBoard struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	alt         bool
	initialized bool
}

// NewSoundBoard creates a board with a linear master volume in [0, 1].
func NewSoundBoard(volume float64) *SoundBoard {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &SoundBoard{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. Until it succeeds, Play does nothing.
func (b *SoundBoard) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Play queues the cue for ev on the mixer.
func (b *SoundBoard) Play(ev game.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	s := b.next(ev.Kind)
	if s == nil {
		return
	}
	speaker.Lock()
	b.mixer.Add(withVolume(s, b.volume))
	speaker.Unlock()
}

// next returns the cue for kind and flips the pellet alternation.
func (b *SoundBoard) next(kind game.EventKind) beep.Streamer {
	if kind == game.EventPelletEaten {
		b.alt = !b.alt
	}
	return Cue(kind, b.alt, sampleRate)
}

// Close silences the board.
func (b *SoundBoard) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	b.initialized = false
}
