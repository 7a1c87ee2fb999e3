package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/june1016/PAC-MAN/internal/game"
)

// drain streams s to the end and returns the sample count and peak.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			for _, v := range smp {
				if v < 0 {
					v = -v
				}
				if v > peak {
					peak = v
				}
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never ended")
	return 0, 0
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	n, peak := drain(t, newTone(440, 100*time.Millisecond, WaveSine, rate))
	if n != rate.N(100*time.Millisecond) {
		t.Errorf("samples = %d, expected %d", n, rate.N(100*time.Millisecond))
	}
	if peak > 1.0 || peak == 0 {
		t.Errorf("peak = %f, expected within (0, 1]", peak)
	}
}

func TestSquareWaveLevels(t *testing.T) {
	osc := newTone(220, 20*time.Millisecond, WaveSquare, beep.SampleRate(8000))
	buf := make([][2]float64, 64)
	n, _ := osc.Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != 1.0 && v != -1.0 {
			t.Fatalf("sample %d = %f, expected +-1", i, v)
		}
	}
}

func TestEnvelopeFades(t *testing.T) {
	rate := beep.SampleRate(8000)
	d := 50 * time.Millisecond
	s := newEnvelope(newTone(440, d, WaveSquare, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(d))
	n, _ := s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, expected silence at attack start", buf[0][0])
	}
	mid := buf[n/2][0]
	if mid != 1.0 && mid != -1.0 {
		t.Errorf("sustain sample = %f, expected full level", mid)
	}
	if last := buf[n-1][0]; last > 0.05 || last < -0.05 {
		t.Errorf("last sample = %f, expected near silence", last)
	}
}

func TestCues(t *testing.T) {
	rate := beep.SampleRate(8000)
	audible := []game.EventKind{
		game.EventPelletEaten,
		game.EventPowerPelletEaten,
		game.EventAdversaryCaptured,
		game.EventPlayerDied,
		game.EventLevelAdvanced,
		game.EventGameOver,
	}
	for _, kind := range audible {
		t.Run(kind.String(), func(t *testing.T) {
			s := Cue(kind, false, rate)
			if s == nil {
				t.Fatal("Cue() = nil")
			}
			n, peak := drain(t, s)
			if n == 0 || n > rate.N(2*time.Second) {
				t.Errorf("cue length = %d samples", n)
			}
			if peak > 1.0 {
				t.Errorf("peak = %f, clipping", peak)
			}
		})
	}

	for _, kind := range []game.EventKind{game.EventAdversaryReleased, game.EventVulnerabilityEnded} {
		if Cue(kind, false, rate) != nil {
			t.Errorf("Cue(%v) should be silent", kind)
		}
	}
}

func TestVolumeScales(t *testing.T) {
	rate := beep.SampleRate(8000)
	_, full := drain(t, withVolume(newTone(440, 20*time.Millisecond, WaveSquare, rate), 1))
	_, half := drain(t, withVolume(newTone(440, 20*time.Millisecond, WaveSquare, rate), 0.5))
	_, mute := drain(t, withVolume(newTone(440, 20*time.Millisecond, WaveSquare, rate), 0))

	if full != 1.0 || half != 0.5 || mute != 0 {
		t.Errorf("peaks = %f/%f/%f, expected 1/0.5/0", full, half, mute)
	}
}

func TestSoundBoardWithoutSpeaker(t *testing.T) {
	b := NewSoundBoard(2)
	if b.volume != 1 {
		t.Errorf("volume = %f, expected clamp to 1", b.volume)
	}

	b.Play(game.Event{Kind: game.EventPelletEaten})
	if b.mixer.Len() != 0 {
		t.Error("Play() before Init() should not queue sounds")
	}
	b.Close()

	var sink Sink = Silent{}
	sink.Play(game.Event{Kind: game.EventGameOver})
}

func TestPelletCueAlternates(t *testing.T) {
	b := NewSoundBoard(1)
	b.next(game.EventPelletEaten)
	first := b.alt
	b.next(game.EventPowerPelletEaten)
	if b.alt != first {
		t.Error("non-pellet cues should not flip the alternation")
	}
	b.next(game.EventPelletEaten)
	if b.alt == first {
		t.Error("pellet cues should alternate")
	}
}
