package tui

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scoreRollDuration is how long the HUD takes to catch up with a new score,
// in seconds.
const scoreRollDuration = 0.4

// scoreTicker eases the displayed score toward the real one.
type scoreTicker struct {
	tween  *gween.Tween
	shown  float32
	target int
}

// Set retargets the ticker. Unchanged targets keep the running tween.
func (t *scoreTicker) Set(score int) {
	if score == t.target {
		return
	}
	if score < t.target {
		// New game: snap instead of rolling down
		t.shown = float32(score)
		t.target = score
		t.tween = nil
		return
	}
	t.target = score
	t.tween = gween.New(t.shown, float32(score), scoreRollDuration, ease.OutQuad)
}

// Update advances the tween by dt seconds.
func (t *scoreTicker) Update(dt float32) {
	if t.tween == nil {
		return
	}
	cur, finished := t.tween.Update(dt)
	t.shown = cur
	if finished {
		t.shown = float32(t.target)
		t.tween = nil
	}
}

// Value returns the score to display.
func (t *scoreTicker) Value() int {
	return int(t.shown + 0.5)
}
