package game

import (
	"math/rand"
	"testing"

	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/maze"
)

// smallLayout has 18 pellets, 2 power pellets and a tunnel on row 3.
var smallLayout = []string{
	"#########",
	"#o..E..o#",
	"#.##-##.#",
	"..#12H#..",
	"#.#34H#.#",
	"#...P...#",
	"#########",
}

// deadEndLayout has dead ends at (3,7) and (5,7).
var deadEndLayout = []string{
	"#########",
	"#o..E..o#",
	"#.##-##.#",
	"#.#12H#.#",
	"#.#34H###",
	"#...P...#",
	"#########",
}

func parse(t *testing.T, rows []string) maze.LevelTemplate {
	t.Helper()
	tpl, err := maze.ParseLayout("test", "Test", rows)
	if err != nil {
		t.Fatalf("ParseLayout() failed: %v", err)
	}
	return tpl
}

// quietConfig moves the player every tick and keeps every adversary home.
func quietConfig() config.GameConfig {
	cfg := config.DefaultGameConfig()
	cfg.Difficulty.Enabled = false
	cfg.Player.MoveEvery = 1
	cfg.Adversaries.MoveEvery = []int{1000, 1000, 1000, 1000}
	cfg.Adversaries.ReleaseSchedule = []int{1000, 1000, 1000, 1000}
	return cfg
}

func newTestSession(t *testing.T, rows []string, cfg config.GameConfig) *Session {
	t.Helper()
	s, err := NewSession(parse(t, rows), cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.StartNewGame()
	return s
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func runTicks(s *Session, n int) []Event {
	var all []Event
	for i := 0; i < n; i++ {
		all = append(all, s.Update()...)
	}
	return all
}
