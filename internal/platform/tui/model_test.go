package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/game"
	"github.com/june1016/PAC-MAN/internal/levels"
	"github.com/june1016/PAC-MAN/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	tpl, err := levels.Classic()
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(Options{
		Template: tpl,
		Config:   config.DefaultGameConfig(),
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Store:    store,
	})
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm, cmd
}

func TestModelGrowsScreenToFitMaze(t *testing.T) {
	m := newTestModel(t, nil)
	if m.screen.Height() < hudRows+21+2 {
		t.Errorf("screen height = %d, too short for the classic maze", m.screen.Height())
	}
}

func TestModelTitleToGame(t *testing.T) {
	m := newTestModel(t, nil)

	if !strings.Contains(m.View(), "maze: Classic") {
		t.Error("title screen should name the maze")
	}

	for _, r := range "ann" {
		m, _ = update(t, m, runeKey(r))
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeGame {
		t.Fatal("enter should leave the title screen")
	}
	if m.name != "ann" {
		t.Errorf("name = %q, expected ann", m.name)
	}
	if m.session.Phase() != game.PhasePlaying {
		t.Errorf("phase = %v, expected playing", m.session.Phase())
	}

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.session.Tick() != 1 {
		t.Errorf("Tick() = %d, expected 1", m.session.Tick())
	}
	if !strings.Contains(m.View(), "SCORE") {
		t.Error("game view should show the HUD")
	}
}

func TestModelEmptyNameFallsBack(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.name != storage.DefaultName {
		t.Errorf("name = %q, expected %q", m.name, storage.DefaultName)
	}
}

func TestModelPauseKey(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	if m.session.Phase() != game.PhasePaused {
		t.Fatalf("phase = %v, expected paused", m.session.Phase())
	}
	if m.session.Tick() != 0 {
		t.Errorf("Tick() = %d, paused session should not advance", m.session.Tick())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit during play")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelReadsHighScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, _, err := store.SaveScore("classic", "bob", 4200, 3); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(t, store)
	if m.highScore != 4200 {
		t.Errorf("highScore = %d, expected 4200", m.highScore)
	}
}

func TestGameOverLines(t *testing.T) {
	r := &gameResult{
		record: game.FinalRecord{Score: 900, Level: 2},
		rank:   3,
		ranked: true,
		top:    []storage.ScoreEntry{{Name: "ann", Score: 1500}},
	}
	text := strings.Join(gameOverLines(r), "\n")

	for _, want := range []string{"GAME OVER", "score 900  level 2", "#3", "1. ann"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over text missing %q:\n%s", want, text)
		}
	}
}
