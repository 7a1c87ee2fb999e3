package game

import (
	"math/rand"
	"testing"

	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/levels"
	"github.com/june1016/PAC-MAN/internal/maze"
)

func TestNewSessionRejectsBadInput(t *testing.T) {
	tpl := parse(t, smallLayout)
	rng := rand.New(rand.NewSource(1))

	if _, err := NewSession(maze.LevelTemplate{}, config.DefaultGameConfig(), rng); err == nil {
		t.Error("NewSession() with an empty template should fail")
	}

	bad := config.DefaultGameConfig()
	bad.Player.Lives = 0
	if _, err := NewSession(tpl, bad, rng); err == nil {
		t.Error("NewSession() with an invalid config should fail")
	}

	if _, err := NewSession(tpl, config.DefaultGameConfig(), nil); err == nil {
		t.Error("NewSession() without a random source should fail")
	}
}

func TestSessionStartsInMenu(t *testing.T) {
	s, err := NewSession(parse(t, smallLayout), quietConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	if s.Phase() != PhaseMenu {
		t.Fatalf("Phase() = %v, expected menu", s.Phase())
	}
	if events := s.Update(); events != nil || s.Tick() != 0 {
		t.Errorf("Update() in menu changed state: events=%v tick=%d", events, s.Tick())
	}
	if _, ok := s.FinalRecord(); ok {
		t.Error("FinalRecord() should not be available before game over")
	}
}

func TestPelletAwardsPoints(t *testing.T) {
	s := newTestSession(t, smallLayout, quietConfig())
	before := s.Maze().PelletCount()

	events := s.Update()
	if s.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", s.Score())
	}
	if s.Maze().PelletCount() != before-1 {
		t.Errorf("PelletCount() = %d, expected %d", s.Maze().PelletCount(), before-1)
	}
	if !hasEvent(events, EventPelletEaten) {
		t.Errorf("events = %v, expected pellet_eaten", events)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := newTestSession(t, smallLayout, quietConfig())
	s.Update()
	s.Pause()
	before := s.Snapshot()

	s.SetDirection(maze.Left)
	runTicks(s, 20)
	if s.Snapshot() != before {
		t.Error("paused session changed")
	}

	s.TogglePause()
	if s.Phase() != PhasePlaying {
		t.Fatalf("Phase() = %v, expected playing after toggle", s.Phase())
	}
	s.Update()
	if s.Tick() != before.Tick+1 {
		t.Errorf("Tick() = %d, expected %d", s.Tick(), before.Tick+1)
	}
}

func TestPowerPelletWindow(t *testing.T) {
	cfg := quietConfig()
	cfg.Adversaries.ReleaseSchedule = []int{0, 0, 1000, 1000}
	cfg.Timers.VulnerableTicks = 5
	s := newTestSession(t, smallLayout, cfg)
	s.SetDirection(maze.Up)

	// Right along row 5, then up column 7 onto the power pellet at (1,7)
	events := runTicks(s, 7)
	if !hasEvent(events, EventPowerPelletEaten) {
		t.Fatalf("no power pellet eaten; player at %v", s.Player().Pos())
	}
	if s.Score() != 6*10+50 {
		t.Errorf("Score() = %d, expected 110", s.Score())
	}
	if s.VulnerableTicks() != 5 {
		t.Errorf("VulnerableTicks() = %d, expected 5", s.VulnerableTicks())
	}

	advs := s.Adversaries()
	for i, want := range []State{StateVulnerable, StateVulnerable, StateHoused, StateHoused} {
		if advs[i].State() != want {
			t.Errorf("adversary %d state = %v, expected %v", i, advs[i].State(), want)
		}
	}
	if advs[0].VulnerableTicks() != advs[1].VulnerableTicks() {
		t.Errorf("countdowns differ: %d vs %d", advs[0].VulnerableTicks(), advs[1].VulnerableTicks())
	}

	runTicks(s, 4)
	if got := s.Adversaries()[0].State(); got != StateVulnerable {
		t.Fatalf("state one tick before expiry = %v, expected vulnerable", got)
	}

	events = s.Update()
	if !hasEvent(events, EventVulnerabilityEnded) {
		t.Errorf("events = %v, expected vulnerability_ended", events)
	}
	advs = s.Adversaries()
	for i, a := range advs[:2] {
		if a.State() != StateChase || a.VulnerableTicks() != 0 {
			t.Errorf("adversary %d after expiry: %v with %d ticks", i, a.State(), a.VulnerableTicks())
		}
	}
}

func TestWindowExpiryKeepsLeavingAdversary(t *testing.T) {
	cfg := quietConfig()
	cfg.Adversaries.ReleaseSchedule = []int{2, 1000, 1000, 1000}
	s := newTestSession(t, smallLayout, cfg)
	s.window = 4

	runTicks(s, 2)
	if got := s.Adversaries()[0].State(); got != StateLeaving {
		t.Fatalf("state after release = %v, expected leaving", got)
	}

	// Released while the window ran, so it was never made vulnerable
	events := runTicks(s, 2)
	if !hasEvent(events, EventVulnerabilityEnded) {
		t.Fatalf("events = %v, expected vulnerability_ended", events)
	}
	a := s.Adversaries()[0]
	if a.State() != StateLeaving || a.VulnerableTicks() != 0 {
		t.Errorf("adversary after expiry: %v with %d ticks, expected leaving", a.State(), a.VulnerableTicks())
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := newTestSession(t, smallLayout, quietConfig())
	s.Update()

	p := s.Player()
	if p.Pos() != maze.C(5, 5) || p.Facing() != maze.Right || p.Score() != 10 || p.Lives() != 3 {
		t.Errorf("Player() = %v facing %v, score %d, lives %d", p.Pos(), p.Facing(), p.Score(), p.Lives())
	}

	for i, a := range s.Adversaries() {
		if a.Archetype() != Archetype(i) || a.Pos() != s.Template().Home(i) || a.LastDir() != maze.None {
			t.Errorf("adversary %d: %v at %v last %v", i, a.Archetype(), a.Pos(), a.LastDir())
		}
	}

	advs := s.Adversaries()
	advs[0].pos = maze.C(1, 1)
	if s.Adversaries()[0].Pos() == maze.C(1, 1) {
		t.Error("Adversaries() should return copies")
	}
}

func TestCaptureAwardsBonus(t *testing.T) {
	cfg := quietConfig()
	s := newTestSession(t, smallLayout, cfg)

	a := s.adversaries[0]
	a.state = StateVulnerable
	a.pos = maze.C(5, 5)
	s.window = 10

	events := s.Update()
	if !hasEvent(events, EventAdversaryCaptured) {
		t.Fatalf("events = %v, expected adversary_captured", events)
	}
	if s.Score() != 10+cfg.Scoring.Capture {
		t.Errorf("Score() = %d, expected %d", s.Score(), 10+cfg.Scoring.Capture)
	}
	if a.State() != StateCaptured || a.Pos() != s.Template().Home(0) {
		t.Errorf("captured adversary: %v at %v", a.State(), a.Pos())
	}
	if s.Lives() != cfg.Player.Lives {
		t.Errorf("Lives() = %d, expected %d", s.Lives(), cfg.Player.Lives)
	}
}

func TestCapturedAdversaryReturnsHome(t *testing.T) {
	cfg := quietConfig()
	cfg.Adversaries.RespawnTicks = 3
	cfg.Adversaries.RehouseTicks = 2
	s := newTestSession(t, smallLayout, cfg)
	s.released = 1

	a := s.adversaries[0]
	a.capture(cfg.Adversaries.RespawnTicks)

	runTicks(s, 3)
	if a.State() != StateHoused {
		t.Fatalf("State() = %v after respawn delay, expected housed", a.State())
	}
	events := runTicks(s, 2)
	if a.State() != StateLeaving || !hasEvent(events, EventAdversaryReleased) {
		t.Errorf("State() = %v after rehouse delay, expected leaving", a.State())
	}
}

func TestCollisionCostsLife(t *testing.T) {
	cfg := quietConfig()
	s := newTestSession(t, smallLayout, cfg)
	s.released = 2
	s.window = 0

	a := s.adversaries[0]
	a.state = StateChase
	a.pos = maze.C(5, 5)

	events := s.Update()
	if !hasEvent(events, EventPlayerDied) {
		t.Fatalf("events = %v, expected player_died", events)
	}
	if s.Lives() != cfg.Player.Lives-1 {
		t.Errorf("Lives() = %d, expected %d", s.Lives(), cfg.Player.Lives-1)
	}
	if s.Player().Pos() != s.Template().PlayerSpawn() {
		t.Errorf("player at %v, expected respawn at %v", s.Player().Pos(), s.Template().PlayerSpawn())
	}
	for i, adv := range s.Adversaries() {
		if adv.State() != StateHoused || adv.Pos() != s.Template().Home(i) {
			t.Errorf("adversary %d: %v at %v, expected housed at home", i, adv.State(), adv.Pos())
		}
	}
	if s.Released() != 0 {
		t.Errorf("Released() = %d, expected schedule restart", s.Released())
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", s.Phase())
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Lives = 1
	s := newTestSession(t, smallLayout, cfg)

	a := s.adversaries[2]
	a.state = StateChase
	a.pos = maze.C(5, 5)

	events := s.Update()
	if s.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected game over", s.Phase())
	}
	if !hasEvent(events, EventGameOver) {
		t.Errorf("events = %v, expected game_over", events)
	}
	rec, ok := s.FinalRecord()
	if !ok || rec != (FinalRecord{Score: 10, Level: 1}) {
		t.Errorf("FinalRecord() = %+v, %v; expected {10 1}, true", rec, ok)
	}

	tick := s.Tick()
	if events := s.Update(); events != nil || s.Tick() != tick {
		t.Error("Update() after game over should be a no-op")
	}
	if !s.State().GameOver {
		t.Error("State().GameOver should be true")
	}
}

func TestReleaseSchedule(t *testing.T) {
	cfg := quietConfig()
	cfg.Adversaries.ReleaseSchedule = []int{0, 2, 2, 5}
	s := newTestSession(t, smallLayout, cfg)

	want := []int{1, 3, 3, 3, 4}
	for i, n := range want {
		s.Update()
		if s.Released() != n {
			t.Errorf("tick %d: Released() = %d, expected %d", i+1, s.Released(), n)
		}
	}
	for i, a := range s.Adversaries() {
		if a.State() != StateLeaving {
			t.Errorf("adversary %d state = %v, expected leaving", i, a.State())
		}
	}
}

func TestLevelAdvance(t *testing.T) {
	s := newTestSession(t, smallLayout, quietConfig())
	m := s.maze
	for _, p := range m.Pellets() {
		if p != maze.C(5, 5) {
			m.EatPellet(p)
		}
	}
	for _, p := range m.PowerPellets() {
		m.EatPowerPellet(p)
	}
	s.SetDirection(maze.Up)

	events := s.Update()
	if !hasEvent(events, EventLevelAdvanced) {
		t.Fatalf("events = %v, expected level_advanced", events)
	}
	if s.Level() != 2 {
		t.Errorf("Level() = %d, expected 2", s.Level())
	}
	if s.Score() != 10 || s.Lives() != 3 {
		t.Errorf("score/lives = %d/%d, expected 10/3", s.Score(), s.Lives())
	}
	if s.Maze().PelletCount() != 18 || s.Maze().PowerPelletCount() != 2 {
		t.Errorf("pellets not regenerated: %d/%d", s.Maze().PelletCount(), s.Maze().PowerPelletCount())
	}
	if s.Player().Pos() != s.Template().PlayerSpawn() || s.Player().Queued() != maze.None {
		t.Errorf("player not reset: %v queued %v", s.Player().Pos(), s.Player().Queued())
	}
	if s.Progress() != 0 {
		t.Errorf("Progress() = %d, expected 0", s.Progress())
	}
}

func TestStartNewGameResets(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Lives = 1
	s := newTestSession(t, smallLayout, cfg)
	s.adversaries[0].state = StateChase
	s.adversaries[0].pos = maze.C(5, 5)
	s.Update()
	if s.Phase() != PhaseGameOver {
		t.Fatal("setup: expected game over")
	}

	frame := core.NewInputFrame()
	frame.Set(core.ActionRestart)
	res := s.Step(frame)

	if res.State.GameOver || s.Phase() != PhasePlaying {
		t.Fatalf("Phase() = %v, expected playing after restart", s.Phase())
	}
	if s.Level() != 1 || s.Lives() != 1 || s.Tick() != 1 {
		t.Errorf("level/lives/tick = %d/%d/%d, expected 1/1/1", s.Level(), s.Lives(), s.Tick())
	}
	if s.Score() != 10 {
		t.Errorf("Score() = %d, expected only the first pellet of the new game", s.Score())
	}
}

func TestStepMapsInput(t *testing.T) {
	s := newTestSession(t, smallLayout, quietConfig())

	frame := core.NewInputFrame()
	frame.Set(core.ActionLeft)
	s.Step(frame)
	if s.Player().Pos() != maze.C(5, 3) || s.Player().Facing() != maze.Left {
		t.Errorf("player at %v facing %v, expected (5,3) left", s.Player().Pos(), s.Player().Facing())
	}

	frame.Clear()
	frame.Set(core.ActionPause)
	res := s.Step(frame)
	if !res.State.Paused || res.Events != nil {
		t.Errorf("pause step: paused=%v events=%v", res.State.Paused, res.Events)
	}
}

func TestTickRateFollowsLevel(t *testing.T) {
	s := newTestSession(t, smallLayout, quietConfig())
	if got := s.TickRate(60); got != 60 {
		t.Errorf("TickRate(60) at level 1 = %d, expected 60", got)
	}
	s.level = 3
	if got := s.TickRate(60); got != 80 {
		t.Errorf("TickRate(60) at level 3 = %d, expected 80", got)
	}
}

func TestPelletDensity(t *testing.T) {
	cfg := quietConfig()
	cfg.Level.PelletDensity = 0.5
	s := newTestSession(t, smallLayout, cfg)

	if got := s.Maze().PelletCount(); got != 9 {
		t.Errorf("PelletCount() = %d, expected 9 of 18", got)
	}
	if got := s.Maze().PowerPelletCount(); got != 2 {
		t.Errorf("PowerPelletCount() = %d, expected all power pellets", got)
	}

	cfg.Level.PelletDensity = 0.01
	s = newTestSession(t, smallLayout, cfg)
	if got := s.Maze().PelletCount(); got != 1 {
		t.Errorf("PelletCount() = %d, expected at least one pellet", got)
	}
}

func classicSession(t *testing.T, seed int64, cfg config.GameConfig) *Session {
	t.Helper()
	tpl, err := levels.Classic()
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(tpl, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatal(err)
	}
	s.StartNewGame()
	return s
}

var dirs = [4]maze.Dir{maze.Up, maze.Down, maze.Left, maze.Right}

func TestSeededRunsAreIdentical(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Level.PelletDensity = 0.7
	s1 := classicSession(t, 99, cfg)
	s2 := classicSession(t, 99, cfg)
	input := rand.New(rand.NewSource(5))

	for i := 0; i < 3000; i++ {
		if i%40 == 0 {
			d := dirs[input.Intn(len(dirs))]
			s1.SetDirection(d)
			s2.SetDirection(d)
		}
		s1.Update()
		s2.Update()
		if a, b := s1.Snapshot(), s2.Snapshot(); a != b {
			t.Fatalf("tick %d: snapshots diverged\n%+v\n%+v", i, a, b)
		}
	}
}

func TestSeedChangesPelletPlacement(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Level.PelletDensity = 0.5
	a := classicSession(t, 1, cfg).Maze().Pellets()
	b := classicSession(t, 2, cfg).Maze().Pellets()

	same := len(a) == len(b)
	for i := 0; same && i < len(a); i++ {
		same = a[i] == b[i]
	}
	if same {
		t.Error("different seeds produced the same pellet layout")
	}
}

func TestRandomPlayInvariants(t *testing.T) {
	cfg := config.DefaultGameConfig()
	s := classicSession(t, 42, cfg)
	input := rand.New(rand.NewSource(11))
	tpl := s.Template()
	m := maze.New(tpl)

	level, score, lives := s.Level(), s.Score(), s.Lives()
	pellets := s.Maze().PelletCount() + s.Maze().PowerPelletCount()

	for i := 0; i < 5000 && s.Phase() == PhasePlaying; i++ {
		if input.Intn(30) == 0 {
			s.SetDirection(dirs[input.Intn(len(dirs))])
		}
		s.Update()

		if !m.CanPlayerEnter(s.Player().Pos()) {
			t.Fatalf("tick %d: player on illegal cell %v", s.Tick(), s.Player().Pos())
		}
		for j, a := range s.Adversaries() {
			if !m.CanAdversaryEnter(a.Pos()) {
				t.Fatalf("tick %d: adversary %d on illegal cell %v", s.Tick(), j, a.Pos())
			}
		}
		if s.Score() < score {
			t.Fatalf("tick %d: score dropped from %d to %d", s.Tick(), score, s.Score())
		}
		if s.Lives() > lives {
			t.Fatalf("tick %d: lives grew from %d to %d", s.Tick(), lives, s.Lives())
		}

		left := s.Maze().PelletCount() + s.Maze().PowerPelletCount()
		if s.Level() == level && left > pellets {
			t.Fatalf("tick %d: pellets grew from %d to %d", s.Tick(), pellets, left)
		}
		level, score, lives, pellets = s.Level(), s.Score(), s.Lives(), left
	}
}
