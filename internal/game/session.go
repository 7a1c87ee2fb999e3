// Package game implements the tick-driven chase simulation: the player, the
// four adversaries and the orchestrator that resolves everything between
// them. The package never reads the clock and draws randomness only from
// the generator handed to NewSession.
package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/maze"
)

// Phase is the session-level game phase.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// StepResult is returned by Step.
type StepResult struct {
	State  core.GameState
	Events []Event
}

// Board is the read-only view of the live maze handed to renderers.
type Board interface {
	Rows() int
	Cols() int
	CellAt(c maze.Coord) maze.CellType
	HasPellet(c maze.Coord) bool
	HasPowerPellet(c maze.Coord) bool
	Pellets() []maze.Coord
	PowerPellets() []maze.Coord
	PelletCount() int
	PowerPelletCount() int
}

// Session owns one running game. It is not safe for concurrent use.
type Session struct {
	cfg config.GameConfig
	tpl maze.LevelTemplate
	rng *rand.Rand
	dm  *config.DifficultyManager

	maze        *maze.Maze
	player      *Player
	adversaries [maze.NumAdversaries]*Adversary

	phase    Phase
	level    int
	tick     int
	window   int // shared vulnerability countdown
	released int // adversaries released since the last schedule restart
	total    int // pellets placed at level start

	events []Event
}

// NewSession validates the template and configuration and returns a
// session in the menu phase with level 1 laid out.
func NewSession(tpl maze.LevelTemplate, cfg config.GameConfig, rng *rand.Rand) (*Session, error) {
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("game: invalid maze %q: %w", tpl.ID(), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if rng == nil {
		return nil, errors.New("game: random source is required")
	}

	s := &Session{
		cfg: cfg,
		tpl: tpl,
		rng: rng,
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
	s.reset()
	s.phase = PhaseMenu
	return s, nil
}

// StartNewGame resets score, lives and level and enters the playing phase.
func (s *Session) StartNewGame() {
	s.reset()
}

func (s *Session) reset() {
	s.level = 1
	s.tick = 0
	s.player = newPlayer(s.tpl.PlayerSpawn(), s.cfg.Player.Lives, s.cfg.Player.MoveEvery)
	for i := range s.adversaries {
		s.adversaries[i] = newAdversary(Archetype(i), s.tpl.Home(i))
	}
	s.initLevel()
	s.phase = PhasePlaying
}

// initLevel lays out pellets and resets every entity for the current level.
func (s *Session) initLevel() {
	s.maze = maze.NewWithPellets(s.tpl, s.placePellets())
	s.total = s.maze.PelletCount() + s.maze.PowerPelletCount()

	corners := s.maze.Corners()
	for i, a := range s.adversaries {
		a.scatter = corners[scatterCorners[i]]
		a.moveEvery = s.dm.Cadence(s.cfg.Adversaries.MoveEvery[i], s.level)
	}
	s.player.respawn(s.tpl.PlayerSpawn())
	s.restartSchedule()
}

// placePellets picks the pellet subset for a level. A density below 1
// keeps a shuffled fraction, never fewer than one pellet.
func (s *Session) placePellets() []maze.Coord {
	seeds := s.tpl.Pellets()
	density := s.cfg.Level.PelletDensity
	if density >= 1 || len(seeds) == 0 {
		return seeds
	}
	n := int(math.Ceil(float64(len(seeds)) * density))
	if n < 1 {
		n = 1
	}
	s.rng.Shuffle(len(seeds), func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] })
	return seeds[:n]
}

func (s *Session) restartSchedule() {
	for i, a := range s.adversaries {
		a.house(s.cfg.Adversaries.ReleaseSchedule[i])
	}
	s.released = 0
	s.window = 0
}

// SetDirection queues a movement request. Ignored outside the playing phase.
func (s *Session) SetDirection(d maze.Dir) {
	if s.phase != PhasePlaying {
		return
	}
	s.player.Queue(d)
}

// Pause suspends the simulation.
func (s *Session) Pause() {
	if s.phase == PhasePlaying {
		s.phase = PhasePaused
	}
}

// Resume continues a paused simulation.
func (s *Session) Resume() {
	if s.phase == PhasePaused {
		s.phase = PhasePlaying
	}
}

// TogglePause flips between playing and paused.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhasePlaying:
		s.Pause()
	case PhasePaused:
		s.Resume()
	}
}

// Step applies one frame of input and advances the simulation one tick.
func (s *Session) Step(frame core.InputFrame) StepResult {
	switch {
	case frame.Has(core.ActionPause):
		s.TogglePause()
	case frame.Has(core.ActionConfirm), frame.Has(core.ActionRestart):
		if s.phase == PhaseMenu || s.phase == PhaseGameOver {
			s.StartNewGame()
		}
	}

	switch frame.Movement() {
	case core.ActionUp:
		s.SetDirection(maze.Up)
	case core.ActionDown:
		s.SetDirection(maze.Down)
	case core.ActionLeft:
		s.SetDirection(maze.Left)
	case core.ActionRight:
		s.SetDirection(maze.Right)
	}

	events := s.Update()
	return StepResult{State: s.State(), Events: events}
}

// Update advances the simulation by one tick and returns what happened.
// Outside the playing phase nothing changes and nil is returned.
func (s *Session) Update() []Event {
	if s.phase != PhasePlaying {
		return nil
	}
	s.tick++
	s.events = nil

	s.tickWindow()
	s.movePlayer()
	s.tickRelease()
	s.moveAdversaries()
	s.resolveCollisions()
	if s.phase == PhasePlaying && s.maze.Cleared() {
		s.advanceLevel()
	}

	return s.events
}

func (s *Session) emit(ev Event) {
	ev.Tick = s.tick
	s.events = append(s.events, ev)
}

func (s *Session) tickWindow() {
	if s.window == 0 {
		return
	}
	s.window--
	for _, a := range s.adversaries {
		if a.state == StateVulnerable {
			a.vulnerableTicks = s.window
		}
	}
	if s.window > 0 {
		return
	}
	for _, a := range s.adversaries {
		if a.state == StateVulnerable {
			a.state = StateChase
			a.vulnerableTicks = 0
		}
	}
	s.emit(Event{Kind: EventVulnerabilityEnded})
}

func (s *Session) movePlayer() {
	if !s.player.Advance(s.maze) {
		return
	}
	at := s.player.pos
	switch {
	case s.maze.EatPellet(at):
		s.player.addScore(s.cfg.Scoring.Pellet)
		s.emit(Event{Kind: EventPelletEaten, At: at, Points: s.cfg.Scoring.Pellet})
	case s.maze.EatPowerPellet(at):
		s.player.addScore(s.cfg.Scoring.PowerPellet)
		s.startWindow()
		s.emit(Event{Kind: EventPowerPelletEaten, At: at, Points: s.cfg.Scoring.PowerPellet})
	}
}

// startWindow begins or restarts the shared vulnerability window.
func (s *Session) startWindow() {
	s.window = s.dm.VulnerableTicks(s.cfg.Timers.VulnerableTicks, s.level)
	for _, a := range s.adversaries {
		if a.state.Active() {
			a.state = StateVulnerable
			a.vulnerableTicks = s.window
		}
	}
}

func (s *Session) tickRelease() {
	for i, a := range s.adversaries {
		switch a.state {
		case StateCaptured:
			if a.respawnTicks > 0 {
				a.respawnTicks--
			}
			if a.respawnTicks == 0 {
				a.house(s.cfg.Adversaries.RehouseTicks)
			}
		case StateHoused:
			if a.releaseTicks > 0 {
				a.releaseTicks--
			}
			if a.releaseTicks > 0 || i > s.released {
				continue
			}
			a.state = StateLeaving
			a.moveTicker = 0
			if i == s.released {
				s.released++
			}
			s.emit(Event{Kind: EventAdversaryReleased, At: a.pos, Archetype: a.archetype})
		}
	}
}

func (s *Session) moveAdversaries() {
	th := &threat{pos: s.player.pos, facing: s.player.facing}
	exit := s.tpl.Exit()
	for _, a := range s.adversaries {
		a.advance(s.maze, exit, th, s.cfg.Targeting, s.rng)
	}
}

func (s *Session) resolveCollisions() {
	at := s.player.pos
	for _, a := range s.adversaries {
		if !a.state.Active() || a.pos != at {
			continue
		}
		if a.state == StateVulnerable {
			a.capture(s.cfg.Adversaries.RespawnTicks)
			s.player.addScore(s.cfg.Scoring.Capture)
			s.emit(Event{Kind: EventAdversaryCaptured, At: at, Archetype: a.archetype, Points: s.cfg.Scoring.Capture})
			continue
		}
		s.loseLife(a, at)
		return
	}
}

func (s *Session) loseLife(by *Adversary, at maze.Coord) {
	left := s.player.loseLife()
	s.emit(Event{Kind: EventPlayerDied, At: at, Archetype: by.archetype, Lives: s.player.lives})
	if !left {
		s.phase = PhaseGameOver
		s.emit(Event{Kind: EventGameOver, Points: s.player.score, Level: s.level})
		return
	}
	s.player.respawn(s.tpl.PlayerSpawn())
	s.restartSchedule()
}

func (s *Session) advanceLevel() {
	s.level++
	s.initLevel()
	s.emit(Event{Kind: EventLevelAdvanced, Level: s.level, Lives: s.player.lives})
}

// Phase returns the current game phase.
func (s *Session) Phase() Phase { return s.phase }

// Level returns the current level number, starting at 1.
func (s *Session) Level() int { return s.level }

// Score returns the cumulative score.
func (s *Session) Score() int { return s.player.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.player.lives }

// Tick returns the number of updates since the game started.
func (s *Session) Tick() int { return s.tick }

// VulnerableTicks returns the remaining shared vulnerability window.
func (s *Session) VulnerableTicks() int { return s.window }

// Released returns how many adversaries left home since the schedule last
// restarted.
func (s *Session) Released() int { return s.released }

// Template returns the level template the session plays.
func (s *Session) Template() maze.LevelTemplate { return s.tpl }

// Maze returns a read-only view of the live maze.
func (s *Session) Maze() Board { return s.maze }

// Player returns a copy of the player.
func (s *Session) Player() Player { return *s.player }

// Adversaries returns copies of the adversaries in archetype order.
func (s *Session) Adversaries() [maze.NumAdversaries]Adversary {
	var out [maze.NumAdversaries]Adversary
	for i, a := range s.adversaries {
		out[i] = *a
	}
	return out
}

// State returns the compact status summary.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.player.score,
		Level:    s.level,
		Lives:    s.player.lives,
		GameOver: s.phase == PhaseGameOver,
		Paused:   s.phase == PhasePaused,
	}
}

// FinalRecord returns the score and level reached. ok is false until the
// game is over.
func (s *Session) FinalRecord() (rec FinalRecord, ok bool) {
	if s.phase != PhaseGameOver {
		return FinalRecord{}, false
	}
	return FinalRecord{Score: s.player.score, Level: s.level}, true
}

// TickRate returns the recommended ticks per second for the current level.
func (s *Session) TickRate(base int) int {
	return config.TickRate(base, s.level, s.cfg.Level)
}

// Progress returns the percentage of this level's pellets consumed.
func (s *Session) Progress() int {
	if s.total == 0 {
		return 100
	}
	left := s.maze.PelletCount() + s.maze.PowerPelletCount()
	return (s.total - left) * 100 / s.total
}
