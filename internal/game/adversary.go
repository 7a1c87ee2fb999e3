package game

import (
	"math/rand"

	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/maze"
)

// Archetype selects an adversary's pursuit strategy. The value is also the
// adversary's slot and release order.
type Archetype uint8

const (
	ArchetypeDirect      Archetype = iota // targets the player's cell
	ArchetypeAmbusher                     // targets ahead of the player
	ArchetypeConditional                  // chases when near, scatters when far
	ArchetypeInverse                      // chases when far, flees when near
	numArchetypes
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeDirect:
		return "direct"
	case ArchetypeAmbusher:
		return "ambusher"
	case ArchetypeConditional:
		return "conditional"
	case ArchetypeInverse:
		return "inverse"
	default:
		return "unknown"
	}
}

// State is an adversary's state-machine tag.
type State uint8

const (
	StateHoused State = iota
	StateLeaving
	StateChase
	StateVulnerable
	StateCaptured
)

func (s State) String() string {
	switch s {
	case StateHoused:
		return "housed"
	case StateLeaving:
		return "leaving"
	case StateChase:
		return "chase"
	case StateVulnerable:
		return "vulnerable"
	case StateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// Active reports whether an adversary in this state is on the field and can
// collide with the player.
func (s State) Active() bool {
	return s != StateHoused && s != StateCaptured
}

// scatterCorners maps archetypes to an index into Maze.Corners().
var scatterCorners = [numArchetypes]int{
	ArchetypeDirect:      1, // top-right
	ArchetypeAmbusher:    0, // top-left
	ArchetypeConditional: 2, // bottom-left
	ArchetypeInverse:     3, // bottom-right
}

// Adversary is one of the four pursuers.
type Adversary struct {
	archetype Archetype
	pos       maze.Coord
	lastDir   maze.Dir
	state     State

	home    maze.Coord
	scatter maze.Coord

	moveEvery  int
	moveTicker int

	vulnerableTicks int // mirrors the shared window while vulnerable
	releaseTicks    int // countdown while housed
	respawnTicks    int // countdown while captured
}

func newAdversary(kind Archetype, home maze.Coord) *Adversary {
	a := &Adversary{archetype: kind, home: home}
	a.house(0)
	return a
}

// Archetype returns the strategy tag.
func (a Adversary) Archetype() Archetype { return a.archetype }

// Pos returns the current cell.
func (a Adversary) Pos() maze.Coord { return a.pos }

// LastDir returns the direction of the last move.
func (a Adversary) LastDir() maze.Dir { return a.lastDir }

// State returns the state-machine tag.
func (a Adversary) State() State { return a.state }

// VulnerableTicks returns the remaining vulnerability countdown.
func (a Adversary) VulnerableTicks() int { return a.vulnerableTicks }

// house puts the adversary back home with a release countdown.
func (a *Adversary) house(releaseIn int) {
	a.pos = a.home
	a.lastDir = maze.None
	a.state = StateHoused
	a.moveTicker = 0
	a.vulnerableTicks = 0
	a.respawnTicks = 0
	a.releaseTicks = releaseIn
}

func (a *Adversary) capture(respawnIn int) {
	a.pos = a.home
	a.lastDir = maze.None
	a.state = StateCaptured
	a.moveTicker = 0
	a.vulnerableTicks = 0
	a.respawnTicks = respawnIn
}

// advance counts one tick and, when the cadence allows, takes one step
// toward the target of the current state. exit is the cell that ends
// the leaving state; th is nil when no player is available, in which case
// the step is random. Session always passes the player, so only callers
// driving an adversary without one reach the random branch.
func (a *Adversary) advance(m *maze.Maze, exit maze.Coord, th *threat, tuning config.TargetingConfig, rng *rand.Rand) bool {
	if !a.state.Active() {
		return false
	}
	a.moveTicker++
	if a.moveTicker < a.moveEvery {
		return false
	}
	a.moveTicker = 0

	var (
		step maze.Neighbor
		ok   bool
	)
	switch {
	case a.state == StateLeaving:
		step, ok = chooseStep(m, a.pos, a.lastDir, exit)
	case th == nil:
		step, ok = randomStep(m, a.pos, a.lastDir, rng)
	case a.state == StateVulnerable:
		step, ok = chooseStep(m, a.pos, a.lastDir, farthestCorner(m.Corners(), th.pos))
	default:
		step, ok = chooseStep(m, a.pos, a.lastDir, a.chaseTarget(m, *th, tuning))
	}

	if ok {
		a.pos = step.At
		a.lastDir = step.Dir
	}
	if a.state == StateLeaving && a.pos == exit {
		a.state = StateChase
	}
	return ok
}

func (a *Adversary) chaseTarget(m *maze.Maze, th threat, tuning config.TargetingConfig) maze.Coord {
	return strategies[a.archetype](targetContext{
		self:    a.pos,
		scatter: a.scatter,
		player:  th.pos,
		facing:  th.facing,
		rows:    m.Rows(),
		cols:    m.Cols(),
		tuning:  tuning,
	})
}

// candidates returns the legal steps from pos with the reversal of last
// removed, unless reversing is the only legal option.
func candidates(m *maze.Maze, pos maze.Coord, last maze.Dir) []maze.Neighbor {
	opts := m.Neighbors(pos, true)
	if len(opts) <= 1 {
		return opts
	}
	back := last.Opposite()
	out := opts[:0]
	for _, n := range opts {
		if n.Dir != back {
			out = append(out, n)
		}
	}
	return out
}

// chooseStep picks the candidate nearest to target by Manhattan distance.
// Ties keep the earlier neighbor in scan order.
func chooseStep(m *maze.Maze, pos maze.Coord, last maze.Dir, target maze.Coord) (maze.Neighbor, bool) {
	opts := candidates(m, pos, last)
	if len(opts) == 0 {
		return maze.Neighbor{}, false
	}
	best := opts[0]
	bestDist := best.At.Manhattan(target)
	for _, n := range opts[1:] {
		if d := n.At.Manhattan(target); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best, true
}

// randomStep picks a uniformly random candidate.
func randomStep(m *maze.Maze, pos maze.Coord, last maze.Dir, rng *rand.Rand) (maze.Neighbor, bool) {
	opts := candidates(m, pos, last)
	if len(opts) == 0 {
		return maze.Neighbor{}, false
	}
	return opts[rng.Intn(len(opts))], true
}
