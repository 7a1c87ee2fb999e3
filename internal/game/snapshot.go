package game

import "github.com/june1016/PAC-MAN/internal/maze"

// AdversarySnapshot is the renderer's view of one adversary.
type AdversarySnapshot struct {
	Archetype       Archetype
	Pos             maze.Coord
	Dir             maze.Dir
	State           State
	VulnerableTicks int
}

// Snapshot is a comparable summary of the session after an update. Two
// sessions fed the same seed and inputs produce equal snapshots.
type Snapshot struct {
	Tick             int
	Phase            Phase
	Level            int
	Score            int
	Lives            int
	PlayerPos        maze.Coord
	PlayerFacing     maze.Dir
	PlayerQueued     maze.Dir
	PelletCount      int
	PowerPelletCount int
	VulnerableTicks  int
	Released         int
	Progress         int
	Adversaries      [maze.NumAdversaries]AdversarySnapshot
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:             s.tick,
		Phase:            s.phase,
		Level:            s.level,
		Score:            s.player.score,
		Lives:            s.player.lives,
		PlayerPos:        s.player.pos,
		PlayerFacing:     s.player.facing,
		PlayerQueued:     s.player.queued,
		PelletCount:      s.maze.PelletCount(),
		PowerPelletCount: s.maze.PowerPelletCount(),
		VulnerableTicks:  s.window,
		Released:         s.released,
		Progress:         s.Progress(),
	}
	for i, a := range s.adversaries {
		snap.Adversaries[i] = AdversarySnapshot{
			Archetype:       a.archetype,
			Pos:             a.pos,
			Dir:             a.lastDir,
			State:           a.state,
			VulnerableTicks: a.vulnerableTicks,
		}
	}
	return snap
}
