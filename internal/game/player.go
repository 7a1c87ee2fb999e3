package game

import "github.com/june1016/PAC-MAN/internal/maze"

// Player is the pellet-collecting entity. Only the Session mutates it.
type Player struct {
	pos    maze.Coord
	facing maze.Dir
	queued maze.Dir // buffered input, applied at the first legal opportunity

	lives int
	score int

	moveEvery  int
	moveTicker int // counts ticks until next move
}

func newPlayer(spawn maze.Coord, lives, moveEvery int) *Player {
	p := &Player{lives: lives, moveEvery: moveEvery}
	p.respawn(spawn)
	return p
}

// Pos returns the current cell.
func (p Player) Pos() maze.Coord { return p.pos }

// Facing returns the direction of the last committed move.
func (p Player) Facing() maze.Dir { return p.facing }

// Queued returns the buffered direction, or None.
func (p Player) Queued() maze.Dir { return p.queued }

// Lives returns the remaining lives.
func (p Player) Lives() int { return p.lives }

// Score returns the cumulative score.
func (p Player) Score() int { return p.score }

// Queue buffers a requested direction. Invalid directions are ignored.
func (p *Player) Queue(d maze.Dir) {
	if !d.Valid() {
		return
	}
	p.queued = d
}

// Advance counts one tick and attempts a move when the cadence allows it.
func (p *Player) Advance(m *maze.Maze) bool {
	p.moveTicker++
	if p.moveTicker < p.moveEvery {
		return false
	}
	p.moveTicker = 0
	return p.AttemptMove(m)
}

// AttemptMove tries the queued direction first when it differs from the
// current facing, then the facing itself. On failure the player stays and
// the queued direction remains pending.
func (p *Player) AttemptMove(m *maze.Maze) bool {
	if p.queued.Valid() && p.queued != p.facing {
		if next := m.ResolveTunnel(p.pos.Step(p.queued)); m.CanPlayerEnter(next) {
			p.facing = p.queued
			p.pos = next
			return true
		}
	}
	if p.facing.Valid() {
		if next := m.ResolveTunnel(p.pos.Step(p.facing)); m.CanPlayerEnter(next) {
			p.pos = next
			return true
		}
	}
	return false
}

// loseLife removes one life and reports whether any remain.
func (p *Player) loseLife() bool {
	if p.lives > 0 {
		p.lives--
	}
	return p.lives > 0
}

func (p *Player) respawn(at maze.Coord) {
	p.pos = at
	p.facing = maze.Right
	p.queued = maze.None
	p.moveTicker = 0
}

func (p *Player) addScore(points int) {
	p.score += points
}
