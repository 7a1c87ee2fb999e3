package game

import (
	"github.com/june1016/PAC-MAN/internal/config"
	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/maze"
)

// threat is the player as seen by an adversary on a decision tick.
type threat struct {
	pos    maze.Coord
	facing maze.Dir
}

// targetContext carries everything a strategy may look at.
type targetContext struct {
	self    maze.Coord
	scatter maze.Coord
	player  maze.Coord
	facing  maze.Dir
	rows    int
	cols    int
	tuning  config.TargetingConfig
}

// strategy computes the chase destination for one archetype.
type strategy func(ctx targetContext) maze.Coord

var strategies = [numArchetypes]strategy{
	ArchetypeDirect:      targetDirect,
	ArchetypeAmbusher:    targetAmbush,
	ArchetypeConditional: targetConditional,
	ArchetypeInverse:     targetInverse,
}

func targetDirect(ctx targetContext) maze.Coord {
	return ctx.player
}

func targetAmbush(ctx targetContext) maze.Coord {
	ahead := ctx.player.Offset(ctx.facing, ctx.tuning.AmbushOffset)
	return clampCoord(ahead, ctx.rows, ctx.cols)
}

func targetConditional(ctx targetContext) maze.Coord {
	if ctx.self.Manhattan(ctx.player) < ctx.tuning.ConditionalRadius {
		return ctx.player
	}
	return ctx.scatter
}

func targetInverse(ctx targetContext) maze.Coord {
	if ctx.self.Manhattan(ctx.player) > ctx.tuning.InverseRadius {
		return ctx.player
	}
	away := maze.C(2*ctx.self.Row-ctx.player.Row, 2*ctx.self.Col-ctx.player.Col)
	return clampCoord(away, ctx.rows, ctx.cols)
}

// farthestCorner returns the corner with the largest Manhattan distance to
// from. Ties keep the earlier corner.
func farthestCorner(corners [4]maze.Coord, from maze.Coord) maze.Coord {
	best := corners[0]
	bestDist := best.Manhattan(from)
	for _, c := range corners[1:] {
		if d := c.Manhattan(from); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func clampCoord(c maze.Coord, rows, cols int) maze.Coord {
	return maze.C(core.Clamp(c.Row, 0, rows-1), core.Clamp(c.Col, 0, cols-1))
}
