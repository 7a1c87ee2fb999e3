// Package maze contains the static level topology: cell classification,
// tunnel wraparound, traversal rules and the mutable pellet sets.
// It has no knowledge of entities or scoring.
package maze

import (
	"fmt"

	"github.com/june1016/PAC-MAN/internal/core"
)

// CellType classifies a grid cell. It never changes after construction.
type CellType uint8

const (
	Wall CellType = iota
	Path
	AdversaryHome
	AdversaryGate
)

// String returns the cell type name.
func (c CellType) String() string {
	switch c {
	case Wall:
		return "wall"
	case Path:
		return "path"
	case AdversaryHome:
		return "home"
	case AdversaryGate:
		return "gate"
	default:
		return "unknown"
	}
}

// Coord is a grid position. Row grows downward, Col grows to the right.
type Coord struct {
	Row int
	Col int
}

// C is a shorthand constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// Step returns the coordinate one cell away in direction d.
// Tunnel wraparound is not applied here.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Offset returns the coordinate n cells away in direction d.
func (c Coord) Offset(d Dir, n int) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr*n, Col: c.Col + dc*n}
}

// Manhattan returns the grid distance between two coordinates.
func (c Coord) Manhattan(o Coord) int {
	return core.Abs(c.Row-o.Row) + core.Abs(c.Col-o.Col)
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Dir is an orthogonal movement direction.
type Dir uint8

const (
	None Dir = iota
	Up
	Down
	Left
	Right
)

// ScanOrder is the fixed neighbor enumeration order used for tie-breaking.
var ScanOrder = [4]Dir{Up, Down, Left, Right}

// Valid reports whether d is one of the four movement directions.
func (d Dir) Valid() bool {
	return d >= Up && d <= Right
}

// Delta returns the row and column change for one step in d.
func (d Dir) Delta() (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction. None has no opposite.
func (d Dir) Opposite() Dir {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

