package maze

import (
	"sort"
	"strings"
)

// Neighbor is one legal step from a cell.
type Neighbor struct {
	Dir Dir
	At  Coord // destination after tunnel wraparound
}

// Maze is the per-level topology oracle. The grid is shared with the
// template and never mutates; the pellet sets shrink as they are eaten.
type Maze struct {
	tpl          LevelTemplate
	pellets      map[Coord]struct{}
	powerPellets map[Coord]struct{}
}

// New builds a maze holding every pellet of the template.
func New(tpl LevelTemplate) *Maze {
	return NewWithPellets(tpl, tpl.pellets)
}

// NewWithPellets builds a maze holding only the given subset of the
// template's pellet cells. Coordinates that are not template pellets
// are dropped. Power pellets are always fully placed.
func NewWithPellets(tpl LevelTemplate, pellets []Coord) *Maze {
	seed := make(map[Coord]struct{}, len(tpl.pellets))
	for _, p := range tpl.pellets {
		seed[p] = struct{}{}
	}

	m := &Maze{
		tpl:          tpl,
		pellets:      make(map[Coord]struct{}, len(pellets)),
		powerPellets: make(map[Coord]struct{}, len(tpl.powerPellets)),
	}
	for _, p := range pellets {
		if _, ok := seed[p]; ok {
			m.pellets[p] = struct{}{}
		}
	}
	for _, p := range tpl.powerPellets {
		m.powerPellets[p] = struct{}{}
	}
	return m
}

// Template returns the template the maze was built from.
func (m *Maze) Template() LevelTemplate { return m.tpl }

// Rows returns the grid height.
func (m *Maze) Rows() int { return m.tpl.Rows() }

// Cols returns the grid width.
func (m *Maze) Cols() int { return m.tpl.Cols() }

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < m.Rows() && c.Col >= 0 && c.Col < m.Cols()
}

// CellAt returns the cell type at c; out-of-bounds is Wall.
func (m *Maze) CellAt(c Coord) CellType {
	return m.tpl.CellAt(c)
}

// CanPlayerEnter reports whether the player may occupy c.
func (m *Maze) CanPlayerEnter(c Coord) bool {
	return m.InBounds(c) && m.CellAt(c) == Path
}

// CanAdversaryEnter reports whether an adversary may occupy c.
func (m *Maze) CanAdversaryEnter(c Coord) bool {
	return m.InBounds(c) && adversaryEnterable(m.CellAt(c))
}

// ResolveTunnel wraps a coordinate that fell off the horizontal edge of the
// tunnel row onto the opposite endpoint. Every other coordinate is returned
// unchanged.
func (m *Maze) ResolveTunnel(c Coord) Coord {
	left, right, ok := m.tpl.Tunnel()
	if !ok || c.Row != left.Row {
		return c
	}
	switch {
	case c.Col < 0:
		return right
	case c.Col >= m.Cols():
		return left
	}
	return c
}

// Neighbors returns the legal steps from c in scan order (up, down, left,
// right). Destinations are tunnel-resolved.
func (m *Maze) Neighbors(c Coord, forAdversary bool) []Neighbor {
	out := make([]Neighbor, 0, len(ScanOrder))
	for _, d := range ScanOrder {
		next := m.ResolveTunnel(c.Step(d))
		legal := m.CanPlayerEnter(next)
		if forAdversary {
			legal = m.CanAdversaryEnter(next)
		}
		if legal {
			out = append(out, Neighbor{Dir: d, At: next})
		}
	}
	return out
}

// Corners returns the four interior corners in the order top-left,
// top-right, bottom-left, bottom-right.
func (m *Maze) Corners() [4]Coord {
	last, lastCol := m.Rows()-2, m.Cols()-2
	return [4]Coord{C(1, 1), C(1, lastCol), C(last, 1), C(last, lastCol)}
}

// HasPellet reports whether c still holds a pellet.
func (m *Maze) HasPellet(c Coord) bool {
	_, ok := m.pellets[c]
	return ok
}

// HasPowerPellet reports whether c still holds a power pellet.
func (m *Maze) HasPowerPellet(c Coord) bool {
	_, ok := m.powerPellets[c]
	return ok
}

// EatPellet removes the pellet at c and reports whether there was one.
func (m *Maze) EatPellet(c Coord) bool {
	if _, ok := m.pellets[c]; !ok {
		return false
	}
	delete(m.pellets, c)
	return true
}

// EatPowerPellet removes the power pellet at c and reports whether there was one.
func (m *Maze) EatPowerPellet(c Coord) bool {
	if _, ok := m.powerPellets[c]; !ok {
		return false
	}
	delete(m.powerPellets, c)
	return true
}

// Pellets returns the remaining pellets sorted in row-major order.
func (m *Maze) Pellets() []Coord { return sortedSet(m.pellets) }

// PowerPellets returns the remaining power pellets sorted in row-major order.
func (m *Maze) PowerPellets() []Coord { return sortedSet(m.powerPellets) }

// PelletCount returns the number of remaining pellets.
func (m *Maze) PelletCount() int { return len(m.pellets) }

// PowerPelletCount returns the number of remaining power pellets.
func (m *Maze) PowerPelletCount() int { return len(m.powerPellets) }

// Cleared reports whether both pellet sets are empty.
func (m *Maze) Cleared() bool {
	return len(m.pellets) == 0 && len(m.powerPellets) == 0
}

// String renders the current grid with remaining pellets, for debugging.
func (m *Maze) String() string {
	var sb strings.Builder
	for r := 0; r < m.Rows(); r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < m.Cols(); c++ {
			pos := C(r, c)
			switch {
			case m.HasPowerPellet(pos):
				sb.WriteRune(glyphPowerPellet)
			case m.HasPellet(pos):
				sb.WriteRune(glyphPellet)
			case m.CellAt(pos) == Wall:
				sb.WriteRune(glyphWall)
			case m.CellAt(pos) == AdversaryGate:
				sb.WriteRune(glyphGate)
			case m.CellAt(pos) == AdversaryHome:
				sb.WriteRune(glyphHome)
			default:
				sb.WriteRune(glyphEmpty)
			}
		}
	}
	return sb.String()
}

func sortedSet(set map[Coord]struct{}) []Coord {
	out := make([]Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
