package maze

import (
	"fmt"
	"strings"
)

// NumAdversaries is the number of adversary slots every template must define.
const NumAdversaries = 4

// Layout legend used by ParseLayout.
const (
	glyphWall        = '#'
	glyphPellet      = '.'
	glyphPowerPellet = 'o'
	glyphEmpty       = ' '
	glyphGate        = '-'
	glyphHome        = 'H'
	glyphSpawn       = 'P'
	glyphExit        = 'E'
)

// LevelTemplate is the static definition a Maze is built from.
// It is a value: callers receive copies of its slices and cannot alter it.
type LevelTemplate struct {
	id   string
	name string

	cells        [][]CellType
	pellets      []Coord
	powerPellets []Coord

	tunnel    [2]Coord
	hasTunnel bool

	spawn    Coord
	hasSpawn bool
	exit     Coord
	hasExit  bool
	homes    []Coord // slot order A, B, C, D

	// layout errors found while parsing, reported by Validate
	parseErr error
}

// ParseLayout builds a template from ASCII rows and validates it.
//
// Legend: '#' wall, '.' pellet, 'o' power pellet, ' ' empty path,
// '-' adversary gate, 'H' home interior, '1'..'4' home of adversary slot
// A..D, 'P' player spawn, 'E' adversary exit. Non-wall border cells form the
// tunnel pair.
func ParseLayout(id, name string, rows []string) (LevelTemplate, error) {
	tpl := LevelTemplate{id: id, name: name}

	var homes [NumAdversaries]*Coord
	for r, line := range rows {
		runes := []rune(line)
		row := make([]CellType, len(runes))
		for c, ch := range runes {
			pos := C(r, c)
			switch {
			case ch == glyphWall:
				row[c] = Wall
			case ch == glyphPellet:
				row[c] = Path
				tpl.pellets = append(tpl.pellets, pos)
			case ch == glyphPowerPellet:
				row[c] = Path
				tpl.powerPellets = append(tpl.powerPellets, pos)
			case ch == glyphEmpty:
				row[c] = Path
			case ch == glyphGate:
				row[c] = AdversaryGate
			case ch == glyphHome:
				row[c] = AdversaryHome
			case ch >= '1' && ch <= '4':
				row[c] = AdversaryHome
				slot := int(ch - '1')
				if homes[slot] != nil && tpl.parseErr == nil {
					tpl.parseErr = ValidationError{
						Code:    CodeDuplicateHome,
						Message: fmt.Sprintf("home %c defined twice at %s and %s", ch, *homes[slot], pos),
					}
				}
				p := pos
				homes[slot] = &p
			case ch == glyphSpawn:
				row[c] = Path
				if tpl.hasSpawn && tpl.parseErr == nil {
					tpl.parseErr = ValidationError{Code: CodeDuplicateSpawn, Message: fmt.Sprintf("second spawn at %s", pos)}
				}
				tpl.spawn, tpl.hasSpawn = pos, true
			case ch == glyphExit:
				row[c] = Path
				if tpl.hasExit && tpl.parseErr == nil {
					tpl.parseErr = ValidationError{Code: CodeDuplicateExit, Message: fmt.Sprintf("second exit at %s", pos)}
				}
				tpl.exit, tpl.hasExit = pos, true
			default:
				row[c] = Wall
				if tpl.parseErr == nil {
					tpl.parseErr = ValidationError{Code: CodeUnknownGlyph, Message: fmt.Sprintf("unknown glyph %q at %s", ch, pos)}
				}
			}
		}
		tpl.cells = append(tpl.cells, row)
	}

	for _, h := range homes {
		if h == nil {
			break
		}
		tpl.homes = append(tpl.homes, *h)
	}

	tpl.findTunnel()

	if err := tpl.Validate(); err != nil {
		return LevelTemplate{}, err
	}
	return tpl, nil
}

// findTunnel records the tunnel pair when the border has exactly two
// opposite openings. Any other opening pattern is left for Validate.
func (t *LevelTemplate) findTunnel() {
	openings := t.borderOpenings()
	if len(openings) != 2 {
		return
	}
	a, b := openings[0], openings[1]
	w := t.Cols()
	if a.Row == b.Row && a.Col == 0 && b.Col == w-1 && a.Row > 0 && a.Row < t.Rows()-1 {
		t.tunnel = [2]Coord{a, b}
		t.hasTunnel = true
	}
}

// borderOpenings lists non-wall border cells in row-major order.
func (t *LevelTemplate) borderOpenings() []Coord {
	var out []Coord
	rows := t.Rows()
	for r, row := range t.cells {
		for c, cell := range row {
			onBorder := r == 0 || r == rows-1 || c == 0 || c == len(row)-1
			if onBorder && cell != Wall {
				out = append(out, C(r, c))
			}
		}
	}
	return out
}

// ID returns the template identifier.
func (t LevelTemplate) ID() string { return t.id }

// Name returns the human-readable template name.
func (t LevelTemplate) Name() string { return t.name }

// Rows returns the grid height.
func (t LevelTemplate) Rows() int { return len(t.cells) }

// Cols returns the grid width, or 0 for an empty grid.
func (t LevelTemplate) Cols() int {
	if len(t.cells) == 0 {
		return 0
	}
	return len(t.cells[0])
}

// CellAt returns the cell type at c; out-of-bounds is Wall.
func (t LevelTemplate) CellAt(c Coord) CellType {
	if c.Row < 0 || c.Row >= len(t.cells) || c.Col < 0 || c.Col >= len(t.cells[c.Row]) {
		return Wall
	}
	return t.cells[c.Row][c.Col]
}

// Pellets returns a copy of the pellet seed cells.
func (t LevelTemplate) Pellets() []Coord { return append([]Coord(nil), t.pellets...) }

// PowerPellets returns a copy of the power-pellet cells.
func (t LevelTemplate) PowerPellets() []Coord { return append([]Coord(nil), t.powerPellets...) }

// PlayerSpawn returns the player's level-start cell.
func (t LevelTemplate) PlayerSpawn() Coord { return t.spawn }

// Exit returns the cell an adversary must reach to leave home.
func (t LevelTemplate) Exit() Coord { return t.exit }

// Home returns the home cell of adversary slot i.
func (t LevelTemplate) Home(i int) Coord {
	if i < 0 || i >= len(t.homes) {
		return t.exit
	}
	return t.homes[i]
}

// Tunnel returns the tunnel endpoints and whether the template has one.
func (t LevelTemplate) Tunnel() (left, right Coord, ok bool) {
	return t.tunnel[0], t.tunnel[1], t.hasTunnel
}

// Layout renders the template back into its ASCII form.
func (t LevelTemplate) Layout() []string {
	pellets := make(map[Coord]rune, len(t.pellets)+len(t.powerPellets))
	for _, p := range t.pellets {
		pellets[p] = glyphPellet
	}
	for _, p := range t.powerPellets {
		pellets[p] = glyphPowerPellet
	}
	homeGlyph := make(map[Coord]rune, len(t.homes))
	for i, h := range t.homes {
		homeGlyph[h] = rune('1' + i)
	}

	out := make([]string, len(t.cells))
	for r, row := range t.cells {
		var sb strings.Builder
		for c, cell := range row {
			pos := C(r, c)
			switch {
			case t.hasSpawn && pos == t.spawn:
				sb.WriteRune(glyphSpawn)
			case t.hasExit && pos == t.exit:
				sb.WriteRune(glyphExit)
			case cell == Wall:
				sb.WriteRune(glyphWall)
			case cell == AdversaryGate:
				sb.WriteRune(glyphGate)
			case cell == AdversaryHome:
				if g, ok := homeGlyph[pos]; ok {
					sb.WriteRune(g)
				} else {
					sb.WriteRune(glyphHome)
				}
			default:
				if g, ok := pellets[pos]; ok {
					sb.WriteRune(g)
				} else {
					sb.WriteRune(glyphEmpty)
				}
			}
		}
		out[r] = sb.String()
	}
	return out
}
