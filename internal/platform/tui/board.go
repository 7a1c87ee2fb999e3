package tui

import (
	"fmt"
	"strings"

	"github.com/june1016/PAC-MAN/internal/core"
	"github.com/june1016/PAC-MAN/internal/game"
	"github.com/june1016/PAC-MAN/internal/maze"
)

// Board layout constants
const (
	cellWidth  = 2 // screen columns per maze cell
	hudRows    = 2 // HUD line plus a gap above the maze
	flashTicks = 120
)

var adversaryColors = [maze.NumAdversaries]core.Color{
	game.ArchetypeDirect:      core.ColorRed,
	game.ArchetypeAmbusher:    core.ColorPink,
	game.ArchetypeConditional: core.ColorCyan,
	game.ArchetypeInverse:     core.ColorOrange,
}

// BoardView is everything DrawBoard needs for one frame.
type BoardView struct {
	Snap      game.Snapshot
	Board     game.Board
	Score     int // displayed score, trails the real one while tweening
	HighScore int
	Name      string
	Frame     int // render counter driving blink and mouth animation
}

// boardOrigin returns the screen position of maze cell (0,0).
func boardOrigin(s *core.Screen, b game.Board) (x, y int) {
	x = (s.Width() - b.Cols()*cellWidth) / 2
	if x < 0 {
		x = 0
	}
	return x, hudRows
}

// DrawBoard renders the HUD, the maze and every entity.
func DrawBoard(s *core.Screen, v BoardView) {
	s.Clear()
	drawHUD(s, v)

	ox, oy := boardOrigin(s, v.Board)
	for r := 0; r < v.Board.Rows(); r++ {
		for c := 0; c < v.Board.Cols(); c++ {
			at := maze.C(r, c)
			x, y := ox+c*cellWidth, oy+r
			switch v.Board.CellAt(at) {
			case maze.Wall:
				s.SetColored(x, y, '█', core.ColorWall)
				s.SetColored(x+1, y, '█', core.ColorWall)
			case maze.AdversaryGate:
				s.SetColored(x, y, '─', core.ColorGate)
				s.SetColored(x+1, y, '─', core.ColorGate)
			default:
				switch {
				case v.Board.HasPowerPellet(at):
					if v.Frame/15%2 == 0 {
						s.SetColored(x, y, '●', core.ColorPowerPellet)
					}
				case v.Board.HasPellet(at):
					s.SetColored(x, y, '·', core.ColorPellet)
				}
			}
		}
	}

	for _, a := range v.Snap.Adversaries {
		r, color := adversaryGlyph(a, v.Frame)
		s.SetColored(ox+a.Pos.Col*cellWidth, oy+a.Pos.Row, r, color)
	}

	p := v.Snap.PlayerPos
	s.SetColored(ox+p.Col*cellWidth, oy+p.Row, playerGlyph(v.Snap.PlayerFacing, v.Frame), core.ColorPlayer)

	drawStatus(s, v, oy+v.Board.Rows()+1)
}

func drawHUD(s *core.Screen, v BoardView) {
	lives := strings.Repeat("♥ ", v.Snap.Lives)
	line := fmt.Sprintf("SCORE %06d   HI %06d   LEVEL %d   %s", v.Score, v.HighScore, v.Snap.Level, lives)
	s.DrawTextCentered(0, strings.TrimRight(line, " "), core.ColorHUD)
}

func drawStatus(s *core.Screen, v BoardView, y int) {
	status := fmt.Sprintf("%s  %3d%% cleared", v.Name, v.Snap.Progress)
	if v.Snap.VulnerableTicks > 0 {
		status += fmt.Sprintf("  POWER %d", v.Snap.VulnerableTicks)
	}
	s.DrawTextCentered(y, status, core.ColorGray)

	if v.Snap.Phase == game.PhasePaused {
		drawOverlay(s, v.Board, []string{"PAUSED", "", "p to resume"}, core.ColorYellow)
	}
}

// drawOverlay draws a boxed message over the middle of the maze.
func drawOverlay(s *core.Screen, b game.Board, lines []string, c core.Color) {
	w := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	ox, oy := boardOrigin(s, b)
	area := core.NewRect(ox, oy, b.Cols()*cellWidth, b.Rows())
	box := area.Centered(w+4, len(lines)+2)

	s.DrawRect(box, ' ')
	s.DrawBox(box, c)
	for i, l := range lines {
		x := box.X + (box.W-len([]rune(l)))/2
		s.DrawTextColored(x, box.Y+1+i, l, c)
	}
}

func playerGlyph(facing maze.Dir, frame int) rune {
	if frame/6%2 == 1 {
		return 'O'
	}
	switch facing {
	case maze.Left:
		return 'Ɔ'
	case maze.Up:
		return 'U'
	case maze.Down:
		return 'n'
	default:
		return 'C'
	}
}

func adversaryGlyph(a game.AdversarySnapshot, frame int) (rune, core.Color) {
	switch a.State {
	case game.StateVulnerable:
		if a.VulnerableTicks < flashTicks && frame/8%2 == 1 {
			return 'W', core.ColorBrightWhite
		}
		return 'W', core.ColorVulnerable
	case game.StateCaptured:
		return '"', core.ColorCaptured
	default:
		return 'M', adversaryColors[a.Archetype]
	}
}
