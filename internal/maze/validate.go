package maze

import "fmt"

// Validation error codes.
const (
	CodeEmptyGrid        = "EMPTY_GRID"
	CodeNotRectangular   = "NOT_RECTANGULAR"
	CodeUnknownGlyph     = "UNKNOWN_GLYPH"
	CodeOpenBorder       = "OPEN_BORDER"
	CodeBadTunnel        = "BAD_TUNNEL"
	CodeNoSpawn          = "NO_SPAWN"
	CodeDuplicateSpawn   = "DUPLICATE_SPAWN"
	CodeSpawnNotPath     = "SPAWN_NOT_PATH"
	CodeMissingHomes     = "MISSING_HOMES"
	CodeDuplicateHome    = "DUPLICATE_HOME"
	CodeHomeNotEnterable = "HOME_NOT_ENTERABLE"
	CodeNoExit           = "NO_EXIT"
	CodeDuplicateExit    = "DUPLICATE_EXIT"
	CodeExitNotPath      = "EXIT_NOT_PATH"
	CodeNoPellets        = "NO_PELLETS"
	CodePelletNotPath    = "PELLET_NOT_PATH"
)

// ValidationError describes an inconsistent level template.
// It is a setup-time error: a session is never started from such a template.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks the structural invariants of the template.
// Checks, in order:
//   - the grid is non-empty and rectangular
//   - the border is closed except for one horizontal tunnel pair
//   - spawn, four homes and the exit exist on enterable cells
//   - every pellet sits on a path cell and there is at least one
func (t LevelTemplate) Validate() error {
	if t.parseErr != nil {
		return t.parseErr
	}

	if err := t.validateShape(); err != nil {
		return err
	}
	if err := t.validateBorder(); err != nil {
		return err
	}
	if err := t.validateAnchors(); err != nil {
		return err
	}
	return t.validatePellets()
}

func (t LevelTemplate) validateShape() error {
	if len(t.cells) == 0 || len(t.cells[0]) == 0 {
		return ValidationError{Code: CodeEmptyGrid, Message: "template has no cells"}
	}
	w := len(t.cells[0])
	for r, row := range t.cells {
		if len(row) != w {
			return ValidationError{
				Code:    CodeNotRectangular,
				Message: fmt.Sprintf("row %d has %d columns, expected %d", r, len(row), w),
			}
		}
	}
	if len(t.cells) < 3 || w < 3 {
		return ValidationError{
			Code:    CodeEmptyGrid,
			Message: fmt.Sprintf("grid %dx%d has no interior", len(t.cells), w),
		}
	}
	return nil
}

func (t LevelTemplate) validateBorder() error {
	openings := t.borderOpenings()
	if len(openings) == 0 {
		return nil
	}
	if !t.hasTunnel {
		return ValidationError{
			Code:    CodeOpenBorder,
			Message: fmt.Sprintf("border opening at %s is not part of a tunnel pair", openings[0]),
		}
	}
	for _, end := range t.tunnel {
		if t.CellAt(end) != Path {
			return ValidationError{
				Code:    CodeBadTunnel,
				Message: fmt.Sprintf("tunnel endpoint %s is %s, expected path", end, t.CellAt(end)),
			}
		}
	}
	return nil
}

func (t LevelTemplate) validateAnchors() error {
	if !t.hasSpawn {
		return ValidationError{Code: CodeNoSpawn, Message: "template has no player spawn"}
	}
	if t.CellAt(t.spawn) != Path {
		return ValidationError{Code: CodeSpawnNotPath, Message: fmt.Sprintf("spawn %s is not a path cell", t.spawn)}
	}

	if len(t.homes) < NumAdversaries {
		return ValidationError{
			Code:    CodeMissingHomes,
			Message: fmt.Sprintf("template defines %d of %d adversary homes", len(t.homes), NumAdversaries),
		}
	}
	for i, h := range t.homes {
		if !adversaryEnterable(t.CellAt(h)) {
			return ValidationError{
				Code:    CodeHomeNotEnterable,
				Message: fmt.Sprintf("home %d at %s is a wall", i+1, h),
			}
		}
	}

	if !t.hasExit {
		return ValidationError{Code: CodeNoExit, Message: "template has no adversary exit"}
	}
	if t.CellAt(t.exit) != Path {
		return ValidationError{Code: CodeExitNotPath, Message: fmt.Sprintf("exit %s is not a path cell", t.exit)}
	}
	return nil
}

func (t LevelTemplate) validatePellets() error {
	if len(t.pellets)+len(t.powerPellets) == 0 {
		return ValidationError{Code: CodeNoPellets, Message: "template has no pellets"}
	}
	for _, set := range [][]Coord{t.pellets, t.powerPellets} {
		for _, p := range set {
			if t.CellAt(p) != Path {
				return ValidationError{
					Code:    CodePelletNotPath,
					Message: fmt.Sprintf("pellet at %s is on a %s cell", p, t.CellAt(p)),
				}
			}
		}
	}
	return nil
}

func adversaryEnterable(c CellType) bool {
	return c == Path || c == AdversaryHome || c == AdversaryGate
}
