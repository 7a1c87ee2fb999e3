package game

import "github.com/june1016/PAC-MAN/internal/maze"

// EventKind identifies something that happened during an update.
type EventKind uint8

const (
	EventPelletEaten EventKind = iota
	EventPowerPelletEaten
	EventAdversaryReleased
	EventAdversaryCaptured
	EventVulnerabilityEnded
	EventPlayerDied
	EventLevelAdvanced
	EventGameOver
)

func (k EventKind) String() string {
	switch k {
	case EventPelletEaten:
		return "pellet_eaten"
	case EventPowerPelletEaten:
		return "power_pellet_eaten"
	case EventAdversaryReleased:
		return "adversary_released"
	case EventAdversaryCaptured:
		return "adversary_captured"
	case EventVulnerabilityEnded:
		return "vulnerability_ended"
	case EventPlayerDied:
		return "player_died"
	case EventLevelAdvanced:
		return "level_advanced"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by Update in the order the step produced it. Fields
// that do not apply to a kind are zero.
type Event struct {
	Kind      EventKind
	Tick      int
	At        maze.Coord
	Archetype Archetype
	Points    int
	Level     int
	Lives     int
}

// FinalRecord is what a finished game contributes to the score table.
type FinalRecord struct {
	Score int
	Level int
}
