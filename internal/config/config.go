// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// GameConfig contains all tuning for a session. Tick counts are in
// simulation ticks, not wall-clock time.
type GameConfig struct {
	Player      PlayerConfig     `yaml:"player"`
	Adversaries AdversaryConfig  `yaml:"adversaries"`
	Timers      TimersConfig     `yaml:"timers"`
	Scoring     ScoringConfig    `yaml:"scoring"`
	Targeting   TargetingConfig  `yaml:"targeting"`
	Level       LevelConfig      `yaml:"level"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Lives     int `yaml:"lives"`
	MoveEvery int `yaml:"move_every"` // ticks between steps
}

// AdversaryConfig defines per-archetype cadence and home behavior.
// Slices are indexed by archetype in release order A, B, C, D.
type AdversaryConfig struct {
	MoveEvery       []int `yaml:"move_every"`
	ReleaseSchedule []int `yaml:"release_schedule"` // tick offsets from level start, non-decreasing
	RespawnTicks    int   `yaml:"respawn_ticks"`    // captured -> housed
	RehouseTicks    int   `yaml:"rehouse_ticks"`    // housed again -> leaving
}

// TimersConfig defines the vulnerability window.
type TimersConfig struct {
	VulnerableTicks int `yaml:"vulnerable_ticks"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	Pellet      int `yaml:"pellet"`
	PowerPellet int `yaml:"power_pellet"`
	Capture     int `yaml:"capture"`
}

// TargetingConfig defines the constants of the chase strategies.
type TargetingConfig struct {
	AmbushOffset      int `yaml:"ambush_offset"`      // cells ahead of the player (archetype B)
	ConditionalRadius int `yaml:"conditional_radius"` // chase when closer than this (archetype C)
	InverseRadius     int `yaml:"inverse_radius"`     // flee when not farther than this (archetype D)
}

// LevelConfig defines level setup and the recommended tick-rate progression.
type LevelConfig struct {
	PelletDensity float64 `yaml:"pellet_density"` // fraction of pellet cells filled, (0, 1]
	TickRateStep  int     `yaml:"tick_rate_step"` // added to the base rate per level
	MaxTickRate   int     `yaml:"max_tick_rate"`
}

// DifficultyConfig defines the per-level difficulty progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier     float64 `yaml:"speed_multiplier"`     // cadence speed-up at max difficulty
	VulnerableReduction float64 `yaml:"vulnerable_reduction"` // fraction of the window removed at max difficulty
}

// Validate rejects configurations the simulation cannot run with.
func (c GameConfig) Validate() error {
	var errs []error

	if c.Player.Lives <= 0 {
		errs = append(errs, fmt.Errorf("player.lives must be positive, got %d", c.Player.Lives))
	}
	if c.Player.MoveEvery <= 0 {
		errs = append(errs, fmt.Errorf("player.move_every must be positive, got %d", c.Player.MoveEvery))
	}

	if len(c.Adversaries.MoveEvery) != 4 {
		errs = append(errs, fmt.Errorf("adversaries.move_every needs 4 entries, got %d", len(c.Adversaries.MoveEvery)))
	}
	for i, n := range c.Adversaries.MoveEvery {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("adversaries.move_every[%d] must be positive, got %d", i, n))
		}
	}
	if len(c.Adversaries.ReleaseSchedule) != 4 {
		errs = append(errs, fmt.Errorf("adversaries.release_schedule needs 4 entries, got %d", len(c.Adversaries.ReleaseSchedule)))
	}
	for i, off := range c.Adversaries.ReleaseSchedule {
		if off < 0 {
			errs = append(errs, fmt.Errorf("adversaries.release_schedule[%d] is negative", i))
		}
		if i > 0 && off < c.Adversaries.ReleaseSchedule[i-1] {
			errs = append(errs, fmt.Errorf("adversaries.release_schedule must be non-decreasing at index %d", i))
		}
	}
	if c.Adversaries.RespawnTicks < 0 || c.Adversaries.RehouseTicks < 0 {
		errs = append(errs, errors.New("adversaries respawn/rehouse ticks must not be negative"))
	}

	if c.Timers.VulnerableTicks <= 0 {
		errs = append(errs, fmt.Errorf("timers.vulnerable_ticks must be positive, got %d", c.Timers.VulnerableTicks))
	}
	if c.Targeting.AmbushOffset < 0 || c.Targeting.ConditionalRadius < 0 || c.Targeting.InverseRadius < 0 {
		errs = append(errs, errors.New("targeting distances must not be negative"))
	}
	if c.Level.PelletDensity <= 0 || c.Level.PelletDensity > 1 {
		errs = append(errs, fmt.Errorf("level.pellet_density must be in (0, 1], got %g", c.Level.PelletDensity))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Timers.VulnerableTicks += cfg.Timers.VulnerableTicks / 2
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Targeting.ConditionalRadius += 2
	}
}
