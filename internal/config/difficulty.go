package config

import "math"

// DifficultyManager derives per-level tuning from the base configuration.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a 1-based maze level.
// Level 1 is always the initial difficulty.
func (d *DifficultyManager) Level(mazeLevel int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt - 1)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(mazeLevel-1)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Cadence returns the ticks between moves for an entity at the given maze
// level. Higher difficulty shortens the cadence but never below one tick.
func (d *DifficultyManager) Cadence(baseTicks, mazeLevel int) int {
	level := d.Level(mazeLevel)
	scaled := float64(baseTicks) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
	result := int(math.Round(scaled))
	if result < 1 {
		result = 1
	}
	return result
}

// VulnerableTicks returns the vulnerability window length at the given maze
// level. The window shrinks with difficulty but never below a quarter of
// its base length.
func (d *DifficultyManager) VulnerableTicks(baseTicks, mazeLevel int) int {
	level := d.Level(mazeLevel)
	result := baseTicks - int(level*d.cfg.Scaling.VulnerableReduction*float64(baseTicks))
	if floor := baseTicks / 4; result < floor {
		result = floor
	}
	if result < 1 {
		result = 1
	}
	return result
}

// TickRate returns the recommended simulation rate for a maze level:
// base + (level-1)*step, capped at max.
func TickRate(base, mazeLevel int, lvl LevelConfig) int {
	rate := base + (mazeLevel-1)*lvl.TickRateStep
	if lvl.MaxTickRate > 0 && rate > lvl.MaxTickRate {
		rate = lvl.MaxTickRate
	}
	if rate < 1 {
		rate = 1
	}
	return rate
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
