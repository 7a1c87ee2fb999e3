package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
// At the default 60 ticks per second the player steps 7.5 cells per second.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Player: PlayerConfig{
			Lives:     3,
			MoveEvery: 8,
		},
		Adversaries: AdversaryConfig{
			MoveEvery:       []int{9, 10, 11, 12},
			ReleaseSchedule: []int{0, 120, 300, 480},
			RespawnTicks:    180,
			RehouseTicks:    60,
		},
		Timers: TimersConfig{
			VulnerableTicks: 480,
		},
		Scoring: ScoringConfig{
			Pellet:      10,
			PowerPellet: 50,
			Capture:     200,
		},
		Targeting: TargetingConfig{
			AmbushOffset:      2,
			ConditionalRadius: 8,
			InverseRadius:     5,
		},
		Level: LevelConfig{
			PelletDensity: 1.0,
			TickRateStep:  10,
			MaxTickRate:   120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:     0.5,
				VulnerableReduction: 0.6,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
