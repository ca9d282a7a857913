package config

import "github.com/vovakirdan/arcade-portal/internal/core"

// DifficultyManager turns score or elapsed ticks into a difficulty level
// and scales game parameters with it.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a manager for the given settings.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = core.ClampF(cfg.InitialLevel, 0, 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled reports whether the level changes during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level in [InitialLevel, 1].
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.cfg.InitialLevel
	}

	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.cfg.InitialLevel
	}
	progress = core.ClampF(progress, 0, 1)

	return d.cfg.InitialLevel + progress*(1-d.cfg.InitialLevel)
}

// Speed scales base from 1x up to (1+speed_multiplier)x.
func (d *DifficultyManager) Speed(base float64, score, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize shrinks base by up to gap_reduction, never below floor.
func (d *DifficultyManager) GapSize(base, floor, score, ticks int) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.GapReduction))
	return max(base-reduction, floor)
}

// Spacing shrinks base by up to spacing_reduction, never below floor.
func (d *DifficultyManager) Spacing(base, floor, score, ticks int) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.SpacingReduction))
	return max(base-reduction, floor)
}
