package doodle

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
)

// Platform flags
const (
	flagMoving   = 1 << iota // Slides left and right
	flagBreaking             // Crumbles when landed on
)

// PlatformManager keeps the world stocked with platforms above the camera
// and retires those that scrolled off the bottom.
type PlatformManager struct {
	world   *physics.World
	rng     *rand.Rand
	cfg     *config.DoodleConfig
	diff    *config.DifficultyManager
	screenW float64
	highest float64 // World Y of the topmost platform
}

// NewPlatformManager creates a manager drawing from the given seed.
func NewPlatformManager(world *physics.World, seed int64, cfg *config.DoodleConfig, diff *config.DifficultyManager, screenW int) *PlatformManager {
	return &PlatformManager{
		world:   world,
		rng:     rand.New(rand.NewSource(seed)),
		cfg:     cfg,
		diff:    diff,
		screenW: float64(screenW),
	}
}

// Base places the solid starting platform, centered at row y.
func (pm *PlatformManager) Base(y float64) *physics.Entity {
	w := float64(pm.cfg.Platforms.Width)
	pm.highest = y
	return pm.world.Spawn(kindPlatform, core.Body{X: math.Floor((pm.screenW - w) / 2), Y: y, W: w, H: 1})
}

// Fill spawns platforms until one sits above top.
func (pm *PlatformManager) Fill(top float64, score, ticks int) {
	p := pm.cfg.Platforms
	// Gaps widen by up to gap_reduction rows as difficulty rises.
	extra := pm.cfg.Difficulty.Scaling.GapReduction
	widen := extra - pm.diff.GapSize(extra, 0, score, ticks)
	maxGap := min(p.MaxGap+widen, pm.reach())

	for pm.highest > top {
		gap := p.MinGap
		if maxGap > p.MinGap {
			gap += pm.rng.Intn(maxGap - p.MinGap + 1)
		}
		pm.highest -= float64(gap)

		w := float64(p.Width)
		x := math.Floor(pm.rng.Float64() * (pm.screenW - w + 1))
		e := pm.world.Spawn(kindPlatform, core.Body{X: x, Y: pm.highest, W: w, H: 1})

		switch r := pm.rng.Float64(); {
		case r < p.BreakingChance:
			e.Flags |= flagBreaking
		case r < p.BreakingChance+p.MovingChance:
			e.Flags |= flagMoving
			e.VX = p.MovingSpeed
			if pm.rng.Intn(2) == 0 {
				e.VX = -e.VX
			}
		}
	}
}

// reach is the highest gap a bounce can clear, in rows.
func (pm *PlatformManager) reach() int {
	v := pm.cfg.Physics.BounceImpulse
	return max(int(v*v/(2*pm.cfg.Physics.Gravity))-1, pm.cfg.Platforms.MinGap)
}

// Update slides moving platforms and retires those below bottom.
func (pm *PlatformManager) Update(bottom float64) {
	pm.world.Each(kindPlatform, func(e *physics.Entity) {
		if e.Y > bottom {
			e.Alive = false
			return
		}
		if e.Flags&flagMoving == 0 {
			return
		}
		e.X += e.VX
		if e.X < 0 || e.Right() > pm.screenW {
			e.X = core.ClampF(e.X, 0, pm.screenW-e.W)
			e.VX = -e.VX
		}
	})
}
