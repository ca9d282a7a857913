package dino

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
)

// ObstacleManager spawns, scrolls and retires cacti and birds.
type ObstacleManager struct {
	world      *physics.World
	rng        *rand.Rand
	cfg        *config.DinoConfig
	difficulty *config.DifficultyManager
	screenW    int
	groundY    float64
	untilSpawn float64 // Distance left before the next obstacle appears
}

// NewObstacleManager creates an obstacle manager with the given RNG seed.
func NewObstacleManager(world *physics.World, seed int64, screenW int, groundY float64, cfg *config.DinoConfig, diff *config.DifficultyManager) *ObstacleManager {
	return &ObstacleManager{
		world:      world,
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		difficulty: diff,
		screenW:    screenW,
		groundY:    groundY,
		untilSpawn: float64(cfg.Obstacles.MinSpacing),
	}
}

// Update moves obstacles left by the current speed and spawns new ones.
func (om *ObstacleManager) Update(score, ticks int) {
	speed := om.difficulty.Speed(om.cfg.Physics.BaseSpeed, score, ticks)

	move := func(e *physics.Entity) {
		e.X -= speed
		if e.Right() <= 0 {
			e.Alive = false
		}
	}
	om.world.Each(kindCactus, move)
	om.world.Each(kindBird, move)

	om.untilSpawn -= speed
	if om.untilSpawn <= 0 {
		om.untilSpawn = om.spawn(score, ticks)
	}
}

// spawn adds one obstacle at the right edge and returns the distance to the
// next one.
func (om *ObstacleManager) spawn(score, ticks int) float64 {
	obs := om.cfg.Obstacles
	x := float64(om.screenW)

	var width int
	if score >= obs.BirdMinScore && om.rng.Float64() < obs.BirdChance {
		// Birds fly at head height: ducking passes under them.
		p := om.cfg.Player
		width = 2
		om.world.Spawn(kindBird, core.Body{
			X: x,
			Y: om.groundY - float64(p.Height),
			W: float64(width),
			H: float64(p.Height - p.DuckHeight),
		})
	} else {
		width = between(om.rng, obs.MinWidth, obs.MaxWidth)
		height := between(om.rng, obs.MinHeight, obs.MaxHeight)
		om.world.Spawn(kindCactus, core.Body{
			X: x,
			Y: om.groundY - float64(height),
			W: float64(width),
			H: float64(height),
		})
	}

	maxSpacing := om.difficulty.Spacing(obs.MaxSpacing, obs.MinSpacing, score, ticks)
	return float64(width + between(om.rng, obs.MinSpacing, maxSpacing))
}

// Count returns the number of obstacles on screen.
func (om *ObstacleManager) Count() int {
	return om.world.Count(kindCactus) + om.world.Count(kindBird)
}

func between(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
