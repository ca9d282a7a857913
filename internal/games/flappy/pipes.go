package flappy

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
)

// flagPassed marks the top half of a pipe the bird has already scored.
const flagPassed = 1

// PipeManager spawns, scrolls and retires pipe pairs in the world.
// Each pipe is two entities, top then bottom, sharing the same Mark.
type PipeManager struct {
	world   *physics.World
	rng     *rand.Rand
	cfg     *config.FlappyConfig
	diff    *config.DifficultyManager
	screenW int
	top     float64 // First playable row
	ground  float64 // First row of the ground
	nextID  int
}

// NewPipeManager creates a pipe manager drawing from the given seed.
func NewPipeManager(world *physics.World, seed int64, cfg *config.FlappyConfig, diff *config.DifficultyManager, screenW int, top, ground float64) *PipeManager {
	return &PipeManager{
		world:   world,
		rng:     rand.New(rand.NewSource(seed)),
		cfg:     cfg,
		diff:    diff,
		screenW: screenW,
		top:     top,
		ground:  ground,
	}
}

// Update scrolls pipes left, retires those off screen and spawns new ones.
// Returns the number of pipes whose right edge moved behind playerX.
func (pm *PipeManager) Update(playerX float64, score, ticks int) int {
	speed := pm.diff.Speed(pm.cfg.Physics.BaseSpeed, score, ticks)

	passed := 0
	var last *physics.Entity
	pm.world.Each(kindPipe, func(e *physics.Entity) {
		e.X -= speed
		if e.Right() <= 0 {
			e.Alive = false
			return
		}
		if e.Flags&flagPassed == 0 && e.Y <= pm.top && e.Right() < playerX {
			e.Flags |= flagPassed
			passed++
		}
		last = e
	})

	spacing := pm.diff.Spacing(pm.cfg.Obstacles.PipeSpacing, pm.cfg.Obstacles.PipeWidth+1, score, ticks)
	if last == nil || last.X < float64(pm.screenW-spacing) {
		pm.spawn(score, ticks)
	}
	return passed
}

// spawn adds a pipe pair at the right edge with a random gap.
func (pm *PipeManager) spawn(score, ticks int) {
	obs := pm.cfg.Obstacles
	gapMax := pm.diff.GapSize(obs.MaxGapSize, obs.MinGapSize, score, ticks)
	gap := obs.MinGapSize
	if gapMax > obs.MinGapSize {
		gap += pm.rng.Intn(gapMax - obs.MinGapSize + 1)
	}

	minY := int(pm.top) + obs.TopMargin
	maxY := int(pm.ground) - obs.BottomMargin - gap
	gapY := minY
	if maxY > minY {
		gapY += pm.rng.Intn(maxY - minY + 1)
	}

	x := float64(pm.screenW)
	w := float64(obs.PipeWidth)
	upper := pm.world.Spawn(kindPipe, core.Body{X: x, Y: pm.top, W: w, H: float64(gapY) - pm.top})
	lower := pm.world.Spawn(kindPipe, core.Body{X: x, Y: float64(gapY + gap), W: w, H: pm.ground - float64(gapY+gap)})
	upper.Mark, lower.Mark = pm.nextID, pm.nextID
	pm.nextID++
}

// Count returns the number of pipe pairs on screen.
func (pm *PipeManager) Count() int {
	return pm.world.Count(kindPipe) / 2
}
