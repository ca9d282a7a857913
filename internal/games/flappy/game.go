// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
package flappy

import (
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

const (
	kindBird physics.Kind = iota + 1
	kindPipe
)

const (
	fieldTop   = 1 // Row 0 holds the HUD
	minScreenW = 40
	minScreenH = 16
	groundChar = '═'
)

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg     config.FlappyConfig
	diff    *config.DifficultyManager
	machine core.Machine

	world    *physics.World
	resolver *physics.Resolver
	pipes    *PipeManager
	bird     *physics.Entity
	sheet    render.Sheet

	ground   float64
	score    int
	high     int
	tick     int
	crashed  bool
	tooSmall bool
	events   []core.Event
}

// New creates a new Flappy Bird game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "flappy" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Flappy Bird" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset prepares a new run with the bird at mid-height and at rest.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadFlappy(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.diff = config.NewDifficultyManager(cfg.Difficulty)
	g.machine = core.NewMachine()
	g.score = 0
	g.tick = 0
	g.crashed = false
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.ground = float64(runtime.ScreenH - 1)

	g.world = physics.NewWorld()
	h := float64(cfg.Player.Height)
	g.bird = g.world.Spawn(kindBird, core.Body{
		X: float64(cfg.Player.X),
		Y: (float64(runtime.ScreenH) - h) / 2,
		W: float64(cfg.Player.Width),
		H: h,
	})
	g.pipes = NewPipeManager(g.world, runtime.Seed, &g.cfg, g.diff, runtime.ScreenW, fieldTop, g.ground)

	g.resolver = physics.NewResolver()
	g.resolver.On(kindBird, kindPipe, func(_, _ *physics.Entity) bool {
		g.crashed = true
		return true
	})

	g.sheet = render.Sheet{
		kindBird: {Vary: g.birdLook},
		kindPipe: {Glyph: '█', Color: core.ColorGreen},
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	if g.tooSmall {
		return g.result()
	}

	switch g.machine.Phase() {
	case core.PhaseReady:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			g.machine.Transition(core.PhasePlaying)
			g.events = append(g.events, core.EventStarted)
		}
	case core.PhasePlaying:
		if in.Has(core.ActionPause) {
			g.machine.TogglePause()
			break
		}
		g.update(in)
	case core.PhasePaused:
		if in.Has(core.ActionPause) {
			g.machine.TogglePause()
		}
	}

	return g.result()
}

func (g *Game) update(in core.InputFrame) {
	g.tick++

	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		g.bird.VY = g.cfg.Physics.JumpImpulse
	}
	physics.Fall(&g.bird.Body, g.cfg.Physics.Gravity, g.cfg.Physics.MaxFallSpeed, 1)

	// The ceiling stops the bird without ending the run.
	if g.bird.Y < fieldTop {
		g.bird.Y = fieldTop
		g.bird.VY = 0
	}

	if err := g.world.Validate(); err != nil {
		g.crash()
		return
	}

	if g.bird.Bottom() >= g.ground {
		g.bird.Y = g.ground - g.bird.H
		g.crash()
		return
	}

	passed := g.pipes.Update(g.bird.X, g.score, g.tick)
	g.world.Sweep()

	g.resolver.Resolve(g.world.All())
	if g.crashed {
		g.crash()
		return
	}

	if passed > 0 {
		g.score += passed
		g.events = append(g.events, core.EventScored)
	}
}

func (g *Game) crash() {
	g.machine.Transition(core.PhaseGameOver)
	g.events = append(g.events, core.EventGameOver)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// birdLook picks a glyph from the bird's tilt.
func (g *Game) birdLook(e *physics.Entity) (rune, core.Color) {
	tilt := physics.Tilt(e.VY, g.cfg.Physics.TiltScale)
	switch {
	case tilt < -10:
		return '▲', core.ColorBrightYellow
	case tilt > 35:
		return '▼', core.ColorBrightYellow
	default:
		return '▶', core.ColorBrightYellow
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, minScreenW, minScreenH) {
		return
	}

	g.sheet.DrawWorld(dst, g.world, 0, 0)
	dst.DrawHLine(0, int(g.ground), dst.Width(), groundChar)

	st := g.State()
	render.HUD(dst, st, "")
	msg := render.DefaultMessages("FLAPPY BIRD")
	msg.Start = "Press SPACE to flap"
	render.Overlay(dst, st, msg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.machine.Phase(),
		Score:     g.score,
		HighScore: max(g.high, g.score),
	}
}

// Outcome reports a timed run with no completion condition.
func (g *Game) Outcome() registry.Outcome {
	return registry.Outcome{Timed: true}
}

func init() {
	registry.Register("flappy", func() registry.Game {
		return New()
	})
}
