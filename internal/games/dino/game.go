// Package dino implements a Chrome Dino-style endless runner game.
// The player must jump over obstacles while running automatically.
package dino

import (
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

const (
	kindDino physics.Kind = iota + 1
	kindCactus
	kindBird
)

// Visual characters for rendering
const (
	DinoBody   = '█'
	DinoHead   = '◆'
	DinoLeg1   = '╱'
	DinoLeg2   = '╲'
	GroundChar = '═'
)

const (
	minScreenW = 40
	minScreenH = 12
	milestone  = 100 // Score interval that raises a Scored event
)

var sheet = render.Sheet{
	kindCactus: {Glyph: '▓', Color: core.ColorGreen},
	kindBird:   {Glyph: '≈', Color: core.ColorYellow},
}

// Game implements the Dino Runner game logic.
type Game struct {
	cfg        config.DinoConfig
	difficulty *config.DifficultyManager
	machine    core.Machine

	world     *physics.World
	resolver  *physics.Resolver
	obstacles *ObstacleManager
	dino      *physics.Entity

	groundY  float64 // Row of the ground line
	grounded bool
	ducking  bool
	crashed  bool
	score    int
	high     int
	tick     int
	legFrame int
	tooSmall bool
	events   []core.Event
}

// New creates a new Dino Runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "dino" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Dino Runner" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset initializes the game with the runner standing on the ground.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadDino(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultDinoConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.machine = core.NewMachine()
	g.groundY = float64(runtime.ScreenH - cfg.Player.GroundOffset)
	g.grounded = true
	g.ducking = false
	g.crashed = false
	g.score = 0
	g.tick = 0
	g.legFrame = 0
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.world = physics.NewWorld()
	g.dino = g.world.Spawn(kindDino, core.Body{
		X: float64(cfg.Player.X),
		Y: g.groundY - float64(cfg.Player.Height),
		W: float64(cfg.Player.Width),
		H: float64(cfg.Player.Height),
	})
	g.obstacles = NewObstacleManager(g.world, runtime.Seed, runtime.ScreenW, g.groundY, &g.cfg, g.difficulty)

	g.resolver = physics.NewResolver()
	hit := func(_, _ *physics.Entity) bool {
		g.crashed = true
		return true
	}
	g.resolver.On(kindDino, kindCactus, hit)
	g.resolver.On(kindDino, kindBird, hit)
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
	g.legFrame = (g.legFrame + 1) % 10

	if (in.Has(core.ActionJump) || in.Has(core.ActionUp)) && g.grounded {
		g.stand()
		g.dino.VY = g.cfg.Physics.JumpImpulse
		g.grounded = false
	}

	if g.grounded {
		if in.Has(core.ActionDuck) {
			g.duck()
		} else {
			g.stand()
		}
	} else {
		if in.Has(core.ActionDuck) {
			// Fast fall
			g.dino.VY = max(g.dino.VY, g.cfg.Physics.MaxFallSpeed)
		}
		physics.Fall(&g.dino.Body, g.cfg.Physics.Gravity, g.cfg.Physics.MaxFallSpeed, 1)
		if g.dino.Bottom() >= g.groundY {
			g.dino.Y = g.groundY - g.dino.H
			g.dino.VY = 0
			g.grounded = true
		}
	}

	if err := g.world.Validate(); err != nil {
		g.crash()
		return
	}

	g.obstacles.Update(g.score, g.tick)
	g.world.Sweep()

	g.score++
	if g.score%milestone == 0 {
		g.events = append(g.events, core.EventScored)
	}

	g.resolver.Resolve(g.world.All())
	if g.crashed {
		g.crash()
	}
}

func (g *Game) duck() {
	g.ducking = true
	g.dino.H = float64(g.cfg.Player.DuckHeight)
	g.dino.Y = g.groundY - g.dino.H
}

func (g *Game) stand() {
	g.ducking = false
	g.dino.H = float64(g.cfg.Player.Height)
	if g.grounded {
		g.dino.Y = g.groundY - g.dino.H
	}
}

func (g *Game) crash() {
	g.machine.Transition(core.PhaseGameOver)
	g.events = append(g.events, core.EventGameOver)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, minScreenW, minScreenH) {
		return
	}

	dst.DrawHLine(0, int(g.groundY), dst.Width(), GroundChar)
	sheet.DrawWorld(dst, g.world, 0, 0)
	g.drawDino(dst)

	st := g.State()
	extra := ""
	if g.difficulty.IsEnabled() {
		extra = fmt.Sprintf("Spd: %.1f", g.difficulty.Speed(g.cfg.Physics.BaseSpeed, g.score, g.tick))
	}
	render.HUD(dst, st, extra)

	msg := render.DefaultMessages("DINO RUNNER")
	msg.Start = "SPACE jump  DOWN duck"
	render.Overlay(dst, st, msg)
}

// drawDino renders the runner.
func (g *Game) drawDino(dst *core.Screen) {
	x := int(g.dino.X)
	y := int(g.dino.Y)

	if g.ducking {
		//  ███◆
		dst.Set(x, y, DinoBody)
		dst.Set(x+1, y, DinoBody)
		dst.Set(x+2, y, DinoHead)
		return
	}

	//  ◆█
	// ███
	// ╱╲
	dst.Set(x+1, y, DinoHead)
	dst.Set(x+2, y, DinoBody)

	dst.Set(x, y+1, DinoBody)
	dst.Set(x+1, y+1, DinoBody)
	dst.Set(x+2, y+1, DinoBody)

	switch {
	case !g.grounded:
		dst.Set(x, y+2, DinoLeg1)
		dst.Set(x+1, y+2, DinoLeg2)
	case g.legFrame < 5:
		dst.Set(x, y+2, DinoLeg1)
		dst.Set(x+2, y+2, DinoLeg2)
	default:
		dst.Set(x+1, y+2, DinoLeg1)
		dst.Set(x+2, y+2, DinoLeg2)
	}
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
	registry.Register("dino", func() registry.Game {
		return New()
	})
}
