// Package doodle implements a vertical jumper: the player bounces off
// platforms while the camera follows them upward.
package doodle

import (
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

const (
	kindPlayer physics.Kind = iota + 1
	kindPlatform
)

const (
	minScreenW = 30
	minScreenH = 16
)

var sheet = render.Sheet{
	kindPlayer:   {Glyph: '█', Color: core.ColorBrightYellow},
	kindPlatform: {Vary: platformLook},
}

func platformLook(e *physics.Entity) (rune, core.Color) {
	switch {
	case e.Flags&flagBreaking != 0:
		return '┄', core.ColorOrange
	case e.Flags&flagMoving != 0:
		return '▬', core.ColorBrightCyan
	default:
		return '▬', core.ColorGreen
	}
}

// Game implements the Doodle Jump game logic.
type Game struct {
	cfg     config.DoodleConfig
	diff    *config.DifficultyManager
	machine core.Machine

	world     *physics.World
	resolver  *physics.Resolver
	platforms *PlatformManager
	player    *physics.Entity

	screenW  float64
	screenH  float64
	camY     float64 // World Y of screen row 0
	startY   float64
	lastFoot float64 // Player bottom before this tick's move
	score    int
	high     int
	tick     int
	tooSmall bool
	events   []core.Event
}

// New creates a new Doodle Jump game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "doodle" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Doodle Jump" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset puts the player on the base platform with a screen of platforms
// above.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadDoodle(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultDoodleConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.diff = config.NewDifficultyManager(cfg.Difficulty)
	g.machine = core.NewMachine()
	g.screenW = float64(runtime.ScreenW)
	g.screenH = float64(runtime.ScreenH)
	g.camY = 0
	g.score = 0
	g.tick = 0
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.world = physics.NewWorld()
	pw, ph := float64(cfg.Player.Width), float64(cfg.Player.Height)
	g.player = g.world.Spawn(kindPlayer, core.Body{W: pw, H: ph})

	g.platforms = NewPlatformManager(g.world, runtime.Seed, &g.cfg, g.diff, runtime.ScreenW)
	base := g.platforms.Base(g.screenH - 3)
	g.player.X = base.CenterX() - pw/2
	g.player.Y = base.Y - ph
	g.startY = g.player.Y
	g.platforms.Fill(g.camY-g.screenH, 0, 0)

	g.resolver = physics.NewResolver()
	g.resolver.On(kindPlayer, kindPlatform, g.land)
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
			g.player.VY = g.cfg.Physics.BounceImpulse
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

	g.player.VX = float64(in.Horizontal()) * g.cfg.Physics.MoveSpeed
	g.player.X += g.player.VX
	physics.WrapX(&g.player.Body, 0, g.screenW)

	g.lastFoot = g.player.Bottom()
	physics.Fall(&g.player.Body, g.cfg.Physics.Gravity, g.cfg.Physics.MaxFallSpeed, 1)

	if err := g.world.Validate(); err != nil {
		g.gameOver()
		return
	}

	g.platforms.Update(g.camY + g.screenH)
	g.world.Sweep()
	g.resolver.Resolve(g.world.All())
	g.world.Sweep()

	// Camera follows the player once they climb into the top third.
	if limit := g.camY + g.screenH/3; g.player.Y < limit {
		g.camY -= limit - g.player.Y
	}

	if h := int(g.startY - g.player.Y); h > g.score {
		g.score = h
		g.events = append(g.events, core.EventScored)
	}
	g.platforms.Fill(g.camY-g.screenH, g.score, g.tick)

	if g.player.Y > g.camY+g.screenH {
		g.gameOver()
	}
}

// land bounces a falling player whose feet crossed the platform top this
// tick. Breaking platforms crumble instead.
func (g *Game) land(player, plat *physics.Entity) bool {
	if player.VY <= 0 || g.lastFoot > plat.Y {
		return false
	}
	if plat.Flags&flagBreaking != 0 {
		plat.Alive = false
		return true
	}
	player.Y = plat.Y - player.H
	player.VY = g.cfg.Physics.BounceImpulse
	return true
}

func (g *Game) gameOver() {
	g.machine.Transition(core.PhaseGameOver)
	g.events = append(g.events, core.EventGameOver)
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, minScreenW, minScreenH) {
		return
	}

	// Platforms first so the player stays on top.
	g.world.Each(kindPlatform, func(e *physics.Entity) {
		sheet.DrawOffset(dst, e, 0, -g.camY)
	})
	sheet.DrawOffset(dst, g.player, 0, -g.camY)

	st := g.State()
	render.HUD(dst, st, "")
	msg := render.DefaultMessages("DOODLE JUMP")
	msg.Start = "SPACE start  LEFT/RIGHT move"
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
	registry.Register("doodle", func() registry.Game {
		return New()
	})
}
