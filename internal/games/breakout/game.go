package breakout

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

// Entity kinds
const (
	kindPaddle physics.Kind = iota + 1
	kindBall
	kindBrick
)

// Brick flags
const flagSolid = 1

// Layout
const (
	fieldTop     = 2 // Rows 0-1 hold the HUD
	brickTop     = 3
	minScreenW   = 40
	minScreenH   = 16
	launchSpread = math.Pi / 6 // Max launch angle from vertical
)

var sheet = render.Sheet{
	kindPaddle: {Glyph: '=', Color: core.ColorBrightCyan},
	kindBall:   {Glyph: '●', Color: core.ColorBrightWhite},
	kindBrick:  {Vary: brickLook},
}

func brickLook(e *physics.Entity) (rune, core.Color) {
	if e.Flags&flagSolid != 0 {
		return '█', core.ColorGray
	}
	switch {
	case e.HP >= 3:
		return '▓', core.ColorRed
	case e.HP == 2:
		return '▒', core.ColorOrange
	default:
		return '░', core.ColorGreen
	}
}

// Game implements the Breakout game logic.
type Game struct {
	cfg     config.BreakoutConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	diff    *config.DifficultyManager
	machine core.Machine

	world    *physics.World
	resolver *physics.Resolver
	paddle   *physics.Entity
	ball     *physics.Entity
	field    core.Box

	score      int
	lives      int
	high       int
	levelIndex int // Keeps counting when the levels wrap around
	tick       int
	speed      float64 // Current ball speed in cells per tick
	served     bool    // Ball is in flight
	tooSmall   bool

	restart core.Timer // Delay before relaunching the ball
	advance core.Timer // Delay in LevelComplete

	events []core.Event
}

// New creates a new Breakout game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "breakout" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Breakout" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset prepares a new game in the Ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBreakout(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.diff = config.NewDifficultyManager(cfg.Difficulty)
	g.machine = core.NewMachine()

	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.levelIndex = 0
	g.tick = 0
	g.restart.Cancel()
	g.advance.Cancel()

	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH
	g.field = core.Box{X: 0, Y: fieldTop, W: float64(runtime.ScreenW), H: float64(runtime.ScreenH - fieldTop)}

	g.world = physics.NewWorld()
	g.resolver = physics.NewResolver()
	g.resolver.On(kindBall, kindPaddle, g.hitPaddle)
	g.resolver.On(kindBall, kindBrick, g.hitBrick)

	g.loadLevel()
}

// loadLevel rebuilds the world for the current level with the ball parked
// on a centered paddle.
func (g *Game) loadLevel() {
	lvl := GetLevel(g.levelIndex)
	g.world.Clear()

	g.paddle = g.world.Spawn(kindPaddle, core.Body{W: float64(g.cfg.Paddle.Width), H: 1})
	g.homePaddle()
	g.ball = g.world.Spawn(kindBall, core.Body{W: 1, H: 1})

	brickW := min(g.cfg.Gameplay.BrickWidth, max(1, int(g.field.W)/max(lvl.Width, 1)))
	offset := (int(g.field.W) - brickW*lvl.Width) / 2
	for _, b := range lvl.Bricks {
		e := g.world.Spawn(kindBrick, core.Body{
			X: float64(offset + b.Col*brickW),
			Y: float64(brickTop + b.Row),
			W: float64(brickW),
			H: 1,
		})
		e.HP = b.HP
		if b.Solid {
			e.Flags |= flagSolid
		}
	}

	g.speed = g.ballSpeed()
	g.parkBall()
}

// ballSpeed is the configured speed, raised per completed cycle of levels
// and by difficulty, capped at the maximum.
func (g *Game) ballSpeed() float64 {
	cycle := g.levelIndex / LevelCount()
	base := g.cfg.Physics.BallSpeed + float64(cycle)*g.cfg.Physics.SpeedUpPerCycle
	return min(g.diff.Speed(base, g.score, g.tick), g.cfg.Physics.MaxBallSpeed)
}

// homePaddle centers the paddle above the floor.
func (g *Game) homePaddle() {
	g.paddle.X = math.Floor((g.field.W - g.paddle.W) / 2)
	g.paddle.Y = g.field.Bottom() - 2
}

func (g *Game) parkBall() {
	g.ball.X = g.paddle.CenterX() - g.ball.W/2
	g.ball.Y = g.paddle.Y - g.ball.H
	g.ball.VX, g.ball.VY = 0, 0
	g.served = false
}

func (g *Game) launch() {
	angle := (g.rng.Float64()*2 - 1) * launchSpread
	g.ball.VX = g.speed * math.Sin(angle)
	g.ball.VY = -g.speed * math.Cos(angle)
	g.served = true
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
			g.launch()
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
	case core.PhaseLevelComplete:
		if g.advance.Tick() {
			g.nextLevel()
		}
	}

	return g.result()
}

func (g *Game) update(in core.InputFrame) {
	g.tick++
	g.movePaddle(in.Horizontal())

	if !g.served {
		g.parkBall()
		if g.restart.Tick() {
			g.launch()
		}
		return
	}

	physics.Integrate(&g.ball.Body, 1)
	if err := g.world.Validate(); err != nil {
		// Broken state ends the tick untouched; the ball is served again.
		g.parkBall()
		g.restart.Start(g.cfg.Gameplay.RestartDelay)
		return
	}

	if physics.BounceInside(&g.ball.Body, g.field) == physics.SideBottom {
		g.loseLife()
		return
	}

	g.resolver.Resolve(g.world.All())
	g.world.Sweep()

	if g.remaining() == 0 {
		g.machine.Transition(core.PhaseLevelComplete)
		g.advance.Start(g.cfg.Gameplay.LevelDelay)
		g.events = append(g.events, core.EventLevelComplete)
	}
}

func (g *Game) movePaddle(dir int) {
	if dir == 0 {
		return
	}
	g.paddle.X += float64(dir) * g.cfg.Physics.PaddleSpeed
	physics.ClampX(&g.paddle.Body, g.field.X, g.field.Right())
}

// hitPaddle sends a falling ball back up. The angle depends on where it
// struck the paddle.
func (g *Game) hitPaddle(ball, paddle *physics.Entity) bool {
	if ball.VY <= 0 {
		return false
	}
	physics.PaddleBounce(&ball.Body, paddle.Box(), g.cfg.Physics.MaxBounceAngle*math.Pi/180)
	return true
}

// hitBrick reflects the ball and damages the brick. A ball responds to at
// most one brick per tick.
func (g *Game) hitBrick(ball, brick *physics.Entity) bool {
	if ball.Mark == g.tick {
		return false
	}
	ball.Mark = g.tick
	physics.Deflect(&ball.Body, brick.Box())

	if brick.Flags&flagSolid != 0 {
		return true
	}

	level := g.levelIndex + 1
	brick.HP--
	if brick.HP > 0 {
		g.addScore(level)
		return true
	}

	brick.Alive = false
	g.addScore(10 * level)

	// Difficulty follows the score; keep the direction, change the pace.
	g.speed = g.ballSpeed()
	if cur := physics.Speed(&ball.Body); cur > 0 {
		ball.VX *= g.speed / cur
		ball.VY *= g.speed / cur
	}
	return true
}

func (g *Game) addScore(points int) {
	g.score += points
	g.events = append(g.events, core.EventScored)
}

func (g *Game) loseLife() {
	g.lives--
	g.events = append(g.events, core.EventLifeLost)

	if g.lives <= 0 {
		g.lives = 0
		g.machine.Transition(core.PhaseGameOver)
		g.events = append(g.events, core.EventGameOver)
		return
	}

	g.homePaddle()
	g.parkBall()
	g.restart.Start(g.cfg.Gameplay.RestartDelay)
}

func (g *Game) nextLevel() {
	g.levelIndex++
	g.loadLevel()
	g.machine.Transition(core.PhasePlaying)
	g.restart.Start(g.cfg.Gameplay.RestartDelay)
}

// remaining counts bricks that can still be destroyed.
func (g *Game) remaining() int {
	n := 0
	g.world.Each(kindBrick, func(e *physics.Entity) {
		if e.Flags&flagSolid == 0 {
			n++
		}
	})
	return n
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// Render draws the current game state.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, minScreenW, minScreenH) {
		return
	}

	st := g.State()
	render.HUD(dst, st, "")
	dst.DrawHLine(0, 1, dst.Width(), '─')
	sheet.DrawWorld(dst, g.world, 0, 0)

	if st.Phase == core.PhasePlaying && g.restart.Active() {
		dst.DrawTextCentered(dst.Height()-1, "Get ready...")
	}

	msg := render.DefaultMessages("BREAKOUT")
	msg.Start = "Press SPACE to launch"
	render.Overlay(dst, st, msg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.machine.Phase(),
		Score:     g.score,
		Lives:     g.lives,
		Level:     g.levelIndex + 1,
		HighScore: max(g.high, g.score),
	}
}

// Outcome reports whether every built-in level was cleared.
func (g *Game) Outcome() registry.Outcome {
	return registry.Outcome{Completed: g.levelIndex >= LevelCount(), Timed: true}
}

func init() {
	registry.Register("breakout", func() registry.Game { return New() })
}
