// Package rps implements Rock Paper Scissors against the computer.
package rps

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

// Hand is one throw.
type Hand int

const (
	Rock Hand = iota
	Paper
	Scissors
)

var handNames = [...]string{"Rock", "Paper", "Scissors"}

func (h Hand) String() string { return handNames[h] }

// Beats reports whether h wins against o.
func (h Hand) Beats(o Hand) bool {
	return (h+3-o)%3 == 1
}

// Choice box width on screen
const (
	boxW   = 12
	boxGap = 2
)

// Game implements Rock Paper Scissors.
type Game struct {
	cfg     config.RPSConfig
	rng     *rand.Rand
	machine core.Machine
	next    core.Timer

	cursor     Hand
	player     Hand
	cpu        Hand
	result     string
	wins, cpus int
	rounds     int

	score  int
	high   int
	events []core.Event

	screenW, screenH int
}

// New creates a new Rock Paper Scissors instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "rps" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Rock Paper Scissors" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadRPS(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultRPSConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.machine = core.NewMachine()
	g.next.Cancel()
	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH
	g.cursor = Rock
	g.result = ""
	g.wins, g.cpus, g.rounds, g.score = 0, 0, 0, 0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	switch g.machine.Phase() {
	case core.PhaseReady:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
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
	case core.PhaseLevelComplete:
		if g.next.Tick() {
			g.advance()
		}
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) update(in core.InputFrame) {
	g.cursor = Hand(core.Clamp(int(g.cursor)+in.Horizontal(), 0, 2))

	switch {
	case in.Choice >= 1 && in.Choice <= 3:
		g.throw(Hand(in.Choice - 1))
	case in.Pointer != nil:
		if h, ok := g.handAt(in.Pointer.X, in.Pointer.Y); ok {
			g.throw(h)
		}
	case in.Has(core.ActionConfirm) || in.Has(core.ActionJump):
		g.throw(g.cursor)
	}
}

// throw plays one round against a random CPU hand.
func (g *Game) throw(h Hand) {
	g.cursor = h
	g.player = h
	g.cpu = Hand(g.rng.Intn(3))
	g.rounds++

	switch {
	case h.Beats(g.cpu):
		g.wins++
		g.score += g.cfg.WinPoints
		g.result = fmt.Sprintf("%s beats %s", h, g.cpu)
		g.events = append(g.events, core.EventScored)
	case g.cpu.Beats(h):
		g.cpus++
		g.result = fmt.Sprintf("%s beats %s", g.cpu, h)
	default:
		g.result = "Tie"
	}

	g.machine.Transition(core.PhaseLevelComplete)
	g.events = append(g.events, core.EventLevelComplete)
	g.next.Start(g.cfg.RoundDelay)
}

func (g *Game) advance() {
	if g.wins >= g.cfg.WinsNeeded || g.cpus >= g.cfg.WinsNeeded {
		g.machine.Transition(core.PhaseGameOver)
		g.events = append(g.events, core.EventGameOver)
		return
	}
	g.machine.Transition(core.PhasePlaying)
}

func (g *Game) origin(screenW, screenH int) (int, int) {
	return (screenW - 3*boxW - 2*boxGap) / 2, max(screenH/2-1, 2)
}

// handAt maps a screen cell to the choice box under it.
func (g *Game) handAt(x, y int) (Hand, bool) {
	ox, oy := g.origin(g.screenW, g.screenH)
	x, y = x-ox, y-oy
	if x < 0 || y < 0 || y >= 3 || x%(boxW+boxGap) >= boxW {
		return 0, false
	}
	i := x / (boxW + boxGap)
	if i > 2 {
		return 0, false
	}
	return Hand(i), true
}

// Render draws the three choices, the last throw and the match score.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, 3*boxW+2*boxGap+2, 10) {
		return
	}
	ox, oy := g.origin(dst.Width(), dst.Height())
	st := g.State()

	for i, name := range handNames {
		x := ox + i*(boxW+boxGap)
		color := core.ColorWhite
		if Hand(i) == g.cursor && st.Phase == core.PhasePlaying {
			color = core.ColorBrightMagenta
		}
		r := core.NewRect(x, oy, boxW, 3)
		dst.DrawBox(r)
		label := fmt.Sprintf("%d %s", i+1, name)
		dst.DrawTextColored(x+(boxW-len(label))/2, oy+1, label, color)
	}

	if g.rounds > 0 {
		dst.DrawTextCentered(oy-2, fmt.Sprintf("You: %s   CPU: %s", g.player, g.cpu))
	}

	render.HUD(dst, st, fmt.Sprintf("You %d  CPU %d  (first to %d)", g.wins, g.cpus, g.cfg.WinsNeeded))
	dst.DrawTextCentered(dst.Height()-1, "1-3 throw  ARROWS pick  ENTER throw")

	msg := render.DefaultMessages("ROCK PAPER SCISSORS")
	msg.Start = "Press ENTER to play"
	msg.Level = g.result + "  (round %d)"
	if g.wins >= g.cfg.WinsNeeded {
		msg.GameOver = "YOU WIN THE MATCH"
	} else {
		msg.GameOver = "CPU WINS THE MATCH"
	}
	render.Overlay(dst, st, msg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.machine.Phase(),
		Score:     g.score,
		Level:     g.rounds,
		HighScore: max(g.high, g.score),
	}
}

// Outcome reports the throws made and whether the player took the match.
func (g *Game) Outcome() registry.Outcome {
	moves := g.rounds
	return registry.Outcome{Moves: &moves, Completed: g.wins >= g.cfg.WinsNeeded}
}

func init() {
	registry.Register("rps", func() registry.Game {
		return New()
	})
}
