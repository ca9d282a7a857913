// Package tictactoe implements rounds of Tic-Tac-Toe against the computer.
package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

// Cell layout in screen cells
const (
	cellW = 5
	cellH = 3
)

// Game implements Tic-Tac-Toe.
type Game struct {
	cfg     config.TicTacToeConfig
	rng     *rand.Rand
	machine core.Machine
	next    core.Timer

	board  Board
	cursor int
	round  int // 0-based
	result string

	wins, losses, draws int
	moves               int
	score               int
	high                int
	events              []core.Event

	screenW, screenH int
}

// New creates a new Tic-Tac-Toe instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "tictactoe" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Tic-Tac-Toe" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset starts the first round on an empty board.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadTicTacToe(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultTicTacToeConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.machine = core.NewMachine()
	g.next.Cancel()
	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH
	g.wins, g.losses, g.draws = 0, 0, 0
	g.moves, g.score = 0, 0
	g.startRound(0)
}

// startRound clears the board. The CPU opens every second round.
func (g *Game) startRound(i int) {
	g.round = i
	g.board = Board{}
	g.cursor = 4
	g.result = ""
	if i%2 == 1 {
		g.board[g.board.CPUMove(O, g.cfg.CPUSkill, g.rng)] = O
	}
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
	col := core.Clamp(g.cursor%3+in.Horizontal(), 0, 2)
	row := core.Clamp(g.cursor/3+in.Vertical(), 0, 2)
	g.cursor = row*3 + col

	pick := -1
	switch {
	case in.Choice >= 1 && in.Choice <= 9:
		pick = in.Choice - 1
	case in.Pointer != nil:
		if i, ok := g.cellAt(in.Pointer.X, in.Pointer.Y); ok {
			pick = i
		}
	case in.Has(core.ActionConfirm) || in.Has(core.ActionJump):
		pick = g.cursor
	}
	if pick < 0 || g.board[pick] != Empty {
		return
	}

	g.cursor = pick
	g.board[pick] = X
	g.moves++
	if g.finished() {
		return
	}

	g.board[g.board.CPUMove(O, g.cfg.CPUSkill, g.rng)] = O
	g.finished()
}

// finished scores a decided board and ends the round.
func (g *Game) finished() bool {
	switch w := g.board.Winner(); {
	case w == X:
		g.wins++
		g.award(g.cfg.WinPoints)
		g.result = "You win!"
	case w == O:
		g.losses++
		g.result = "CPU wins"
	case g.board.Full():
		g.draws++
		g.award(g.cfg.DrawPoints)
		g.result = "Draw"
	default:
		return false
	}

	g.machine.Transition(core.PhaseLevelComplete)
	g.events = append(g.events, core.EventLevelComplete)
	g.next.Start(g.cfg.RoundDelay)
	return true
}

func (g *Game) award(points int) {
	if points <= 0 {
		return
	}
	g.score += points
	g.events = append(g.events, core.EventScored)
}

func (g *Game) advance() {
	if g.round+1 >= g.cfg.Rounds {
		g.machine.Transition(core.PhaseGameOver)
		g.events = append(g.events, core.EventGameOver)
		return
	}
	g.startRound(g.round + 1)
	g.machine.Transition(core.PhasePlaying)
}

func (g *Game) origin(screenW, screenH int) (int, int) {
	return (screenW - 3*cellW - 2) / 2, max((screenH-3*cellH-2)/2, 2)
}

// cellAt maps a screen cell to a board index.
func (g *Game) cellAt(x, y int) (int, bool) {
	ox, oy := g.origin(g.screenW, g.screenH)
	x, y = x-ox, y-oy
	if x < 0 || y < 0 {
		return 0, false
	}
	col, row := x/(cellW+1), y/(cellH+1)
	if col > 2 || row > 2 || x%(cellW+1) == cellW || y%(cellH+1) == cellH {
		return 0, false
	}
	return row*3 + col, true
}

// Render draws the board, the score line and round results.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, 3*cellW+4, 3*cellH+6) {
		return
	}
	ox, oy := g.origin(dst.Width(), dst.Height())

	for i := 1; i < 3; i++ {
		dst.DrawHLine(ox, oy+i*(cellH+1)-1, 3*cellW+2, '─')
		dst.DrawVLine(ox+i*(cellW+1)-1, oy, 3*cellH+2, '│')
	}
	for i := 1; i < 3; i++ {
		for j := 1; j < 3; j++ {
			dst.Set(ox+i*(cellW+1)-1, oy+j*(cellH+1)-1, '┼')
		}
	}

	for i, m := range g.board {
		x := ox + (i%3)*(cellW+1) + cellW/2
		y := oy + (i/3)*(cellH+1) + cellH/2
		color := core.ColorBrightCyan
		if m == O {
			color = core.ColorBrightRed
		}
		switch {
		case m != Empty:
			dst.SetColored(x, y, m.rune(), color)
		case i == g.cursor && g.machine.Is(core.PhasePlaying):
			dst.SetColored(x, y, '·', core.ColorBrightMagenta)
		}
	}

	st := g.State()
	render.HUD(dst, st, fmt.Sprintf("W %d  L %d  D %d", g.wins, g.losses, g.draws))
	dst.DrawTextCentered(dst.Height()-1, "ARROWS move  ENTER place  1-9 cell")

	msg := render.DefaultMessages("TIC-TAC-TOE")
	msg.Start = "You are X. Press ENTER"
	msg.Level = g.result + "  (round %d)"
	render.Overlay(dst, st, msg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.machine.Phase(),
		Score:     g.score,
		Level:     g.round + 1,
		HighScore: max(g.high, g.score),
	}
}

// Outcome reports the player's moves and whether they won more rounds
// than they lost.
func (g *Game) Outcome() registry.Outcome {
	moves := g.moves
	return registry.Outcome{Moves: &moves, Completed: g.wins > g.losses}
}

func init() {
	registry.Register("tictactoe", func() registry.Game {
		return New()
	})
}
