// Package memory implements a pairs matching game on a grid of face-down
// cards.
package memory

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

// Card layout in cells
const (
	cardW = 5
	cardH = 3
	gapX  = 1
	gapY  = 1
)

// Card is one grid position.
type Card struct {
	Symbol  rune
	FaceUp  bool
	Matched bool
}

// Game implements Memory.
type Game struct {
	cfg     config.MemoryConfig
	machine core.Machine
	hide    core.Timer // Flips a mismatched pair back

	cards   []Card
	first   int // Index of the first card of a pair, -1 if none
	pending [2]int
	cursor  int

	moves   int
	matched int
	score   int
	high    int
	events  []core.Event

	screenW, screenH int
}

// New creates a new Memory instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "memory" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Memory Match" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset deals a shuffled grid face down.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadMemory(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultMemoryConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.machine = core.NewMachine()
	g.hide.Cancel()
	g.screenW, g.screenH = runtime.ScreenW, runtime.ScreenH
	g.first = -1
	g.cursor = 0
	g.moves, g.matched, g.score = 0, 0, 0

	n := cfg.Cols * cfg.Rows
	g.cards = make([]Card, n)
	for i := range n {
		g.cards[i].Symbol = rune('A' + i/2)
	}
	rng := rand.New(rand.NewSource(runtime.Seed))
	rng.Shuffle(n, func(i, j int) { g.cards[i], g.cards[j] = g.cards[j], g.cards[i] })
}

// Pairs returns the number of pairs on the board.
func (g *Game) Pairs() int {
	return len(g.cards) / 2
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	switch g.machine.Phase() {
	case core.PhaseReady:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || in.Pointer != nil {
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

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) update(in core.InputFrame) {
	if g.hide.Tick() {
		g.flipBack()
	}

	g.moveCursor(in.Horizontal(), in.Vertical())

	pick := -1
	if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
		pick = g.cursor
	}
	if in.Pointer != nil {
		if i, ok := g.cardAt(in.Pointer.X, in.Pointer.Y); ok {
			g.cursor = i
			pick = i
		}
	}
	if pick >= 0 {
		g.flip(pick)
	}
}

func (g *Game) moveCursor(dx, dy int) {
	col := core.Clamp(g.cursor%g.cfg.Cols+dx, 0, g.cfg.Cols-1)
	row := core.Clamp(g.cursor/g.cfg.Cols+dy, 0, g.cfg.Rows-1)
	g.cursor = row*g.cfg.Cols + col
}

// flip turns a card face up. Flipping while a mismatch is showing hides
// the pair at once.
func (g *Game) flip(i int) {
	if g.hide.Active() {
		g.hide.Cancel()
		g.flipBack()
	}

	c := &g.cards[i]
	if c.FaceUp || c.Matched {
		return
	}
	c.FaceUp = true

	if g.first < 0 {
		g.first = i
		return
	}

	a, b := g.first, i
	g.first = -1
	g.moves++

	if g.cards[a].Symbol != g.cards[b].Symbol {
		g.pending = [2]int{a, b}
		g.hide.Start(g.cfg.MismatchDelay)
		return
	}

	g.cards[a].Matched, g.cards[b].Matched = true, true
	g.matched++
	g.score += g.cfg.PairPoints
	g.events = append(g.events, core.EventScored)

	if g.matched == g.Pairs() {
		// Bonus for every move under two per pair.
		g.score += max(2*g.Pairs()-g.moves, 0) * g.cfg.MoveBonus
		g.machine.Transition(core.PhaseGameOver)
		g.events = append(g.events, core.EventGameOver)
	}
}

func (g *Game) flipBack() {
	for _, i := range g.pending {
		g.cards[i].FaceUp = false
	}
}

// origin returns the top-left cell of the grid, centered below the HUD.
func (g *Game) origin(screenW, screenH int) (int, int) {
	w := g.cfg.Cols*(cardW+gapX) - gapX
	h := g.cfg.Rows*(cardH+gapY) - gapY
	return max((screenW-w)/2, 0), max((screenH-h)/2, 2)
}

// cardAt maps a screen cell to a card index.
func (g *Game) cardAt(x, y int) (int, bool) {
	ox, oy := g.origin(g.screenW, g.screenH)
	x, y = x-ox, y-oy
	if x < 0 || y < 0 {
		return 0, false
	}
	col, row := x/(cardW+gapX), y/(cardH+gapY)
	if col >= g.cfg.Cols || row >= g.cfg.Rows || x%(cardW+gapX) >= cardW || y%(cardH+gapY) >= cardH {
		return 0, false
	}
	return row*g.cfg.Cols + col, true
}

// Render draws the grid with the cursor highlighted.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, g.cfg.Cols*(cardW+gapX)+2, g.cfg.Rows*(cardH+gapY)+3) {
		return
	}
	ox, oy := g.origin(dst.Width(), dst.Height())

	for i, c := range g.cards {
		x := ox + (i%g.cfg.Cols)*(cardW+gapX)
		y := oy + (i/g.cfg.Cols)*(cardH+gapY)

		face, color := '?', core.ColorBlue
		switch {
		case c.Matched:
			face, color = c.Symbol, core.ColorGreen
		case c.FaceUp:
			face, color = c.Symbol, core.ColorBrightYellow
		}
		if i == g.cursor && g.machine.Is(core.PhasePlaying) {
			color = core.ColorBrightMagenta
		}

		r := core.NewRect(x, y, cardW, cardH)
		dst.DrawRectColored(r, ' ', color)
		dst.DrawBox(r)
		dst.SetColored(x+cardW/2, y+cardH/2, face, color)
	}

	st := g.State()
	render.HUD(dst, st, fmt.Sprintf("Moves: %d  Pairs: %d/%d", g.moves, g.matched, g.Pairs()))

	msg := render.DefaultMessages("MEMORY MATCH")
	msg.Start = "ENTER or click to start"
	msg.GameOver = "ALL PAIRS FOUND"
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

// Outcome reports the moves made and whether the board was cleared.
func (g *Game) Outcome() registry.Outcome {
	moves := g.moves
	return registry.Outcome{Moves: &moves, Completed: g.matched == g.Pairs(), Timed: true}
}

func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
}
