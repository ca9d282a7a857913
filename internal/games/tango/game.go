// Package tango implements a sun and moon logic puzzle on a 6x6 grid.
package tango

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

// Cell pitch on screen: "[S]=" per column, symbol row then relation row.
const (
	pitchX = 4
	pitchY = 2
)

// Game implements Tango.
type Game struct {
	cfg     config.TangoConfig
	runtime core.RuntimeConfig
	machine core.Machine
	next    core.Timer

	puzzles []Puzzle
	loadErr error
	index   int
	grid    Grid
	cursor  int
	ticks   int // Playing ticks spent on the current puzzle
	hints   int

	moves  int
	solved int
	score  int
	high   int
	events []core.Event
}

// New creates a new Tango instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "tango" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Tango" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// Reset loads the puzzles and shows the first one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadTango(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultTangoConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.runtime = runtime
	g.machine = core.NewMachine()
	g.next.Cancel()
	g.moves, g.solved, g.score = 0, 0, 0
	g.loadPuzzles()
}

func (g *Game) loadPuzzles() {
	puzzles, err := LoadPuzzles(g.cfg.PuzzlesFile)
	g.loadErr = err
	if err != nil {
		g.puzzles = nil
		return
	}
	rng := rand.New(rand.NewSource(g.runtime.Seed))
	rng.Shuffle(len(puzzles), func(i, j int) { puzzles[i], puzzles[j] = puzzles[j], puzzles[i] })
	g.puzzles = puzzles
	g.startPuzzle(0)
}

func (g *Game) startPuzzle(i int) {
	g.index = i
	g.grid = g.puzzles[i].Givens
	g.cursor = 0
	g.ticks = 0
	g.hints = 0
}

func (g *Game) current() *Puzzle {
	return &g.puzzles[g.index]
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	switch g.machine.Phase() {
	case core.PhaseReady:
		if len(g.puzzles) == 0 {
			if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
				g.loadPuzzles()
			}
			break
		}
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
	case core.PhaseLevelComplete:
		if g.next.Tick() {
			g.advance()
		}
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) update(in core.InputFrame) {
	g.ticks++

	col := core.Clamp(g.cursor%Size+in.Horizontal(), 0, Size-1)
	row := core.Clamp(g.cursor/Size+in.Vertical(), 0, Size-1)
	g.cursor = row*Size + col

	switch {
	case in.Pointer != nil:
		if i, ok := g.cellAt(in.Pointer.X, in.Pointer.Y); ok {
			g.cursor = i
			g.cycle(i)
		}
	case in.Has(core.ActionConfirm) || in.Has(core.ActionJump):
		g.cycle(g.cursor)
	case in.Has(core.ActionErase):
		g.set(g.cursor, Blank)
	case in.Has(core.ActionHint):
		g.hint()
	}

	if Solved(&g.grid, g.current().Relations) {
		g.finish()
	}
}

// cycle turns a cell blank -> sun -> moon -> blank.
func (g *Game) cycle(i int) {
	g.set(i, (g.grid[i]+1)%3)
}

func (g *Game) set(i int, c Cell) {
	if g.current().Givens[i] != Blank || g.grid[i] == c {
		return
	}
	g.grid[i] = c
	g.moves++
}

// hint fixes the first cell that differs from the known solution.
func (g *Game) hint() {
	sol := g.current().Solution
	if sol == nil {
		return
	}
	for i, c := range sol {
		if g.grid[i] != c {
			g.grid[i] = c
			g.cursor = i
			g.hints++
			return
		}
	}
}

// Points returns the award for solving a puzzle after the given number of
// seconds and hints.
func (g *Game) Points(seconds, hints int) int {
	return max(g.cfg.BasePoints-seconds-hints*g.cfg.MinPoints, g.cfg.MinPoints)
}

func (g *Game) finish() {
	rate := max(g.runtime.TickRate, 1)
	g.score += g.Points(g.ticks/rate, g.hints)
	g.solved++
	g.events = append(g.events, core.EventScored, core.EventLevelComplete)
	g.machine.Transition(core.PhaseLevelComplete)
	g.next.Start(g.cfg.NextDelay)
}

func (g *Game) advance() {
	if g.index+1 >= len(g.puzzles) {
		g.machine.Transition(core.PhaseGameOver)
		g.events = append(g.events, core.EventGameOver)
		return
	}
	g.startPuzzle(g.index + 1)
	g.machine.Transition(core.PhasePlaying)
}

func (g *Game) origin(screenW, screenH int) (int, int) {
	return (screenW - Size*pitchX) / 2, max((screenH-Size*pitchY)/2, 2)
}

// cellAt maps a screen cell to a grid index.
func (g *Game) cellAt(x, y int) (int, bool) {
	ox, oy := g.origin(g.runtime.ScreenW, g.runtime.ScreenH)
	x, y = x-ox, y-oy
	if x < 0 || y < 0 || y%pitchY != 0 || x%pitchX == pitchX-1 {
		return 0, false
	}
	col, row := x/pitchX, y/pitchY
	if col >= Size || row >= Size {
		return 0, false
	}
	return row*Size + col, true
}

// Render draws the grid, relations and rule violations.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, Size*pitchX+2, Size*pitchY+4) {
		return
	}

	st := g.State()
	if len(g.puzzles) == 0 {
		render.HUD(dst, st, "")
		msg := "No puzzles"
		if g.loadErr != nil {
			msg = g.loadErr.Error()
		}
		render.Box(dst, "Nothing to play", msg, "R retry  Q quit")
		return
	}

	p := g.current()
	bad := Violations(&g.grid, p.Relations)
	ox, oy := g.origin(dst.Width(), dst.Height())

	for i, c := range g.grid {
		x := ox + (i%Size)*pitchX
		y := oy + (i/Size)*pitchY

		glyph, color := '·', core.ColorGray
		switch c {
		case Sun:
			glyph, color = 'S', core.ColorBrightYellow
		case Moon:
			glyph, color = 'M', core.ColorBrightBlue
		}
		if p.Givens[i] != Blank {
			color = core.ColorBrightWhite
		}
		if bad[i] {
			color = core.ColorBrightRed
		}
		dst.SetColored(x+1, y, glyph, color)

		if i == g.cursor && st.Phase == core.PhasePlaying {
			dst.SetColored(x, y, '[', core.ColorBrightMagenta)
			dst.SetColored(x+2, y, ']', core.ColorBrightMagenta)
		}
	}

	for _, r := range p.Relations {
		mark := 'x'
		if r.Same {
			mark = '='
		}
		x := ox + (r.A%Size)*pitchX
		y := oy + (r.A/Size)*pitchY
		if r.B == r.A+1 {
			dst.SetColored(x+3, y, mark, core.ColorCyan)
		} else {
			dst.SetColored(x+1, y+1, mark, core.ColorCyan)
		}
	}

	render.HUD(dst, st, fmt.Sprintf("%s  %ds", p.Name, g.ticks/max(g.runtime.TickRate, 1)))
	dst.DrawTextCentered(dst.Height()-1, "ENTER cycle  BKSP clear  ? hint")

	msg := render.DefaultMessages("TANGO")
	msg.Start = "Three suns, three moons per line"
	msg.Level = "PUZZLE %d SOLVED"
	render.Overlay(dst, st, msg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:     g.machine.Phase(),
		Score:     g.score,
		Level:     g.index + 1,
		HighScore: max(g.high, g.score),
	}
}

// Outcome reports the moves made and whether every puzzle was solved.
func (g *Game) Outcome() registry.Outcome {
	moves := g.moves
	return registry.Outcome{Moves: &moves, Completed: len(g.puzzles) > 0 && g.solved == len(g.puzzles), Timed: true}
}

func init() {
	registry.Register("tango", func() registry.Game {
		return New()
	})
}
