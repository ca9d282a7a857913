// Package pinpoint implements a category guessing game: clue words are
// revealed one at a time and fewer clues mean more points.
package pinpoint

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/render"
)

const (
	minScreenW = 40
	minScreenH = 16
	maxGuess   = 40 // Runes
)

// Award returns the points for a correct guess with the given number of
// words revealed. A hint costs one word's worth; the award never goes
// negative.
func Award(perWord, revealed int, hinted bool) int {
	points := perWord * (WordsPerSet + 1 - revealed)
	if hinted {
		points -= perWord
	}
	return max(points, 0)
}

// Game implements Pinpoint.
type Game struct {
	cfg     config.PinpointConfig
	runtime core.RuntimeConfig
	machine core.Machine
	next    core.Timer

	sets    []WordSet // Sets for this session, in play order
	loadErr error

	round    int // Index into sets
	revealed int // Clue words shown, 1..WordsPerSet
	hinted   bool
	input    []rune
	feedback string

	score   int
	high    int
	guesses int
	solved  int
	events  []core.Event
}

// New creates a new Pinpoint instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "pinpoint" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Pinpoint" }

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(v int) { g.high = v }

// AcceptsText reports whether typed letters are part of the guess.
func (g *Game) AcceptsText() bool {
	return g.machine.Is(core.PhasePlaying)
}

// Reset loads the word sets and picks this session's rounds.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadPinpoint(runtime.ConfigPath)
	if err != nil {
		cfg = config.DefaultPinpointConfig()
	}
	if runtime.Difficulty != "" {
		cfg.ApplyPreset(config.Preset(runtime.Difficulty))
	}

	g.cfg = cfg
	g.runtime = runtime
	g.machine = core.NewMachine()
	g.next.Cancel()
	g.score = 0
	g.guesses = 0
	g.solved = 0
	g.loadSets()
}

// loadSets picks the session's word sets. On failure the game stays in
// Ready showing the error until a retry succeeds.
func (g *Game) loadSets() {
	sets, err := LoadWordSets(g.cfg.WordsFile)
	g.loadErr = err
	if err != nil {
		g.sets = nil
		return
	}

	rng := rand.New(rand.NewSource(g.runtime.Seed))
	rng.Shuffle(len(sets), func(i, j int) { sets[i], sets[j] = sets[j], sets[i] })
	g.sets = sets[:min(g.cfg.Rounds, len(sets))]
	g.startRound(0)
}

func (g *Game) startRound(i int) {
	g.round = i
	g.revealed = 1
	g.hinted = false
	g.input = g.input[:0]
	g.feedback = ""
}

func (g *Game) current() WordSet {
	return g.sets[g.round]
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	switch g.machine.Phase() {
	case core.PhaseReady:
		if len(g.sets) == 0 {
			if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
				g.loadSets()
			}
			break
		}
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
		if g.next.Tick() || in.Has(core.ActionConfirm) {
			g.next.Cancel()
			g.advance()
		}
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

func (g *Game) update(in core.InputFrame) {
	for _, r := range in.Runes {
		if len(g.input) >= maxGuess {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '\'' {
			g.input = append(g.input, r)
		}
	}
	if in.Has(core.ActionErase) && len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
	if in.Has(core.ActionHint) && !g.hinted {
		g.hinted = true
		g.feedback = fmt.Sprintf("Hint: starts with %q", firstRune(g.current().Category))
	}
	if in.Has(core.ActionConfirm) {
		g.submit(string(g.input))
		g.input = g.input[:0]
	}
}

func (g *Game) submit(guess string) {
	if strings.TrimSpace(guess) == "" {
		return
	}
	g.guesses++

	set := g.current()
	switch {
	case set.Matches(guess):
		points := Award(g.cfg.PerWord(), g.revealed, g.hinted)
		g.score += points
		g.solved++
		g.events = append(g.events, core.EventScored)
		g.feedback = fmt.Sprintf("Correct! %s (+%d)", set.Category, points)
		g.endRound()
	case g.revealed < WordsPerSet:
		g.revealed++
		g.feedback = fmt.Sprintf("Not %q. Another clue...", strings.TrimSpace(guess))
	default:
		g.feedback = fmt.Sprintf("The answer was %s", set.Category)
		g.endRound()
	}
}

func (g *Game) endRound() {
	g.machine.Transition(core.PhaseLevelComplete)
	g.events = append(g.events, core.EventLevelComplete)
	g.next.Start(g.cfg.NextDelay)
}

func (g *Game) advance() {
	if g.round+1 >= len(g.sets) {
		g.machine.Transition(core.PhaseGameOver)
		g.events = append(g.events, core.EventGameOver)
		return
	}
	g.startRound(g.round + 1)
	g.machine.Transition(core.PhasePlaying)
}

func firstRune(s string) rune {
	for _, r := range s {
		return unicode.ToUpper(r)
	}
	return '?'
}

// Render draws the clues, the guess line and feedback.
func (g *Game) Render(dst *core.Screen) {
	if render.TooSmall(dst, minScreenW, minScreenH) {
		return
	}

	st := g.State()
	if len(g.sets) == 0 {
		render.HUD(dst, st, "")
		render.Box(dst, "Nothing to play", errorLine(g.loadErr), "R retry  Q quit")
		return
	}

	render.HUD(dst, st, fmt.Sprintf("Round %d/%d", g.round+1, len(g.sets)))

	over := st.Phase == core.PhaseLevelComplete || st.Phase == core.PhaseGameOver
	category := "Category: ?"
	if over {
		category = "Category: " + g.current().Category
	}
	dst.DrawText(2, 2, category)
	dst.DrawTextColored(2, 3, g.feedback, core.ColorBrightYellow)

	for i, word := range g.current().Words {
		line := fmt.Sprintf("%d. %s", i+1, strings.Repeat("·", len([]rune(word))))
		color := core.ColorGray
		if i < g.revealed || over {
			line = fmt.Sprintf("%d. %s", i+1, word)
			color = core.ColorBrightWhite
		}
		dst.DrawTextColored(4, 5+i, line, color)
	}

	dst.DrawText(2, 11, "> "+string(g.input)+"_")
	dst.DrawTextColored(2, dst.Height()-1, "ENTER guess  ? hint  BKSP erase  ESC pause", core.ColorGray)

	msg := render.DefaultMessages("PINPOINT")
	msg.Start = "Press ENTER to start"
	msg.Level = "ROUND %d OVER"
	render.Overlay(dst, st, msg)
}

func errorLine(err error) string {
	if err == nil {
		return "No word sets"
	}
	return err.Error()
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

// Outcome reports guesses made and whether every round was solved.
func (g *Game) Outcome() registry.Outcome {
	guesses := g.guesses
	return registry.Outcome{
		Moves:     &guesses,
		Completed: len(g.sets) > 0 && g.solved == len(g.sets),
		Timed:     true,
	}
}

func init() {
	registry.Register("pinpoint", func() registry.Game {
		return New()
	})
}
