// Package registry keeps the factories of every game in the portal.
// Games register themselves in init() functions, so the platform can list
// and start them without importing each one by name.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

// ErrUnknownGame is returned when no factory is registered under an ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is the contract every mini-game implements. Games hold pure logic
// with no terminal dependency; the platform maps input, schedules ticks and
// presents the screen.
type Game interface {
	// ID returns the stable identifier used on the command line and as the
	// score/high-score key (e.g. "flappy", "breakout").
	ID() string

	// Title returns the display name.
	Title() string

	// Reset prepares a fresh round in the Ready phase. It is called once on a
	// new instance; restarting after game over builds a new instance.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick: input, physics, collisions, state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a cleared screen. It must not
	// change the game.
	Render(dst *core.Screen)

	// State returns the externally visible state.
	State() core.GameState
}

// HighScoreSetter is implemented by games that show the stored best score.
type HighScoreSetter interface {
	SetHighScore(v int)
}

// Outcome is what a finished game reports beyond its score.
type Outcome struct {
	Moves     *int // Moves made, for games that count them
	Completed bool // The player cleared the content instead of losing
	Timed     bool // Time taken is meaningful for this game
}

// OutcomeReporter is implemented by games with more to report than a score.
type OutcomeReporter interface {
	Outcome() Outcome
}

// TextEntry is implemented by games that read typed text. While it reports
// true the platform sends letter keys as runes instead of actions.
type TextEntry interface {
	AcceptsText() bool
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new, not yet reset, game instance.
type Factory func() Game

// Registry maps game IDs to factories. The zero value is not usable; call New.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	titles    map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		titles:    make(map[string]string),
	}
}

// Register adds a factory. It panics on a duplicate ID, which is always a
// programming error in an init() function.
func (r *Registry) Register(id string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	r.factories[id] = f
	r.titles[id] = f().Title()
}

// List returns every registered game sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.factories))
	for id := range r.factories {
		result = append(result, GameInfo{ID: id, Title: r.titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Factory returns the factory registered under id.
func (r *Registry) Factory(id string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return f, nil
}

// Create builds a new instance of the game registered under id.
func (r *Registry) Create(id string) (Game, error) {
	f, err := r.Factory(id)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[id]
	return ok
}

var std = New()

// Default returns the process-wide registry games register into.
func Default() *Registry { return std }

// Register adds a factory to the default registry.
func Register(id string, f Factory) { std.Register(id, f) }

// List returns the games in the default registry.
func List() []GameInfo { return std.List() }

// Create builds a game from the default registry.
func Create(id string) (Game, error) { return std.Create(id) }

// Lookup returns a factory from the default registry.
func Lookup(id string) (Factory, error) { return std.Factory(id) }

// Exists reports whether the default registry knows id.
func Exists(id string) bool { return std.Exists(id) }
