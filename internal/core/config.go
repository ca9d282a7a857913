package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Simulation ticks per second (default 60)
	Seed       int64  // RNG seed for deterministic gameplay
	ConfigPath string // Custom game config YAML, empty for the search order
	Difficulty string // Preset name: easy, normal, hard, fixed (empty = config default)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the externally visible state of a game instance.
type GameState struct {
	Phase     Phase
	Score     int
	Lives     int
	Level     int
	HighScore int
}

// GameOver reports whether the instance has finished.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Paused reports whether the instance is paused.
func (s GameState) Paused() bool {
	return s.Phase == PhasePaused
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventNone Event = iota
	EventStarted
	EventScored
	EventLifeLost
	EventLevelComplete
	EventGameOver
)

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the tick produced the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
