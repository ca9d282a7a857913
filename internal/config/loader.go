package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// load reads a game config. Search order: customPath -> ~/.arcade/configs/<name>.yaml
// -> ./configs/<name>.yaml -> embedded default -> hard-coded default.
// Files are decoded on top of the hard-coded default, so they only need the
// keys they change. Only an explicit customPath can produce an error; broken
// files found along the search order are skipped.
func load[T validator](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	if customPath != "" {
		cfg, err := readFile(ExpandPath(customPath), fallback)
		if err != nil {
			return fallback(), err
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath(name + ".yaml"),
		filepath.Join("configs", name+".yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if cfg, err := readFile(path, fallback); err == nil {
			return cfg, nil
		}
	}

	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil || cfg.Validate() != nil {
		return fallback(), nil
	}
	return cfg, nil
}

func readFile[T validator](path string, fallback func() T) (T, error) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadBreakout loads the Breakout configuration.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	return load("breakout", customPath, defaultBreakoutYAML, DefaultBreakoutConfig)
}

// LoadFlappy loads the Flappy Bird configuration.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	return load("flappy", customPath, defaultFlappyYAML, DefaultFlappyConfig)
}

// LoadDino loads the Dino Runner configuration.
func LoadDino(customPath string) (DinoConfig, error) {
	return load("dino", customPath, defaultDinoYAML, DefaultDinoConfig)
}

// LoadDoodle loads the Doodle Jump configuration.
func LoadDoodle(customPath string) (DoodleConfig, error) {
	return load("doodle", customPath, defaultDoodleYAML, DefaultDoodleConfig)
}

// LoadPinpoint loads the Pinpoint configuration.
func LoadPinpoint(customPath string) (PinpointConfig, error) {
	return load("pinpoint", customPath, defaultPinpointYAML, DefaultPinpointConfig)
}

// LoadMemory loads the Memory configuration.
func LoadMemory(customPath string) (MemoryConfig, error) {
	return load("memory", customPath, defaultMemoryYAML, DefaultMemoryConfig)
}

// LoadTicTacToe loads the Tic-Tac-Toe configuration.
func LoadTicTacToe(customPath string) (TicTacToeConfig, error) {
	return load("tictactoe", customPath, defaultTicTacToeYAML, DefaultTicTacToeConfig)
}

// LoadTango loads the Tango configuration.
func LoadTango(customPath string) (TangoConfig, error) {
	return load("tango", customPath, defaultTangoYAML, DefaultTangoConfig)
}

// LoadRPS loads the Rock Paper Scissors configuration.
func LoadRPS(customPath string) (RPSConfig, error) {
	return load("rps", customPath, defaultRPSYAML, DefaultRPSConfig)
}

// Preset resolves the difficulty requested for a run. An unknown name falls
// back to normal; callers that want to reject it use ParsePreset first.
func Preset(name string) DifficultyPreset {
	p, err := ParsePreset(name)
	if err != nil {
		return DifficultyNormal
	}
	return p
}
