package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

//go:embed defaults/doodle.yaml
var defaultDoodleYAML []byte

//go:embed defaults/pinpoint.yaml
var defaultPinpointYAML []byte

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

//go:embed defaults/tictactoe.yaml
var defaultTicTacToeYAML []byte

//go:embed defaults/tango.yaml
var defaultTangoYAML []byte

//go:embed defaults/rps.yaml
var defaultRPSYAML []byte

// DefaultBreakoutConfig returns the built-in Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BallSpeed:       0.35,
			MaxBallSpeed:    1.0,
			PaddleSpeed:     1.5,
			MaxBounceAngle:  60,
			SpeedUpPerCycle: 0.05,
		},
		Paddle: BreakoutPaddle{Width: 8},
		Gameplay: BreakoutGameplay{
			Lives:        3,
			RestartDelay: 60,
			LevelDelay:   90,
			BrickWidth:   6,
		},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultFlappyConfig returns the built-in Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.25,
			JumpImpulse:  -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
			TiltScale:    20,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    5,
			PipeSpacing:  40,
			MinGapSize:   8,
			MaxGapSize:   12,
			TopMargin:    3,
			BottomMargin: 3,
		},
		Player: FlappyPlayer{X: 10, Width: 2, Height: 2},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 50},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     4,
				SpacingReduction: 15,
			},
		},
	}
}

// DefaultDinoConfig returns the built-in Dino Runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Physics: DinoPhysics{
			Gravity:      0.3,
			JumpImpulse:  -2.5,
			MaxFallSpeed: 4.0,
			BaseSpeed:    0.5,
		},
		Obstacles: DinoObstacles{
			MinWidth:     1,
			MaxWidth:     3,
			MinHeight:    2,
			MaxHeight:    4,
			MinSpacing:   30,
			MaxSpacing:   50,
			BirdChance:   0.25,
			BirdMinScore: 300,
		},
		Player: DinoPlayer{X: 8, Width: 3, Height: 3, DuckHeight: 1, GroundOffset: 2},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 2000},
			Scaling:     ScalingConfig{SpeedMultiplier: 2.0, SpacingReduction: 20},
		},
	}
}

// DefaultDoodleConfig returns the built-in Doodle Jump configuration.
func DefaultDoodleConfig() DoodleConfig {
	return DoodleConfig{
		Physics: DoodlePhysics{
			Gravity:       0.12,
			BounceImpulse: -1.9,
			MaxFallSpeed:  1.5,
			MoveSpeed:     1.2,
		},
		Platforms: DoodlePlatforms{
			Width:          7,
			MinGap:         2,
			MaxGap:         5,
			MovingChance:   0.15,
			BreakingChance: 0.1,
			MovingSpeed:    0.3,
		},
		Player: DoodlePlayer{Width: 3, Height: 2},
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 1500},
			Scaling:     ScalingConfig{GapReduction: 3},
		},
	}
}

// DefaultPinpointConfig returns the built-in Pinpoint configuration.
func DefaultPinpointConfig() PinpointConfig {
	return PinpointConfig{
		Scoring:   PinpointScoring{Easy: 5, Medium: 10, Hard: 15},
		Tier:      "medium",
		Rounds:    3,
		NextDelay: 90,
	}
}

// DefaultMemoryConfig returns the built-in Memory configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Cols:          4,
		Rows:          4,
		MismatchDelay: 45,
		PairPoints:    10,
		MoveBonus:     5,
	}
}

// DefaultTicTacToeConfig returns the built-in Tic-Tac-Toe configuration.
func DefaultTicTacToeConfig() TicTacToeConfig {
	return TicTacToeConfig{
		Rounds:     5,
		RoundDelay: 60,
		WinPoints:  10,
		DrawPoints: 3,
		CPUSkill:   0.75,
	}
}

// DefaultTangoConfig returns the built-in Tango configuration.
func DefaultTangoConfig() TangoConfig {
	return TangoConfig{
		BasePoints: 300,
		MinPoints:  20,
		NextDelay:  90,
	}
}

// DefaultRPSConfig returns the built-in Rock Paper Scissors configuration.
func DefaultRPSConfig() RPSConfig {
	return RPSConfig{
		WinsNeeded: 3,
		RoundDelay: 45,
		WinPoints:  10,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "breakout":
		return defaultBreakoutYAML
	case "flappy":
		return defaultFlappyYAML
	case "dino":
		return defaultDinoYAML
	case "doodle":
		return defaultDoodleYAML
	case "pinpoint":
		return defaultPinpointYAML
	case "memory":
		return defaultMemoryYAML
	case "tictactoe":
		return defaultTicTacToeYAML
	case "tango":
		return defaultTangoYAML
	case "rps":
		return defaultRPSYAML
	default:
		return nil
	}
}
