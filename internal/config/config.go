// Package config loads per-game YAML configuration and the difficulty
// presets shared by every game in the portal.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// DifficultyConfig defines how a game ramps up during a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset is a named difficulty level chosen by the player.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a name to a preset. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, name)
	}
}

// InitialLevelForPreset returns the starting difficulty level for a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

func (d *DifficultyConfig) applyPreset(preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}

// BreakoutConfig configures Breakout.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics holds speeds in cells per tick.
type BreakoutPhysics struct {
	BallSpeed       float64 `yaml:"ball_speed"`
	MaxBallSpeed    float64 `yaml:"max_ball_speed"`
	PaddleSpeed     float64 `yaml:"paddle_speed"`
	MaxBounceAngle  float64 `yaml:"max_bounce_angle"`   // Degrees from vertical at the paddle edge
	SpeedUpPerCycle float64 `yaml:"speed_up_per_cycle"` // Added to ball speed each time the levels wrap
}

// BreakoutPaddle sizes the paddle.
type BreakoutPaddle struct {
	Width int `yaml:"width"`
}

// BreakoutGameplay holds lives and timings in ticks.
type BreakoutGameplay struct {
	Lives        int `yaml:"lives"`
	RestartDelay int `yaml:"restart_delay"` // Pause after a lost ball before relaunch
	LevelDelay   int `yaml:"level_delay"`   // Time spent in LevelComplete
	BrickWidth   int `yaml:"brick_width"`
}

// Validate rejects settings the game cannot run with.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Physics.BallSpeed <= 0:
		return fmt.Errorf("%w: breakout ball_speed must be positive", ErrInvalid)
	case c.Paddle.Width < 2:
		return fmt.Errorf("%w: breakout paddle width must be at least 2", ErrInvalid)
	case c.Gameplay.Lives < 1:
		return fmt.Errorf("%w: breakout needs at least one life", ErrInvalid)
	case c.Gameplay.BrickWidth < 1:
		return fmt.Errorf("%w: breakout brick_width must be positive", ErrInvalid)
	}
	return nil
}

// ApplyPreset adjusts lives, paddle and speed for a preset.
func (c *BreakoutConfig) ApplyPreset(preset DifficultyPreset) {
	c.Difficulty.applyPreset(preset)
	switch preset {
	case DifficultyEasy:
		c.Gameplay.Lives = 5
		c.Paddle.Width = 10
		c.Physics.BallSpeed *= 0.8
	case DifficultyHard:
		c.Gameplay.Lives = 2
		c.Paddle.Width = 6
		c.Physics.BallSpeed *= 1.3
	}
}

// FlappyConfig configures Flappy Bird.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics holds per-tick physics constants.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
	TiltScale    float64 `yaml:"tilt_scale"` // Degrees of tilt per unit of vertical speed
}

// FlappyObstacles sizes and spaces the pipes.
type FlappyObstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// FlappyPlayer places and sizes the bird.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate rejects settings the game cannot run with.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: flappy gravity must be positive", ErrInvalid)
	case c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: flappy jump_impulse must be negative", ErrInvalid)
	case c.Obstacles.MinGapSize < 2 || c.Obstacles.MaxGapSize < c.Obstacles.MinGapSize:
		return fmt.Errorf("%w: flappy gap sizes %d..%d", ErrInvalid, c.Obstacles.MinGapSize, c.Obstacles.MaxGapSize)
	case c.Obstacles.PipeWidth < 1 || c.Obstacles.PipeSpacing <= c.Obstacles.PipeWidth:
		return fmt.Errorf("%w: flappy pipes overlap", ErrInvalid)
	}
	return nil
}

// ApplyPreset sets the starting difficulty.
func (c *FlappyConfig) ApplyPreset(preset DifficultyPreset) {
	c.Difficulty.applyPreset(preset)
}

// DinoConfig configures Dino Runner.
type DinoConfig struct {
	Physics    DinoPhysics      `yaml:"physics"`
	Obstacles  DinoObstacles    `yaml:"obstacles"`
	Player     DinoPlayer       `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DinoPhysics holds per-tick physics constants.
type DinoPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// DinoObstacles sizes and spaces cacti and birds.
type DinoObstacles struct {
	MinWidth     int     `yaml:"min_width"`
	MaxWidth     int     `yaml:"max_width"`
	MinHeight    int     `yaml:"min_height"`
	MaxHeight    int     `yaml:"max_height"`
	MinSpacing   int     `yaml:"min_spacing"`
	MaxSpacing   int     `yaml:"max_spacing"`
	BirdChance   float64 `yaml:"bird_chance"`    // Probability an obstacle is a bird
	BirdMinScore int     `yaml:"bird_min_score"` // Birds only appear after this score
}

// DinoPlayer places and sizes the runner.
type DinoPlayer struct {
	X            int `yaml:"x"`
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	DuckHeight   int `yaml:"duck_height"`
	GroundOffset int `yaml:"ground_offset"`
}

// Validate rejects settings the game cannot run with.
func (c DinoConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0 || c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("%w: dino needs positive gravity and a negative jump impulse", ErrInvalid)
	case c.Player.DuckHeight < 1 || c.Player.DuckHeight > c.Player.Height:
		return fmt.Errorf("%w: dino duck_height must be in 1..height", ErrInvalid)
	case c.Obstacles.MinSpacing < 1 || c.Obstacles.MaxSpacing < c.Obstacles.MinSpacing:
		return fmt.Errorf("%w: dino obstacle spacing %d..%d", ErrInvalid, c.Obstacles.MinSpacing, c.Obstacles.MaxSpacing)
	}
	return nil
}

// ApplyPreset sets the starting difficulty.
func (c *DinoConfig) ApplyPreset(preset DifficultyPreset) {
	c.Difficulty.applyPreset(preset)
}

// DoodleConfig configures Doodle Jump.
type DoodleConfig struct {
	Physics    DoodlePhysics    `yaml:"physics"`
	Platforms  DoodlePlatforms  `yaml:"platforms"`
	Player     DoodlePlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DoodlePhysics holds per-tick physics constants.
type DoodlePhysics struct {
	Gravity       float64 `yaml:"gravity"`
	BounceImpulse float64 `yaml:"bounce_impulse"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	MoveSpeed     float64 `yaml:"move_speed"`
}

// DoodlePlatforms controls platform generation.
type DoodlePlatforms struct {
	Width          int     `yaml:"width"`
	MinGap         int     `yaml:"min_gap"`
	MaxGap         int     `yaml:"max_gap"`
	MovingChance   float64 `yaml:"moving_chance"`
	BreakingChance float64 `yaml:"breaking_chance"`
	MovingSpeed    float64 `yaml:"moving_speed"`
}

// DoodlePlayer sizes the jumper.
type DoodlePlayer struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Validate rejects settings the game cannot run with.
func (c DoodleConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0 || c.Physics.BounceImpulse >= 0:
		return fmt.Errorf("%w: doodle needs positive gravity and a negative bounce impulse", ErrInvalid)
	case c.Platforms.Width < 1:
		return fmt.Errorf("%w: doodle platform width must be positive", ErrInvalid)
	case c.Platforms.MinGap < 1 || c.Platforms.MaxGap < c.Platforms.MinGap:
		return fmt.Errorf("%w: doodle platform gap %d..%d", ErrInvalid, c.Platforms.MinGap, c.Platforms.MaxGap)
	}
	return nil
}

// ApplyPreset sets the starting difficulty and platform mix.
func (c *DoodleConfig) ApplyPreset(preset DifficultyPreset) {
	c.Difficulty.applyPreset(preset)
	switch preset {
	case DifficultyEasy:
		c.Platforms.BreakingChance = 0
		c.Platforms.Width += 2
	case DifficultyHard:
		c.Platforms.BreakingChance *= 2
		c.Platforms.MovingChance *= 1.5
	}
}

// PinpointConfig configures Pinpoint.
type PinpointConfig struct {
	Scoring   PinpointScoring `yaml:"scoring"`
	Tier      string          `yaml:"tier"`       // easy, medium or hard
	Rounds    int             `yaml:"rounds"`     // Word sets per session
	WordsFile string          `yaml:"words_file"` // Optional YAML file replacing the built-in sets
	NextDelay int             `yaml:"next_delay"` // Ticks between solved sets
}

// PinpointScoring holds points per unrevealed word for each tier.
type PinpointScoring struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

// PerWord returns the points per word for the configured tier.
func (c PinpointConfig) PerWord() int {
	switch c.Tier {
	case "easy":
		return c.Scoring.Easy
	case "hard":
		return c.Scoring.Hard
	default:
		return c.Scoring.Medium
	}
}

// Validate rejects settings the game cannot run with.
func (c PinpointConfig) Validate() error {
	switch c.Tier {
	case "easy", "medium", "hard":
	default:
		return fmt.Errorf("%w: pinpoint tier %q", ErrInvalid, c.Tier)
	}
	if c.PerWord() <= 0 {
		return fmt.Errorf("%w: pinpoint points per word must be positive", ErrInvalid)
	}
	if c.Rounds < 1 {
		return fmt.Errorf("%w: pinpoint needs at least one round", ErrInvalid)
	}
	return nil
}

// ApplyPreset maps easy/normal/hard to the word tiers; fixed keeps the file value.
func (c *PinpointConfig) ApplyPreset(preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		c.Tier = "easy"
	case DifficultyNormal:
		c.Tier = "medium"
	case DifficultyHard:
		c.Tier = "hard"
	}
}

// MemoryConfig configures Memory.
type MemoryConfig struct {
	Cols          int `yaml:"cols"`
	Rows          int `yaml:"rows"`
	MismatchDelay int `yaml:"mismatch_delay"` // Ticks both cards stay face up
	PairPoints    int `yaml:"pair_points"`
	MoveBonus     int `yaml:"move_bonus"` // Points per move saved below the par on completion
}

// Validate rejects settings the game cannot run with.
func (c MemoryConfig) Validate() error {
	if c.Cols < 2 || c.Rows < 1 || (c.Cols*c.Rows)%2 != 0 {
		return fmt.Errorf("%w: memory grid %dx%d needs an even number of cards", ErrInvalid, c.Cols, c.Rows)
	}
	if c.Cols*c.Rows/2 > 26 {
		return fmt.Errorf("%w: memory grid %dx%d has more pairs than symbols", ErrInvalid, c.Cols, c.Rows)
	}
	return nil
}

// ApplyPreset changes the grid size.
func (c *MemoryConfig) ApplyPreset(preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		c.Cols, c.Rows = 4, 3
	case DifficultyHard:
		c.Cols, c.Rows = 6, 4
	}
}

// TicTacToeConfig configures Tic-Tac-Toe.
type TicTacToeConfig struct {
	Rounds     int     `yaml:"rounds"`
	RoundDelay int     `yaml:"round_delay"`
	WinPoints  int     `yaml:"win_points"`
	DrawPoints int     `yaml:"draw_points"`
	CPUSkill   float64 `yaml:"cpu_skill"` // Probability the CPU plays its best move
}

// Validate rejects settings the game cannot run with.
func (c TicTacToeConfig) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: tictactoe needs at least one round", ErrInvalid)
	}
	if c.CPUSkill < 0 || c.CPUSkill > 1 {
		return fmt.Errorf("%w: tictactoe cpu_skill %v outside 0..1", ErrInvalid, c.CPUSkill)
	}
	return nil
}

// ApplyPreset changes how often the CPU plays its best move.
func (c *TicTacToeConfig) ApplyPreset(preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		c.CPUSkill = 0.4
	case DifficultyNormal:
		c.CPUSkill = 0.75
	case DifficultyHard:
		c.CPUSkill = 1
	}
}

// TangoConfig configures Tango.
type TangoConfig struct {
	PuzzlesFile string `yaml:"puzzles_file"` // Optional YAML file replacing the built-in puzzles
	BasePoints  int    `yaml:"base_points"`
	MinPoints   int    `yaml:"min_points"`
	NextDelay   int    `yaml:"next_delay"`
}

// Validate rejects settings the game cannot run with.
func (c TangoConfig) Validate() error {
	if c.BasePoints < c.MinPoints || c.MinPoints < 0 {
		return fmt.Errorf("%w: tango points %d..%d", ErrInvalid, c.MinPoints, c.BasePoints)
	}
	return nil
}

// ApplyPreset scales the points on offer.
func (c *TangoConfig) ApplyPreset(preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		c.BasePoints /= 2
	case DifficultyHard:
		c.BasePoints *= 2
	}
	c.MinPoints = min(c.MinPoints, c.BasePoints)
}

// RPSConfig configures Rock Paper Scissors.
type RPSConfig struct {
	WinsNeeded int `yaml:"wins_needed"`
	RoundDelay int `yaml:"round_delay"`
	WinPoints  int `yaml:"win_points"`
}

// Validate rejects settings the game cannot run with.
func (c RPSConfig) Validate() error {
	if c.WinsNeeded < 1 {
		return fmt.Errorf("%w: rps wins_needed must be positive", ErrInvalid)
	}
	return nil
}

// ApplyPreset changes the match length.
func (c *RPSConfig) ApplyPreset(preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		c.WinsNeeded = 2
	case DifficultyHard:
		c.WinsNeeded = 5
	}
}
