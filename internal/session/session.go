// Package session runs one game for one player: it injects the stored high
// score, reports the final score exactly once, and restarts by building a
// fresh game instance.
package session

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/score"
)

// Options configures a session.
type Options struct {
	Config     core.RuntimeConfig
	UserID     string          // Scores are only reported when set
	HighScores score.KV        // Defaults to an in-memory store
	Reporter   *score.Reporter // Nil disables reporting
	Logger     *log.Logger
	Now        func() time.Time
	NextSeed   func() int64 // Seeds every instance after the first; nil reuses Config.Seed
}

// Session owns the current game instance.
type Session struct {
	opts    Options
	factory registry.Factory
	game    registry.Game

	id       string
	high     int
	reported bool
	played   int // Ticks spent in the Playing phase
	last     core.StepResult
}

// New creates a session and its first game instance.
func New(factory registry.Factory, opts Options) *Session {
	if opts.HighScores == nil {
		opts.HighScores = score.NewMemoryKV()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config.TickRate <= 0 {
		opts.Config.TickRate = core.DefaultConfig().TickRate
	}

	s := &Session{opts: opts, factory: factory}
	s.start()
	return s
}

// start builds and resets a new instance. The old one, if any, is dropped
// and never stepped again.
func (s *Session) start() {
	if s.game != nil && s.opts.NextSeed != nil {
		s.opts.Config.Seed = s.opts.NextSeed()
	}
	s.game = s.factory()
	s.game.Reset(s.opts.Config)

	s.id = uuid.NewString()
	s.reported = false
	s.played = 0

	high, ok, err := s.opts.HighScores.Get(s.game.ID())
	switch {
	case err != nil:
		s.opts.Logger.Warn("high score unavailable", "game", s.game.ID(), "err", err)
	case ok:
		s.high = max(s.high, high)
	}
	if hs, ok := s.game.(registry.HighScoreSetter); ok {
		hs.SetHighScore(s.high)
	}

	s.last = core.StepResult{State: s.State()}
	s.opts.Logger.Debug("session started", "game", s.game.ID(), "session", s.id)
}

// ID returns the identifier of the current instance's session.
func (s *Session) ID() string { return s.id }

// Game returns the current game instance.
func (s *Session) Game() registry.Game { return s.game }

// Config returns the runtime configuration games are reset with.
func (s *Session) Config() core.RuntimeConfig { return s.opts.Config }

// Reporter returns the reporter scores are handed to, or nil.
func (s *Session) Reporter() *score.Reporter { return s.opts.Reporter }

// HighScore returns the best known score for the game.
func (s *Session) HighScore() int { return s.high }

// Reported reports whether the current instance's score was handed off.
func (s *Session) Reported() bool { return s.reported }

// Last returns the result of the most recent tick.
func (s *Session) Last() core.StepResult { return s.last }

// State returns the game's state with the session's high score.
func (s *Session) State() core.GameState {
	st := s.game.State()
	st.HighScore = max(st.HighScore, s.high)
	return st
}

// Restart replaces the current instance with a new one. Only the high
// score carries over.
func (s *Session) Restart() {
	s.start()
}

// Resize changes the screen size new instances are reset with. A game that
// has not started yet is rebuilt right away so its layout fits; a running
// game keeps its field and draws into the resized screen. It reports
// whether the instance was replaced.
func (s *Session) Resize(w, h int) bool {
	s.opts.Config.ScreenW, s.opts.Config.ScreenH = w, h
	if s.game.State().Phase != core.PhaseReady {
		return false
	}
	s.start()
	return true
}

// Step advances the game one tick. A Restart action after game over starts
// a new instance instead.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && s.game.State().GameOver() {
		s.Restart()
		return s.last
	}

	res := s.game.Step(in)
	if res.State.Phase == core.PhasePlaying {
		s.played++
	}
	if res.State.GameOver() && !s.reported {
		s.finish(res.State)
	}

	res.State.HighScore = max(res.State.HighScore, s.high)
	s.last = res
	return res
}

// Render draws the current instance.
func (s *Session) Render(dst *core.Screen) {
	s.game.Render(dst)
}

// finish stores a beaten high score and reports the final score. It runs
// once per instance.
func (s *Session) finish(st core.GameState) {
	s.reported = true
	gameID := s.game.ID()

	if st.Score > s.high {
		s.high = st.Score
		if err := s.opts.HighScores.Set(gameID, st.Score); err != nil {
			s.opts.Logger.Error("cannot store high score", "game", gameID, "err", err)
		}
		if hs, ok := s.game.(registry.HighScoreSetter); ok {
			hs.SetHighScore(s.high)
		}
	}

	if s.opts.UserID == "" || s.opts.Reporter == nil {
		s.opts.Logger.Debug("score not reported", "game", gameID, "score", st.Score, "user", s.opts.UserID)
		return
	}
	s.opts.Reporter.Report(s.record(st))
}

func (s *Session) record(st core.GameState) score.Record {
	rec := score.Record{
		ID:         s.id,
		UserID:     s.opts.UserID,
		GameName:   s.game.ID(),
		Score:      st.Score,
		Difficulty: s.opts.Config.Difficulty,
		CreatedAt:  s.opts.Now(),
	}
	if or, ok := s.game.(registry.OutcomeReporter); ok {
		out := or.Outcome()
		rec.Moves = out.Moves
		rec.Completed = out.Completed
		if out.Timed {
			secs := float64(s.played) / float64(s.opts.Config.TickRate)
			rec.TimeTaken = score.Durationp(time.Duration(secs * float64(time.Second)))
		}
	}
	return rec
}
