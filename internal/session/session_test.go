package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/score"
)

// countdown is Playing from the first tick and ends after n ticks with a
// score equal to the ticks played.
type countdown struct {
	n      int
	state  core.GameState
	high   int
	resets int
}

func (g *countdown) ID() string { return "countdown" }
func (g *countdown) Title() string { return "Countdown" }

func (g *countdown) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Phase: core.PhaseReady, Level: 1, Lives: 1}
}

func (g *countdown) Step(core.InputFrame) core.StepResult {
	if g.state.GameOver() {
		return core.StepResult{State: g.State()}
	}
	g.state.Phase = core.PhasePlaying
	g.state.Score++
	if g.state.Score >= g.n {
		g.state.Phase = core.PhaseGameOver
	}
	return core.StepResult{State: g.State()}
}

func (g *countdown) Render(*core.Screen) {}

func (g *countdown) State() core.GameState {
	st := g.state
	st.HighScore = g.high
	return st
}

func (g *countdown) SetHighScore(v int) { g.high = v }

func (g *countdown) Outcome() registry.Outcome {
	return registry.Outcome{Moves: score.Intp(g.state.Score), Completed: true, Timed: true}
}

type memRecorder struct {
	mu      sync.Mutex
	records []score.Record
}

func (m *memRecorder) SaveRecord(_ context.Context, r score.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *memRecorder) all() []score.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]score.Record(nil), m.records...)
}

type failingKV struct{}

func (failingKV) Get(string) (int, bool, error) { return 0, false, errors.New("down") }
func (failingKV) Set(string, int) error { return errors.New("down") }

func quiet() *log.Logger { return log.New(io.Discard) }

func newTestSession(n int, user string, kv score.KV, rec score.Recorder) (*Session, *score.Reporter) {
	reporter := score.NewReporter(rec, quiet())
	cfg := core.DefaultConfig()
	cfg.TickRate = 10
	cfg.Difficulty = "hard"
	s := New(func() registry.Game { return &countdown{n: n} }, Options{
		Config:     cfg,
		UserID:     user,
		HighScores: kv,
		Reporter:   reporter,
		Logger:     quiet(),
	})
	return s, reporter
}

func run(s *Session, ticks int) {
	for range ticks {
		s.Step(core.NewInputFrame())
	}
}

func TestReportsOnceAtGameOver(t *testing.T) {
	rec := &memRecorder{}
	s, reporter := newTestSession(3, "ana", score.NewMemoryKV(), rec)

	run(s, 10)
	reporter.Wait()

	got := rec.all()
	if len(got) != 1 {
		t.Fatalf("reported %d times, expected once", len(got))
	}
	r := got[0]
	if r.Score != 3 || r.UserID != "ana" || r.GameName != "countdown" || r.Difficulty != "hard" {
		t.Errorf("unexpected record %+v", r)
	}
	if r.ID != s.ID() {
		t.Error("record ID should be the session ID")
	}
	if !r.Completed || r.Moves == nil || *r.Moves != 3 {
		t.Errorf("outcome not copied: %+v", r)
	}
	// Two ticks were spent Playing before the third ended the game, at 10 ticks/s
	if r.TimeTaken == nil || r.TimeTaken.Milliseconds() != 200 {
		t.Errorf("TimeTaken = %v", r.TimeTaken)
	}
}

func TestNoReportWithoutUser(t *testing.T) {
	rec := &memRecorder{}
	s, reporter := newTestSession(2, "", score.NewMemoryKV(), rec)

	run(s, 5)
	reporter.Wait()

	if len(rec.all()) != 0 {
		t.Error("anonymous sessions must not report")
	}
	if !s.Reported() {
		t.Error("session should still be marked finished")
	}
}

func TestHighScoreCarriesOverRestart(t *testing.T) {
	kv := score.NewMemoryKV()
	kv.Set("countdown", 2)

	s, reporter := newTestSession(5, "ana", kv, &memRecorder{})
	defer reporter.Wait()

	if s.State().HighScore != 2 {
		t.Fatalf("stored high score not injected: %d", s.State().HighScore)
	}

	run(s, 5)
	if v, _, _ := kv.Get("countdown"); v != 5 {
		t.Errorf("high score not stored, got %d", v)
	}

	first := s.Game()
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	s.Step(restart)

	if s.Game() == first {
		t.Fatal("restart must build a new instance")
	}
	st := s.State()
	if st.Phase != core.PhaseReady || st.Score != 0 {
		t.Errorf("new instance not fresh: %+v", st)
	}
	if st.HighScore != 5 {
		t.Errorf("high score lost on restart: %d", st.HighScore)
	}
	if s.Reported() {
		t.Error("new instance should be reportable again")
	}
}

func TestRestartIgnoredWhilePlaying(t *testing.T) {
	s, reporter := newTestSession(10, "", nil, &memRecorder{})
	defer reporter.Wait()

	run(s, 2)
	first := s.Game()

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	s.Step(restart)

	if s.Game() != first {
		t.Error("restart during play should not replace the instance")
	}
}

func TestLowerScoreKeepsHighScore(t *testing.T) {
	kv := score.NewMemoryKV()
	kv.Set("countdown", 50)

	s, reporter := newTestSession(3, "", kv, &memRecorder{})
	defer reporter.Wait()
	run(s, 3)

	if v, _, _ := kv.Get("countdown"); v != 50 {
		t.Errorf("high score overwritten with a lower one: %d", v)
	}
	if s.State().HighScore != 50 {
		t.Errorf("HighScore = %d", s.State().HighScore)
	}
}

func TestBrokenKVDoesNotStopPlay(t *testing.T) {
	rec := &memRecorder{}
	s, reporter := newTestSession(2, "ana", failingKV{}, rec)

	run(s, 3)
	reporter.Wait()

	if !s.State().GameOver() {
		t.Error("game should finish")
	}
	if len(rec.all()) != 1 {
		t.Error("score should still be reported")
	}
}

func TestResizeRebuildsOnlyBeforeStart(t *testing.T) {
	s, reporter := newTestSession(10, "", nil, &memRecorder{})
	defer reporter.Wait()

	first := s.Game()
	if !s.Resize(100, 40) {
		t.Fatal("resize in Ready should rebuild")
	}
	if s.Game() == first {
		t.Error("instance not replaced")
	}
	if cfg := s.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("config size = %dx%d", cfg.ScreenW, cfg.ScreenH)
	}

	run(s, 2)
	playing := s.Game()
	if s.Resize(60, 20) || s.Game() != playing {
		t.Error("resize while playing replaced the game")
	}
}

func TestNextSeedOnRestart(t *testing.T) {
	seeds := []int64{7, 8}
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	s := New(func() registry.Game { return &countdown{n: 1} }, Options{
		Config: cfg,
		Logger: quiet(),
		NextSeed: func() int64 {
			v := seeds[0]
			seeds = seeds[1:]
			return v
		},
	})
	if s.Config().Seed != 1 {
		t.Fatalf("first instance seed = %d, want 1", s.Config().Seed)
	}

	s.Restart()
	if s.Config().Seed != 7 {
		t.Errorf("restart seed = %d, want 7", s.Config().Seed)
	}
}
