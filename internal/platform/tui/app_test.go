package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/score"
	"github.com/vovakirdan/arcade-portal/internal/storage"
)

func init() {
	registry.Register("taps", newTaps)
}

type fakeScores struct {
	entries []storage.ScoreEntry
	err     error
}

func (f fakeScores) TopScores(string, int) ([]storage.ScoreEntry, error) {
	return f.entries, f.err
}

func newTestApp(scores ScoreSource) App {
	return NewApp(AppOptions{
		Config: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60},
		Scores: scores,
		Logger: quietLogger(),
	})
}

func update(a App, msgs ...tea.Msg) App {
	for _, msg := range msgs {
		next, _ := a.Update(msg)
		a = next.(App)
	}
	return a
}

func TestAppMenuToGame(t *testing.T) {
	a := newTestApp(nil)
	if !strings.Contains(a.View(), "Taps") {
		t.Fatalf("menu should list the registered game:\n%s", a.View())
	}

	a = update(a, enterKey)
	if a.screen != screenDifficulty {
		t.Fatalf("screen = %v, want the difficulty picker", a.screen)
	}
	if !strings.Contains(a.View(), "Select difficulty") {
		t.Errorf("difficulty view:\n%s", a.View())
	}

	a = update(a, enterKey)
	if a.screen != screenGame {
		t.Fatalf("screen = %v, want the game", a.screen)
	}
	if cfg := a.game.Session().Config(); cfg.Difficulty != "normal" {
		t.Errorf("difficulty = %q, want normal", cfg.Difficulty)
	}

	a = update(a, TickMsg{ID: a.game.tickID})
	if !strings.Contains(a.View(), "taps ready") {
		t.Errorf("game view:\n%s", a.View())
	}

	a = update(a, runes("b"))
	if a.screen != screenMenu {
		t.Errorf("back from a game that has not started should return to the menu")
	}
}

func TestAppDifficultyBack(t *testing.T) {
	a := update(newTestApp(nil), enterKey, escKey)
	if a.screen != screenMenu {
		t.Errorf("esc on the difficulty picker should return to the menu, got %v", a.screen)
	}

	// The menu's one-shot selection is cleared, so it can be picked again.
	a = update(a, enterKey)
	if a.screen != screenDifficulty {
		t.Errorf("picking again should open the difficulty picker, got %v", a.screen)
	}
}

func TestAppScoreboard(t *testing.T) {
	scores := fakeScores{entries: []storage.ScoreEntry{
		{ID: 1, Record: score.Record{UserID: "ana", GameName: "taps", Score: 42}},
	}}
	a := update(newTestApp(scores), tea.KeyMsg{Type: tea.KeyTab})
	if a.screen != screenScores {
		t.Fatalf("tab should open the scoreboard, got %v", a.screen)
	}

	view := a.View()
	for _, want := range []string{"HIGH SCORES", "ana", "42"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, view)
		}
	}

	a = update(a, escKey)
	if a.screen != screenMenu || a.quitting {
		t.Errorf("esc on the scoreboard should return to the menu")
	}
}

func TestScoreboardShowsLoadError(t *testing.T) {
	m := NewScoreboardModel(fakeScores{err: errors.New("disk gone")}, 100, 30)
	if !strings.Contains(m.View(), "disk gone") {
		t.Errorf("scoreboard should show the load error:\n%s", m.View())
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(nil)
	next, cmd := a.Update(runes("q"))
	if !next.(App).quitting || cmd == nil {
		t.Error("q on the menu should quit")
	}
}

func TestAppDropsTicksOfLeftGame(t *testing.T) {
	a := update(newTestApp(nil), enterKey, enterKey)
	first := a.game.tickID

	a = update(a, runes("b"), enterKey, enterKey)
	if a.screen != screenGame {
		t.Fatalf("screen = %v, want a second game", a.screen)
	}
	if a.game.tickID == first {
		t.Fatal("a new game should get its own tick chain")
	}

	next, cmd := a.Update(TickMsg{ID: first})
	if cmd != nil {
		t.Error("a tick left over from the first game started a second tick chain")
	}
	if next.(App).game.driver.Ticks() != 0 {
		t.Error("a tick left over from the first game stepped the second")
	}
}
