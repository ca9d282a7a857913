package pinpoint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

const oneSet = `
sets:
  - category: Planets
    aliases: [planet]
    words: [Ring, Red, Giant, Orbit, Jupiter]
`

// withWords writes a word file and a config pointing at it.
func withWords(t *testing.T, words string, extra string) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	wordsPath := filepath.Join(dir, "words.yaml")
	if err := os.WriteFile(wordsPath, []byte(words), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "pinpoint.yaml")
	body := "words_file: " + wordsPath + "\nnext_delay: 5\n" + extra
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1, ConfigPath: cfgPath}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func guess(text string) core.InputFrame {
	in := press(core.ActionConfirm)
	for _, r := range text {
		in.Type(r)
	}
	return in
}

func started(t *testing.T, cfg core.RuntimeConfig) *Game {
	t.Helper()
	g := New()
	g.Reset(cfg)
	g.Step(press(core.ActionConfirm))
	if g.State().Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing (load error %v)", g.State().Phase, g.loadErr)
	}
	return g
}

func TestEasyCorrectAfterOneWord(t *testing.T) {
	cfg := withWords(t, oneSet, "")
	cfg.Difficulty = "easy"
	g := started(t, cfg)

	if g.revealed != 1 {
		t.Fatalf("revealed = %d, want 1", g.revealed)
	}

	res := g.Step(guess("planets"))
	if res.State.Score != 25 {
		t.Errorf("score = %d, want 25", res.State.Score)
	}
	if res.State.Phase != core.PhaseLevelComplete || !res.Has(core.EventScored) {
		t.Errorf("phase = %v, want level complete", res.State.Phase)
	}
}

func TestAward(t *testing.T) {
	tests := []struct {
		perWord  int
		revealed int
		hinted   bool
		want     int
	}{
		{5, 1, false, 25},
		{5, 2, false, 20},
		{10, 1, false, 50},
		{15, 5, false, 15},
		{5, 1, true, 20},
		{5, 5, true, 0},
	}

	for _, tt := range tests {
		if got := Award(tt.perWord, tt.revealed, tt.hinted); got != tt.want {
			t.Errorf("Award(%d, %d, %v) = %d, want %d", tt.perWord, tt.revealed, tt.hinted, got, tt.want)
		}
	}
}

func TestWrongGuessRevealsNextWord(t *testing.T) {
	cfg := withWords(t, oneSet, "")
	cfg.Difficulty = "easy"
	g := started(t, cfg)

	res := g.Step(guess("stars"))
	if g.revealed != 2 || res.State.Phase != core.PhasePlaying {
		t.Fatalf("revealed = %d phase = %v, want 2 and playing", g.revealed, res.State.Phase)
	}
	if res.State.Score != 0 {
		t.Errorf("wrong guess scored %d", res.State.Score)
	}

	res = g.Step(guess("  PLANET "))
	if res.State.Score != 20 {
		t.Errorf("score = %d, want 20", res.State.Score)
	}
}

func TestHintCostsOneWord(t *testing.T) {
	cfg := withWords(t, oneSet, "")
	cfg.Difficulty = "easy"
	g := started(t, cfg)

	g.Step(press(core.ActionHint))
	if !strings.Contains(g.feedback, "'P'") {
		t.Errorf("feedback = %q, want first letter", g.feedback)
	}
	res := g.Step(guess("planets"))
	if res.State.Score != 20 {
		t.Errorf("score = %d, want 20", res.State.Score)
	}
}

func TestRoundLostAfterAllWords(t *testing.T) {
	g := started(t, withWords(t, oneSet, ""))

	var res core.StepResult
	for range WordsPerSet {
		res = g.Step(guess("nope"))
	}
	if res.State.Phase != core.PhaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", res.State.Phase)
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d, want 0", res.State.Score)
	}
	if g.Outcome().Completed {
		t.Error("lost round reported as completed")
	}
}

func TestRoundsEndInGameOver(t *testing.T) {
	g := started(t, withWords(t, oneSet, ""))

	g.Step(guess("planets"))
	var res core.StepResult
	for range 5 {
		res = g.Step(core.NewInputFrame())
	}
	if res.State.Phase != core.PhaseGameOver || !res.Has(core.EventGameOver) {
		t.Fatalf("phase = %v, want game over after the only round", res.State.Phase)
	}

	out := g.Outcome()
	if !out.Completed || out.Moves == nil || *out.Moves != 1 {
		t.Errorf("outcome = %+v, want completed with 1 guess", out)
	}
}

func TestTypingAndErase(t *testing.T) {
	g := started(t, withWords(t, oneSet, ""))

	in := core.NewInputFrame()
	for _, r := range "ab!c" {
		in.Type(r)
	}
	g.Step(in)
	g.Step(press(core.ActionErase))

	if got := string(g.input); got != "ab" {
		t.Errorf("input = %q, want %q", got, "ab")
	}

	// A blank guess is not counted.
	g.Step(press(core.ActionErase))
	g.Step(press(core.ActionErase))
	g.Step(press(core.ActionConfirm))
	if g.guesses != 0 || g.revealed != 1 {
		t.Errorf("blank guess counted: guesses %d revealed %d", g.guesses, g.revealed)
	}
}

func TestEmptyWordSetsFailClosed(t *testing.T) {
	cfg := withWords(t, "sets: []\n", "")
	g := New()
	g.Reset(cfg)

	res := g.Step(press(core.ActionConfirm))
	if res.State.Phase != core.PhaseReady {
		t.Fatalf("phase = %v, want ready", res.State.Phase)
	}
	if g.loadErr == nil {
		t.Error("expected a load error")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Nothing to play") {
		t.Error("missing placeholder message")
	}

	// Fixing the file and retrying starts the game.
	path := strings.TrimPrefix(strings.Split(readFile(t, cfg.ConfigPath), "\n")[0], "words_file: ")
	if err := os.WriteFile(path, []byte(oneSet), 0o644); err != nil {
		t.Fatal(err)
	}
	g.Step(press(core.ActionRestart))
	res = g.Step(press(core.ActionConfirm))
	if res.State.Phase != core.PhasePlaying {
		t.Errorf("phase after retry = %v, want playing", res.State.Phase)
	}
}

func TestParseWordSetsDropsMalformed(t *testing.T) {
	data := []byte(`
sets:
  - category: Good
    words: [a, b, c, d, e]
  - category: Short
    words: [a, b]
  - category: ""
    words: [a, b, c, d, e]
`)
	sets, err := ParseWordSets(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 || sets[0].Category != "Good" {
		t.Errorf("sets = %+v, want only Good", sets)
	}
}

func TestBuiltinWordSets(t *testing.T) {
	sets, err := LoadWordSets("")
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) < 5 {
		t.Errorf("only %d built-in sets", len(sets))
	}
}

func TestPauseKeepsInput(t *testing.T) {
	g := started(t, withWords(t, oneSet, ""))
	in := core.NewInputFrame()
	in.Type('x')
	g.Step(in)

	g.Step(press(core.ActionPause))
	if g.AcceptsText() {
		t.Error("paused game accepts text")
	}
	g.Step(guess("planets"))
	if g.score != 0 || string(g.input) != "x" {
		t.Errorf("paused game took a guess: score %d input %q", g.score, string(g.input))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
