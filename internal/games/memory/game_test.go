package memory

import (
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func testConfig(t *testing.T) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 8}
}

func started(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(t))
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	return g
}

// clickCard clicks the center of card i.
func clickCard(g *Game, i int) core.StepResult {
	ox, oy := g.origin(g.screenW, g.screenH)
	in := core.NewInputFrame()
	in.Click(ox+(i%g.cfg.Cols)*(cardW+gapX)+cardW/2, oy+(i/g.cfg.Cols)*(cardH+gapY)+cardH/2)
	return g.Step(in)
}

// pairs returns card indexes grouped by symbol.
func pairs(g *Game) map[rune][]int {
	out := map[rune][]int{}
	for i, c := range g.cards {
		out[c.Symbol] = append(out[c.Symbol], i)
	}
	return out
}

// mismatch returns two cards with different symbols.
func mismatch(g *Game) (int, int) {
	for j := 1; j < len(g.cards); j++ {
		if g.cards[j].Symbol != g.cards[0].Symbol {
			return 0, j
		}
	}
	panic("board has one symbol")
}

func TestDealHasPairs(t *testing.T) {
	g := started(t)
	if len(g.cards) != g.cfg.Cols*g.cfg.Rows {
		t.Fatalf("cards = %d, want %d", len(g.cards), g.cfg.Cols*g.cfg.Rows)
	}
	for sym, idx := range pairs(g) {
		if len(idx) != 2 {
			t.Errorf("symbol %c appears %d times", sym, len(idx))
		}
	}
}

func TestMatchScores(t *testing.T) {
	g := started(t)
	p := pairs(g)['A']

	clickCard(g, p[0])
	res := clickCard(g, p[1])

	if !g.cards[p[0]].Matched || !g.cards[p[1]].Matched {
		t.Fatal("pair not matched")
	}
	if res.State.Score != g.cfg.PairPoints || !res.Has(core.EventScored) {
		t.Errorf("score = %d, want %d", res.State.Score, g.cfg.PairPoints)
	}
	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
}

func TestMismatchFlipsBackAfterDelay(t *testing.T) {
	g := started(t)
	a, b := mismatch(g)

	clickCard(g, a)
	clickCard(g, b)
	if !g.cards[a].FaceUp || !g.cards[b].FaceUp {
		t.Fatal("mismatched cards should show")
	}

	for range g.cfg.MismatchDelay - 1 {
		g.Step(core.NewInputFrame())
	}
	if !g.cards[a].FaceUp {
		t.Fatal("cards hidden early")
	}
	g.Step(core.NewInputFrame())
	if g.cards[a].FaceUp || g.cards[b].FaceUp {
		t.Error("cards still face up after the delay")
	}
	if g.score != 0 {
		t.Errorf("mismatch scored %d", g.score)
	}
}

func TestFlipCancelsMismatchDelay(t *testing.T) {
	g := started(t)
	a, b := mismatch(g)
	c := -1
	for i := range g.cards {
		if i != a && i != b {
			c = i
			break
		}
	}

	clickCard(g, a)
	clickCard(g, b)
	clickCard(g, c)

	if g.hide.Active() {
		t.Error("mismatch timer still running")
	}
	if g.cards[a].FaceUp || g.cards[b].FaceUp {
		t.Error("mismatched pair not hidden")
	}
	if !g.cards[c].FaceUp || g.first != c {
		t.Error("new card not flipped as the first of a pair")
	}
}

func TestPerfectGame(t *testing.T) {
	g := started(t)

	var res core.StepResult
	for _, idx := range pairs(g) {
		clickCard(g, idx[0])
		res = clickCard(g, idx[1])
	}

	if res.State.Phase != core.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", res.State.Phase)
	}
	n := g.Pairs()
	want := n*g.cfg.PairPoints + n*g.cfg.MoveBonus
	if res.State.Score != want {
		t.Errorf("score = %d, want %d", res.State.Score, want)
	}
	out := g.Outcome()
	if !out.Completed || *out.Moves != n {
		t.Errorf("outcome = completed %v moves %d", out.Completed, *out.Moves)
	}
}

func TestKeyboardCursor(t *testing.T) {
	g := started(t)

	steps := []struct {
		action core.Action
		want   int
	}{
		{core.ActionLeft, 0},
		{core.ActionRight, 1},
		{core.ActionDown, 1 + g.cfg.Cols},
		{core.ActionUp, 1},
		{core.ActionUp, 1},
	}
	for _, s := range steps {
		in := core.NewInputFrame()
		in.Set(s.action)
		g.Step(in)
		if g.cursor != s.want {
			t.Fatalf("after %v cursor = %d, want %d", s.action, g.cursor, s.want)
		}
	}

	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	if !g.cards[1].FaceUp {
		t.Error("confirm did not flip the card under the cursor")
	}
}

func TestClickOutsideIgnored(t *testing.T) {
	g := started(t)
	if _, ok := g.cardAt(0, 0); ok {
		t.Error("corner mapped to a card")
	}
	ox, oy := g.origin(g.screenW, g.screenH)
	if _, ok := g.cardAt(ox+cardW, oy); ok {
		t.Error("gap column mapped to a card")
	}
}

func TestHardPreset(t *testing.T) {
	cfg := testConfig(t)
	cfg.Difficulty = "hard"
	g := New()
	g.Reset(cfg)
	if g.Pairs() != 12 {
		t.Errorf("hard pairs = %d, want 12", g.Pairs())
	}
}

func TestRender(t *testing.T) {
	g := started(t)
	p := pairs(g)['A']
	clickCard(g, p[0])

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	ox, oy := g.origin(80, 24)
	x := ox + (p[0]%g.cfg.Cols)*(cardW+gapX) + cardW/2
	y := oy + (p[0]/g.cfg.Cols)*(cardH+gapY) + cardH/2
	if screen.Get(x, y) != 'A' {
		t.Errorf("face-up card shows %q, want 'A'", screen.Get(x, y))
	}
}
