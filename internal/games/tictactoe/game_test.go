package tictactoe

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func testConfig(t *testing.T) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
}

func started(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(t))
	in := core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	g.cfg.CPUSkill = 1
	return g
}

func choose(g *Game, cell int) core.StepResult {
	in := core.NewInputFrame()
	in.Choice = cell
	return g.Step(in)
}

func board(s string) Board {
	var b Board
	for i, r := range s {
		switch r {
		case 'X':
			b[i] = X
		case 'O':
			b[i] = O
		}
	}
	return b
}

func TestWinner(t *testing.T) {
	tests := []struct {
		board string
		want  Mark
	}{
		{"XXX......", X},
		{"O..O..O..", O},
		{"X...X...X", X},
		{"..O.O.O..", O},
		{"XOXXOOOXX", Empty},
		{".........", Empty},
	}
	for _, tt := range tests {
		b := board(tt.board)
		if got := b.Winner(); got != tt.want {
			t.Errorf("Winner(%s) = %v, want %v", tt.board, got, tt.want)
		}
	}
}

func TestBestMove(t *testing.T) {
	tests := []struct {
		name  string
		board string
		want  int
	}{
		{"takes the win over a block", "XX.OO....", 5},
		{"blocks", "XX..O....", 2},
		{"takes the center", "X........", 4},
		{"takes a corner", "....X....", 0},
	}
	for _, tt := range tests {
		b := board(tt.board)
		if got := b.BestMove(O); got != tt.want {
			t.Errorf("%s: BestMove = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestCPUMoveAlwaysFree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 100 {
		b := board("XO.X.O..X")
		i := b.CPUMove(O, 0, rng)
		if b[i] != Empty {
			t.Fatalf("CPU picked taken cell %d", i)
		}
	}
}

func TestPlayerWinScores(t *testing.T) {
	g := started(t)
	g.board = board("XX.OO....")

	res := choose(g, 3)
	if res.State.Phase != core.PhaseLevelComplete {
		t.Fatalf("phase = %v, want level complete", res.State.Phase)
	}
	if res.State.Score != g.cfg.WinPoints || g.wins != 1 {
		t.Errorf("score = %d wins = %d", res.State.Score, g.wins)
	}
}

func TestDrawScores(t *testing.T) {
	g := started(t)
	g.board = board("XOXXOOOX.")

	res := choose(g, 9)
	if g.draws != 1 || res.State.Score != g.cfg.DrawPoints {
		t.Errorf("draws = %d score = %d, want 1 and %d", g.draws, res.State.Score, g.cfg.DrawPoints)
	}
}

func TestCPUWin(t *testing.T) {
	g := started(t)
	g.board = board("X..OO...X")

	res := choose(g, 2)
	if g.losses != 1 || res.State.Score != 0 {
		t.Errorf("losses = %d score = %d", g.losses, res.State.Score)
	}
	if g.board[5] != O {
		t.Error("CPU did not complete its line")
	}
}

func TestTakenCellIgnored(t *testing.T) {
	g := started(t)
	choose(g, 5)
	before := g.board
	choose(g, 5)
	if g.board != before || g.moves != 1 {
		t.Error("move on a taken cell changed the board")
	}
}

func TestRoundsAndGameOver(t *testing.T) {
	g := started(t)

	for round := range g.cfg.Rounds {
		if g.round != round {
			t.Fatalf("round = %d, want %d", g.round, round)
		}
		if round%2 == 1 {
			n := 0
			for _, m := range g.board {
				if m == O {
					n++
				}
			}
			if n != 1 {
				t.Fatalf("CPU did not open round %d", round)
			}
		}

		for g.machine.Is(core.PhasePlaying) {
			choose(g, g.board.BestMove(X)+1)
		}
		if !g.machine.Is(core.PhaseLevelComplete) {
			t.Fatalf("phase = %v after round", g.machine.Phase())
		}
		for range g.cfg.RoundDelay {
			g.Step(core.NewInputFrame())
		}
	}

	if !g.machine.Is(core.PhaseGameOver) {
		t.Errorf("phase = %v, want game over", g.machine.Phase())
	}
	if g.wins+g.losses+g.draws != g.cfg.Rounds {
		t.Errorf("rounds counted %d, want %d", g.wins+g.losses+g.draws, g.cfg.Rounds)
	}
}

func TestClickPlaces(t *testing.T) {
	g := started(t)
	ox, oy := g.origin(g.screenW, g.screenH)

	in := core.NewInputFrame()
	in.Click(ox+2*(cellW+1)+1, oy+1)
	g.Step(in)
	if g.board[2] != X {
		t.Errorf("click did not place X in cell 2: %v", g.board)
	}
}

func TestRender(t *testing.T) {
	g := started(t)
	choose(g, 1)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	ox, oy := g.origin(80, 24)
	if screen.Get(ox+cellW/2, oy+cellH/2) != 'X' {
		t.Error("X not drawn in cell 1")
	}
}
