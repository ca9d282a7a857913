package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
)

func testConfig(t *testing.T) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestStartsAtRestMidHeight(t *testing.T) {
	cfg := testConfig(t)
	g := New()
	g.Reset(cfg)

	y0 := g.bird.Y
	mid := float64(cfg.ScreenH) / 2
	if y0 > mid || y0+g.bird.H < mid {
		t.Errorf("bird at y=%v does not cover mid-height %v", y0, mid)
	}
	if g.bird.VY != 0 {
		t.Errorf("initial vy = %v, want 0", g.bird.VY)
	}

	// The start tick only changes phase.
	res := g.Step(press(core.ActionConfirm))
	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", res.State.Phase)
	}
	if g.bird.Y != y0 || g.bird.VY != 0 {
		t.Fatalf("start tick moved the bird to y=%v vy=%v", g.bird.Y, g.bird.VY)
	}

	g.Step(core.NewInputFrame())

	grav := g.cfg.Physics.Gravity
	if g.bird.VY != grav {
		t.Errorf("vy after one tick = %v, want %v", g.bird.VY, grav)
	}
	if g.bird.Y != y0+grav {
		t.Errorf("y after one tick = %v, want %v", g.bird.Y, y0+grav)
	}
}

func TestGameJumpPhysics(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	initialY := g.bird.Y
	g.Step(press(core.ActionJump))

	if g.bird.Y >= initialY {
		t.Errorf("Jump should move player up, was %f, now %f", initialY, g.bird.Y)
	}
	if g.bird.VY >= 0 {
		t.Errorf("Jump velocity should be negative, got %f", g.bird.VY)
	}
}

func TestFallSpeedCapped(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	g.bird.Y = fieldTop
	for range 8 {
		g.Step(core.NewInputFrame())
		if g.bird.VY > g.cfg.Physics.MaxFallSpeed {
			t.Fatalf("vy %v exceeds cap %v", g.bird.VY, g.cfg.Physics.MaxFallSpeed)
		}
	}
}

func TestCeilingClamps(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	g.bird.Y = fieldTop + 0.5
	res := g.Step(press(core.ActionJump))

	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("ceiling ended the run: phase %v", res.State.Phase)
	}
	if g.bird.Y != fieldTop || g.bird.VY != 0 {
		t.Errorf("bird at y=%v vy=%v, want clamped to the ceiling", g.bird.Y, g.bird.VY)
	}
}

func TestGroundEndsRun(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	g.bird.Y = g.ground - g.bird.H - 0.1
	g.bird.VY = 1
	res := g.Step(core.NewInputFrame())

	if res.State.Phase != core.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", res.State.Phase)
	}
	if !res.Has(core.EventGameOver) {
		t.Error("missing game over event")
	}
}

func TestPipeCollisionFreezesScore(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))
	g.score = 4

	g.world.Spawn(kindPipe, core.Body{X: g.bird.X + 0.5, Y: fieldTop, W: 5, H: g.ground - fieldTop})
	res := g.Step(core.NewInputFrame())
	if res.State.Phase != core.PhaseGameOver {
		t.Fatalf("phase = %v, want game over", res.State.Phase)
	}

	y := g.bird.Y
	for range 30 {
		res = g.Step(press(core.ActionJump))
	}
	if res.State.Score != 4 {
		t.Errorf("score = %d after game over, want 4", res.State.Score)
	}
	if g.bird.Y != y {
		t.Error("bird moved after game over")
	}
}

func TestPassingPipeScores(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	// A pipe pair whose right edge sits exactly on the bird's left edge.
	w := float64(g.cfg.Obstacles.PipeWidth)
	g.world.Spawn(kindPipe, core.Body{X: g.bird.X - w, Y: fieldTop, W: w, H: 3})
	g.world.Spawn(kindPipe, core.Body{X: g.bird.X - w, Y: g.ground - 3, W: w, H: 3})

	res := g.Step(core.NewInputFrame())
	if res.State.Score != 1 || !res.Has(core.EventScored) {
		t.Fatalf("score = %d, want 1", res.State.Score)
	}

	res = g.Step(core.NewInputFrame())
	if res.State.Score != 1 {
		t.Errorf("pipe scored twice: score %d", res.State.Score)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	res := g.Step(press(core.ActionPause))
	if res.State.Phase != core.PhasePaused {
		t.Fatalf("phase = %v, want paused", res.State.Phase)
	}

	body := g.bird.Body
	for range 10 {
		g.Step(press(core.ActionJump))
	}
	if g.bird.Body != body {
		t.Error("bird moved while paused")
	}

	res = g.Step(press(core.ActionPause))
	if res.State.Phase != core.PhasePlaying {
		t.Errorf("phase = %v, want playing", res.State.Phase)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := testConfig(t)

	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%12 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() *Game {
		g := New()
		g.Reset(cfg)
		for _, in := range inputs {
			if g.Step(in).State.GameOver() {
				break
			}
		}
		return g
	}

	g1, g2 := run(), run()
	if g1.State() != g2.State() || g1.tick != g2.tick {
		t.Errorf("runs differ: %+v tick %d vs %+v tick %d", g1.State(), g1.tick, g2.State(), g2.tick)
	}
	if g1.bird.Body != g2.bird.Body {
		t.Errorf("bird differs: %+v vs %+v", g1.bird.Body, g2.bird.Body)
	}
}

func TestPipesSpawnWithGap(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))

	for range 200 {
		g.pipes.Update(g.bird.X, 0, 0)
		g.world.Sweep()
	}
	if g.pipes.Count() == 0 {
		t.Fatal("no pipes spawned")
	}

	byPair := map[int][]*physics.Entity{}
	g.world.Each(kindPipe, func(e *physics.Entity) { byPair[e.Mark] = append(byPair[e.Mark], e) })
	for id, pair := range byPair {
		if len(pair) != 2 {
			t.Fatalf("pipe %d has %d parts", id, len(pair))
		}
		gap := pair[1].Y - pair[0].Bottom()
		if gap < float64(g.cfg.Obstacles.MinGapSize) || gap > float64(g.cfg.Obstacles.MaxGapSize) {
			t.Errorf("pipe %d gap %v outside %d..%d", id, gap, g.cfg.Obstacles.MinGapSize, g.cfg.Obstacles.MaxGapSize)
		}
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if screen.Get(0, 23) != groundChar {
		t.Error("ground not drawn")
	}
	if r := screen.Get(int(g.bird.X), int(g.bird.Y)); r != '▶' {
		t.Errorf("bird glyph = %q, want level flight", r)
	}
}

func TestInvalidBirdStateEndsRun(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionConfirm))
	before := g.State()

	g.bird.VY = math.NaN()
	res := g.Step(core.NewInputFrame())

	if res.State.Phase != core.PhaseGameOver {
		t.Errorf("phase = %v, want game over", res.State.Phase)
	}
	if res.State.Score != before.Score {
		t.Errorf("score = %d, want %d", res.State.Score, before.Score)
	}
}
