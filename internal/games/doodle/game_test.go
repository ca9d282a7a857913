package doodle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/physics"
)

func testConfig(t *testing.T) core.RuntimeConfig {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 24, TickRate: 60, Seed: 5}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func started(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.Reset(testConfig(t))
	g.Step(press(core.ActionJump))
	if g.State().Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.State().Phase)
	}
	return g
}

// isolate removes every platform and adds one under the player.
func isolate(g *Game, flags int) *physics.Entity {
	g.world.Each(kindPlatform, func(e *physics.Entity) { e.Alive = false })
	g.world.Sweep()
	g.platforms.highest = -1e9

	p := g.world.Spawn(kindPlatform, core.Body{X: g.player.X - 2, Y: 12, W: 7, H: 1})
	p.Flags = flags
	return p
}

func TestStartBouncesUp(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))

	res := g.Step(press(core.ActionConfirm))
	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", res.State.Phase)
	}
	if g.player.VY != g.cfg.Physics.BounceImpulse {
		t.Errorf("vy = %v, want %v", g.player.VY, g.cfg.Physics.BounceImpulse)
	}
}

func TestLandingBounces(t *testing.T) {
	tests := []struct {
		name    string
		flags   int
		vy      float64
		bounce  bool
		survive bool
	}{
		{"falling onto solid", 0, 1, true, true},
		{"rising through", 0, -1, false, true},
		{"falling onto breaking", flagBreaking, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := started(t)
			p := isolate(g, tt.flags)

			g.player.Y = p.Y - g.player.H - 0.5
			if tt.vy < 0 {
				g.player.Y = p.Y - 0.5
			}
			g.player.VY = tt.vy
			g.Step(core.NewInputFrame())

			bounced := g.player.VY == g.cfg.Physics.BounceImpulse
			if bounced != tt.bounce {
				t.Errorf("bounced = %v, want %v (vy %v)", bounced, tt.bounce, g.player.VY)
			}
			if p.Alive != tt.survive {
				t.Errorf("platform alive = %v, want %v", p.Alive, tt.survive)
			}
			if tt.bounce && g.player.Bottom() != p.Y {
				t.Errorf("player bottom = %v, want on platform at %v", g.player.Bottom(), p.Y)
			}
		})
	}
}

func TestWrapsHorizontally(t *testing.T) {
	g := started(t)
	g.player.X = g.screenW - 1

	g.Step(press(core.ActionRight))
	if g.player.CenterX() >= g.screenW || g.player.X > 1 {
		t.Errorf("player x = %v, want wrapped to the left edge", g.player.X)
	}
}

func TestFallingOffScreenEndsRun(t *testing.T) {
	g := started(t)
	isolate(g, 0).Alive = false
	g.world.Sweep()

	g.player.Y = g.camY + g.screenH - 0.5
	g.player.VY = 1
	res := g.Step(core.NewInputFrame())
	if res.State.Phase != core.PhaseGameOver || !res.Has(core.EventGameOver) {
		t.Fatalf("phase = %v, want game over", res.State.Phase)
	}
}

func TestCameraFollowsAndScores(t *testing.T) {
	g := started(t)
	isolate(g, 0)

	g.player.Y = 3
	g.player.VY = -1
	res := g.Step(core.NewInputFrame())

	if g.camY >= 0 {
		t.Errorf("camera did not scroll: camY = %v", g.camY)
	}
	if g.player.Y-g.camY < g.screenH/3-1e-9 {
		t.Errorf("player above the top third: y %v cam %v", g.player.Y, g.camY)
	}
	if res.State.Score != int(g.startY-g.player.Y) {
		t.Errorf("score = %d, want climbed height %d", res.State.Score, int(g.startY-g.player.Y))
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	g := started(t)
	rng := rand.New(rand.NewSource(3))

	last := 0
	for range 3000 {
		in := core.NewInputFrame()
		switch rng.Intn(3) {
		case 0:
			in.Set(core.ActionLeft)
		case 1:
			in.Set(core.ActionRight)
		}
		res := g.Step(in)
		if res.State.Score < last {
			t.Fatalf("score dropped from %d to %d", last, res.State.Score)
		}
		last = res.State.Score
		if res.State.GameOver() {
			break
		}
	}
}

func TestPlatformsReachable(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))

	var ys []float64
	g.world.Each(kindPlatform, func(e *physics.Entity) { ys = append(ys, e.Y) })
	if len(ys) < 3 {
		t.Fatalf("only %d platforms generated", len(ys))
	}
	for i := 1; i < len(ys); i++ {
		gap := int(ys[i-1] - ys[i])
		if gap < g.cfg.Platforms.MinGap || gap > g.platforms.reach() {
			t.Errorf("gap %d outside %d..%d", gap, g.cfg.Platforms.MinGap, g.platforms.reach())
		}
	}
}

func TestMovingPlatformTurnsAtWall(t *testing.T) {
	g := started(t)
	p := isolate(g, flagMoving)
	p.X = g.screenW - p.W - 0.1
	p.VX = 0.3

	g.platforms.Update(1e9)
	if p.Right() > g.screenW || p.VX >= 0 {
		t.Errorf("platform at x=%v vx=%v, want turned at the wall", p.X, p.VX)
	}
}

func TestRender(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))

	screen := core.NewScreen(60, 24)
	g.Render(screen)
	if screen.Get(int(g.player.X), int(g.player.Y)) != '█' {
		t.Error("player not drawn")
	}
}

func TestRenderPlayerAbovePlatform(t *testing.T) {
	g := New()
	g.Reset(testConfig(t))
	g.world.Spawn(kindPlatform, core.Body{X: g.player.X - 1, Y: g.player.Y, W: g.player.W + 2, H: 1})

	screen := core.NewScreen(60, 24)
	g.Render(screen)
	if screen.Get(int(g.player.X), int(g.player.Y)) != '█' {
		t.Error("platform drawn over the player")
	}
}

func TestInvalidPlayerStateEndsRun(t *testing.T) {
	g := started(t)
	before := g.State()

	g.player.VY = math.NaN()
	res := g.Step(core.NewInputFrame())

	if res.State.Phase != core.PhaseGameOver {
		t.Errorf("phase = %v, want game over", res.State.Phase)
	}
	if res.State.Score != before.Score {
		t.Errorf("score = %d, want %d", res.State.Score, before.Score)
	}
}
