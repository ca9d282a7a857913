package physics

import (
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

const (
	kindBall Kind = iota + 1
	kindBrick
	kindGhost
)

func TestResolverCreationOrderAndSingleDestruction(t *testing.T) {
	w := NewWorld()
	ball1 := w.Spawn(kindBall, core.Body{X: 0, Y: 0, W: 2, H: 2})
	brick := w.Spawn(kindBrick, core.Body{X: 1, Y: 1, W: 2, H: 2})
	ball2 := w.Spawn(kindBall, core.Body{X: 1.5, Y: 1.5, W: 2, H: 2})

	var order []int
	r := NewResolver()
	r.On(kindBall, kindBrick, func(ball, b *Entity) bool {
		order = append(order, ball.ID)
		b.Alive = false
		return true
	})

	applied := r.Resolve(w.All())

	if applied != 1 {
		t.Errorf("applied = %d, expected 1 (brick can only be destroyed once)", applied)
	}
	if len(order) != 1 || order[0] != ball1.ID {
		t.Errorf("expected the earlier ball to win, got %v", order)
	}
	if !ball2.Alive || brick.Alive {
		t.Error("unexpected liveness after resolve")
	}
}

func TestResolverSwapsReversedPairs(t *testing.T) {
	w := NewWorld()
	w.Spawn(kindBrick, core.Body{W: 1, H: 1})
	w.Spawn(kindBall, core.Body{W: 1, H: 1})

	var got Kind
	r := NewResolver()
	r.On(kindBall, kindBrick, func(a, _ *Entity) bool {
		got = a.Kind
		return true
	})
	r.Resolve(w.All())

	if got != kindBall {
		t.Errorf("rule received kind %d first, expected ball", got)
	}
}

func TestResolverIgnoresPairsWithoutRules(t *testing.T) {
	w := NewWorld()
	w.Spawn(kindGhost, core.Body{W: 5, H: 5})
	w.Spawn(kindBall, core.Body{W: 1, H: 1})

	r := NewResolver()
	if n := r.Resolve(w.All()); n != 0 {
		t.Errorf("applied = %d, expected 0", n)
	}
}

func TestWorldSweepKeepsOrder(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(kindBall, core.Body{})
	b := w.Spawn(kindBall, core.Body{})
	c := w.Spawn(kindBall, core.Body{})
	b.Alive = false

	w.Sweep()

	all := w.All()
	if len(all) != 2 || all[0] != a || all[1] != c {
		t.Errorf("sweep broke order: %+v", all)
	}
	if n := w.Spawn(kindBall, core.Body{}).ID; n != 3 {
		t.Errorf("IDs must keep increasing, got %d", n)
	}
}

func TestWorldValidate(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(kindBall, core.Body{})
	if err := w.Validate(); err != nil {
		t.Fatal(err)
	}
	e.X = 1 / zero()
	if err := w.Validate(); err == nil {
		t.Error("expected error for infinite position")
	}
}

func zero() float64 { return 0 }
