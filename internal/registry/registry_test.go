package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.state = core.GameState{Level: 1} }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: g.state} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return g.state }

func stub(id string) Factory {
	return func() Game { return &stubGame{id: id} }
}

func TestRegistryListSorted(t *testing.T) {
	r := New()
	r.Register("zeta", stub("zeta"))
	r.Register("alpha", stub("alpha"))

	list := r.List()
	if len(list) != 2 || list[0].ID != "alpha" || list[1].ID != "zeta" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list[0].Title != "Stub alpha" {
		t.Errorf("title = %q", list[0].Title)
	}
}

func TestRegistryCreateReturnsNewInstances(t *testing.T) {
	r := New()
	r.Register("a", stub("a"))

	g1, err := r.Create("a")
	if err != nil {
		t.Fatal(err)
	}
	g2, _ := r.Create("a")
	if g1 == g2 {
		t.Error("Create must return a fresh instance each time")
	}
}

func TestRegistryUnknown(t *testing.T) {
	r := New()
	if _, err := r.Create("missing"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("expected ErrUnknownGame, got %v", err)
	}
	if r.Exists("missing") {
		t.Error("Exists should be false")
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := New()
	r.Register("a", stub("a"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	r.Register("a", stub("a"))
}
