package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKeyActions(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionUp}},
		{"w", runes("w"), []core.Action{core.ActionUp}},
		{"down also ducks", tea.KeyMsg{Type: tea.KeyDown}, []core.Action{core.ActionDown, core.ActionDuck}},
		{"space jumps", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionJump}},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionPause}},
		{"r restarts", runes("r"), []core.Action{core.ActionRestart}},
		{"? hints", runes("?"), []core.Action{core.ActionHint}},
		{"backspace erases", tea.KeyMsg{Type: tea.KeyBackspace}, []core.Action{core.ActionErase}},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := loop.NewInputBuffer()
			if got := km.MapKey(tt.msg, buf, false); got != KeyNone {
				t.Fatalf("MapKey = %v, want KeyNone", got)
			}
			in := buf.Drain()
			for _, a := range tt.want {
				if !in.Has(a) {
					t.Errorf("missing %v in %v", a, in.Actions)
				}
			}
			if len(in.Actions) != len(tt.want) {
				t.Errorf("got %d actions, want %d", len(in.Actions), len(tt.want))
			}
		})
	}
}

func TestMapKeyResults(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		text bool
		want KeyResult
	}{
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, false, KeyQuit},
		{"ctrl+c quits while typing", tea.KeyMsg{Type: tea.KeyCtrlC}, true, KeyQuit},
		{"q quits", runes("q"), false, KeyQuit},
		{"q is typed while typing", runes("q"), true, KeyNone},
		{"b goes back", runes("b"), false, KeyBack},
		{"ctrl+s screenshots", tea.KeyMsg{Type: tea.KeyCtrlS}, false, KeyScreenshot},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg, loop.NewInputBuffer(), tt.text); got != tt.want {
				t.Errorf("MapKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapKeyTextEntry(t *testing.T) {
	km := NewKeyMapper()
	buf := loop.NewInputBuffer()

	for _, msg := range []tea.KeyMsg{runes("r"), runes("b"), tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, tea.KeyMsg{Type: tea.KeyEnter}} {
		km.MapKey(msg, buf, true)
	}

	in := buf.Drain()
	if string(in.Runes) != "rb " {
		t.Errorf("typed %q, want %q", string(in.Runes), "rb ")
	}
	if in.Has(core.ActionRestart) || in.Has(core.ActionJump) {
		t.Errorf("letters must not trigger actions while typing: %v", in.Actions)
	}
	if !in.Has(core.ActionConfirm) {
		t.Error("enter should still confirm while typing")
	}
}

func TestMapKeyDigitsChoose(t *testing.T) {
	km := NewKeyMapper()
	buf := loop.NewInputBuffer()

	km.MapKey(runes("2"), buf, false)
	km.MapKey(runes("7"), buf, false)

	if got := buf.Drain().Choice; got != 7 {
		t.Errorf("Choice = %d, want the latest digit 7", got)
	}
}

func TestMapMouseLeftPress(t *testing.T) {
	km := NewKeyMapper()
	buf := loop.NewInputBuffer()

	km.MapMouse(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, buf)
	if buf.Drain().Pointer != nil {
		t.Fatal("motion should not click")
	}

	km.MapMouse(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, buf)
	p := buf.Drain().Pointer
	if p == nil || p.X != 3 || p.Y != 4 {
		t.Errorf("Pointer = %v, want (3,4)", p)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	km := NewKeyMapper()
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
