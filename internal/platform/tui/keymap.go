package tui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
)

// KeyMapper translates Bubble Tea messages into game input.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// KeyResult is what a key press means outside the game itself.
type KeyResult int

const (
	KeyNone KeyResult = iota
	KeyQuit
	KeyBack       // Leave the game for the menu
	KeyScreenshot // Save the current frame
)

// actionKeys are the bindings used while a game is not reading text.
var actionKeys = map[string][]core.Action{
	"up":        {core.ActionUp},
	"w":         {core.ActionUp},
	"down":      {core.ActionDown, core.ActionDuck},
	"s":         {core.ActionDown, core.ActionDuck},
	"left":      {core.ActionLeft},
	"a":         {core.ActionLeft},
	"right":     {core.ActionRight},
	"d":         {core.ActionRight},
	" ":         {core.ActionJump},
	"enter":     {core.ActionConfirm},
	"p":         {core.ActionPause},
	"esc":       {core.ActionPause},
	"r":         {core.ActionRestart},
	"?":         {core.ActionHint},
	"h":         {core.ActionHint},
	"backspace": {core.ActionErase},
}

// textKeys are the bindings kept while a game reads typed text. Everything
// printable is typed instead.
var textKeys = map[string][]core.Action{
	"up":        {core.ActionUp},
	"down":      {core.ActionDown},
	"left":      {core.ActionLeft},
	"right":     {core.ActionRight},
	"enter":     {core.ActionConfirm},
	"esc":       {core.ActionPause},
	"?":         {core.ActionHint},
	"backspace": {core.ActionErase},
}

// MapKey writes the input for msg into buf. With text set, printable keys
// are typed as runes so letters like q and r reach the game.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, buf *loop.InputBuffer, text bool) KeyResult {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return KeyQuit
	case "ctrl+s":
		return KeyScreenshot
	}

	if text {
		if actions, ok := textKeys[key]; ok {
			for _, a := range actions {
				buf.Press(a)
			}
			return KeyNone
		}
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			for _, r := range msg.Runes {
				if unicode.IsPrint(r) {
					buf.Type(r)
				}
			}
			if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
				buf.Type(' ')
			}
		}
		return KeyNone
	}

	switch key {
	case "q":
		return KeyQuit
	case "b":
		return KeyBack
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		buf.Choose(int(key[0] - '0'))
		return KeyNone
	}
	for _, a := range actionKeys[key] {
		buf.Press(a)
	}
	return KeyNone
}

// MapMouse records a left click.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, buf *loop.InputBuffer) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		buf.Click(msg.X, msg.Y)
	}
}

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
