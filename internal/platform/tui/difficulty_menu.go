package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

// difficultyOption is one row of the difficulty picker.
type difficultyOption struct {
	Preset config.DifficultyPreset
	Label  string
	Help   string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy", "Slower, more forgiving, fewer points"},
	{config.DifficultyNormal, "Normal", "The game as configured"},
	{config.DifficultyHard, "Hard", "Faster, tighter, more points"},
}

// DifficultyModel lets the player pick a difficulty preset before a game
// starts.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	chosen    *config.DifficultyPreset
	back      bool
}

// NewDifficultyModel creates the picker for the named game, starting on
// Normal.
func NewDifficultyModel(title string, width, height int) DifficultyModel {
	return DifficultyModel{
		title:     title,
		cursor:    1,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, len(difficultyOptions)-1)
		case MenuActionSelect:
			p := difficultyOptions[m.cursor].Preset
			m.chosen = &p
		case MenuActionBack, MenuActionQuit:
			m.back = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the picker.
func (m DifficultyModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		line := fmt.Sprintf("  %-7s %s", opt.Label, menuDimStyle.Render(opt.Help))
		if i == m.cursor {
			line = menuPickStyle.Render("> "+fmt.Sprintf("%-7s", opt.Label)) + " " + opt.Help
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Play  |  Esc: Back"), m.width))
	return b.String()
}

// Chosen returns the picked preset, or nil while still choosing.
func (m DifficultyModel) Chosen() *config.DifficultyPreset {
	return m.chosen
}

// WantsBack reports whether the player backed out.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}
