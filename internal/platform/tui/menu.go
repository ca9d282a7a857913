package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/registry"
)

// Menu layout
const (
	minWidthForDetails = 70
	listWidth          = 24
)

// MenuItem is a selectable game.
type MenuItem struct {
	GameID string
	Entry  catalog.Entry
	Art    []string
}

// MenuModel is the game picker: the registered games on the left, the
// selected game's catalog entry on the right.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists every registered game with its catalog entry.
func NewMenuModel(cat *catalog.Catalog, width, height int) MenuModel {
	if cat == nil {
		cat = catalog.Default()
	}
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		e := cat.Lookup(g.ID, g.Title)
		items = append(items, MenuItem{GameID: g.ID, Entry: e, Art: cat.Thumbnail(e)})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
	}
	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("A R C A D E"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No games installed.", m.width))
		b.WriteString("\n")
		return b.String()
	}

	list := m.viewList()
	if m.width >= minWidthForDetails {
		details := menuPanelStyle.Width(max(m.width-listWidth-8, 20)).Render(m.viewDetails(m.items[m.cursor]))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, "  ", menuPanelStyle.Width(listWidth).Render(list), " ", details))
	} else {
		b.WriteString(list)
	}

	b.WriteString("\n\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) viewList() string {
	var b strings.Builder
	for i, item := range m.items {
		line := "  " + item.Entry.Title
		if i == m.cursor {
			line = menuPickStyle.Render("> " + item.Entry.Title)
		}
		b.WriteString(line)
		if i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m MenuModel) viewDetails(item MenuItem) string {
	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(item.Entry.Title))
	b.WriteString("\n")
	b.WriteString(item.Entry.Blurb)
	b.WriteString("\n\n")
	b.WriteString(strings.Join(item.Art, "\n"))
	b.WriteString("\n")
	for _, line := range item.Entry.Instructions {
		b.WriteString(fmt.Sprintf("\n• %s", line))
	}
	return b.String()
}

// Selected returns the chosen game, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the player asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the player asked for the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
