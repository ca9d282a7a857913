package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/score"
)

// AppOptions configures the full arcade flow.
type AppOptions struct {
	Config     core.RuntimeConfig // Screen size, tick rate, config path; seed 0 picks a new one per game
	UserID     string             // Scores are reported only when set
	Scores     ScoreSource        // Nil hides the scoreboard contents
	HighScores score.KV
	Reporter   *score.Reporter
	Catalog    *catalog.Catalog
	Logger     *log.Logger
	Palette    *Palette
}

type screen int

const (
	screenMenu screen = iota
	screenDifficulty
	screenGame
	screenScores
)

// App moves the player between the menu, the difficulty picker, the
// scoreboard and a running game inside one Bubble Tea program.
type App struct {
	opts   AppOptions
	config core.RuntimeConfig
	screen screen

	menu       MenuModel
	difficulty DifficultyModel
	scores     ScoreboardModel
	game       GameModel
	pick       *MenuItem

	quitting bool
}

// NewApp starts on the menu.
func NewApp(opts AppOptions) App {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	return App{
		opts:   opts,
		config: opts.Config,
		menu:   NewMenuModel(opts.Catalog, opts.Config.ScreenW, opts.Config.ScreenH),
	}
}

// Init starts listening for save notifications.
func (a App) Init() tea.Cmd {
	return listenNotes(a.opts.Reporter)
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.config.ScreenW, a.config.ScreenH = msg.Width, msg.Height
	case NoteMsg:
		// Only the game shows notes, but the listener must keep running.
		if a.screen == screenGame {
			model, _ := a.game.Update(msg)
			a.game = model.(GameModel)
		}
		return a, listenNotes(a.opts.Reporter)
	}

	switch a.screen {
	case screenDifficulty:
		return a.updateDifficulty(msg)
	case screenGame:
		return a.updateGame(msg)
	case screenScores:
		return a.updateScores(msg)
	default:
		return a.updateMenu(msg)
	}
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.menu.Update(msg)
	a.menu = model.(MenuModel)

	switch {
	case a.menu.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.menu.WantsScoreboard():
		a.scores = NewScoreboardModel(a.opts.Scores, a.config.ScreenW, a.config.ScreenH)
		a.screen = screenScores
		a.resetMenu()
	case a.menu.Selected() != nil:
		a.pick = a.menu.Selected()
		a.difficulty = NewDifficultyModel(a.pick.Entry.Title, a.config.ScreenW, a.config.ScreenH)
		a.screen = screenDifficulty
		a.resetMenu()
	}
	return a, cmd
}

func (a App) updateDifficulty(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.difficulty.Update(msg)
	a.difficulty = model.(DifficultyModel)

	if a.difficulty.WantsBack() {
		a.screen = screenMenu
		return a, nil
	}
	if p := a.difficulty.Chosen(); p != nil {
		return a.startGame(string(*p))
	}
	return a, cmd
}

// startGame builds the game model for the picked game.
func (a App) startGame(difficulty string) (tea.Model, tea.Cmd) {
	factory, err := registry.Lookup(a.pick.GameID)
	if err != nil {
		a.opts.Logger.Error("cannot start game", "game", a.pick.GameID, "err", err)
		a.screen = screenMenu
		return a, nil
	}

	cfg := a.config
	cfg.Difficulty = difficulty
	a.game = NewGameModel(GameOptions{
		Factory:    factory,
		Config:     cfg,
		UserID:     a.opts.UserID,
		HighScores: a.opts.HighScores,
		Reporter:   a.opts.Reporter,
		Logger:     a.opts.Logger,
		Palette:    a.opts.Palette,
	})
	a.screen = screenGame
	a.opts.Logger.Info("game started", "game", a.pick.GameID, "difficulty", difficulty, "user", a.opts.UserID)
	return a, a.game.Init()
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.game.Update(msg)
	a.game = model.(GameModel)

	switch {
	case a.game.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.game.BackToMenu():
		a.screen = screenMenu
		return a, nil
	}
	return a, cmd
}

func (a App) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.scores.Update(msg)
	a.scores = model.(ScoreboardModel)

	switch {
	case a.scores.IsQuitting():
		a.quitting = true
		return a, tea.Quit
	case a.scores.IsGoingBack():
		a.screen = screenMenu
		return a, nil
	}
	return a, cmd
}

// resetMenu clears the menu's one-shot flags, keeping the cursor.
func (a *App) resetMenu() {
	a.menu.selected = nil
	a.menu.openScoreboard = false
	a.menu.width, a.menu.height = a.config.ScreenW, a.config.ScreenH
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.screen {
	case screenDifficulty:
		return a.difficulty.View()
	case screenGame:
		return a.game.View()
	case screenScores:
		return a.scores.View()
	default:
		return a.menu.View()
	}
}

// RunApp runs the arcade flow on the local terminal.
func RunApp(opts AppOptions) error {
	p := tea.NewProgram(
		NewApp(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
