package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/loop"
	"github.com/vovakirdan/arcade-portal/internal/registry"
	"github.com/vovakirdan/arcade-portal/internal/replay"
	"github.com/vovakirdan/arcade-portal/internal/score"
	"github.com/vovakirdan/arcade-portal/internal/session"
)

// noteSeconds is how long a save notification stays up unless dismissed.
const noteSeconds = 4

// GameOptions configures a game model.
type GameOptions struct {
	Factory    registry.Factory
	Config     core.RuntimeConfig
	UserID     string
	HighScores score.KV
	Reporter   *score.Reporter // Nil disables score reporting
	Logger     *log.Logger
	Palette    *Palette
	RecordPath string // Write a replay of the first run here
}

// NoteMsg carries the outcome of a background score save.
type NoteMsg score.Notification

// listenNotes waits for the next save notification. It stops once the
// reporter is closed.
func listenNotes(r *score.Reporter) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-r.Notifications()
		if !ok {
			return nil
		}
		return NoteMsg(n)
	}
}

// recording follows the first run of a session into a replay file.
type recording struct {
	rec   *replay.Recorder
	path  string
	start int // Driver tick the current instance started on
	done  bool
}

// GameModel runs one session inside Bubble Tea. Ticks come from tea.Tick;
// each one drains the input buffer, steps and renders through the loop
// driver.
type GameModel struct {
	sess    *session.Session
	driver  *loop.Driver
	keys    *KeyMapper
	palette *Palette
	logger  *log.Logger
	rate    int
	tickID  int // Ticks of other models are ignored

	rec       *recording
	note      *score.Notification
	noteTicks int

	standalone bool // Owns the program: listens for notes and quits on back
	quitting   bool
	backToMenu bool
}

// NewGameModel builds the session and its driver.
func NewGameModel(opts GameOptions) GameModel {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Palette == nil {
		opts.Palette = defaultPalette
	}
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	sess := session.New(opts.Factory, session.Options{
		Config:     cfg,
		UserID:     opts.UserID,
		HighScores: opts.HighScores,
		Reporter:   opts.Reporter,
		Logger:     opts.Logger,
		NextSeed:   func() int64 { return time.Now().UnixNano() },
	})

	m := GameModel{
		sess:    sess,
		keys:    NewKeyMapper(),
		palette: opts.Palette,
		logger:  opts.Logger,
		rate:    cfg.TickRate,
		tickID:  nextTickID(),
	}
	if opts.RecordPath != "" {
		m.rec = &recording{rec: replay.NewRecorder(sess.Game().ID(), cfg), path: opts.RecordPath}
	}

	rec := m.rec
	m.driver = loop.NewDriver(sess, cfg.TickRate,
		loop.WithScreen(cfg.ScreenW, cfg.ScreenH),
		loop.WithLogger(opts.Logger),
		loop.WithInputHook(func(tick int, in core.InputFrame) {
			if rec != nil && !rec.done {
				rec.rec.Record(tick-rec.start, in)
			}
		}),
	)
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	if m.standalone {
		return tea.Batch(tickCmd(m.rate, m.tickID), listenNotes(m.sess.Reporter()))
	}
	return tickCmd(m.rate, m.tickID)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.keys.MapMouse(msg, m.driver.Input())
		return m, nil
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	case NoteMsg:
		n := score.Notification(msg)
		m.note = &n
		m.noteTicks = noteSeconds * m.rate
		if m.standalone {
			return m, listenNotes(m.sess.Reporter())
		}
	}
	return m, nil
}

func (m GameModel) textEntry() bool {
	te, ok := m.sess.Game().(registry.TextEntry)
	return ok && te.AcceptsText()
}

// handleKey maps a key press into the input buffer for the next tick.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.note = nil

	phase := m.sess.State().Phase
	if msg.String() == "esc" && phase == core.PhaseGameOver {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.keys.MapKey(msg, m.driver.Input(), m.textEntry()) {
	case KeyQuit:
		m.finishRecording()
		m.quitting = true
		return m, tea.Quit
	case KeyBack:
		if phase == core.PhaseReady || phase == core.PhasePaused || phase == core.PhaseGameOver {
			m.finishRecording()
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case KeyScreenshot:
		m.saveScreenshot()
	}
	return m, nil
}

// handleResize resizes the frame; a game that has not started is rebuilt
// to fit.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	screen := m.driver.Screen()
	screen.Resize(msg.Width, msg.Height)
	if m.sess.Resize(msg.Width, msg.Height) && m.rec != nil && !m.rec.done {
		m.rec.rec = replay.NewRecorder(m.sess.Game().ID(), m.sess.Config())
		m.rec.start = m.driver.Ticks()
	}
	screen.Clear()
	m.sess.Render(screen)
	return m, nil
}

// handleTick runs one simulation tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	res := m.driver.Tick()
	if res.State.GameOver() {
		m.finishRecording()
	}
	if m.noteTicks > 0 {
		m.noteTicks--
		if m.noteTicks == 0 {
			m.note = nil
		}
	}
	return m, tickCmd(m.rate, m.tickID)
}

// finishRecording writes the replay of the first run once.
func (m GameModel) finishRecording() {
	if m.rec == nil || m.rec.done {
		return
	}
	m.rec.done = true
	r := m.rec.rec.Finish(m.sess.State())
	if err := replay.Save(m.rec.path, r); err != nil {
		m.logger.Error("cannot save replay", "path", m.rec.path, "err", err)
		return
	}
	m.logger.Info("replay saved", "path", m.rec.path, "ticks", r.Ticks, "score", r.Score)
}

// saveScreenshot writes the current frame as plain text to
// ~/.arcade/screenshots.
func (m GameModel) saveScreenshot() {
	dir := filepath.Join(config.ArcadeDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.sess.Game().ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.driver.Screen().String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the last frame, with the save notification on the bottom
// row while it is up.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	frame := m.palette.Render(m.driver.Screen())
	if m.note == nil {
		return frame
	}

	text := fmt.Sprintf("Score %d saved for %s", m.note.Score, m.note.Game)
	if m.note.Err != nil {
		text = fmt.Sprintf("Could not save score %d: %v", m.note.Score, m.note.Err)
	}
	lines := strings.Split(frame, "\n")
	lines[len(lines)-1] = m.palette.Banner(text, m.driver.Screen().Width(), m.note.Err != nil)
	return strings.Join(lines, "\n")
}

// Session returns the session the model runs.
func (m GameModel) Session() *session.Session { return m.sess }

// IsQuitting reports whether the player quit the program.
func (m GameModel) IsQuitting() bool { return m.quitting }

// BackToMenu reports whether the player asked to leave the game.
func (m GameModel) BackToMenu() bool { return m.backToMenu }

// Run plays a single game until the player quits.
func Run(opts GameOptions) error {
	model := NewGameModel(opts)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		m.finishRecording()
	}
	return err
}
