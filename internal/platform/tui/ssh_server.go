package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/score"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file. If empty, a key is
	// generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout closes connections without input for this long.
	IdleTimeout time.Duration

	TickRate   int
	ConfigPath string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
	}
}

// SSHServices are shared by every connection. Each connection gets its own
// reporter on top of Recorder so save notes reach the right player.
type SSHServices struct {
	Scores     ScoreSource
	HighScores score.KV
	Recorder   score.Recorder // Nil disables reporting
	Catalog    *catalog.Catalog
}

// SSHServer serves the arcade over SSH. The SSH user name is the player's
// identity for score records.
type SSHServer struct {
	config   SSHServerConfig
	services SSHServices
	server   *ssh.Server
	logger   *log.Logger
}

// NewSSHServer creates the server. Nothing listens until ListenAndServe.
func NewSSHServer(cfg SSHServerConfig, services SSHServices, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade-ssh",
		})
	}
	if services.HighScores == nil {
		services.HighScores = score.NewMemoryKV()
	}

	srv := &SSHServer{
		config:   cfg,
		services: services,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = filepath.Join(config.ArcadeDir(), "host_key")
	}
	hostKeyPath = config.ExpandPath(hostKeyPath)
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler builds the arcade for one SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	var reporter *score.Reporter
	if s.services.Recorder != nil {
		reporter = score.NewReporter(s.services.Recorder, logger)
		go func() {
			// Ends the session's note listener once the connection is gone.
			<-sess.Context().Done()
			reporter.Close()
		}()
	}

	app := NewApp(AppOptions{
		Config: core.RuntimeConfig{
			ScreenW:    pty.Window.Width,
			ScreenH:    pty.Window.Height,
			TickRate:   s.config.TickRate,
			ConfigPath: s.config.ConfigPath,
		},
		UserID:     sess.User(),
		Scores:     s.services.Scores,
		HighScores: s.services.HighScores,
		Reporter:   reporter,
		Catalog:    s.services.Catalog,
		Logger:     logger,
		Palette:    NewPalette(bubbletea.MakeRenderer(sess)),
	})

	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// ListenAndServe starts the server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		return fmt.Errorf("tui: SSH server: %w", err)
	}
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
