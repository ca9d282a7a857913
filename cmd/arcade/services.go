package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-portal/internal/catalog"
	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
	"github.com/vovakirdan/arcade-portal/internal/platform/tui"
	"github.com/vovakirdan/arcade-portal/internal/score"
	"github.com/vovakirdan/arcade-portal/internal/storage"
	"github.com/vovakirdan/arcade-portal/internal/storage/remote"
)

// connectTimeout bounds the connection to the hosted leaderboard.
const connectTimeout = 5 * time.Second

// services are the stores and loggers shared by a command. Every store is
// optional: a missing database only means fewer scores are kept.
type services struct {
	logger     *log.Logger
	logFile    *os.File
	store      *storage.Store
	remote     *remote.Store
	highScores score.KV
	recorder   score.Recorder
	reporter   *score.Reporter
	catalog    *catalog.Catalog
}

// openServices opens the stores named by the global flags. With toStderr
// the log goes to the terminal; otherwise to the log file so it does not
// tear the TUI.
func openServices(toStderr bool) *services {
	s := &services{}
	s.logger, s.logFile = openLogger(toStderr)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		s.logger.Warn("local scores disabled", "db", flagDBPath, "err", err)
	} else {
		s.store = store
	}

	if flagRemoteDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		rs, err := remote.Open(ctx, flagRemoteDSN)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not reach the hosted leaderboard: %v\n", err)
			s.logger.Warn("remote scores disabled", "err", err)
		} else {
			s.remote = rs
		}
	}

	var recorders score.Multi
	if s.store != nil {
		s.highScores = s.store.HighScores()
		recorders = append(recorders, s.store)
	} else {
		s.highScores = score.NewMemoryKV()
	}
	if s.remote != nil {
		recorders = append(recorders, s.remote)
	}
	if len(recorders) > 0 {
		s.recorder = recorders
		s.reporter = score.NewReporter(recorders, s.logger)
	}

	cat, err := catalog.Load("")
	if err != nil {
		s.logger.Warn("catalog override ignored", "err", err)
	}
	s.catalog = cat
	return s
}

func openLogger(toStderr bool) (*log.Logger, *os.File) {
	opts := log.Options{ReportTimestamp: true, Prefix: "arcade"}
	if toStderr {
		return log.NewWithOptions(os.Stderr, opts), nil
	}

	path := config.ExpandPath(flagLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			return log.NewWithOptions(f, opts), f
		}
	}
	return log.NewWithOptions(io.Discard, opts), nil
}

// scoreSource returns the local store as a scoreboard source, or nil.
func (s *services) scoreSource() tui.ScoreSource {
	if s.store == nil {
		return nil
	}
	return s.store
}

// Close waits for pending score saves and releases the stores.
func (s *services) Close() {
	if s.reporter != nil {
		s.reporter.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.remote != nil {
		s.remote.Close()
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}

// runtimeConfig sizes the screen to the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
