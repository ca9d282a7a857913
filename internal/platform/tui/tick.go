// Package tui runs the portal in a terminal with Bubble Tea: the game
// model, the catalog menu, the difficulty picker, the scoreboard and the
// SSH server that serves all of them remotely.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers one simulation tick of the game model with the same ID.
type TickMsg struct {
	ID   int
	Time time.Time
}

var lastTickID atomic.Int64

// nextTickID returns a tick chain ID unique within the process.
func nextTickID() int {
	return int(lastTickID.Add(1))
}

// tickCmd schedules the next tick of chain id at the given rate.
func tickCmd(tickRate, id int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
