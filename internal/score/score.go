// Package score defines what a finished game reports and the contracts of
// the stores it is reported to.
package score

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Record is one finished game session. Records are append-only.
type Record struct {
	ID         string // Session ID, unique per record
	UserID     string
	GameName   string
	Score      int
	TimeTaken  *time.Duration // Set by games that time the player
	Moves      *int           // Set by games that count moves
	Difficulty string
	Completed  bool // The player finished the content rather than losing
	CreatedAt  time.Time
}

// Recorder persists score records.
type Recorder interface {
	SaveRecord(ctx context.Context, r Record) error
}

// KV stores the best score per game.
type KV interface {
	// Get returns the stored value and whether one exists.
	Get(key string) (int, bool, error)
	Set(key string, value int) error
}

// MemoryKV is a process-lifetime KV.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryKV returns an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]int)}
}

// Get implements KV.
func (m *MemoryKV) Get(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *MemoryKV) Set(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Multi saves every record to all of its recorders. A failing recorder
// does not stop the others; their errors are joined.
type Multi []Recorder

// SaveRecord implements Recorder.
func (m Multi) SaveRecord(ctx context.Context, r Record) error {
	var errs []error
	for _, rec := range m {
		if rec == nil {
			continue
		}
		if err := rec.SaveRecord(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every record.
type Discard struct{}

// SaveRecord implements Recorder.
func (Discard) SaveRecord(context.Context, Record) error { return nil }

// Durationp returns a pointer to d.
func Durationp(d time.Duration) *time.Duration { return &d }

// Intp returns a pointer to n.
func Intp(n int) *int { return &n }
