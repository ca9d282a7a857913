package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/score"
)

// HighScores is the high_scores table seen as a score.KV.
type HighScores struct {
	db *sql.DB
}

var _ score.KV = HighScores{}

// HighScores returns the KV view of the high-score table.
func (s *Store) HighScores() HighScores {
	return HighScores{db: s.db}
}

// Get implements score.KV.
func (h HighScores) Get(key string) (int, bool, error) {
	var v int
	err := h.db.QueryRow("SELECT score FROM high_scores WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read high score %q: %w", key, err)
	}
	return v, true, nil
}

// Set implements score.KV.
func (h HighScores) Set(key string, value int) error {
	_, err := h.db.Exec(
		`INSERT INTO high_scores (key, score, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write high score %q: %w", key, err)
	}
	return nil
}
