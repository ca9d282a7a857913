package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/score"
)

// ScoreEntry is a stored score record.
type ScoreEntry struct {
	ID int64
	score.Record
}

var _ score.Recorder = (*Store)(nil)

// SaveRecord implements score.Recorder. Saving the same record ID twice is
// a no-op.
func (s *Store) SaveRecord(ctx context.Context, r score.Record) error {
	_, err := s.insert(ctx, r)
	return err
}

// SaveScore records an anonymous score for the given game.
// Returns the ID of the inserted row.
func (s *Store) SaveScore(gameID string, value int) (int64, error) {
	return s.insert(context.Background(), score.Record{GameName: gameID, Score: value})
}

func (s *Store) insert(ctx context.Context, r score.Record) (int64, error) {
	var (
		recordID  sql.NullString
		timeTaken sql.NullInt64
		moves     sql.NullInt64
	)
	if r.ID != "" {
		recordID = sql.NullString{String: r.ID, Valid: true}
	}
	if r.TimeTaken != nil {
		timeTaken = sql.NullInt64{Int64: r.TimeTaken.Milliseconds(), Valid: true}
	}
	if r.Moves != nil {
		moves = sql.NullInt64{Int64: int64(*r.Moves), Valid: true}
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO scores
		 (record_id, user_id, game_id, score, time_taken_ms, moves, difficulty, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(record_id) DO NOTHING`,
		recordID, r.UserID, r.GameName, r.Score, timeTaken, moves, r.Difficulty, r.Completed,
		created.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const selectScores = `SELECT id, record_id, user_id, game_id, score, time_taken_ms, moves, difficulty, completed, created_at FROM scores`

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var (
			e         ScoreEntry
			recordID  sql.NullString
			timeTaken sql.NullInt64
			moves     sql.NullInt64
			createdAt any
		)
		if err := rows.Scan(&e.ID, &recordID, &e.UserID, &e.GameName, &e.Score,
			&timeTaken, &moves, &e.Difficulty, &e.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Record.ID = recordID.String
		if timeTaken.Valid {
			e.TimeTaken = score.Durationp(time.Duration(timeTaken.Int64) * time.Millisecond)
		}
		if moves.Valid {
			e.Moves = score.Intp(int(moves.Int64))
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// TopScores retrieves the top N scores for the given game, best first.
// Ties go to the earlier record.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(selectScores+` WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// UserScores retrieves a player's most recent records across all games.
func (s *Store) UserScores(userID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(selectScores+` WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user scores: %w", err)
	}
	return scanScores(rows)
}

// HighScore returns the highest recorded score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// ClearScores deletes all records and the high score of the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM high_scores WHERE key = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear high score: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	Completed  int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.Completed, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), SUM(completed), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.Completed, &gs.HighScore, &gs.AvgScore, &gs.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
