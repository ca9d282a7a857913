// Package remote stores score records in a hosted Postgres database so
// scores from every machine end up on one leaderboard.
package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vovakirdan/arcade-portal/internal/score"
)

// Store is a score.Recorder backed by a pgx connection pool.
type Store struct {
	db *pgxpool.Pool
}

var _ score.Recorder = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS game_scores (
	id          BIGSERIAL PRIMARY KEY,
	record_id   TEXT UNIQUE,
	user_id     TEXT NOT NULL,
	game_name   TEXT NOT NULL,
	score       INTEGER NOT NULL,
	time_taken  BIGINT,
	moves       INTEGER,
	difficulty  TEXT NOT NULL DEFAULT '',
	completed   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS game_scores_top ON game_scores (game_name, score DESC);
`

// Open connects to dsn, checks the connection and creates the table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("remote: cannot connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("remote: cannot reach database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("remote: migration failed: %w", err)
	}
	return &Store{db: pool}, nil
}

// Close releases the pool.
func (s *Store) Close() {
	s.db.Close()
}

// SaveRecord implements score.Recorder. A record ID already stored is ignored.
func (s *Store) SaveRecord(ctx context.Context, r score.Record) error {
	var recordID *string
	if r.ID != "" {
		recordID = &r.ID
	}
	var timeTaken *int64
	if r.TimeTaken != nil {
		ms := r.TimeTaken.Milliseconds()
		timeTaken = &ms
	}
	created := r.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO game_scores (record_id, user_id, game_name, score, time_taken, moves, difficulty, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (record_id) DO NOTHING`,
		recordID, r.UserID, r.GameName, r.Score, timeTaken, r.Moves, r.Difficulty, r.Completed, created,
	)
	if err != nil {
		return fmt.Errorf("remote: cannot save score: %w", err)
	}
	return nil
}

// TopScores returns the best records of a game across all players.
func (s *Store) TopScores(ctx context.Context, game string, limit int) ([]score.Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(ctx,
		`SELECT record_id, user_id, game_name, score, time_taken, moves, difficulty, completed, created_at
		 FROM game_scores
		 WHERE game_name = $1
		 ORDER BY score DESC, created_at ASC
		 LIMIT $2`,
		game, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("remote: cannot query scores: %w", err)
	}
	defer rows.Close()

	var records []score.Record
	for rows.Next() {
		var (
			r         score.Record
			recordID  *string
			timeTaken *int64
		)
		if err := rows.Scan(&recordID, &r.UserID, &r.GameName, &r.Score, &timeTaken, &r.Moves, &r.Difficulty, &r.Completed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("remote: cannot scan row: %w", err)
		}
		if recordID != nil {
			r.ID = *recordID
		}
		if timeTaken != nil {
			r.TimeTaken = score.Durationp(time.Duration(*timeTaken) * time.Millisecond)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remote: row iteration error: %w", err)
	}
	return records, nil
}

// HighScore returns a game's best score and whether any score exists.
func (s *Store) HighScore(ctx context.Context, game string) (int, bool, error) {
	var best int
	err := s.db.QueryRow(ctx,
		`SELECT score FROM game_scores WHERE game_name = $1 ORDER BY score DESC LIMIT 1`,
		game,
	).Scan(&best)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("remote: cannot query high score: %w", err)
	}
	return best, true, nil
}

// Clear removes a game's records.
func (s *Store) Clear(ctx context.Context, game string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM game_scores WHERE game_name = $1`, game); err != nil {
		return fmt.Errorf("remote: cannot clear scores: %w", err)
	}
	return nil
}
