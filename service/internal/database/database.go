// internal/database/database.go
//
// Server-side game history in PostgreSQL.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/models"
)

// ErrNotFound is returned when no game has the requested ID.
var ErrNotFound = errors.New("game not found")

// Store persists finished games through a pgx connection pool.
type Store struct {
	Pool *pgxpool.Pool
}

// Connect opens a pool for url, checks it with a ping and runs migrations.
func Connect(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &Store{Pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS codenames_games (
			id         UUID PRIMARY KEY,
			seed       BIGINT NOT NULL,
			winner     TEXT NOT NULL,
			turns      INTEGER NOT NULL,
			blue_score INTEGER NOT NULL,
			red_score  INTEGER NOT NULL,
			record     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// Close releases the pool.
func (s *Store) Close() { s.Pool.Close() }

// SaveGame upserts a finished game.
func (s *Store) SaveGame(ctx context.Context, rec models.GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", rec.ID, err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = s.Pool.Exec(ctx, `
		INSERT INTO codenames_games (id, seed, winner, turns, blue_score, red_score, record, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			winner = EXCLUDED.winner,
			turns = EXCLUDED.turns,
			blue_score = EXCLUDED.blue_score,
			red_score = EXCLUDED.red_score,
			record = EXCLUDED.record`,
		rec.ID, int64(rec.Seed), rec.Winner.String(), rec.Turns,
		rec.Score.Blue, rec.Score.Red, data, created,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", rec.ID, err)
	}
	return nil
}

// GetGame loads one game.
func (s *Store) GetGame(ctx context.Context, id uuid.UUID) (models.GameRecord, error) {
	var data []byte
	err := s.Pool.QueryRow(ctx, "SELECT record FROM codenames_games WHERE id = $1", id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.GameRecord{}, ErrNotFound
	}
	if err != nil {
		return models.GameRecord{}, fmt.Errorf("load game %s: %w", id, err)
	}
	var rec models.GameRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.GameRecord{}, fmt.Errorf("decode game %s: %w", id, err)
	}
	return rec, nil
}

// WinStats tallies stored games by winner.
func (s *Store) WinStats(ctx context.Context) (models.WinStats, error) {
	rows, err := s.Pool.Query(ctx, "SELECT winner, COUNT(*) FROM codenames_games GROUP BY winner")
	if err != nil {
		return models.WinStats{}, err
	}
	defer rows.Close()
	var stats models.WinStats
	for rows.Next() {
		var (
			winner string
			n      int64
		)
		if err := rows.Scan(&winner, &n); err != nil {
			return models.WinStats{}, err
		}
		switch winner {
		case engine.Blue.String():
			stats.Blue += n
		case engine.Red.String():
			stats.Red += n
		default:
			stats.Draws += n
		}
	}
	return stats, rows.Err()
}
