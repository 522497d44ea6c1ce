// internal/storage/store.go
//
// Local game history in SQLite, used by the CLI when DB_PATH is set.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/models"
)

// ErrNotFound is returned when no game has the requested ID.
var ErrNotFound = errors.New("game not found")

// Store handles SQLite persistence.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id          TEXT PRIMARY KEY,
			seed        INTEGER NOT NULL,
			winner      TEXT NOT NULL,
			turns       INTEGER NOT NULL,
			blue_score  INTEGER NOT NULL,
			red_score   INTEGER NOT NULL,
			record_json TEXT NOT NULL,
			created_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS games_created_at ON games(created_at);
	`)
	return err
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// SaveGame inserts a finished game, replacing any earlier row with the same ID.
func (s *Store) SaveGame(ctx context.Context, rec models.GameRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", rec.ID, err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO games (id, seed, winner, turns, blue_score, red_score, record_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), int64(rec.Seed), rec.Winner.String(), rec.Turns,
		rec.Score.Blue, rec.Score.Red, string(data), created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", rec.ID, err)
	}
	return nil
}

// GetGame loads one game.
func (s *Store) GetGame(ctx context.Context, id uuid.UUID) (models.GameRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT record_json FROM games WHERE id = ?", id.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameRecord{}, ErrNotFound
	}
	if err != nil {
		return models.GameRecord{}, err
	}
	var rec models.GameRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return models.GameRecord{}, fmt.Errorf("decode game %s: %w", id, err)
	}
	return rec, nil
}

// ListGames returns up to limit games, newest first.
func (s *Store) ListGames(ctx context.Context, limit int) ([]models.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT record_json FROM games ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.GameRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec models.GameRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// WinStats tallies stored games by winner.
func (s *Store) WinStats(ctx context.Context) (models.WinStats, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT winner, COUNT(*) FROM games GROUP BY winner")
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
