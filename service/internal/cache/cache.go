// internal/cache/cache.go
//
// Redis-backed win statistics and per-game action logs.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spymaster-lab/codenames/engine"
	"github.com/spymaster-lab/codenames/service/internal/models"
)

const (
	winsKey = "codenames:wins"

	fieldBlue = "blue"
	fieldRed  = "red"
	fieldDraw = "draw"

	// ActionTTL bounds how long a game's action log is kept.
	ActionTTL = 24 * time.Hour
)

// Cache wraps a Redis client.
type Cache struct {
	Rdb *redis.Client
}

// New connects to addr and checks the connection.
func New(ctx context.Context, addr string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return &Cache{Rdb: rdb}, nil
}

// Close closes the client.
func (c *Cache) Close() error { return c.Rdb.Close() }

// RecordWin counts one finished game; NoColor counts as a draw.
func (c *Cache) RecordWin(ctx context.Context, winner engine.TeamColor) error {
	field := fieldDraw
	switch winner {
	case engine.Blue:
		field = fieldBlue
	case engine.Red:
		field = fieldRed
	}
	return c.Rdb.HIncrBy(ctx, winsKey, field, 1).Err()
}

// WinStats returns the counts recorded so far.
func (c *Cache) WinStats(ctx context.Context) (models.WinStats, error) {
	m, err := c.Rdb.HGetAll(ctx, winsKey).Result()
	if err != nil {
		return models.WinStats{}, err
	}
	var stats models.WinStats
	for field, dst := range map[string]*int64{fieldBlue: &stats.Blue, fieldRed: &stats.Red, fieldDraw: &stats.Draws} {
		v, ok := m[field]
		if !ok {
			continue
		}
		if *dst, err = strconv.ParseInt(v, 10, 64); err != nil {
			return models.WinStats{}, fmt.Errorf("win stats field %s: %w", field, err)
		}
	}
	return stats, nil
}

func actionsKey(gameID uuid.UUID) string { return "codenames:game:" + gameID.String() + ":actions" }

// PublishGameAction appends an action to its game's log.
func (c *Cache) PublishGameAction(ctx context.Context, rec models.GameAction) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode action: %w", err)
	}
	key := actionsKey(rec.GameID)
	pipe := c.Rdb.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, ActionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// GameActions returns a game's log in publication order.
func (c *Cache) GameActions(ctx context.Context, gameID uuid.UUID) ([]models.GameAction, error) {
	raw, err := c.Rdb.LRange(ctx, actionsKey(gameID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]models.GameAction, 0, len(raw))
	for _, s := range raw {
		var a models.GameAction
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return nil, fmt.Errorf("decode action: %w", err)
		}
		out = append(out, a)
	}
	return out, nil
}
