// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spymaster-lab/codenames/engine"
)

// Config holds every setting the CLI and the HTTP server read from the
// environment.
type Config struct {
	LogLevel  string // logrus level name
	LogFormat string // "text" or "json"

	Seed            uint64 // board shuffle and word sampling seed
	MaxTurns        int    // committed rounds before a draw; 0 = unlimited
	NBlue           int
	NRed            int
	RolloutAttempts int // speculative rounds before each committed round

	WordsFile string // optional word list; embedded list when empty
	BoardFile string // two-row board CSV for board mode

	PolicyURL     string        // remote actor endpoint
	PolicyTimeout time.Duration // per request

	DBPath      string // SQLite history; empty disables it
	DatabaseURL string // PostgreSQL history; empty disables it
	RedisAddr   string // win statistics; empty disables them

	Addr              string // HTTP listen address
	JWTSecret         string
	AdminPasswordHash string // bcrypt hash checked by POST /auth/token
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	rules := engine.DefaultRules()
	return Config{
		LogLevel:      "info",
		LogFormat:     "text",
		MaxTurns:      rules.MaxTurns,
		NBlue:         rules.NBlue,
		NRed:          rules.NRed,
		BoardFile:     "board.csv",
		PolicyTimeout: 60 * time.Second,
		Addr:          ":8080",
	}
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	c := Default()
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.WordsFile = getEnv("WORDS_FILE", c.WordsFile)
	c.BoardFile = getEnv("BOARD_FILE", c.BoardFile)
	c.PolicyURL = getEnv("POLICY_URL", c.PolicyURL)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.Addr = getEnv("ADDR", c.Addr)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.AdminPasswordHash = getEnv("ADMIN_PASSWORD_HASH", c.AdminPasswordHash)

	var err error
	if c.Seed, err = getUint("SEED", c.Seed); err != nil {
		return Config{}, err
	}
	if c.MaxTurns, err = getInt("MAX_TURNS", c.MaxTurns); err != nil {
		return Config{}, err
	}
	if c.NBlue, err = getInt("N_BLUE", c.NBlue); err != nil {
		return Config{}, err
	}
	if c.NRed, err = getInt("N_RED", c.NRed); err != nil {
		return Config{}, err
	}
	if c.RolloutAttempts, err = getInt("ROLLOUT_ATTEMPTS", c.RolloutAttempts); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("POLICY_TIMEOUT"); v != "" {
		if c.PolicyTimeout, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("POLICY_TIMEOUT: %w", err)
		}
	}
	return c, c.Validate()
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.MaxTurns < 0 {
		return fmt.Errorf("MAX_TURNS must be >= 0, got %d", c.MaxTurns)
	}
	if c.RolloutAttempts < 0 {
		return fmt.Errorf("ROLLOUT_ATTEMPTS must be >= 0, got %d", c.RolloutAttempts)
	}
	if c.NBlue < 1 || c.NRed < 1 || c.NBlue+c.NRed+1 > engine.BoardSize {
		return fmt.Errorf("N_BLUE=%d N_RED=%d do not fit a %d-word board", c.NBlue, c.NRed, engine.BoardSize)
	}
	return nil
}

// Rules maps the configuration onto engine rules.
func (c Config) Rules() engine.Rules {
	return engine.Rules{NBlue: c.NBlue, NRed: c.NRed, MaxTurns: c.MaxTurns}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}

func getUint(k string, def uint64) (uint64, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
