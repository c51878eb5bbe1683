package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Session backends understood by store.New.
const (
	SessionCookie = "cookie"
	SessionMemory = "memory"
)

type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite | postgres | mysql
	DatabasePath    string // sqlite file
	DatabaseURL     string // postgres / mysql DSN
	SecretKey       string
	SessionBackend  string
	ClientOrigin    string
	LogLevel        string
	AllowTestOffset bool   // honour ?test_offset= (QA only)
	EmojiFile       string // optional override of the embedded master list
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ServerPort:      getEnv("PORT", "5175"),
		DatabaseType:    strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DatabasePath:    getEnv("DB_PATH", "./data/emojile.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SecretKey:       getEnv("SECRET_KEY", ""),
		SessionBackend:  strings.ToLower(getEnv("SESSION_BACKEND", SessionCookie)),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5175"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AllowTestOffset: getBool("ALLOW_TEST_OFFSET", false),
		EmojiFile:       getEnv("EMOJI_FILE", ""),
	}

	switch cfg.DatabaseType {
	case "sqlite", "sqlite3":
		cfg.DatabaseType = "sqlite"
	case "postgres", "postgresql":
		cfg.DatabaseType = "postgres"
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for DB_TYPE=%s", cfg.DatabaseType)
		}
	case "mysql":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for DB_TYPE=%s", cfg.DatabaseType)
		}
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", cfg.DatabaseType)
	}

	switch cfg.SessionBackend {
	case SessionCookie, SessionMemory:
	default:
		return nil, fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}

	if cfg.SecretKey == "" {
		cfg.SecretKey = randomKey()
		logger.Warn().Msg("SECRET_KEY not set, using a temporary random key; sessions will not survive a restart")
	}

	logger.Info().
		Str("db_type", cfg.DatabaseType).
		Str("db_path", cfg.DatabasePath).
		Str("server_port", cfg.ServerPort).
		Str("session_backend", cfg.SessionBackend).
		Bool("allow_test_offset", cfg.AllowTestOffset).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func randomKey() string {
	var b [32]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
