// internal/config/config.go
//
// Process configuration, read once from the environment at startup and
// passed to every component that needs it. Nothing below main reads env
// variables directly.
//
// Environment variables (all optional):
//   WORDBOMB_DATA_DIR      data directory (default ./data)
//   WORDBOMB_DICTIONARY    dictionary file; empty means the embedded starter list
//   WORDBOMB_LETTER_POOL   supplementary letter pool (default <data>/found.txt)
//   WORDBOMB_STORAGE       "json" or "sqlite" (default json)
//   WORDBOMB_DB            sqlite database path (default <data>/wordbomb.db)
//   WORDBOMB_DIFFICULTY    default difficulty (Easy | Normal | Hard)
//   WORDBOMB_LIVES         starting lives (default 3)
//   WORDBOMB_VOWEL_CHANCE  probability of an out-of-turn vowel (default 0.2)
//   DAILY_SALT             salt for the daily challenge seed
//   PORT                   stats API port (default 5175)
//   ADMIN_PASSWORD_HASH    bcrypt hash gating POST /auth/token
//   JWT_SECRET             HMAC secret for admin tokens
//   JWT_EXPIRES_HOURS      admin token lifetime (default 12)
//   LOG_LEVEL              zerolog level (default info)

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
)

// Config holds application configuration.
type Config struct {
	DataDir        string
	DictionaryPath string
	LetterPoolPath string
	Storage        string
	DatabasePath   string
	Difficulty     string
	StartingLives  int
	VowelChance    float64
	DailySalt      string
	Port           string
	AdminHash      string
	JWTSecret      string
	TokenTTL       time.Duration
	LogLevel       string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	dataDir := getEnv("WORDBOMB_DATA_DIR", "./data")
	return &Config{
		DataDir:        dataDir,
		DictionaryPath: os.Getenv("WORDBOMB_DICTIONARY"),
		LetterPoolPath: getEnv("WORDBOMB_LETTER_POOL", filepath.Join(dataDir, "found.txt")),
		Storage:        strings.ToLower(getEnv("WORDBOMB_STORAGE", StorageJSON)),
		DatabasePath:   getEnv("WORDBOMB_DB", filepath.Join(dataDir, "wordbomb.db")),
		Difficulty:     getEnv("WORDBOMB_DIFFICULTY", "Normal"),
		StartingLives:  getInt("WORDBOMB_LIVES", 3),
		VowelChance:    getFloat("WORDBOMB_VOWEL_CHANCE", 0.2),
		DailySalt:      getEnv("DAILY_SALT", "local_dev_salt"),
		Port:           getEnv("PORT", "5175"),
		AdminHash:      os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:      getEnv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:       time.Duration(getInt("JWT_EXPIRES_HOURS", 12)) * time.Hour,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// PlayersDir is where the json backend keeps one file per profile.
func (c *Config) PlayersDir() string {
	return filepath.Join(c.DataDir, "players")
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			return f
		}
	}
	return defaultValue
}
