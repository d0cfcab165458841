package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	LogLevel string
	Database DatabaseConfig
	Game     GameConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	Name       string
	User       string
	Password   string
	SQLitePath string
}

// GameConfig holds puzzle settings
type GameConfig struct {
	DictionaryPath string
	// DictionaryFailOpen accepts every word while no dictionary is loaded
	DictionaryFailOpen bool
	// ScoreTolerance is how far a stored score may exceed the recomputed one
	ScoreTolerance float64
	Timezone       string
	RetentionDays  int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	failOpen, err := getEnvBool("DICTIONARY_FAIL_OPEN", true)
	if err != nil {
		return nil, err
	}
	tolerance, err := getEnvFloat("SCORE_TOLERANCE", 1.1)
	if err != nil {
		return nil, err
	}
	retention, err := getEnvInt("RETENTION_DAYS", 60)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", DriverPostgres),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			Name:       getEnv("DB_NAME", "letterlinks"),
			User:       getEnv("DB_USER", "letterlinks"),
			Password:   os.Getenv("DB_PASSWORD"),
			SQLitePath: getEnv("SQLITE_PATH", "./data/letterlinks.db"),
		},
		Game: GameConfig{
			DictionaryPath:     getEnv("DICTIONARY_PATH", "./data/dictionary.json"),
			DictionaryFailOpen: failOpen,
			ScoreTolerance:     tolerance,
			Timezone:           getEnv("PUZZLE_TIMEZONE", "UTC"),
			RetentionDays:      retention,
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	switch cfg.Database.Driver {
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Game.ScoreTolerance < 1 {
		return nil, fmt.Errorf("SCORE_TOLERANCE must be at least 1")
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// Location returns the time zone in which the daily board changes
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Game.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid PUZZLE_TIMEZONE: %w", err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
