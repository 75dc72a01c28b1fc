package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database (watchlist postgres source only)
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Upstream market data
	Stockbit StockbitConfig

	// Ranking
	Watchlist WatchlistConfig
	Ranking   RankingConfig
	Indices   IndicesConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// StockbitConfig holds market detector / orderbook API configuration
type StockbitConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	RPS     int // outbound requests per second, 0 = unlimited
}

// WatchlistConfig selects where watchlist groups are resolved from
type WatchlistConfig struct {
	Source  string // http, postgres
	BaseURL string
}

// RankingConfig holds orchestrator tuning
type RankingConfig struct {
	BatchSize int
	CacheTTL  time.Duration // 0 disables result caching
	// WarmupSchedule is the cron expression (with seconds) for the cache warm-up job
	WarmupSchedule string
	// WarmupDays is the trailing window used by the warm-up job
	WarmupDays int
}

// IndicesConfig points at an optional override file for static index members
type IndicesConfig struct {
	File string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Stockbit: StockbitConfig{
			BaseURL: getEnv("STOCKBIT_BASE_URL", "https://exodus.stockbit.com"),
			Token:   getEnv("STOCKBIT_TOKEN", ""),
			Timeout: getEnvAsDuration("STOCKBIT_TIMEOUT", "15s"),
			RPS:     getEnvAsInt("STOCKBIT_RPS", 10),
		},

		Watchlist: WatchlistConfig{
			Source:  getEnv("WATCHLIST_SOURCE", "http"),
			BaseURL: getEnv("WATCHLIST_BASE_URL", "http://localhost:3000"),
		},

		Ranking: RankingConfig{
			BatchSize:      getEnvAsInt("RANKING_BATCH_SIZE", 5),
			CacheTTL:       getEnvAsDuration("RANKING_CACHE_TTL", "0s"),
			WarmupSchedule: getEnv("RANKING_WARMUP_SCHEDULE", "0 */30 9-16 * * 1-5"),
			WarmupDays:     getEnvAsInt("RANKING_WARMUP_DAYS", 7),
		},

		Indices: IndicesConfig{
			File: getEnv("INDICES_FILE", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	switch c.Watchlist.Source {
	case "http":
		if c.Watchlist.BaseURL == "" {
			return fmt.Errorf("WATCHLIST_BASE_URL is required when WATCHLIST_SOURCE=http")
		}
	case "postgres":
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when WATCHLIST_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("WATCHLIST_SOURCE must be one of: http, postgres")
	}

	if c.Ranking.BatchSize < 1 {
		return fmt.Errorf("RANKING_BATCH_SIZE must be >= 1")
	}

	if c.Stockbit.BaseURL == "" {
		return fmt.Errorf("STOCKBIT_BASE_URL is required")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
