package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	AppEnv string
	DB     DBConfig
	Redis  RedisConfig
	Seeder SeederConfig
	Server ServerConfig
}

// DBType represents the backing document store
type DBType string

const (
	DBTypePostgres DBType = "postgres"
	DBTypeSQLite   DBType = "sqlite"
	DBTypeMemory   DBType = "memory"
)

// DBConfig holds document store configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the connection string for the configured store type
func (c DBConfig) DSN() string {
	switch c.Type {
	case DBTypeSQLite:
		if c.Name != "" {
			return c.Name
		}
		return "file::memory:?cache=shared"
	default:
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
		)
	}
}

// RedisConfig holds the optional Redis fetch-cache configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
}

// RunMode controls the reseed policy for a pipeline run
type RunMode string

const (
	// RunModeFull clears affected collections before reseeding them
	RunModeFull RunMode = "full"
	// RunModeAdditive skips any collection that is already populated
	RunModeAdditive RunMode = "additive"
)

// SeederConfig holds settings for the import pipeline
type SeederConfig struct {
	DataDir         string
	Mode            RunMode
	BatchSize       int
	DeleteBatchSize int
	Concurrency     int
	AllowFuzzyMatch bool
	UseRemoteCrime  bool
	CrimeIndexURL   string
	AdvisoriesURL   string
	FetchTimeout    time.Duration
	FetchCacheTTL   time.Duration
	FetchRatePerSec float64
}

// ServerConfig holds the admin trigger server configuration
type ServerConfig struct {
	Port   string
	APIKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", string(DBTypeMemory)))
	if dbType != DBTypePostgres && dbType != DBTypeSQLite && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	mode := RunMode(getEnv("SEED_MODE", string(RunModeFull)))
	if mode != RunModeFull && mode != RunModeAdditive {
		return nil, fmt.Errorf("invalid SEED_MODE %q (expected full or additive)", mode)
	}

	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			User:     getEnv("PG_USER", "gazetteer"),
			Password: getEnv("PG_PASSWORD", ""),
			Name:     getEnv("PG_DB", "gazetteer"),
			SSLMode:  getEnv("PG_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Seeder: SeederConfig{
			DataDir:         getEnv("SEED_DATA_DIR", "data"),
			Mode:            mode,
			BatchSize:       getEnvInt("SEED_BATCH_SIZE", 200),
			DeleteBatchSize: getEnvInt("SEED_DELETE_BATCH_SIZE", 2000),
			Concurrency:     getEnvInt("SEED_CONCURRENCY", 8),
			AllowFuzzyMatch: getEnvBool("RESOLVER_ALLOW_FUZZY", true),
			UseRemoteCrime:  getEnvBool("CRIME_USE_REMOTE", false),
			CrimeIndexURL:   getEnv("CRIME_INDEX_URL", ""),
			AdvisoriesURL:   getEnv("ADVISORIES_FEED_URL", ""),
			FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
			FetchCacheTTL:   getEnvDuration("FETCH_CACHE_TTL", 6*time.Hour),
			FetchRatePerSec: getEnvFloat("FETCH_RATE_PER_SEC", 2),
		},
		Server: ServerConfig{
			Port:   getEnv("ADMIN_PORT", "8080"),
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
	}

	if cfg.Seeder.BatchSize <= 0 {
		return nil, fmt.Errorf("SEED_BATCH_SIZE must be positive, got %d", cfg.Seeder.BatchSize)
	}
	if cfg.Seeder.Concurrency <= 0 {
		return nil, fmt.Errorf("SEED_CONCURRENCY must be positive, got %d", cfg.Seeder.Concurrency)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
