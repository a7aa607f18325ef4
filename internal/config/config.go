package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/QuestPlanner_Go/internal/projection"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"questplanner"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`

	// APIKey guards plan mutations. Empty disables the check.
	APIKey      string   `env:"API_KEY"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://quest.renntg.com,https://quest.renntg.com,http://localhost:5173"`
	// X-Forwarded-For is only honoured from these peers
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	RateLimit      int      `env:"RATE_LIMIT" envDefault:"1000"`

	HypixelAPIKey   string        `env:"HYPIXEL_API_KEY"`
	HypixelBaseURL  string        `env:"HYPIXEL_BASE_URL" envDefault:"https://api.hypixel.net"`
	MojangBaseURL   string        `env:"MOJANG_BASE_URL" envDefault:"https://api.mojang.com"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`

	CatalogTTL             time.Duration `env:"CATALOG_TTL" envDefault:"15m"`
	PlayerTTL              time.Duration `env:"PLAYER_TTL" envDefault:"15s"`
	PlayerCacheSize        int           `env:"PLAYER_CACHE_SIZE" envDefault:"1024"`
	CatalogRefreshInterval time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"10m"`

	ResetWeekday      string `env:"RESET_WEEKDAY" envDefault:"thursday"`
	ResetTimeZone     string `env:"RESET_TIMEZONE" envDefault:"America/New_York"`
	MaxSimulationDays int    `env:"MAX_SIMULATION_DAYS" envDefault:"3650"`

	// DBHost empty keeps plans in memory
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBName     string `env:"DB_NAME" envDefault:"questplanner"`

	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBConnMaxIdle     time.Duration `env:"DB_CONN_MAX_IDLE" envDefault:"5m"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`

	// LogDir adds a rotating session log file next to stdout when set
	LogDir string `env:"LOG_DIR"`

	EventMaxRetries     int           `env:"EVENT_MAX_RETRIES" envDefault:"5"`
	EventRetryDelay     time.Duration `env:"EVENT_RETRY_DELAY" envDefault:"2s"`
	EventDeadLetterPath string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/event_deadletter.jsonl"`

	OTelEndpoint string `env:"OTEL_EXPORTER_ENDPOINT"`

	WorkerCount     int           `env:"WORKER_COUNT" envDefault:"2"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d", c.Port)
	}
	if _, err := c.ProjectionConfig(); err != nil {
		return fmt.Errorf("invalid reset calendar: %w", err)
	}
	if c.CatalogTTL <= 0 {
		return fmt.Errorf("CATALOG_TTL must be positive, got %s", c.CatalogTTL)
	}
	if c.PlayerTTL <= 0 {
		return fmt.Errorf("PLAYER_TTL must be positive, got %s", c.PlayerTTL)
	}
	if c.PlayerCacheSize <= 0 {
		return fmt.Errorf("PLAYER_CACHE_SIZE must be positive, got %d", c.PlayerCacheSize)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("RATE_LIMIT must not be negative, got %d", c.RateLimit)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	return nil
}

// ProjectionConfig returns the reset calendar used by the simulator
func (c *Config) ProjectionConfig() (projection.Config, error) {
	return projection.NewConfig(c.ResetWeekday, c.ResetTimeZone, c.MaxSimulationDays)
}

// DatabaseEnabled reports whether plans are persisted to PostgreSQL
func (c *Config) DatabaseEnabled() bool {
	return c.DBHost != ""
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
