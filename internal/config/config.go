package config

import (
	"fmt"

	pkgconfig "github.com/genneg/SwingRadar-sub000/pkg/config"
)

// Engine selection values for SearchBackend.
const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all configuration for the event search service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"SEARCH_HTTP_PORT" envDefault:"8030"`

	// Search backend selection (postgres or memory). The memory backend is
	// for development and tests; it has no fallback tier.
	SearchBackend string `env:"SEARCH_ENGINE" envDefault:"postgres"`

	// PostgreSQL
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"swingradar"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"swingradar_secret"`
	DBName     string `env:"DB_NAME" envDefault:"swingradar"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns int32  `env:"DB_MIN_CONNS" envDefault:"5"`

	// Asset URL rewriting
	AssetBaseURL      string `env:"ASSET_BASE_URL" envDefault:""`
	AssetUploadPrefix string `env:"ASSET_UPLOAD_PREFIX" envDefault:"/uploads/"`

	// Search analytics (Kafka)
	AnalyticsEnabled bool     `env:"ANALYTICS_ENABLED" envDefault:"false"`
	KafkaBrokers     []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	TracingEnabled     bool     `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint    string   `env:"TRACING_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate  float64  `env:"TRACING_SAMPLE_RATE" envDefault:"1.0"`
	ServiceVersion     string   `env:"SERVICE_VERSION" envDefault:"0.1.0"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load search config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SearchBackend != BackendPostgres && c.SearchBackend != BackendMemory {
		return fmt.Errorf("invalid search backend: %q", c.SearchBackend)
	}
	if c.AnalyticsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("analytics enabled but no kafka brokers configured")
	}
	return nil
}
