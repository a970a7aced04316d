// Package config defines the configuration structures for the chatbot
// service.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `mapstructure:"format"` // "json" | "console"
}

// OracleConfig holds model-backend connection and retry parameters.
type OracleConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RatePerSecond  float64       `mapstructure:"rate_per_second"`
	Burst          int           `mapstructure:"burst"`
}

// GateConfig holds conversation parameters.
type GateConfig struct {
	AnswerModel  string        `mapstructure:"answer_model"`
	ContextModel string        `mapstructure:"context_model"`
	ReplyTTL     time.Duration `mapstructure:"reply_ttl"`
}

// PostgresConfig holds PostgreSQL connection parameters for the dataset.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int    `mapstructure:"max_conns"`
}

// DatasetConfig selects and configures the area/clinic data source.
type DatasetConfig struct {
	Driver      string         `mapstructure:"driver"` // "csv" | "postgres"
	AreasPath   string         `mapstructure:"areas_path"`
	ClinicsPath string         `mapstructure:"clinics_path"`
	Postgres    PostgresConfig `mapstructure:"postgres"`
}

// RedisConfig holds reply-cache connection parameters.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// MetricsConfig holds Prometheus exposition parameters.
type MetricsConfig struct {
	Enabled              bool   `mapstructure:"enabled"`
	Namespace            string `mapstructure:"namespace"`
	EnableProcessMetrics bool   `mapstructure:"enable_process_metrics"`
	EnableGoMetrics      bool   `mapstructure:"enable_go_metrics"`
}

// RateLimitConfig holds per-client HTTP rate-limit parameters.
type RateLimitConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
	Burst         int     `mapstructure:"burst"`
}

// ResolverConfig holds area-resolution parameters.
type ResolverConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Oracle    OracleConfig    `mapstructure:"oracle"`
	Gate      GateConfig      `mapstructure:"gate"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; any error is fatal at startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	switch c.Dataset.Driver {
	case "csv":
		if c.Dataset.AreasPath == "" {
			return fmt.Errorf("config: dataset.areas_path is required for the csv driver")
		}
		if c.Dataset.ClinicsPath == "" {
			return fmt.Errorf("config: dataset.clinics_path is required for the csv driver")
		}
	case "postgres":
		if c.Dataset.Postgres.Host == "" {
			return fmt.Errorf("config: dataset.postgres.host is required for the postgres driver")
		}
		if c.Dataset.Postgres.Database == "" {
			return fmt.Errorf("config: dataset.postgres.database is required for the postgres driver")
		}
	default:
		return fmt.Errorf("config: dataset.driver %q is invalid; expected csv|postgres", c.Dataset.Driver)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: redis.addr is required when redis is enabled")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("config: redis.db must be >= 0, got %d", c.Redis.DB)
		}
	}

	if c.Oracle.MaxRetries < 1 {
		return fmt.Errorf("config: oracle.max_retries must be >= 1, got %d", c.Oracle.MaxRetries)
	}

	if c.Resolver.DefaultLimit < 1 {
		return fmt.Errorf("config: resolver.default_limit must be >= 1, got %d", c.Resolver.DefaultLimit)
	}
	if c.Resolver.MaxLimit < c.Resolver.DefaultLimit {
		return fmt.Errorf("config: resolver.max_limit %d must be >= resolver.default_limit %d",
			c.Resolver.MaxLimit, c.Resolver.DefaultLimit)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RatePerSecond <= 0 {
			return fmt.Errorf("config: rate_limit.rate_per_second must be > 0, got %v", c.RateLimit.RatePerSecond)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("config: rate_limit.burst must be >= 1, got %d", c.RateLimit.Burst)
		}
	}

	return nil
}
