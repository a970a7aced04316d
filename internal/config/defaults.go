package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultAnswerModel  = "gpt-4o"
	DefaultContextModel = "gpt-3.5-turbo"
	DefaultReplyTTL     = 24 * time.Hour

	DefaultOracleTimeout    = 60 * time.Second
	DefaultOracleMaxRetries = 3
	DefaultOracleRate       = 3.0
	DefaultOracleBurst      = 5

	DefaultDatasetDriver = "csv"
	DefaultAreasPath     = "data/areas.csv"
	DefaultClinicsPath   = "data/clinics.csv"

	DefaultPostgresPort = 5432

	DefaultRedisAddr = "localhost:6379"

	DefaultMetricsNamespace = "honey"

	DefaultRateLimitRate  = 10.0
	DefaultRateLimitBurst = 20

	DefaultResolverLimit    = 5
	DefaultResolverMaxLimit = 25
)

// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// Fields already set by the caller are left unchanged so that explicit
// configuration always wins.  Call after unmarshalling and before Validate.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Oracle ────────────────────────────────────────────────────────────────
	if cfg.Oracle.RequestTimeout == 0 {
		cfg.Oracle.RequestTimeout = DefaultOracleTimeout
	}
	if cfg.Oracle.MaxRetries == 0 {
		cfg.Oracle.MaxRetries = DefaultOracleMaxRetries
	}
	if cfg.Oracle.RatePerSecond == 0 {
		cfg.Oracle.RatePerSecond = DefaultOracleRate
	}
	if cfg.Oracle.Burst == 0 {
		cfg.Oracle.Burst = DefaultOracleBurst
	}

	// ── Gate ──────────────────────────────────────────────────────────────────
	if cfg.Gate.AnswerModel == "" {
		cfg.Gate.AnswerModel = DefaultAnswerModel
	}
	if cfg.Gate.ContextModel == "" {
		cfg.Gate.ContextModel = DefaultContextModel
	}
	if cfg.Gate.ReplyTTL == 0 {
		cfg.Gate.ReplyTTL = DefaultReplyTTL
	}

	// ── Dataset ───────────────────────────────────────────────────────────────
	if cfg.Dataset.Driver == "" {
		cfg.Dataset.Driver = DefaultDatasetDriver
	}
	if cfg.Dataset.AreasPath == "" {
		cfg.Dataset.AreasPath = DefaultAreasPath
	}
	if cfg.Dataset.ClinicsPath == "" {
		cfg.Dataset.ClinicsPath = DefaultClinicsPath
	}
	if cfg.Dataset.Postgres.Port == 0 {
		cfg.Dataset.Postgres.Port = DefaultPostgresPort
	}
	if cfg.Dataset.Postgres.SSLMode == "" {
		cfg.Dataset.Postgres.SSLMode = "disable"
	}

	// ── Redis ─────────────────────────────────────────────────────────────────
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	// ── Rate limit ────────────────────────────────────────────────────────────
	if cfg.RateLimit.RatePerSecond == 0 {
		cfg.RateLimit.RatePerSecond = DefaultRateLimitRate
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}

	// ── Resolver ──────────────────────────────────────────────────────────────
	if cfg.Resolver.DefaultLimit == 0 {
		cfg.Resolver.DefaultLimit = DefaultResolverLimit
	}
	if cfg.Resolver.MaxLimit == 0 {
		cfg.Resolver.MaxLimit = DefaultResolverMaxLimit
	}
}
