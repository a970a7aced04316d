package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config that passes Validate.
func validConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "bad server mode",
			mutate:  func(c *Config) { c.Server.Mode = "production" },
			wantErr: "server.mode",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "text" },
			wantErr: "log.format",
		},
		{
			name:    "unknown dataset driver",
			mutate:  func(c *Config) { c.Dataset.Driver = "sqlite" },
			wantErr: "dataset.driver",
		},
		{
			name:    "csv driver without areas path",
			mutate:  func(c *Config) { c.Dataset.AreasPath = "" },
			wantErr: "dataset.areas_path",
		},
		{
			name: "postgres driver without host",
			mutate: func(c *Config) {
				c.Dataset.Driver = "postgres"
			},
			wantErr: "dataset.postgres.host",
		},
		{
			name: "redis enabled without addr",
			mutate: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.Addr = ""
			},
			wantErr: "redis.addr",
		},
		{
			name:    "zero oracle retries",
			mutate:  func(c *Config) { c.Oracle.MaxRetries = -1 },
			wantErr: "oracle.max_retries",
		},
		{
			name:    "resolver max below default",
			mutate:  func(c *Config) { c.Resolver.MaxLimit = 1 },
			wantErr: "resolver.max_limit",
		},
		{
			name: "rate limit enabled with zero rate",
			mutate: func(c *Config) {
				c.RateLimit.Enabled = true
				c.RateLimit.RatePerSecond = 0
				c.RateLimit.Burst = 10
			},
			wantErr: "rate_limit.rate_per_second",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_PostgresDriverSkipsCSVPaths(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Dataset.Driver = "postgres"
	cfg.Dataset.AreasPath = ""
	cfg.Dataset.ClinicsPath = ""
	cfg.Dataset.Postgres.Host = "db.internal"
	cfg.Dataset.Postgres.Database = "honey"
	assert.NoError(t, cfg.Validate())
}
