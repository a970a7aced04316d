package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults_FillsZeroValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "gpt-4o", cfg.Gate.AnswerModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.Gate.ContextModel)
	assert.Equal(t, 24*time.Hour, cfg.Gate.ReplyTTL)
	assert.Equal(t, "csv", cfg.Dataset.Driver)
	assert.Equal(t, DefaultPostgresPort, cfg.Dataset.Postgres.Port)
	assert.Equal(t, "disable", cfg.Dataset.Postgres.SSLMode)
	assert.Equal(t, DefaultRedisAddr, cfg.Redis.Addr)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
	assert.Equal(t, DefaultOracleMaxRetries, cfg.Oracle.MaxRetries)
	assert.Equal(t, DefaultResolverLimit, cfg.Resolver.DefaultLimit)
	assert.Equal(t, DefaultResolverMaxLimit, cfg.Resolver.MaxLimit)
}

func TestApplyDefaults_ExplicitValuesWin(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.Server.Port = 9090
	cfg.Log.Level = "debug"
	cfg.Gate.AnswerModel = "gpt-4o-mini"
	ApplyDefaults(cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gpt-4o-mini", cfg.Gate.AnswerModel)
}

func TestApplyDefaults_NilConfigIsSafe(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { ApplyDefaults(nil) })
}
