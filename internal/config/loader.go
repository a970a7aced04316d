package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for all service settings.
const envPrefix = "HONEY"

// configKeys lists every settable key.  Unmarshal only sees environment
// overrides for keys viper already knows about, so each one is bound
// explicitly.
var configKeys = []string{
	"server.port", "server.mode", "server.read_timeout", "server.write_timeout", "server.shutdown_timeout",
	"log.level", "log.format",
	"oracle.api_key", "oracle.base_url", "oracle.request_timeout", "oracle.max_retries",
	"oracle.rate_per_second", "oracle.burst",
	"gate.answer_model", "gate.context_model", "gate.reply_ttl",
	"dataset.driver", "dataset.areas_path", "dataset.clinics_path",
	"dataset.postgres.host", "dataset.postgres.port", "dataset.postgres.database",
	"dataset.postgres.username", "dataset.postgres.password", "dataset.postgres.ssl_mode",
	"dataset.postgres.max_conns",
	"redis.enabled", "redis.addr", "redis.username", "redis.password", "redis.db",
	"redis.pool_size", "redis.dial_timeout", "redis.read_timeout", "redis.write_timeout",
	"metrics.enabled", "metrics.namespace", "metrics.enable_process_metrics", "metrics.enable_go_metrics",
	"rate_limit.enabled", "rate_limit.rate_per_second", "rate_limit.burst",
	"resolver.default_limit", "resolver.max_limit",
}

// newViper builds a pre-configured Viper instance: YAML file type, HONEY_
// env prefix, automatic env binding, and a key replacer that maps "." to
// "_" so that nested keys like "oracle.api_key" resolve to
// HONEY_ORACLE_API_KEY.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}
	return v
}

// Load reads the YAML file at configPath, merges HONEY_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from HONEY_* environment variables
// with no config file.  This is the preferred loading strategy for
// containerised deployments.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the newly parsed
// Config whenever the file changes on disk.  Intended for hot-reloading
// settings such as log level and rate-limit thresholds; callers decide
// which subset is safe to apply at runtime.
//
// Watch is non-blocking; viper manages the background goroutine.  If a
// changed file fails to parse or validate, onChange is not called.
func Watch(configPath string, onChange func(*Config)) {
	v := newViper()
	v.SetConfigFile(configPath)

	// Initial read; callers should have called Load first.
	_ = v.ReadInConfig()

	v.WatchConfig()
	v.OnConfigChange(func(_ fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			return
		}
		onChange(cfg)
	})
}

// MustLoad wraps Load and panics on any error.  For use in main() where a
// config-load failure is always fatal.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}
