// Command apiserver runs the Honey HTTP API: fuzzy area resolution, the
// conversational gate, and the clinic directory behind a single gin server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shallyquinn/Chatbot/internal/application/conversation"
	"github.com/Shallyquinn/Chatbot/internal/application/resolver"
	"github.com/Shallyquinn/Chatbot/internal/config"
	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/database/redis"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/dataset"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
	"github.com/Shallyquinn/Chatbot/internal/intelligence/oracle"
	httpiface "github.com/Shallyquinn/Chatbot/internal/interfaces/http"
	"github.com/Shallyquinn/Chatbot/internal/interfaces/http/handlers"
	"github.com/Shallyquinn/Chatbot/internal/interfaces/http/middleware"
)

// version is stamped at build time via -ldflags.
var version = "0.1.0"

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the configuration file")
	port := flag.Int("port", 0, "override the listen port from the configuration")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("apiserver exited with error", logging.Err(err))
		os.Exit(1)
	}
}

// loadConfig reads the config file when present and falls back to
// HONEY_* environment variables otherwise, so containerised deployments
// need no file at all.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config file %q: %w", path, err)
		}
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Metrics ──────────────────────────────────────────────────────────
	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		var err error
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
			EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
		}, logger)
		if err != nil {
			return fmt.Errorf("initialise metrics collector: %w", err)
		}
		metrics = prometheus.NewAppMetrics(collector)
	}

	// ── Dataset ──────────────────────────────────────────────────────────
	source, closeSource, err := buildDatasetSource(ctx, cfg.Dataset, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	areas, clinics := dataset.Load(loadCtx, source, logger)
	cancel()

	if metrics != nil {
		prometheus.RecordDatasetLoad(metrics, "areas", len(areas.Areas), areas.Degraded)
		prometheus.RecordDatasetLoad(metrics, "clinics", len(clinics.Records), clinics.Degraded)
	}

	areaResolver := resolver.NewService(resolver.Deps{
		Names:    areas.Names(),
		Degraded: areas.Degraded,
		Logger:   logger,
	})
	directory := clinic.NewDirectory(clinics.Records, !clinics.Degraded)

	// ── Reply cache ──────────────────────────────────────────────────────
	var (
		replyCache  conversation.ReplyCache
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(redis.Config{
			Addr:         cfg.Redis.Addr,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger)
		if err != nil {
			// The cache is an optimisation; run without it rather than
			// refusing to start.
			logger.Warn("redis unavailable, reply cache disabled", logging.Err(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			replyCache = redis.NewReplyCache(redisClient, cfg.Gate.ReplyTTL)
		}
	}

	// ── Conversational gate ──────────────────────────────────────────────
	ora, err := oracle.NewOpenAIOracle(oracle.Config{
		APIKey:         cfg.Oracle.APIKey,
		BaseURL:        cfg.Oracle.BaseURL,
		RequestTimeout: cfg.Oracle.RequestTimeout,
		MaxRetries:     cfg.Oracle.MaxRetries,
		RatePerSecond:  cfg.Oracle.RatePerSecond,
		Burst:          cfg.Oracle.Burst,
	}, logger)
	if err != nil {
		return fmt.Errorf("initialise oracle: %w", err)
	}

	gate := conversation.NewService(conversation.Deps{
		Oracle:  ora,
		Cache:   replyCache,
		Logger:  logger,
		Metrics: metrics,
		Config: conversation.Config{
			AnswerModel:  cfg.Gate.AnswerModel,
			ContextModel: cfg.Gate.ContextModel,
		},
	})

	// ── HTTP layer ───────────────────────────────────────────────────────
	checks := map[string]handlers.CheckFunc{
		"dataset": func(context.Context) error {
			if areas.Degraded {
				return fmt.Errorf("area dataset failed to load")
			}
			return nil
		},
	}
	if redisClient != nil {
		checks["redis"] = redisClient.Ping
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(middleware.RateLimitConfig{
			RatePerSecond: cfg.RateLimit.RatePerSecond,
			Burst:         cfg.RateLimit.Burst,
		})
	}

	cors := middleware.DefaultCORSConfig()
	router := httpiface.NewRouter(httpiface.RouterConfig{
		Mode:                cfg.Server.Mode,
		AreaHandler:         handlers.NewAreaHandler(areaResolver, cfg.Resolver.MaxLimit, metrics),
		ConversationHandler: handlers.NewConversationHandler(gate, metrics),
		ClinicHandler:       handlers.NewClinicHandler(directory, metrics),
		HealthHandler:       handlers.NewHealthHandler(version, checks),
		RateLimiter:         limiter,
		CORS:                &cors,
		Logger:              logger,
		Metrics:             metrics,
		MetricsCollector:    collector,
	})

	server := httpiface.NewServer(httpiface.ServerConfig{
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("apiserver listening",
			logging.Int("port", cfg.Server.Port),
			logging.String("mode", cfg.Server.Mode),
			logging.String("version", version))
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("apiserver stopped")
	return nil
}

// buildDatasetSource selects the configured dataset backend.  The returned
// closer is a no-op for CSV.
func buildDatasetSource(ctx context.Context, cfg config.DatasetConfig, logger logging.Logger) (dataset.Source, func(), error) {
	switch cfg.Driver {
	case "postgres":
		src, err := dataset.NewPostgresSource(ctx, dataset.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			Username: cfg.Postgres.Username,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: int32(cfg.Postgres.MaxConns),
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres dataset: %w", err)
		}
		return src, src.Close, nil
	default:
		return dataset.NewCSVSource(cfg.AreasPath, cfg.ClinicsPath), func() {}, nil
	}
}
