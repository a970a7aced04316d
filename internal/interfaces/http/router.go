// Package http assembles the gin engine, routes, and HTTP server.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
	"github.com/Shallyquinn/Chatbot/internal/interfaces/http/handlers"
	"github.com/Shallyquinn/Chatbot/internal/interfaces/http/middleware"
	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// RouterConfig aggregates the handler and middleware dependencies for the
// complete route tree.  Nil handlers leave their routes unregistered; nil
// middleware is skipped.
type RouterConfig struct {
	Mode string // gin mode: "debug" | "release" | "test"

	AreaHandler         *handlers.AreaHandler
	ConversationHandler *handlers.ConversationHandler
	ClinicHandler       *handlers.ClinicHandler
	HealthHandler       *handlers.HealthHandler

	RateLimiter *middleware.RateLimiter
	CORS        *middleware.CORSConfig

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
}

// NewRouter builds the gin engine with global middleware, health probes,
// the metrics endpoint, and the /api/v1 group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	if cfg.Logger != nil {
		r.Use(middleware.RequestLogging(cfg.Logger, middleware.DefaultLoggingConfig()))
	}
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.Health)
		r.GET("/health/live", cfg.HealthHandler.Liveness)
		r.GET("/health/ready", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter.Handler())
	}
	{
		if cfg.AreaHandler != nil {
			api.POST("/resolve", cfg.AreaHandler.Resolve)
		}
		if cfg.ConversationHandler != nil {
			api.POST("/converse", cfg.ConversationHandler.Converse)
		}
		if cfg.ClinicHandler != nil {
			api.GET("/clinics", cfg.ClinicHandler.Clinics)
			api.GET("/localities", cfg.ClinicHandler.Localities)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:    string(errors.ErrCodeNotFound),
			Message: "route not found",
		})
	})

	return r
}
