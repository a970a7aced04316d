// Package oracle wraps the generative model provider behind a small
// completion interface.  The conversation service depends on the Oracle
// interface only, so tests and alternative providers plug in without
// touching the gate logic.
package oracle

import (
	"context"
	"math/rand"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/pkg/errors"
)

// ChatParams carries the per-call sampling parameters.
type ChatParams struct {
	Model       string
	Temperature float32
	MaxTokens   int
	TopP        float32
	Stop        []string
}

// Oracle produces a completion for a system/user message pair.
type Oracle interface {
	Complete(ctx context.Context, system, user string, p ChatParams) (string, error)
}

// Config holds the OpenAI-backed oracle settings.
type Config struct {
	APIKey string `yaml:"api_key"`
	// BaseURL overrides the API endpoint for proxied or self-hosted gateways.
	BaseURL string `yaml:"base_url"`
	// RequestTimeout bounds a single completion attempt.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// MaxRetries is the number of attempts per completion, including the first.
	MaxRetries int `yaml:"max_retries"`
	// RatePerSecond and Burst feed the client-side limiter.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// chatCompleter is the slice of the go-openai client the oracle uses; tests
// substitute a stub.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIOracle is the production Oracle implementation.  It rate-limits
// client-side and retries transient failures with jittered backoff.
type OpenAIOracle struct {
	client  chatCompleter
	limiter *rate.Limiter
	cfg     Config
	logger  logging.Logger
	sleep   func(time.Duration)
}

// NewOpenAIOracle constructs an OpenAIOracle.  An empty API key yields an
// error so a misconfigured deployment fails at startup rather than on the
// first conversation.
func NewOpenAIOracle(cfg Config, logger logging.Logger) (*OpenAIOracle, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New(errors.ErrCodeOracleNotConfigured, "oracle api key is not set")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 3
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIOracle{
		client:  openai.NewClientWithConfig(clientCfg),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		cfg:     cfg,
		logger:  logger,
		sleep:   time.Sleep,
	}, nil
}

// Complete implements Oracle.  Transport failures after all retries are
// reported as ErrCodeOracleUnavailable; the caller maps that to its
// unavailable outcome.
func (o *OpenAIOracle) Complete(ctx context.Context, system, user string, p ChatParams) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeOracleUnavailable, "rate limiter wait cancelled")
	}

	req := openai.ChatCompletionRequest{
		Model: p.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		TopP:        p.TopP,
		Stop:        p.Stop,
	}

	var resp openai.ChatCompletionResponse
	var err error
	for attempt := 1; attempt <= o.cfg.MaxRetries; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, o.cfg.RequestTimeout)
		resp, err = o.client.CreateChatCompletion(attemptCtx, req)
		cancel()

		if err == nil && len(resp.Choices) > 0 {
			return resp.Choices[0].Message.Content, nil
		}

		o.logger.Warn("oracle completion attempt failed",
			logging.Int("attempt", attempt),
			logging.String("model", p.Model),
			logging.Err(err),
		)

		if ctx.Err() != nil {
			return "", errors.Wrap(ctx.Err(), errors.ErrCodeOracleUnavailable, "completion cancelled")
		}
		if attempt < o.cfg.MaxRetries {
			backoff := time.Duration(attempt)*time.Second + time.Duration(rand.Intn(1000))*time.Millisecond
			o.sleep(backoff)
		}
	}

	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeOracleUnavailable, "completion failed after retries")
	}
	return "", errors.New(errors.ErrCodeOracleEmptyReply, "completion returned no choices")
}
