package conversation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
	"github.com/Shallyquinn/Chatbot/internal/intelligence/oracle"
	apperrors "github.com/Shallyquinn/Chatbot/pkg/errors"
)

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// ReplyCache stores answer replies keyed by utterance digest.  A miss or a
// cache failure is never fatal; the gate falls through to the oracle.
type ReplyCache interface {
	GetReply(ctx context.Context, key string) (string, bool, error)
	SetReply(ctx context.Context, key, reply string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the conversational gate contract.
type Service interface {
	// Converse answers one utterance.  The returned error is non-nil only for
	// invalid input; oracle transport failure yields an Outcome with
	// KindUnavailable and a nil error so callers can distinguish "the user
	// asked something we cannot process" from "the assistant is down".
	Converse(ctx context.Context, utterance string) (Outcome, error)
}

// Config carries the gate's model selection.
type Config struct {
	// AnswerModel generates the final reply.
	AnswerModel string `yaml:"answer_model"`
	// ContextModel runs the cheaper context-retrieval call.
	ContextModel string `yaml:"context_model"`
}

// Deps holds all gate dependencies.  Cache and Metrics may be nil.
type Deps struct {
	Oracle  oracle.Oracle
	Cache   ReplyCache
	Logger  logging.Logger
	Metrics *prometheus.AppMetrics
	Config  Config
}

type gateImpl struct {
	oracle  oracle.Oracle
	cache   ReplyCache
	logger  logging.Logger
	metrics *prometheus.AppMetrics
	cfg     Config
}

// NewService creates the conversational gate.
func NewService(deps Deps) Service {
	cfg := deps.Config
	if cfg.AnswerModel == "" {
		cfg.AnswerModel = "gpt-4o"
	}
	if cfg.ContextModel == "" {
		cfg.ContextModel = "gpt-3.5-turbo"
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &gateImpl{
		oracle:  deps.Oracle,
		cache:   deps.Cache,
		logger:  logger,
		metrics: deps.Metrics,
		cfg:     cfg,
	}
}

// answerParams mirror the tuned sampling settings for the reply call.
func (g *gateImpl) answerParams() oracle.ChatParams {
	return oracle.ChatParams{
		Model:       g.cfg.AnswerModel,
		Temperature: 0.25,
		MaxTokens:   350,
		TopP:        1,
		Stop:        []string{"==="},
	}
}

// contextParams bound the retrieval call tightly; its output is background
// text, not a user-facing reply.
func (g *gateImpl) contextParams() oracle.ChatParams {
	return oracle.ChatParams{
		Model:       g.cfg.ContextModel,
		Temperature: 0.3,
		MaxTokens:   200,
	}
}

func (g *gateImpl) Converse(ctx context.Context, utterance string) (Outcome, error) {
	if strings.TrimSpace(utterance) == "" {
		return Outcome{}, apperrors.New(apperrors.ErrCodeBadRequest, "utterance must not be empty")
	}

	key := cacheKey(utterance)
	if g.cache != nil {
		reply, ok, err := g.cache.GetReply(ctx, key)
		if err != nil {
			g.logger.Warn("reply cache read failed", logging.Err(err))
		} else {
			if g.metrics != nil {
				prometheus.RecordCacheAccess(g.metrics, "reply", ok)
			}
			if ok {
				g.logger.Debug("reply cache hit")
				return Outcome{Kind: KindAnswer, Reply: reply}, nil
			}
		}
	}

	system := BuildSystemPrompt(g.retrieveContext(ctx, utterance))

	raw, err := g.complete(ctx, system, utterance, g.answerParams())
	if err != nil {
		g.logger.Error("oracle answer call failed", logging.Err(err))
		return Outcome{Kind: KindUnavailable}, nil
	}

	outcome := classify(raw)
	if outcome.Kind == KindAnswer && g.cache != nil {
		if err := g.cache.SetReply(ctx, key, outcome.Reply); err != nil {
			g.logger.Warn("reply cache write failed", logging.Err(err))
		}
	}
	return outcome, nil
}

// complete delegates to the oracle, timing the call for the per-model
// metric families.
func (g *gateImpl) complete(ctx context.Context, system, user string, p oracle.ChatParams) (string, error) {
	start := time.Now()
	text, err := g.oracle.Complete(ctx, system, user, p)
	if g.metrics != nil {
		prometheus.RecordOracleCall(g.metrics, p.Model, err, time.Since(start))
	}
	return text, err
}

// retrieveContext asks the context model for brief background.  Any failure
// falls back to the fixed context string; the conversation always proceeds.
func (g *gateImpl) retrieveContext(ctx context.Context, utterance string) string {
	text, err := g.complete(ctx,
		contextSystemPrompt,
		"Provide context for this family planning question: "+utterance,
		g.contextParams(),
	)
	if err != nil {
		g.logger.Warn("context retrieval failed, using fallback", logging.Err(err))
		return fallbackContext
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallbackContext
	}
	return text
}

// classify maps the oracle's trimmed reply onto an outcome.  The markers
// match exactly or not at all; a reply that merely contains one is an answer.
func classify(raw string) Outcome {
	reply := strings.TrimSpace(raw)
	switch reply {
	case markerNoAnswer:
		return Outcome{Kind: KindNoAnswer}
	case markerComplete:
		return Outcome{Kind: KindComplete}
	default:
		return Outcome{Kind: KindAnswer, Reply: reply}
	}
}

// cacheKey digests the utterance so arbitrarily long text maps to a fixed
// redis key.
func cacheKey(utterance string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(utterance))))
	return "reply:" + hex.EncodeToString(sum[:])
}
