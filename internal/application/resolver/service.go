// Package resolver resolves user-typed Local Government Area names against
// the fixed candidate universe loaded at startup.
package resolver

import (
	"context"
	"strings"

	"github.com/Shallyquinn/Chatbot/internal/domain/geo"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	apperrors "github.com/Shallyquinn/Chatbot/pkg/errors"
)

// DefaultLimit is the match count used when the caller does not specify one.
const DefaultLimit = 5

// Result is a ranked resolution answer.
type Result struct {
	// Matches are candidate names ranked best-first.  Exact token hits are
	// unconditionally included and may exceed the requested limit.
	Matches []string `json:"matches"`

	// Degraded is true when the candidate universe was unavailable at
	// startup.  An empty Matches with Degraded false is an ordinary miss;
	// with Degraded true it means the service cannot know.
	Degraded bool `json:"degraded"`
}

// Service is the entity resolution contract.
type Service interface {
	// Resolve ranks the universe against input.  limit <= 0 selects
	// DefaultLimit.  Blank input is a bad-request error.
	Resolve(ctx context.Context, input string, limit int) (Result, error)

	// Universe returns the candidate names in load order, duplicates removed.
	Universe() []string
}

// Deps holds the resolver dependencies.
type Deps struct {
	// Names is the candidate universe.  Duplicates are removed preserving
	// first occurrence, so results never repeat a canonical name.
	Names    []string
	Degraded bool
	Logger   logging.Logger
}

type serviceImpl struct {
	universe []string
	degraded bool
	logger   logging.Logger
}

// NewService builds the resolver over a fixed universe.
func NewService(deps Deps) Service {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	seen := make(map[string]struct{}, len(deps.Names))
	universe := make([]string, 0, len(deps.Names))
	for _, name := range deps.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		universe = append(universe, name)
	}

	degraded := deps.Degraded || len(universe) == 0
	if degraded {
		logger.Warn("resolver starting degraded", logging.Int("universe_size", len(universe)))
	}

	return &serviceImpl{universe: universe, degraded: degraded, logger: logger}
}

func (s *serviceImpl) Resolve(_ context.Context, input string, limit int) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, apperrors.New(apperrors.ErrCodeResolutionEmptyQuery, "input must not be empty")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if s.degraded {
		return Result{Matches: []string{}, Degraded: true}, nil
	}

	matches := geo.Rank(input, s.universe, limit)
	s.logger.Debug("resolved area query",
		logging.String("input", input),
		logging.Int("matches", len(matches)),
	)
	return Result{Matches: matches}, nil
}

func (s *serviceImpl) Universe() []string {
	out := make([]string, len(s.universe))
	copy(out, s.universe)
	return out
}
