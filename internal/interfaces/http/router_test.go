package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shallyquinn/Chatbot/internal/application/conversation"
	"github.com/Shallyquinn/Chatbot/internal/application/resolver"
	"github.com/Shallyquinn/Chatbot/internal/domain/clinic"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
	"github.com/Shallyquinn/Chatbot/internal/interfaces/http/handlers"
	"github.com/Shallyquinn/Chatbot/internal/interfaces/http/middleware"
)

type fixedResolver struct{}

func (fixedResolver) Resolve(context.Context, string, int) (resolver.Result, error) {
	return resolver.Result{Matches: []string{"Ikeja"}}, nil
}
func (fixedResolver) Universe() []string { return []string{"Ikeja"} }

type fixedGate struct{}

func (fixedGate) Converse(context.Context, string) (conversation.Outcome, error) {
	return conversation.Outcome{Kind: conversation.KindAnswer, Reply: "ok"}, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "honey"}, logging.NewNopLogger())
	require.NoError(t, err)

	directory := clinic.NewDirectory([]clinic.Record{
		{Area: "Ikeja", Locality: "Alausa", Name: "Rose Clinic", Address: "4 Court Road"},
	}, true)

	cors := middleware.DefaultCORSConfig()
	return NewRouter(RouterConfig{
		Mode:                gin.TestMode,
		AreaHandler:         handlers.NewAreaHandler(fixedResolver{}, 25, nil),
		ConversationHandler: handlers.NewConversationHandler(fixedGate{}, nil),
		ClinicHandler:       handlers.NewClinicHandler(directory, nil),
		HealthHandler:       handlers.NewHealthHandler("test", nil),
		RateLimiter:         middleware.NewRateLimiter(middleware.DefaultRateLimitConfig()),
		CORS:                &cors,
		Logger:              logging.NewNopLogger(),
		Metrics:             prometheus.NewAppMetrics(collector),
		MetricsCollector:    collector,
	})
}

func TestRouter_RoutesAreWired(t *testing.T) {
	t.Parallel()

	r := testRouter(t)

	tests := []struct {
		method, path, body string
		wantStatus         int
	}{
		{"POST", "/api/v1/resolve", `{"query": "ikeja"}`, http.StatusOK},
		{"POST", "/api/v1/converse", `{"user": "hello"}`, http.StatusOK},
		{"GET", "/api/v1/clinics?area=Ikeja&locality=Alausa", "", http.StatusOK},
		{"GET", "/api/v1/localities?area=Ikeja", "", http.StatusOK},
		{"GET", "/health", "", http.StatusOK},
		{"GET", "/health/live", "", http.StatusOK},
		{"GET", "/health/ready", "", http.StatusOK},
		{"GET", "/metrics", "", http.StatusOK},
	}

	for _, tt := range tests {
		var req *http.Request
		if tt.body != "" {
			req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(tt.method, tt.path, nil)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tt.wantStatus, rec.Code, "%s %s", tt.method, tt.path)
	}
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/unknown", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "COMMON_003", resp.Code)
}

func TestRouter_RequestIDOnEveryResponse(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RateLimitHeadersOnAPIRoutes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/localities?area=Ikeja", nil))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Limit"))
}
