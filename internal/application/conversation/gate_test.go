package conversation

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/prometheus"
	"github.com/Shallyquinn/Chatbot/internal/intelligence/oracle"
	apperrors "github.com/Shallyquinn/Chatbot/pkg/errors"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockOracle struct {
	completeFn func(ctx context.Context, system, user string, p oracle.ChatParams) (string, error)
	calls      []oracleCall
}

type oracleCall struct {
	system string
	user   string
	params oracle.ChatParams
}

func (m *mockOracle) Complete(ctx context.Context, system, user string, p oracle.ChatParams) (string, error) {
	m.calls = append(m.calls, oracleCall{system: system, user: user, params: p})
	if m.completeFn != nil {
		return m.completeFn(ctx, system, user, p)
	}
	return "some answer", nil
}

// answerOnSecondCall is the usual happy path: first call retrieves context,
// second call answers.
func answerOnSecondCall(contextText, answer string) func(context.Context, string, string, oracle.ChatParams) (string, error) {
	n := 0
	return func(_ context.Context, _, _ string, _ oracle.ChatParams) (string, error) {
		n++
		if n == 1 {
			return contextText, nil
		}
		return answer, nil
	}
}

type mockCache struct {
	store    map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string]string)}
}

func (m *mockCache) GetReply(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.store[key]
	return v, ok, nil
}

func (m *mockCache) SetReply(_ context.Context, key, reply string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.store[key] = reply
	return nil
}

func newGate(o oracle.Oracle, c ReplyCache) Service {
	return NewService(Deps{Oracle: o, Cache: c, Logger: logging.NewNopLogger()})
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestConverse_EmptyUtteranceIsBadRequest(t *testing.T) {
	g := newGate(&mockOracle{}, nil)

	_, err := g.Converse(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for blank utterance")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeBadRequest) {
		t.Errorf("expected bad request code, got %v", err)
	}
}

func TestConverse_SubstantiveReplyIsAnswer(t *testing.T) {
	o := &mockOracle{completeFn: answerOnSecondCall("Context about pills.", "  Postinor is an emergency pill.  ")}
	g := newGate(o, nil)

	out, err := g.Converse(context.Background(), "What is Postinor?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != KindAnswer {
		t.Fatalf("expected answer, got %s", out.Kind)
	}
	if out.Reply != "Postinor is an emergency pill." {
		t.Errorf("reply not trimmed: %q", out.Reply)
	}
}

func TestConverse_ExactMarkersClassify(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  OutcomeKind
	}{
		{"no answer marker", "NO ANSWER", KindNoAnswer},
		{"no answer with padding", "  NO ANSWER \n", KindNoAnswer},
		{"complete marker", "COMPLETE", KindComplete},
		{"marker embedded in prose is an answer", "Sorry, NO ANSWER here.", KindAnswer},
		{"lowercase marker is an answer", "no answer", KindAnswer},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			o := &mockOracle{completeFn: answerOnSecondCall("ctx", tc.reply)}
			out, err := newGate(o, nil).Converse(context.Background(), "question")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Kind != tc.want {
				t.Errorf("reply %q: expected %s, got %s", tc.reply, tc.want, out.Kind)
			}
		})
	}
}

func TestConverse_OracleFailureIsUnavailableNotError(t *testing.T) {
	n := 0
	o := &mockOracle{completeFn: func(context.Context, string, string, oracle.ChatParams) (string, error) {
		n++
		if n == 1 {
			return "ctx", nil
		}
		return "", apperrors.New(apperrors.ErrCodeOracleUnavailable, "down")
	}}

	out, err := newGate(o, nil).Converse(context.Background(), "question")
	if err != nil {
		t.Fatalf("transport failure must not surface as error, got %v", err)
	}
	if out.Kind != KindUnavailable {
		t.Errorf("expected unavailable, got %s", out.Kind)
	}
	if out.Reply != "" {
		t.Errorf("unavailable outcome must carry no reply, got %q", out.Reply)
	}
}

func TestConverse_ContextFailureFallsBack(t *testing.T) {
	n := 0
	o := &mockOracle{completeFn: func(_ context.Context, system, _ string, _ oracle.ChatParams) (string, error) {
		n++
		if n == 1 {
			return "", errors.New("context model down")
		}
		return "fine answer", nil
	}}

	out, err := newGate(o, nil).Converse(context.Background(), "question")
	if err != nil {
		t.Fatalf("context failure must never be fatal: %v", err)
	}
	if out.Kind != KindAnswer {
		t.Fatalf("expected answer, got %s", out.Kind)
	}
	// The answer call's system prompt carries the fixed fallback context.
	if !strings.Contains(o.calls[1].system, fallbackContext) {
		t.Error("system prompt should contain the fallback context")
	}
}

func TestConverse_PromptAndParamsWiring(t *testing.T) {
	o := &mockOracle{completeFn: answerOnSecondCall("Background facts.", "answer")}
	g := newGate(o, nil)

	if _, err := g.Converse(context.Background(), "Wetin be Postinor?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(o.calls) != 2 {
		t.Fatalf("expected 2 oracle calls, got %d", len(o.calls))
	}

	ctxCall, ansCall := o.calls[0], o.calls[1]

	if ctxCall.params.Model != "gpt-3.5-turbo" || ctxCall.params.MaxTokens != 200 {
		t.Errorf("context call params wrong: %+v", ctxCall.params)
	}
	if !strings.Contains(ctxCall.user, "Wetin be Postinor?") {
		t.Errorf("context query must embed the utterance: %q", ctxCall.user)
	}

	if ansCall.params.Model != "gpt-4o" || ansCall.params.MaxTokens != 350 {
		t.Errorf("answer call params wrong: %+v", ansCall.params)
	}
	if ansCall.params.Temperature != 0.25 || ansCall.params.TopP != 1 {
		t.Errorf("answer sampling params wrong: %+v", ansCall.params)
	}
	if len(ansCall.params.Stop) != 1 || ansCall.params.Stop[0] != "===" {
		t.Errorf("answer stop sequence wrong: %v", ansCall.params.Stop)
	}
	if !strings.HasPrefix(ansCall.system, languageLock) {
		t.Error("system prompt must start with the language lock")
	}
	if !strings.Contains(ansCall.system, "Background facts.") {
		t.Error("system prompt must embed the retrieved context")
	}
	if ansCall.user != "Wetin be Postinor?" {
		t.Errorf("user message must be the raw utterance, got %q", ansCall.user)
	}
}

func TestConverse_AnswersAreCached(t *testing.T) {
	cache := newMockCache()
	o := &mockOracle{completeFn: answerOnSecondCall("ctx", "cached answer")}
	g := newGate(o, cache)

	if _, err := g.Converse(context.Background(), "What is an IUD?"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected one cache write, got %d", cache.setCalls)
	}

	// Second ask is served from cache without touching the oracle.
	before := len(o.calls)
	out, err := g.Converse(context.Background(), "What is an IUD?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Reply != "cached answer" {
		t.Errorf("expected cached reply, got %q", out.Reply)
	}
	if len(o.calls) != before {
		t.Error("cache hit must not call the oracle")
	}
}

func TestConverse_MarkersAreNeverCached(t *testing.T) {
	cache := newMockCache()
	o := &mockOracle{completeFn: answerOnSecondCall("ctx", "NO ANSWER")}

	if _, err := newGate(o, cache).Converse(context.Background(), "off topic"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.setCalls != 0 {
		t.Errorf("marker outcome must not be cached, got %d writes", cache.setCalls)
	}
}

func TestConverse_CacheFailuresAreIgnored(t *testing.T) {
	cache := newMockCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	o := &mockOracle{completeFn: answerOnSecondCall("ctx", "still works")}

	out, err := newGate(o, cache).Converse(context.Background(), "question")
	if err != nil {
		t.Fatalf("cache failure must not surface: %v", err)
	}
	if out.Kind != KindAnswer || out.Reply != "still works" {
		t.Errorf("unexpected outcome: %+v", out)
	}
}

func TestBuildSystemPrompt_SubstitutesContext(t *testing.T) {
	got := BuildSystemPrompt("specific facts")

	if !strings.HasPrefix(got, languageLock) {
		t.Error("prompt must start with language lock")
	}
	if !strings.Contains(got, "`specific facts`") {
		t.Error("context must be substituted, quoted in backticks")
	}
	if strings.Contains(got, "{context}") {
		t.Error("placeholder must not survive substitution")
	}
}

func newTestMetrics(t *testing.T) (*prometheus.AppMetrics, prometheus.MetricsCollector) {
	t.Helper()
	c, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "honey"}, logging.NewNopLogger())
	if err != nil {
		t.Fatalf("collector: %v", err)
	}
	return prometheus.NewAppMetrics(c), c
}

func scrapeMetrics(t *testing.T, c prometheus.MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	return rec.Body.String()
}

func TestConverse_RecordsOracleAndCacheMetrics(t *testing.T) {
	metrics, collector := newTestMetrics(t)
	cache := newMockCache()
	o := &mockOracle{completeFn: answerOnSecondCall("ctx", "an answer")}
	g := NewService(Deps{Oracle: o, Cache: cache, Logger: logging.NewNopLogger(), Metrics: metrics})

	// Miss then hit: the first turn goes through both oracle calls, the
	// second is served from the cache.
	for i := 0; i < 2; i++ {
		if _, err := g.Converse(context.Background(), "What is Postinor?"); err != nil {
			t.Fatalf("converse %d: %v", i, err)
		}
	}

	body := scrapeMetrics(t, collector)
	for _, want := range []string{
		`honey_oracle_calls_total{model="gpt-3.5-turbo",status="success"} 1`,
		`honey_oracle_calls_total{model="gpt-4o",status="success"} 1`,
		`honey_cache_misses_total{cache="reply"} 1`,
		`honey_cache_hits_total{cache="reply"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestConverse_RecordsOracleFailures(t *testing.T) {
	metrics, collector := newTestMetrics(t)
	o := &mockOracle{completeFn: func(context.Context, string, string, oracle.ChatParams) (string, error) {
		return "", errors.New("transport down")
	}}
	g := NewService(Deps{Oracle: o, Logger: logging.NewNopLogger(), Metrics: metrics})

	out, err := g.Converse(context.Background(), "question")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Kind != KindUnavailable {
		t.Fatalf("expected unavailable, got %s", out.Kind)
	}

	body := scrapeMetrics(t, collector)
	for _, want := range []string{
		`honey_oracle_calls_total{model="gpt-3.5-turbo",status="failure"} 1`,
		`honey_oracle_calls_total{model="gpt-4o",status="failure"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}
