package flows

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/yungbote/sahayak-backend/internal/cache"
	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

const placeholderURL = "https://placehold.co/512x288.png"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	svc     *Service
	fake    *gemini.Fake
	metrics *observability.Metrics
	cache   *cache.Memory
}

func newHarness(t *testing.T, fake *gemini.Fake) *harness {
	t.Helper()
	if fake == nil {
		fake = &gemini.Fake{}
	}
	cfg := config.Default().Flows
	metrics := observability.NewMetrics(true)
	mem := cache.NewMemory()
	svc, err := NewService(Deps{
		Model:       fake,
		Placeholder: media.URLPlaceholder(placeholderURL),
		Cache:       mem,
		Log:         logger.Nop(),
		Metrics:     metrics,
		Config:      cfg,
	})
	require.NoError(t, err)
	return &harness{svc: svc, fake: fake, metrics: metrics, cache: mem}
}

func requireAPIErr(t *testing.T, err error, status int, code, msg string) {
	t.Helper()
	require.Error(t, err)
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "expected *apierr.Error, got %T: %v", err, err)
	assert.Equal(t, status, ae.Status)
	assert.Equal(t, code, ae.Code)
	if msg != "" {
		assert.Equal(t, msg, ae.Message)
	}
}

func jsonBySchema(responses map[string]map[string]any, errs map[string]error) func(context.Context, gemini.TextRequest) (map[string]any, error) {
	return func(_ context.Context, req gemini.TextRequest) (map[string]any, error) {
		if err := errs[req.SchemaName]; err != nil {
			return nil, err
		}
		if out, ok := responses[req.SchemaName]; ok {
			return out, nil
		}
		return nil, errors.New("unexpected schema " + req.SchemaName)
	}
}

func TestNewServiceRequiresModel(t *testing.T) {
	_, err := NewService(Deps{})
	assert.Error(t, err)
}

func TestTranslate(t *testing.T) {
	m := messages{busy: "busy", failed: "failed"}

	requireAPIErr(t, translate(m, errors.New("rpc error: 503 Service Unavailable")), http.StatusServiceUnavailable, apierr.CodeModelBusy, "busy")
	requireAPIErr(t, translate(m, errors.New("The model is overloaded")), http.StatusServiceUnavailable, apierr.CodeModelBusy, "busy")
	requireAPIErr(t, translate(m, errors.New("quota")), http.StatusInternalServerError, apierr.CodeGenerationFailed, "failed")

	cause := errors.New("root cause")
	err := translate(m, cause)
	assert.ErrorIs(t, err, cause)

	already := apierr.Conflict(errors.New("x"))
	assert.Same(t, already, translate(m, already))
	assert.NoError(t, translate(m, nil))
}

func TestSettleIsolatesBranches(t *testing.T) {
	h := newHarness(t, nil)
	var a, b, c string
	warnings := h.svc.settle(context.Background(), logger.Nop(), "test",
		branch{name: "a", run: func(context.Context) error { a = "A"; return nil }, fallback: func() { a = "fa" }},
		branch{name: "b", run: func(context.Context) error { return errors.New("boom") }, fallback: func() { b = "fb" }},
		branch{name: "c", run: func(context.Context) error { panic("bad") }, fallback: func() { c = "fc" }},
	)
	assert.Equal(t, []string{"b", "c"}, warnings)
	assert.Equal(t, "A", a)
	assert.Equal(t, "fb", b)
	assert.Equal(t, "fc", c)
	assert.Equal(t, 1.0, h.metrics.StageCount("test", "a", observability.OutcomeOK))
	assert.Equal(t, 1.0, h.metrics.StageCount("test", "b", observability.OutcomeFallback))
}

func TestValidationMessages(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.KnowledgeAssistant(context.Background(), KnowledgeInput{Question: "  ", Language: "Hindi"})
	requireAPIErr(t, err, http.StatusBadRequest, apierr.CodeInvalidInput, "question is required")

	_, err = h.svc.VisualAid(context.Background(), VisualAidInput{Prompt: "cat "})
	requireAPIErr(t, err, http.StatusBadRequest, apierr.CodeInvalidInput, "prompt must be at least 5 characters long")
	assert.Empty(t, h.fake.Calls(""))
}
