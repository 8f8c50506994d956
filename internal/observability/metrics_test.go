package observability

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/x", "200", time.Second)
	m.ApiInflightInc()
	m.ObserveStage("ask_later", "image", OutcomeFallback)
	m.ObserveModelCall("text", "gemini", "ok", time.Second)
	if got := m.StageCount("ask_later", "image", OutcomeFallback); got != 0 {
		t.Fatalf("got %v", got)
	}
	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, nil)
	if rec.Code != 404 {
		t.Fatalf("code=%d", rec.Code)
	}
}

func TestWritePrometheus(t *testing.T) {
	m := NewMetrics(true)
	m.ObserveAPI("POST", "/api/flows/ask-later", "200", 300*time.Millisecond)
	m.ObserveStage("ask_later", "image", OutcomeFallback)
	m.ObserveStage("ask_later", "image", OutcomeFallback)
	m.ObserveModelCall("image", "gemini-2.0-flash", "error", 2*time.Second)
	m.ApiInflightInc()
	m.ApiInflightInc()
	m.ApiInflightDec()

	if got := m.StageCount("ask_later", "image", OutcomeFallback); got != 2 {
		t.Fatalf("stage count=%v", got)
	}

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE sahayak_api_requests_total counter",
		`sahayak_api_requests_total{method="POST",route="/api/flows/ask-later",status="200"} 1`,
		`sahayak_api_request_duration_seconds_bucket{method="POST",route="/api/flows/ask-later",status="200",le="0.5"} 1`,
		`sahayak_api_request_duration_seconds_bucket{method="POST",route="/api/flows/ask-later",status="200",le="0.25"} 0`,
		`sahayak_flow_stage_total{flow="ask_later",stage="image",outcome="fallback"} 2`,
		`sahayak_model_requests_total{kind="image",model="gemini-2.0-flash",status="error"} 1`,
		"sahayak_api_inflight_requests 1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLabelEscaping(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{"x\"y\n", ""})
	if got != `{a="x\"y\n",b="unknown"}` {
		t.Fatalf("got %s", got)
	}
	if withLe("", "1") != `{le="1"}` {
		t.Fatalf("withLe empty")
	}
}

func TestInitOTelDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown := InitOTel(t.Context(), nil, OtelConfig{Enabled: false})
	if shutdown == nil {
		t.Fatalf("nil shutdown")
	}
	if err := shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
