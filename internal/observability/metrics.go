package observability

import (
	"io"
	"net/http"
	"time"
)

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *Gauge
	flowRequests *CounterVec
	flowLatency  *HistogramVec
	flowStages   *CounterVec
	modelCalls   *CounterVec
	modelLatency *HistogramVec
	cacheLookups *CounterVec
	gameSessions *Gauge
	askQueued    *Gauge
}

// NewMetrics returns nil when disabled; every recording method is a no-op on a nil receiver.
func NewMetrics(enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	return &Metrics{
		apiRequests: NewCounterVec("sahayak_api_requests_total", "Total API requests", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec("sahayak_api_request_duration_seconds", "API request latency in seconds",
			[]string{"method", "route", "status"}, []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}),
		apiInflight:  NewGauge("sahayak_api_inflight_requests", "Current in-flight API requests"),
		flowRequests: NewCounterVec("sahayak_flow_requests_total", "Flow invocations by result", []string{"flow", "status"}),
		flowLatency: NewHistogramVec("sahayak_flow_duration_seconds", "End-to-end flow latency in seconds",
			[]string{"flow"}, []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80}),
		flowStages: NewCounterVec("sahayak_flow_stage_total", "Flow stage outcomes (ok, fallback, error)", []string{"flow", "stage", "outcome"}),
		modelCalls: NewCounterVec("sahayak_model_requests_total", "Model calls by kind and status", []string{"kind", "model", "status"}),
		modelLatency: NewHistogramVec("sahayak_model_request_duration_seconds", "Model call latency in seconds",
			[]string{"kind", "model"}, []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80}),
		cacheLookups: NewCounterVec("sahayak_cache_lookups_total", "Result cache lookups", []string{"flow", "result"}),
		gameSessions: NewGauge("sahayak_game_sessions", "Live game sessions"),
		askQueued:    NewGauge("sahayak_ask_later_questions", "Questions waiting in the ask-later queue"),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, _ *http.Request) {
	if m == nil {
		http.Error(w, "metrics disabled", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, p := range []promWriter{
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.flowRequests, m.flowLatency, m.flowStages,
		m.modelCalls, m.modelLatency,
		m.cacheLookups, m.gameSessions, m.askQueued,
	} {
		if err := p.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

// ObserveFlow records one complete flow invocation. status is "success" or an apierr code.
func (m *Metrics) ObserveFlow(flow, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.flowRequests.Inc(flow, status)
	m.flowLatency.Observe(dur.Seconds(), flow)
}

func (m *Metrics) ObserveStage(flow, stage, outcome string) {
	if m == nil {
		return
	}
	m.flowStages.Inc(flow, stage, outcome)
}

func (m *Metrics) StageCount(flow, stage, outcome string) float64 {
	if m == nil {
		return 0
	}
	return m.flowStages.Value(flow, stage, outcome)
}

func (m *Metrics) ObserveModelCall(kind, model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.modelCalls.Inc(kind, model, status)
	m.modelLatency.Observe(dur.Seconds(), kind, model)
}

func (m *Metrics) ModelCallCount(kind, model, status string) float64 {
	if m == nil {
		return 0
	}
	return m.modelCalls.Value(kind, model, status)
}

func (m *Metrics) ObserveCache(flow string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Inc(flow, result)
}

func (m *Metrics) SetGameSessions(n int) {
	if m == nil {
		return
	}
	m.gameSessions.Set(float64(n))
}

func (m *Metrics) SetAskLaterQueued(n int) {
	if m == nil {
		return
	}
	m.askQueued.Set(float64(n))
}
