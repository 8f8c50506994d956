package gemini

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/sahayak-backend/internal/observability"
)

// Models names the model behind each call kind, for metrics and span attributes.
type Models struct {
	Text   string
	Image  string
	Speech string
}

type instrumented struct {
	next    Client
	models  Models
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// Instrument wraps c so every call is traced and recorded in the model call metrics.
func Instrument(c Client, models Models, metrics *observability.Metrics) Client {
	return &instrumented{next: c, models: models, metrics: metrics, tracer: observability.Tracer()}
}

func (i *instrumented) start(ctx context.Context, kind, model string) (context.Context, trace.Span, time.Time) {
	ctx, span := i.tracer.Start(ctx, "model."+kind, trace.WithAttributes(
		attribute.String("model.kind", kind),
		attribute.String("model.name", model),
	))
	return ctx, span, time.Now()
}

func (i *instrumented) finish(span trace.Span, kind, model string, start time.Time, err error) {
	status := "ok"
	switch {
	case err == nil:
	case IsBusy(err):
		status = "busy"
	default:
		status = "error"
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}
	span.End()
	i.metrics.ObserveModelCall(kind, model, status, time.Since(start))
}

func (i *instrumented) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	ctx, span, start := i.start(ctx, "text", i.models.Text)
	out, err := i.next.GenerateText(ctx, req)
	i.finish(span, "text", i.models.Text, start, err)
	return out, err
}

func (i *instrumented) GenerateJSON(ctx context.Context, req TextRequest) (map[string]any, error) {
	ctx, span, start := i.start(ctx, "json", i.models.Text)
	span.SetAttributes(attribute.String("model.schema", req.SchemaName))
	out, err := i.next.GenerateJSON(ctx, req)
	i.finish(span, "json", i.models.Text, start, err)
	return out, err
}

func (i *instrumented) GenerateImage(ctx context.Context, prompt string) (Media, error) {
	ctx, span, start := i.start(ctx, "image", i.models.Image)
	out, err := i.next.GenerateImage(ctx, prompt)
	i.finish(span, "image", i.models.Image, start, err)
	return out, err
}

func (i *instrumented) Synthesize(ctx context.Context, req SpeechRequest) (Media, error) {
	ctx, span, start := i.start(ctx, "speech", i.models.Speech)
	span.SetAttributes(attribute.Int("speech.speakers", len(req.Speakers)))
	out, err := i.next.Synthesize(ctx, req)
	i.finish(span, "speech", i.models.Speech, start, err)
	return out, err
}
