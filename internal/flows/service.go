package flows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/sahayak-backend/internal/cache"
	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
	"github.com/yungbote/sahayak-backend/internal/platform/ctxutil"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

// Deps are the collaborators of a Service. Model is required; the rest have usable zero values.
type Deps struct {
	Model       gemini.Client
	Placeholder media.Placeholder
	Cache       cache.Cache
	CacheTTL    time.Duration
	Log         *logger.Logger
	Metrics     *observability.Metrics
	Config      config.FlowsConfig
}

// Service runs the teaching-material flows. It is safe for concurrent use.
type Service struct {
	model       gemini.Client
	placeholder media.Placeholder
	cache       cache.Cache
	cacheTTL    time.Duration
	log         *logger.Logger
	metrics     *observability.Metrics
	tracer      trace.Tracer
	validate    *validator.Validate
	cfg         config.FlowsConfig
}

func NewService(d Deps) (*Service, error) {
	if d.Model == nil {
		return nil, fmt.Errorf("flows: model client required")
	}
	cfg := d.Config
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		cfg.DefaultLanguage = "English"
	}
	if cfg.Speech.SampleRate <= 0 {
		cfg.Speech.SampleRate = 24000
	}
	if cfg.Speech.Channels <= 0 {
		cfg.Speech.Channels = 1
	}
	if len(cfg.Speech.Voices) == 0 {
		cfg.Speech.Voices = []string{"Algenib", "Achernar", "Enif", "Fomalhaut", "Hamal"}
	}
	if cfg.Speech.DefaultVoice == "" {
		cfg.Speech.DefaultVoice = cfg.Speech.Voices[0]
	}
	if cfg.Speech.MinSpeakers <= 0 {
		cfg.Speech.MinSpeakers = 2
	}
	if cfg.Speech.MaxSpeakers <= 0 {
		cfg.Speech.MaxSpeakers = 5
	}
	placeholder := d.Placeholder
	if placeholder == nil {
		placeholder = media.URLPlaceholder(cfg.PlaceholderImageURL)
	}
	c := d.Cache
	if c == nil {
		c = cache.Noop{}
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		model:       d.Model,
		placeholder: placeholder,
		cache:       c,
		cacheTTL:    d.CacheTTL,
		log:         log.With("component", "flows"),
		metrics:     d.Metrics,
		tracer:      observability.Tracer(),
		validate:    newValidator(),
		cfg:         cfg,
	}, nil
}

// NewPlaceholder builds the configured fallback image source.
func NewPlaceholder(cfg config.FlowsConfig) media.Placeholder {
	if cfg.PlaceholderMode == config.PlaceholderRender {
		return media.NewRenderedPlaceholder("Illustration unavailable")
	}
	return media.URLPlaceholder(cfg.PlaceholderImageURL)
}

// run wraps one flow invocation in a span and the flow metrics.
func run[T any](ctx context.Context, s *Service, flow string, fn func(ctx context.Context, log *logger.Logger) (T, error)) (T, error) {
	ctx, span := s.tracer.Start(ctx, "flow."+flow, trace.WithAttributes(attribute.String("flow.name", flow)))
	defer span.End()
	start := time.Now()

	out, err := fn(ctx, s.log.With(append([]any{"flow", flow}, ctxutil.LogFields(ctx)...)...))

	status := "success"
	if err != nil {
		status = apierr.From(err).Code
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
	}
	s.metrics.ObserveFlow(flow, status, time.Since(start))
	return out, err
}

func (s *Service) stage(flow, stage, outcome string) {
	s.metrics.ObserveStage(flow, stage, outcome)
}

// wavDataURI converts raw speech PCM into a playable data URI.
func (s *Service) wavDataURI(pcm media.Media) string {
	return media.WAVDataURI(pcm.Data, s.cfg.Speech.Channels, s.cfg.Speech.SampleRate)
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
