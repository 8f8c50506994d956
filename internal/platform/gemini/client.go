package gemini

import (
	"context"
	"fmt"

	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

// Media is inline binary output (or input) of a model call.
type Media = media.Media

// TextRequest is one text-generation call. Images are sent as inline parts after the user text.
// GenerateJSON requires Schema; SchemaName is used for logs and traces.
type TextRequest struct {
	System      string
	User        string
	Images      []Media
	SchemaName  string
	Schema      map[string]any
	Temperature *float32
}

type SpeakerVoice struct {
	Speaker string
	Voice   string
}

// SpeechRequest synthesizes Text with one prebuilt Voice, or with a per-speaker voice map when
// Speakers is set. Speaker names must match the "Name:" prefixes in Text.
type SpeechRequest struct {
	Text     string
	Voice    string
	Speakers []SpeakerVoice
}

// Client is the generative model surface used by the flows.
type Client interface {
	// Plain text.
	GenerateText(ctx context.Context, req TextRequest) (string, error)

	// Structured output constrained by req.Schema.
	GenerateJSON(ctx context.Context, req TextRequest) (map[string]any, error)

	// Raster image. Returns ErrNoMedia when the model answers without an image.
	GenerateImage(ctx context.Context, prompt string) (Media, error)

	// Raw PCM speech (16-bit little endian). Returns ErrNoMedia when no audio comes back.
	Synthesize(ctx context.Context, req SpeechRequest) (Media, error)
}

// New builds the configured provider wrapped with tracing and call metrics.
func New(ctx context.Context, cfg config.ModelConfig, log *logger.Logger, metrics *observability.Metrics) (Client, error) {
	var (
		base Client
		err  error
	)
	switch cfg.Provider {
	case config.ProviderGemini, "":
		base, err = newGenAIClient(ctx, cfg, log)
	case config.ProviderMock:
		base = NewMock()
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	log.Info("model client ready",
		"provider", cfg.Provider,
		"text_model", cfg.TextModel,
		"image_model", cfg.ImageModel,
		"speech_model", cfg.SpeechModel,
	)
	return Instrument(base, Models{Text: cfg.TextModel, Image: cfg.ImageModel, Speech: cfg.SpeechModel}, metrics), nil
}
