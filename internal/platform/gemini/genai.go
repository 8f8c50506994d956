package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

const (
	modalityText  = "TEXT"
	modalityImage = "IMAGE"
	modalityAudio = "AUDIO"
)

type genaiClient struct {
	log         *logger.Logger
	client      *genai.Client
	textModel   string
	imageModel  string
	speechModel string
	timeout     time.Duration
}

func newGenAIClient(ctx context.Context, cfg config.ModelConfig, log *logger.Logger) (*genaiClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("missing gemini api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &genaiClient{
		log:         log.With("component", "gemini"),
		client:      c,
		textModel:   cfg.TextModel,
		imageModel:  cfg.ImageModel,
		speechModel: cfg.SpeechModel,
		timeout:     cfg.Timeout.Duration,
	}, nil
}

func (c *genaiClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func userContents(req TextRequest) []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(req.User)}
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func textConfig(req TextRequest) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{Temperature: req.Temperature}
	if s := strings.TrimSpace(req.System); s != "" {
		gc.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}
	return gc
}

func (c *genaiClient) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, userContents(req), textConfig(req))
	if err != nil {
		return "", fmt.Errorf("generate text: %w", err)
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (c *genaiClient) GenerateJSON(ctx context.Context, req TextRequest) (map[string]any, error) {
	if req.Schema == nil {
		return nil, errors.New("schema required")
	}
	schema, err := toSchema(req.Schema)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", req.SchemaName, err)
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	gc := textConfig(req)
	gc.ResponseMIMEType = "application/json"
	gc.ResponseSchema = schema

	resp, err := c.client.Models.GenerateContent(ctx, c.textModel, userContents(req), gc)
	if err != nil {
		return nil, fmt.Errorf("generate json: %w", err)
	}
	jsonText := strings.TrimSpace(responseText(resp))
	if jsonText == "" {
		return nil, ErrEmptyResponse
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(jsonText), &obj); err != nil {
		return nil, fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return obj, nil
}

func (c *genaiClient) GenerateImage(ctx context.Context, prompt string) (Media, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Media{}, errors.New("image prompt required")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	gc := &genai.GenerateContentConfig{ResponseModalities: []string{modalityText, modalityImage}}
	resp, err := c.client.Models.GenerateContent(ctx, c.imageModel, genai.Text(prompt), gc)
	if err != nil {
		return Media{}, fmt.Errorf("generate image: %w", err)
	}
	m, ok := firstInline(resp, "image/")
	if !ok {
		return Media{}, ErrNoMedia
	}
	return m, nil
}

func (c *genaiClient) Synthesize(ctx context.Context, req SpeechRequest) (Media, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Media{}, errors.New("speech text required")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	speech := &genai.SpeechConfig{}
	if len(req.Speakers) > 0 {
		multi := &genai.MultiSpeakerVoiceConfig{}
		for _, sv := range req.Speakers {
			multi.SpeakerVoiceConfigs = append(multi.SpeakerVoiceConfigs, &genai.SpeakerVoiceConfig{
				Speaker:     sv.Speaker,
				VoiceConfig: prebuiltVoice(sv.Voice),
			})
		}
		speech.MultiSpeakerVoiceConfig = multi
	} else {
		speech.VoiceConfig = prebuiltVoice(req.Voice)
	}
	gc := &genai.GenerateContentConfig{
		ResponseModalities: []string{modalityAudio},
		SpeechConfig:       speech,
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.speechModel, genai.Text(req.Text), gc)
	if err != nil {
		return Media{}, fmt.Errorf("synthesize speech: %w", err)
	}
	m, ok := firstInline(resp, "")
	if !ok {
		return Media{}, ErrNoMedia
	}
	return m, nil
}

func prebuiltVoice(name string) *genai.VoiceConfig {
	return &genai.VoiceConfig{PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: name}}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
		// Only the first candidate is used.
		break
	}
	return b.String()
}

func firstInline(resp *genai.GenerateContentResponse, mimePrefix string) (Media, bool) {
	if resp == nil {
		return Media{}, false
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if p == nil || p.InlineData == nil || len(p.InlineData.Data) == 0 {
				continue
			}
			if mimePrefix != "" && !strings.HasPrefix(p.InlineData.MIMEType, mimePrefix) {
				continue
			}
			return Media{Data: p.InlineData.Data, MIMEType: p.InlineData.MIMEType}, true
		}
	}
	return Media{}, false
}
