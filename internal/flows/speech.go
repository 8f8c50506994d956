package flows

import (
	"context"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

const FlowSpeech = "speech"

type SpeechInput struct {
	Text string `json:"text" validate:"required"`
}

type SpeechResult struct {
	AudioDataURI string `json:"audioDataUri"`
}

// GenerateSpeech reads text aloud with the default voice and returns a WAV data URI.
func (s *Service) GenerateSpeech(ctx context.Context, in SpeechInput) (*SpeechResult, error) {
	in.Text = strings.TrimSpace(in.Text)
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowSpeech, func(ctx context.Context, log *logger.Logger) (*SpeechResult, error) {
		uri, err := s.speak(ctx, gemini.SpeechRequest{Text: in.Text, Voice: s.cfg.Speech.DefaultVoice})
		if err != nil {
			s.stage(FlowSpeech, "audio", observability.OutcomeError)
			log.Error("speech generation failed", "error", err)
			return nil, translate(speechMessages, err)
		}
		s.stage(FlowSpeech, "audio", observability.OutcomeOK)
		return &SpeechResult{AudioDataURI: uri}, nil
	})
}

// speak synthesizes req and wraps the PCM as WAV. Empty audio is ErrNoMedia.
func (s *Service) speak(ctx context.Context, req gemini.SpeechRequest) (string, error) {
	m, err := s.model.Synthesize(ctx, req)
	if err != nil {
		return "", err
	}
	if len(m.Data) == 0 {
		return "", gemini.ErrNoMedia
	}
	return s.wavDataURI(m), nil
}

// draw generates an image and returns it as a data URI. Empty output is ErrNoMedia.
func (s *Service) draw(ctx context.Context, prompt string) (string, error) {
	m, err := s.model.GenerateImage(ctx, prompt)
	if err != nil {
		return "", err
	}
	if len(m.Data) == 0 {
		return "", gemini.ErrNoMedia
	}
	if m.MIMEType == "" {
		m.MIMEType = "image/png"
	}
	return m.DataURI(), nil
}
