package flows

import (
	"context"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/prompts"
)

const FlowAskLater = "ask_later"

type AskLaterInput struct {
	Question string `json:"question" validate:"required"`
	// Defaults to the configured language (English).
	Language string `json:"language"`
}

type AskLaterResult struct {
	Answer       string   `json:"answer"`
	ImageURL     string   `json:"imageUrl"`
	AudioDataURI string   `json:"audioDataUri"`
	Warnings     []string `json:"warnings,omitempty"`
}

// AskLater answers a parked student question, then illustrates and narrates the answer in
// parallel. A failed illustration becomes the placeholder image and failed narration becomes
// an empty audio URI.
func (s *Service) AskLater(ctx context.Context, in AskLaterInput) (*AskLaterResult, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Language = strings.TrimSpace(in.Language)
	if in.Language == "" {
		in.Language = s.cfg.DefaultLanguage
	}
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowAskLater, func(ctx context.Context, log *logger.Logger) (*AskLaterResult, error) {
		p, err := prompts.Build(prompts.PromptAskLaterAnswer, prompts.Input{Question: in.Question, Language: in.Language})
		if err != nil {
			return nil, translate(askLaterMessages, err)
		}
		answer, err := s.answer(ctx, p)
		if err != nil {
			s.stage(FlowAskLater, "answer", observability.OutcomeError)
			log.Error("ask later text generation failed", "error", err)
			return nil, translate(askLaterMessages, err)
		}
		s.stage(FlowAskLater, "answer", observability.OutcomeOK)

		out := &AskLaterResult{Answer: answer}
		out.Warnings = s.settle(ctx, log, FlowAskLater,
			branch{
				name: "image",
				run: func(ctx context.Context) error {
					ip, err := prompts.Build(prompts.PromptAskLaterImage, prompts.Input{Question: in.Question})
					if err != nil {
						return err
					}
					uri, err := s.draw(ctx, ip.User)
					if err != nil {
						return err
					}
					out.ImageURL = uri
					return nil
				},
				fallback: func() { out.ImageURL = s.placeholder.ImageURL() },
			},
			branch{
				name: "audio",
				run: func(ctx context.Context) error {
					uri, err := s.speak(ctx, gemini.SpeechRequest{Text: answer, Voice: s.cfg.Speech.DefaultVoice})
					if err != nil {
						return err
					}
					out.AudioDataURI = uri
					return nil
				},
				fallback: func() { out.AudioDataURI = "" },
			},
		)
		return out, nil
	})
}
