package flows

import (
	"context"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/prompts"
)

const FlowKnowledgeAssistant = "knowledge_assistant"

type KnowledgeInput struct {
	Question string `json:"question" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type KnowledgeResult struct {
	Answer string `json:"answer"`
}

// KnowledgeAssistant answers a student's question simply, with an analogy, in their language.
func (s *Service) KnowledgeAssistant(ctx context.Context, in KnowledgeInput) (*KnowledgeResult, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Language = strings.TrimSpace(in.Language)
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowKnowledgeAssistant, func(ctx context.Context, log *logger.Logger) (*KnowledgeResult, error) {
		p, err := prompts.Build(prompts.PromptKnowledgeAssistant, prompts.Input{Question: in.Question, Language: in.Language})
		if err != nil {
			return nil, translate(knowledgeMessages, err)
		}
		return cached(ctx, s, log, FlowKnowledgeAssistant, cacheKey(FlowKnowledgeAssistant, p.Fingerprint()),
			func(ctx context.Context) (*KnowledgeResult, error) {
				answer, err := s.answer(ctx, p)
				if err != nil {
					s.stage(FlowKnowledgeAssistant, "answer", observability.OutcomeError)
					log.Error("knowledge assistant failed", "error", err)
					return nil, translate(knowledgeMessages, err)
				}
				s.stage(FlowKnowledgeAssistant, "answer", observability.OutcomeOK)
				log.Debug("knowledge assistant answered", "chars", len(answer))
				return &KnowledgeResult{Answer: answer}, nil
			})
	})
}

// answer runs a structured prompt whose schema has a single "answer" string.
func (s *Service) answer(ctx context.Context, p prompts.Prompt) (string, error) {
	obj, err := s.model.GenerateJSON(ctx, textRequest(p))
	if err != nil {
		return "", err
	}
	answer := asString(obj["answer"])
	if answer == "" {
		return "", gemini.ErrEmptyResponse
	}
	return answer, nil
}

func textRequest(p prompts.Prompt, images ...gemini.Media) gemini.TextRequest {
	return gemini.TextRequest{
		System:     p.System,
		User:       p.User,
		Images:     images,
		SchemaName: p.SchemaName,
		Schema:     p.Schema,
	}
}
