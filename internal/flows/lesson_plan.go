package flows

import (
	"context"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/platform/markdown"
	"github.com/yungbote/sahayak-backend/internal/prompts"
)

const FlowLessonPlan = "lesson_plan"

type LessonPlanInput struct {
	WeeklySyllabus string `json:"weeklySyllabus" validate:"required"`
}

type LessonPlanResult struct {
	LessonPlan string `json:"lessonPlan"`
	HTML       string `json:"html"`
}

// LessonPlan drafts a time-structured, level-differentiated plan from a weekly syllabus.
func (s *Service) LessonPlan(ctx context.Context, in LessonPlanInput) (*LessonPlanResult, error) {
	in.WeeklySyllabus = strings.TrimSpace(in.WeeklySyllabus)
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowLessonPlan, func(ctx context.Context, log *logger.Logger) (*LessonPlanResult, error) {
		p, err := prompts.Build(prompts.PromptLessonPlan, prompts.Input{WeeklySyllabus: in.WeeklySyllabus})
		if err != nil {
			return nil, translate(lessonPlanMessages, err)
		}
		return cached(ctx, s, log, FlowLessonPlan, cacheKey(FlowLessonPlan, p.Fingerprint()),
			func(ctx context.Context) (*LessonPlanResult, error) {
				plan, err := s.plainText(ctx, p)
				if err != nil {
					s.stage(FlowLessonPlan, "plan", observability.OutcomeError)
					log.Error("lesson plan generation failed", "error", err)
					return nil, translate(lessonPlanMessages, err)
				}
				s.stage(FlowLessonPlan, "plan", observability.OutcomeOK)
				return &LessonPlanResult{LessonPlan: plan, HTML: markdown.ToHTML(plan)}, nil
			})
	})
}

func (s *Service) plainText(ctx context.Context, p prompts.Prompt) (string, error) {
	text, err := s.model.GenerateText(ctx, textRequest(p))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", gemini.ErrEmptyResponse
	}
	return text, nil
}
