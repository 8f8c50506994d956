package flows

import (
	"context"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/prompts"
)

const (
	FlowHyperlocalContent = "hyperlocal_content"

	// fallbackVisualPrompt is used when no scene description can be derived from the story.
	fallbackVisualPrompt = "A beautiful and vibrant illustration for a children's story, in a culturally relevant style"
)

type HyperlocalInput struct {
	Prompt   string `json:"prompt" validate:"required"`
	Language string `json:"language" validate:"required"`
}

type HyperlocalResult struct {
	Story    string   `json:"story"`
	ImageURL string   `json:"imageUrl"`
	Warnings []string `json:"warnings,omitempty"`
}

// HyperlocalContent writes a culturally relevant children's story and illustrates it. The story
// is required; the scene description and the illustration degrade to fallbacks.
func (s *Service) HyperlocalContent(ctx context.Context, in HyperlocalInput) (*HyperlocalResult, error) {
	in.Prompt = strings.TrimSpace(in.Prompt)
	in.Language = strings.TrimSpace(in.Language)
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowHyperlocalContent, func(ctx context.Context, log *logger.Logger) (*HyperlocalResult, error) {
		story, err := s.story(ctx, in)
		if err != nil {
			s.stage(FlowHyperlocalContent, "story", observability.OutcomeError)
			log.Error("story generation failed", "error", err)
			return nil, translate(storyMessages, err)
		}
		s.stage(FlowHyperlocalContent, "story", observability.OutcomeOK)

		out := &HyperlocalResult{Story: story}
		var merr *multierror.Error

		visual, err := s.visualPrompt(ctx, story)
		if err != nil {
			s.stage(FlowHyperlocalContent, "visual_prompt", observability.OutcomeFallback)
			merr = multierror.Append(merr, err)
			out.Warnings = append(out.Warnings, "visual_prompt")
			visual = fallbackVisualPrompt
		} else {
			s.stage(FlowHyperlocalContent, "visual_prompt", observability.OutcomeOK)
		}

		out.ImageURL, err = s.illustrate(ctx, visual)
		if err != nil {
			s.stage(FlowHyperlocalContent, "image", observability.OutcomeFallback)
			merr = multierror.Append(merr, err)
			out.Warnings = append(out.Warnings, "image")
			out.ImageURL = s.placeholder.ImageURL()
		} else {
			s.stage(FlowHyperlocalContent, "image", observability.OutcomeOK)
		}

		if err := merr.ErrorOrNil(); err != nil {
			log.Warn("story illustration degraded, using fallbacks", "branches", out.Warnings, "error", err)
		}
		return out, nil
	})
}

func (s *Service) story(ctx context.Context, in HyperlocalInput) (string, error) {
	p, err := prompts.Build(prompts.PromptHyperlocalStory, prompts.Input{StoryPrompt: in.Prompt, Language: in.Language})
	if err != nil {
		return "", err
	}
	obj, err := s.model.GenerateJSON(ctx, textRequest(p))
	if err != nil {
		return "", err
	}
	story := asString(obj["story"])
	if story == "" {
		return "", gemini.ErrEmptyResponse
	}
	return story, nil
}

func (s *Service) visualPrompt(ctx context.Context, story string) (string, error) {
	p, err := prompts.Build(prompts.PromptStoryVisualPrompt, prompts.Input{Story: story})
	if err != nil {
		return "", err
	}
	obj, err := s.model.GenerateJSON(ctx, textRequest(p))
	if err != nil {
		return "", err
	}
	visual := strings.TrimRight(asString(obj["visualPrompt"]), ". ")
	if visual == "" {
		return "", gemini.ErrEmptyResponse
	}
	return visual, nil
}

func (s *Service) illustrate(ctx context.Context, visual string) (string, error) {
	p, err := prompts.Build(prompts.PromptHyperlocalImage, prompts.Input{VisualPrompt: visual})
	if err != nil {
		return "", err
	}
	return s.draw(ctx, p.User)
}
