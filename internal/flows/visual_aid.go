package flows

import (
	"context"
	"net/url"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/prompts"
)

const (
	FlowVisualAid = "visual_aid"

	imageSearchBase = "https://www.google.com/search"
)

type VisualAidInput struct {
	Prompt string `json:"prompt" validate:"required,min=5"`
}

type VisualAidResult struct {
	MediaURL string `json:"mediaUrl"`
}

// VisualAid draws a blackboard-friendly sketch. The image is the whole result, so a failed
// generation fails the flow instead of returning a placeholder.
func (s *Service) VisualAid(ctx context.Context, in VisualAidInput) (*VisualAidResult, error) {
	in.Prompt = strings.TrimSpace(in.Prompt)
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowVisualAid, func(ctx context.Context, log *logger.Logger) (*VisualAidResult, error) {
		p, err := prompts.Build(prompts.PromptVisualAidSketch, prompts.Input{Subject: in.Prompt})
		if err != nil {
			return nil, translate(visualAidMessages, err)
		}
		uri, err := s.draw(ctx, p.User)
		if err != nil {
			s.stage(FlowVisualAid, "image", observability.OutcomeError)
			log.Error("visual aid generation failed", "error", err)
			return nil, translate(visualAidMessages, err)
		}
		s.stage(FlowVisualAid, "image", observability.OutcomeOK)
		return &VisualAidResult{MediaURL: uri}, nil
	})
}

type ImageSearchInput struct {
	Query string `json:"query" form:"query" validate:"required,min=2"`
}

type ImageSearchResult struct {
	URL string `json:"url"`
}

// ImageSearchURL builds a large-image web search link for query. No model call is made.
func (s *Service) ImageSearchURL(in ImageSearchInput) (*ImageSearchResult, error) {
	in.Query = strings.TrimSpace(in.Query)
	if err := s.check(in); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("tbm", "isch")
	q.Set("q", in.Query)
	q.Set("tbs", "isz:l")
	return &ImageSearchResult{URL: imageSearchBase + "?" + q.Encode()}, nil
}
