package flows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
	"github.com/yungbote/sahayak-backend/internal/prompts"
)

const FlowWorksheets = "differentiated_worksheets"

type WorksheetsInput struct {
	// Photo of a textbook page as data:<mimetype>;base64,<encoded_data>.
	TextbookPagePhotoDataURI string `json:"textbookPagePhotoDataUri" validate:"required"`
}

type WorksheetsResult struct {
	EasyWorksheet         string `json:"easyWorksheet"`
	IntermediateWorksheet string `json:"intermediateWorksheet"`
	AdvancedWorksheet     string `json:"advancedWorksheet"`
}

// DifferentiatedWorksheets reads a textbook page photo and writes easy, intermediate and
// advanced worksheets covering the same concepts.
func (s *Service) DifferentiatedWorksheets(ctx context.Context, in WorksheetsInput) (*WorksheetsResult, error) {
	in.TextbookPagePhotoDataURI = strings.TrimSpace(in.TextbookPagePhotoDataURI)
	if err := s.check(in); err != nil {
		return nil, err
	}
	photo, err := media.ParseDataURI(in.TextbookPagePhotoDataURI)
	if err != nil {
		return nil, apierr.Invalid(err)
	}
	return run(ctx, s, FlowWorksheets, func(ctx context.Context, log *logger.Logger) (*WorksheetsResult, error) {
		p, err := prompts.Build(prompts.PromptDifferentiatedWorksheets, prompts.Input{})
		if err != nil {
			return nil, translate(worksheetMessages, err)
		}
		sum := sha256.Sum256(photo.Data)
		key := cacheKey(FlowWorksheets, p.Fingerprint(), photo.MIMEType, hex.EncodeToString(sum[:]))
		return cached(ctx, s, log, FlowWorksheets, key, func(ctx context.Context) (*WorksheetsResult, error) {
			obj, err := s.model.GenerateJSON(ctx, textRequest(p, photo))
			if err == nil {
				out := &WorksheetsResult{
					EasyWorksheet:         asString(obj["easyWorksheet"]),
					IntermediateWorksheet: asString(obj["intermediateWorksheet"]),
					AdvancedWorksheet:     asString(obj["advancedWorksheet"]),
				}
				if out.EasyWorksheet != "" && out.IntermediateWorksheet != "" && out.AdvancedWorksheet != "" {
					s.stage(FlowWorksheets, "worksheets", observability.OutcomeOK)
					return out, nil
				}
				err = gemini.ErrEmptyResponse
			}
			s.stage(FlowWorksheets, "worksheets", observability.OutcomeError)
			log.Error("worksheet generation failed", "error", err)
			return nil, translate(worksheetMessages, err)
		})
	})
}
