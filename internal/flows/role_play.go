package flows

import (
	"context"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/observability"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
	"github.com/yungbote/sahayak-backend/internal/platform/markdown"
	"github.com/yungbote/sahayak-backend/internal/prompts"
	"github.com/yungbote/sahayak-backend/internal/script"
)

const (
	FlowRolePlayScript = "role_play_script"
	FlowScriptAudio    = "role_play_audio"

	AudioModeMulti  = "multi_speaker"
	AudioModeSingle = "single_speaker"
	AudioModeNone   = "none"

	narrator = "Narrator"
)

type RolePlayInput struct {
	Topic      string `json:"topic" validate:"required"`
	Characters string `json:"characters"`
	Setting    string `json:"setting"`
	Language   string `json:"language" validate:"required"`
}

type RolePlayScriptResult struct {
	Script string `json:"script"`
	HTML   string `json:"html"`
}

// RolePlayScript writes a short classroom role-play in Markdown ("**Name:** line" dialogue
// with parenthesised stage directions).
func (s *Service) RolePlayScript(ctx context.Context, in RolePlayInput) (*RolePlayScriptResult, error) {
	in.Topic = strings.TrimSpace(in.Topic)
	in.Characters = strings.TrimSpace(in.Characters)
	in.Setting = strings.TrimSpace(in.Setting)
	in.Language = strings.TrimSpace(in.Language)
	if err := s.check(in); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowRolePlayScript, func(ctx context.Context, log *logger.Logger) (*RolePlayScriptResult, error) {
		p, err := prompts.Build(prompts.PromptRolePlayScript, prompts.Input{
			Topic:      in.Topic,
			Characters: in.Characters,
			Setting:    in.Setting,
			Language:   in.Language,
		})
		if err != nil {
			return nil, translate(rolePlayMessages, err)
		}
		return cached(ctx, s, log, FlowRolePlayScript, cacheKey(FlowRolePlayScript, p.Fingerprint()),
			func(ctx context.Context) (*RolePlayScriptResult, error) {
				text, err := s.plainText(ctx, p)
				if err != nil {
					s.stage(FlowRolePlayScript, "script", observability.OutcomeError)
					log.Error("role-play script generation failed", "error", err)
					return nil, translate(rolePlayMessages, err)
				}
				s.stage(FlowRolePlayScript, "script", observability.OutcomeOK)
				return &RolePlayScriptResult{Script: text, HTML: markdown.ToHTML(text)}, nil
			})
	})
}

type ScriptAudioInput struct {
	Script string `json:"script" validate:"required"`
}

type ScriptAudioResult struct {
	// Empty when both multi-speaker and single-speaker synthesis failed.
	AudioDataURI string              `json:"audioDataUri,omitempty"`
	Mode         string              `json:"mode"`
	Speakers     []script.Assignment `json:"speakers"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// ScriptAudio performs a script aloud. Scripts with a supported number of distinct speakers get
// one voice per character; otherwise, or when that fails, a single narrator reads the whole
// script. Audio failure never fails the flow.
func (s *Service) ScriptAudio(ctx context.Context, in ScriptAudioInput) (*ScriptAudioResult, error) {
	// The script keeps its line structure; only the emptiness check ignores whitespace.
	if err := s.check(ScriptAudioInput{Script: strings.TrimSpace(in.Script)}); err != nil {
		return nil, err
	}
	return run(ctx, s, FlowScriptAudio, func(ctx context.Context, log *logger.Logger) (*ScriptAudioResult, error) {
		out := &ScriptAudioResult{}
		speakers := script.Speakers(in.Script)
		sc := s.cfg.Speech

		if len(speakers) >= sc.MinSpeakers && len(speakers) <= sc.MaxSpeakers {
			assignments := script.AssignVoices(speakers, sc.Voices)
			req := gemini.SpeechRequest{Text: script.MultiSpeakerText(in.Script)}
			for _, a := range assignments {
				req.Speakers = append(req.Speakers, gemini.SpeakerVoice{Speaker: a.Speaker, Voice: a.Voice})
			}
			uri, err := s.speak(ctx, req)
			if err == nil {
				s.stage(FlowScriptAudio, "multi_speaker", observability.OutcomeOK)
				out.AudioDataURI, out.Mode, out.Speakers = uri, AudioModeMulti, assignments
				return out, nil
			}
			s.stage(FlowScriptAudio, "multi_speaker", observability.OutcomeFallback)
			out.Warnings = append(out.Warnings, "multi_speaker")
			log.Warn("multi-speaker audio failed, falling back to a single speaker", "speakers", len(speakers), "error", err)
		} else {
			log.Warn("multi-speaker audio skipped", "speakers", len(speakers),
				"min", sc.MinSpeakers, "max", sc.MaxSpeakers)
		}

		uri, err := s.speak(ctx, gemini.SpeechRequest{Text: script.SingleSpeakerText(in.Script), Voice: sc.DefaultVoice})
		if err != nil {
			s.stage(FlowScriptAudio, "single_speaker", observability.OutcomeFallback)
			out.Warnings = append(out.Warnings, "audio")
			out.Mode = AudioModeNone
			log.Error("single-speaker audio fallback also failed", "error", err)
			return out, nil
		}
		s.stage(FlowScriptAudio, "single_speaker", observability.OutcomeOK)
		out.AudioDataURI, out.Mode = uri, AudioModeSingle
		out.Speakers = []script.Assignment{{Speaker: narrator, Voice: sc.DefaultVoice}}
		return out, nil
	})
}
