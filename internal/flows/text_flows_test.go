package flows

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
	"github.com/yungbote/sahayak-backend/internal/platform/media"
	"github.com/yungbote/sahayak-backend/internal/script"
)

func TestLessonPlan(t *testing.T) {
	fake := &gemini.Fake{TextFn: func(context.Context, gemini.TextRequest) (string, error) {
		return "## Day 1\n- Fractions warm-up", nil
	}}
	h := newHarness(t, fake)
	out, err := h.svc.LessonPlan(context.Background(), LessonPlanInput{WeeklySyllabus: "Fractions and decimals"})
	require.NoError(t, err)
	assert.Equal(t, "## Day 1\n- Fractions warm-up", out.LessonPlan)
	assert.Contains(t, out.HTML, "<h2>Day 1</h2>")
	assert.Contains(t, fake.Calls(gemini.MethodText)[0].Text.User, "Fractions and decimals")

	fake.TextFn = func(context.Context, gemini.TextRequest) (string, error) { return "", errors.New("deadline exceeded") }
	_, err = h.svc.LessonPlan(context.Background(), LessonPlanInput{WeeklySyllabus: "Geometry"})
	requireAPIErr(t, err, http.StatusInternalServerError, apierr.CodeGenerationFailed,
		"An unexpected error occurred while generating the lesson plan. Please try again.")
}

func TestDifferentiatedWorksheets(t *testing.T) {
	photo := media.DataURI("image/jpeg", []byte{0xff, 0xd8, 0xff, 0xe0})
	fake := &gemini.Fake{JSONFn: jsonBySchema(map[string]map[string]any{
		"differentiated_worksheets": {
			"easyWorksheet":         "easy",
			"intermediateWorksheet": "intermediate",
			"advancedWorksheet":     "advanced",
		},
	}, nil)}
	h := newHarness(t, fake)

	out, err := h.svc.DifferentiatedWorksheets(context.Background(), WorksheetsInput{TextbookPagePhotoDataURI: photo})
	require.NoError(t, err)
	assert.Equal(t, &WorksheetsResult{EasyWorksheet: "easy", IntermediateWorksheet: "intermediate", AdvancedWorksheet: "advanced"}, out)

	calls := fake.Calls(gemini.MethodJSON)
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Text.Images, 1)
	assert.Equal(t, "image/jpeg", calls[0].Text.Images[0].MIMEType)

	// A different photo is a different cache entry.
	other := media.DataURI("image/jpeg", []byte{0xff, 0xd8, 0xff, 0xe1})
	_, err = h.svc.DifferentiatedWorksheets(context.Background(), WorksheetsInput{TextbookPagePhotoDataURI: other})
	require.NoError(t, err)
	_, err = h.svc.DifferentiatedWorksheets(context.Background(), WorksheetsInput{TextbookPagePhotoDataURI: photo})
	require.NoError(t, err)
	assert.Len(t, fake.Calls(gemini.MethodJSON), 2)
}

func TestDifferentiatedWorksheetsErrors(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.DifferentiatedWorksheets(context.Background(), WorksheetsInput{TextbookPagePhotoDataURI: "https://example.com/page.jpg"})
	requireAPIErr(t, err, http.StatusBadRequest, apierr.CodeInvalidInput, "")

	partial := newHarness(t, &gemini.Fake{JSONFn: func(context.Context, gemini.TextRequest) (map[string]any, error) {
		return map[string]any{"easyWorksheet": "easy"}, nil
	}})
	_, err = partial.svc.DifferentiatedWorksheets(context.Background(), WorksheetsInput{TextbookPagePhotoDataURI: media.DataURI("image/png", []byte{1})})
	requireAPIErr(t, err, http.StatusInternalServerError, apierr.CodeGenerationFailed,
		"An unexpected error occurred while generating worksheets. Please try again.")
}

func TestRolePlayScript(t *testing.T) {
	fake := &gemini.Fake{TextFn: func(context.Context, gemini.TextRequest) (string, error) {
		return "**Cashier:** Hello!\n(Smiles)\n**Customer:** Hi!", nil
	}}
	h := newHarness(t, fake)
	out, err := h.svc.RolePlayScript(context.Background(), RolePlayInput{Topic: "Shopping", Language: "English", Characters: "Cashier, Customer"})
	require.NoError(t, err)
	assert.Contains(t, out.Script, "**Cashier:**")
	assert.Contains(t, out.HTML, "<strong>Cashier:</strong>")
	assert.Contains(t, fake.Calls(gemini.MethodText)[0].Text.User, "Characters: Cashier, Customer")

	_, err = h.svc.RolePlayScript(context.Background(), RolePlayInput{Topic: "Shopping", Language: "English", Characters: "Cashier, Customer"})
	require.NoError(t, err)
	assert.Len(t, fake.Calls(gemini.MethodText), 1)

	busy := newHarness(t, &gemini.Fake{TextFn: func(context.Context, gemini.TextRequest) (string, error) {
		return "", errors.New("Error 503")
	}})
	_, err = busy.svc.RolePlayScript(context.Background(), RolePlayInput{Topic: "Shopping", Language: "English"})
	requireAPIErr(t, err, http.StatusServiceUnavailable, apierr.CodeModelBusy, busyMessage)
}

func dialogue(names ...string) string {
	var b strings.Builder
	for _, n := range names {
		b.WriteString("**" + n + ":** Hello there.\n(pause)\n")
	}
	return b.String()
}

func TestScriptAudioMultiSpeaker(t *testing.T) {
	h := newHarness(t, nil)
	out, err := h.svc.ScriptAudio(context.Background(), ScriptAudioInput{Script: dialogue("Teacher", "Student", "Teacher")})
	require.NoError(t, err)
	assert.Equal(t, AudioModeMulti, out.Mode)
	assert.Equal(t, []script.Assignment{{Speaker: "Teacher", Voice: "Algenib"}, {Speaker: "Student", Voice: "Achernar"}}, out.Speakers)
	assert.True(t, strings.HasPrefix(out.AudioDataURI, "data:audio/wav;base64,"))
	assert.Empty(t, out.Warnings)

	calls := h.fake.Calls(gemini.MethodSpeech)
	require.Len(t, calls, 1)
	req := calls[0].Speech
	assert.Equal(t, []gemini.SpeakerVoice{{Speaker: "Teacher", Voice: "Algenib"}, {Speaker: "Student", Voice: "Achernar"}}, req.Speakers)
	assert.Contains(t, req.Text, "Teacher: Hello there.\n")
	assert.NotContains(t, req.Text, "**")
}

func TestScriptAudioSpeakerCountFallsBackToSingle(t *testing.T) {
	for _, names := range [][]string{
		{"Narrator"},
		{"A", "B", "C", "D", "E", "F"},
		nil,
	} {
		h := newHarness(t, nil)
		src := dialogue(names...)
		if src == "" {
			src = "Once upon a time."
		}
		out, err := h.svc.ScriptAudio(context.Background(), ScriptAudioInput{Script: src})
		require.NoError(t, err)
		assert.Equal(t, AudioModeSingle, out.Mode, "names=%v", names)
		assert.Empty(t, out.Warnings)

		calls := h.fake.Calls(gemini.MethodSpeech)
		require.Len(t, calls, 1)
		assert.Empty(t, calls[0].Speech.Speakers)
		assert.Equal(t, "Algenib", calls[0].Speech.Voice)
		assert.NotContains(t, calls[0].Speech.Text, "\n")
	}
}

func TestScriptAudioMultiFailureFallsBack(t *testing.T) {
	cases := map[string]func(context.Context, gemini.SpeechRequest) (gemini.Media, error){
		"error": func(_ context.Context, req gemini.SpeechRequest) (gemini.Media, error) {
			if len(req.Speakers) > 0 {
				return gemini.Media{}, errors.New("multi-speaker unsupported")
			}
			return gemini.Media{Data: gemini.FakePCM}, nil
		},
		"empty media": func(_ context.Context, req gemini.SpeechRequest) (gemini.Media, error) {
			if len(req.Speakers) > 0 {
				return gemini.Media{}, nil
			}
			return gemini.Media{Data: gemini.FakePCM}, nil
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, &gemini.Fake{SpeechFn: fn})
			out, err := h.svc.ScriptAudio(context.Background(), ScriptAudioInput{Script: dialogue("A", "B")})
			require.NoError(t, err)
			assert.Equal(t, AudioModeSingle, out.Mode)
			assert.Equal(t, []string{"multi_speaker"}, out.Warnings)
			assert.NotEmpty(t, out.AudioDataURI)
			assert.Len(t, h.fake.Calls(gemini.MethodSpeech), 2)
		})
	}
}

func TestScriptAudioTotalFailureIsNotAnError(t *testing.T) {
	h := newHarness(t, &gemini.Fake{SpeechFn: func(context.Context, gemini.SpeechRequest) (gemini.Media, error) {
		return gemini.Media{}, errors.New("down")
	}})
	out, err := h.svc.ScriptAudio(context.Background(), ScriptAudioInput{Script: dialogue("A", "B")})
	require.NoError(t, err)
	assert.Equal(t, AudioModeNone, out.Mode)
	assert.Empty(t, out.AudioDataURI)
	assert.Equal(t, []string{"multi_speaker", "audio"}, out.Warnings)

	_, err = h.svc.ScriptAudio(context.Background(), ScriptAudioInput{Script: " \n "})
	requireAPIErr(t, err, http.StatusBadRequest, apierr.CodeInvalidInput, "script is required")
}
