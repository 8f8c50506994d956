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
)

func TestKnowledgeAssistant(t *testing.T) {
	fake := &gemini.Fake{JSONFn: jsonBySchema(map[string]map[string]any{
		"knowledge_answer": {"answer": " Like a sponge soaking water. "},
	}, nil)}
	h := newHarness(t, fake)

	out, err := h.svc.KnowledgeAssistant(context.Background(), KnowledgeInput{Question: "Why do plants need water?", Language: "Marathi"})
	require.NoError(t, err)
	assert.Equal(t, "Like a sponge soaking water.", out.Answer)

	calls := fake.Calls(gemini.MethodJSON)
	require.Len(t, calls, 1)
	assert.True(t, strings.Contains(calls[0].Text.User, "Language: Marathi"))
	assert.NotNil(t, calls[0].Text.Schema)
}

func TestKnowledgeAssistantCachesSuccess(t *testing.T) {
	fake := &gemini.Fake{JSONFn: jsonBySchema(map[string]map[string]any{
		"knowledge_answer": {"answer": "cached answer"},
	}, nil)}
	h := newHarness(t, fake)
	in := KnowledgeInput{Question: "What is rain?", Language: "English"}

	for i := 0; i < 3; i++ {
		out, err := h.svc.KnowledgeAssistant(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, "cached answer", out.Answer)
	}
	assert.Len(t, fake.Calls(gemini.MethodJSON), 1)
}

func TestKnowledgeAssistantFailures(t *testing.T) {
	const failedMsg = "Failed to get an answer. Please try again."
	cases := []struct {
		name   string
		out    map[string]any
		err    error
		status int
		code   string
		msg    string
	}{
		{
			name:   "busy",
			err:    errors.New("503 UNAVAILABLE"),
			status: http.StatusServiceUnavailable,
			code:   apierr.CodeModelBusy,
			msg:    "The AI model is currently busy. Please try again in a moment.",
		},
		{
			name:   "generic",
			err:    errors.New("permission denied"),
			status: http.StatusInternalServerError,
			code:   apierr.CodeGenerationFailed,
			msg:    failedMsg,
		},
		{
			name:   "empty answer",
			out:    map[string]any{"answer": "  "},
			status: http.StatusInternalServerError,
			code:   apierr.CodeGenerationFailed,
			msg:    failedMsg,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn := func(context.Context, gemini.TextRequest) (map[string]any, error) {
				return tc.out, tc.err
			}
			h := newHarness(t, &gemini.Fake{JSONFn: fn})
			_, err := h.svc.KnowledgeAssistant(context.Background(), KnowledgeInput{Question: "q", Language: "English"})
			requireAPIErr(t, err, tc.status, tc.code, tc.msg)

			// Failures are never cached.
			_, _ = h.svc.KnowledgeAssistant(context.Background(), KnowledgeInput{Question: "q", Language: "English"})
			assert.Len(t, h.fake.Calls(gemini.MethodJSON), 2)
		})
	}
}
