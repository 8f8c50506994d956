package gemini

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yungbote/sahayak-backend/internal/platform/media"
)

// mockSampleRate matches the speech model's PCM output.
const mockSampleRate = 24000

type mockClient struct{}

// NewMock returns an offline provider with deterministic output, for local development and
// demos without an API key.
func NewMock() Client { return mockClient{} }

func (mockClient) GenerateText(_ context.Context, req TextRequest) (string, error) {
	line := firstLine(req.User)
	if line == "" {
		return "", ErrEmptyResponse
	}
	return "[mock] " + line, nil
}

func (mockClient) GenerateJSON(_ context.Context, req TextRequest) (map[string]any, error) {
	if req.Schema == nil {
		return nil, fmt.Errorf("schema required")
	}
	v, ok := SampleFromSchema(req.Schema, "[mock] ").(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema %s is not an object", req.SchemaName)
	}
	return v, nil
}

func (mockClient) GenerateImage(_ context.Context, prompt string) (Media, error) {
	label := firstLine(prompt)
	if len(label) > 60 {
		label = label[:60]
	}
	b, err := media.RenderPlaceholderPNG(label)
	if err != nil {
		return Media{}, err
	}
	return Media{Data: b, MIMEType: "image/png"}, nil
}

// Synthesize returns silence, roughly a third of a second per word.
func (mockClient) Synthesize(_ context.Context, req SpeechRequest) (Media, error) {
	words := len(strings.Fields(req.Text))
	if words == 0 {
		return Media{}, ErrNoMedia
	}
	samples := words * mockSampleRate / 3
	return Media{Data: make([]byte, samples*2), MIMEType: fmt.Sprintf("audio/L16;codec=pcm;rate=%d", mockSampleRate)}, nil
}

func firstLine(s string) string {
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	return ""
}

// SampleFromSchema builds a value that satisfies schema: strings become prefix+property name,
// arrays hold one sample item, numbers are zero.
func SampleFromSchema(schema map[string]any, prefix string) any {
	return sampleValue(schema, prefix, "value")
}

func sampleValue(schema map[string]any, prefix, name string) any {
	typeName, _, _ := schemaType(schema["type"])
	switch typeName {
	case "object":
		out := map[string]any{}
		props, _ := schema["properties"].(map[string]any)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if pm, ok := props[k].(map[string]any); ok {
				out[k] = sampleValue(pm, prefix, k)
			}
		}
		return out
	case "array":
		items, _ := schema["items"].(map[string]any)
		return []any{sampleValue(items, prefix, name)}
	case "integer", "number":
		return 0
	case "boolean":
		return false
	default:
		if enum := stringList(schema["enum"]); len(enum) > 0 {
			return enum[0]
		}
		return prefix + name
	}
}
