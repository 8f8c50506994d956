package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestToSchemaObject(t *testing.T) {
	s, err := toSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{"type": "string", "description": "The answer."},
			"tags":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"level":  map[string]any{"type": []any{"string", "null"}, "enum": []any{"easy", "hard"}},
		},
		"required": []string{"answer", "tags"},
	})
	require.NoError(t, err)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"answer", "tags"}, s.Required)
	require.Contains(t, s.Properties, "answer")
	assert.Equal(t, "The answer.", s.Properties["answer"].Description)
	assert.Equal(t, genai.TypeArray, s.Properties["tags"].Type)
	require.NotNil(t, s.Properties["tags"].Items)
	assert.Equal(t, genai.TypeString, s.Properties["tags"].Items.Type)
	require.NotNil(t, s.Properties["level"].Nullable)
	assert.True(t, *s.Properties["level"].Nullable)
	assert.Equal(t, []string{"easy", "hard"}, s.Properties["level"].Enum)
}

func TestToSchemaRejects(t *testing.T) {
	cases := []map[string]any{
		{"type": "tuple"},
		{},
		{"type": "array"},
		{"type": []any{"string", "integer"}},
		{"type": "object", "properties": map[string]any{"x": "string"}},
	}
	for _, c := range cases {
		_, err := toSchema(c)
		assert.Error(t, err, "schema %v", c)
	}
}
