package gemini

import (
	"fmt"
	"sort"

	"google.golang.org/genai"
)

// toSchema converts the JSON-schema subset used by the prompt registry (type, description,
// properties, required, items, enum, nullable via ["T","null"]) into a genai.Schema.
func toSchema(m map[string]any) (*genai.Schema, error) {
	if m == nil {
		return nil, nil
	}
	s := &genai.Schema{}

	typeName, nullable, err := schemaType(m["type"])
	if err != nil {
		return nil, err
	}
	switch typeName {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "string":
		s.Type = genai.TypeString
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	case "boolean":
		s.Type = genai.TypeBoolean
	default:
		return nil, fmt.Errorf("unsupported schema type %q", typeName)
	}
	if nullable {
		s.Nullable = &nullable
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if enum, ok := m["enum"].([]any); ok {
		for _, v := range enum {
			s.Enum = append(s.Enum, fmt.Sprint(v))
		}
	}
	if enum, ok := m["enum"].([]string); ok {
		s.Enum = append(s.Enum, enum...)
	}

	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pm, ok := props[k].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("property %q: expected object schema", k)
			}
			ps, err := toSchema(pm)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", k, err)
			}
			s.Properties[k] = ps
		}
	}
	s.Required = stringList(m["required"])

	if items, ok := m["items"].(map[string]any); ok {
		is, err := toSchema(items)
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		s.Items = is
	} else if s.Type == genai.TypeArray {
		return nil, fmt.Errorf("array schema requires items")
	}
	return s, nil
}

func schemaType(v any) (string, bool, error) {
	switch t := v.(type) {
	case string:
		return t, false, nil
	case []any:
		return pickType(stringList(t))
	case []string:
		return pickType(t)
	case nil:
		return "", false, fmt.Errorf("schema type missing")
	default:
		return "", false, fmt.Errorf("schema type must be a string, got %T", v)
	}
}

func pickType(types []string) (string, bool, error) {
	var (
		name     string
		nullable bool
	)
	for _, t := range types {
		if t == "null" {
			nullable = true
			continue
		}
		if name != "" {
			return "", false, fmt.Errorf("union schema types are not supported: %v", types)
		}
		name = t
	}
	if name == "" {
		return "", false, fmt.Errorf("schema type missing")
	}
	return name, nullable, nil
}

func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if s, ok := x.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
