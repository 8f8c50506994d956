package prompts

import (
	"fmt"
	"sync"
)

type Template struct {
	Name       PromptName
	Version    int
	SchemaName string
	Schema     func() map[string]any
	System     func(Input) (string, error)
	User       func(Input) (string, error)
	Validate   Validator
}

var (
	mu           sync.RWMutex
	registry     = map[PromptName]Template{}
	registerOnce sync.Once
)

// Register registers a compiled Template, replacing any earlier one with the same name.
func Register(t Template) {
	mu.Lock()
	registry[t.Name] = t
	mu.Unlock()
}

func lookup(name PromptName) (Template, bool) {
	registerOnce.Do(RegisterAll)
	mu.RLock()
	defer mu.RUnlock()
	t, ok := registry[name]
	return t, ok
}

// Build renders the named prompt for in.
func Build(name PromptName, in Input) (Prompt, error) {
	t, ok := lookup(name)
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.System == nil || t.User == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing system/user renderers", string(name))
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
		}
	}
	system, err := t.System(in)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s system render: %w", string(name), err)
	}
	user, err := t.User(in)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s user render: %w", string(name), err)
	}
	p := Prompt{
		Name:       string(t.Name),
		Version:    t.Version,
		SchemaName: t.SchemaName,
		System:     system,
		User:       user,
	}
	if t.Schema != nil {
		p.Schema = t.Schema()
	}
	return p, nil
}

// Names lists every registered prompt.
func Names() []PromptName {
	registerOnce.Do(RegisterAll)
	mu.RLock()
	defer mu.RUnlock()
	out := make([]PromptName, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	return out
}
