package gemini

import (
	"context"
	"sync"
)

// Call is one recorded invocation of a Fake.
type Call struct {
	Method string
	Text   TextRequest
	Prompt string
	Speech SpeechRequest
}

const (
	MethodText   = "GenerateText"
	MethodJSON   = "GenerateJSON"
	MethodImage  = "GenerateImage"
	MethodSpeech = "Synthesize"
)

// Fake is a scripted Client for tests. A nil func yields a canned success: text echoes the
// user prompt, JSON is sampled from the schema, image and speech return a few bytes.
type Fake struct {
	TextFn   func(ctx context.Context, req TextRequest) (string, error)
	JSONFn   func(ctx context.Context, req TextRequest) (map[string]any, error)
	ImageFn  func(ctx context.Context, prompt string) (Media, error)
	SpeechFn func(ctx context.Context, req SpeechRequest) (Media, error)

	mu    sync.Mutex
	calls []Call
}

var (
	FakePNG = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	FakePCM = []byte{0, 0, 1, 0, 2, 0, 3, 0}
)

func (f *Fake) record(c Call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

// Calls returns the recorded calls of one method, or all calls when method is empty.
func (f *Fake) Calls(method string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.calls {
		if method == "" || c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	f.record(Call{Method: MethodText, Text: req})
	if f.TextFn != nil {
		return f.TextFn(ctx, req)
	}
	return "fake: " + firstLine(req.User), nil
}

func (f *Fake) GenerateJSON(ctx context.Context, req TextRequest) (map[string]any, error) {
	f.record(Call{Method: MethodJSON, Text: req})
	if f.JSONFn != nil {
		return f.JSONFn(ctx, req)
	}
	out, _ := SampleFromSchema(req.Schema, "fake ").(map[string]any)
	return out, nil
}

func (f *Fake) GenerateImage(ctx context.Context, prompt string) (Media, error) {
	f.record(Call{Method: MethodImage, Prompt: prompt})
	if f.ImageFn != nil {
		return f.ImageFn(ctx, prompt)
	}
	return Media{Data: FakePNG, MIMEType: "image/png"}, nil
}

func (f *Fake) Synthesize(ctx context.Context, req SpeechRequest) (Media, error) {
	f.record(Call{Method: MethodSpeech, Speech: req})
	if f.SpeechFn != nil {
		return f.SpeechFn(ctx, req)
	}
	return Media{Data: FakePCM, MIMEType: "audio/L16;codec=pcm;rate=24000"}, nil
}
