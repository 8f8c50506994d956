package gemini

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/genai"
)

func TestIsBusy(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"503 text", errors.New("googleapi: Error 503: try later"), true},
		{"overloaded mixed case", errors.New("The model is OVERLOADED."), true},
		{"wrapped", fmt.Errorf("generate: %w", errors.New("model overloaded")), true},
		{"api error value", fmt.Errorf("call: %w", genai.APIError{Code: 503, Message: "unavailable"}), true},
		{"api error pointer", fmt.Errorf("call: %w", &genai.APIError{Code: 503, Message: "unavailable"}), true},
		{"other api error", genai.APIError{Code: 400, Message: "bad request", Status: "INVALID_ARGUMENT"}, false},
		{"plain failure", errors.New("safety filter"), false},
		{"no media", ErrNoMedia, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBusy(tc.err); got != tc.want {
				t.Fatalf("IsBusy(%v)=%v want %v", tc.err, got, tc.want)
			}
		})
	}
}
