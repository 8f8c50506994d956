package gemini

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrNoMedia is returned when an image or speech call succeeds but carries no inline data.
	ErrNoMedia = errors.New("model returned no media")
	// ErrEmptyResponse is returned when a text call yields no text.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// IsBusy reports whether err means the hosted model is temporarily overloaded: a 503 API error,
// or any error whose text mentions "503" or "overloaded".
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusServiceUnavailable {
		return true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Code == http.StatusServiceUnavailable {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") || strings.Contains(msg, "overloaded")
}
