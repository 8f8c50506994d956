package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeInvalidInput     = "invalid_input"
	CodeModelBusy        = "model_busy"
	CodeGenerationFailed = "generation_failed"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
)

// Error is the user-facing error returned by flows and services. Message is safe to show to a
// teacher; Err keeps the underlying cause for logs.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Invalid(err error) *Error {
	msg := "invalid input"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Status: http.StatusBadRequest, Code: CodeInvalidInput, Message: msg, Err: err}
}

func Busy(message string, err error) *Error {
	return &Error{Status: http.StatusServiceUnavailable, Code: CodeModelBusy, Message: message, Err: err}
}

func Failed(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeGenerationFailed, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// Conflict reports that err's resource is in a state that forbids the request.
func Conflict(err error) *Error {
	msg := "conflict"
	if err != nil {
		msg = err.Error()
	}
	return &Error{Status: http.StatusConflict, Code: CodeConflict, Message: msg, Err: err}
}

// From extracts an *Error from err's chain. Unknown errors map to a 500 with a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Status: http.StatusInternalServerError, Code: "internal", Message: "internal error", Err: err}
}
