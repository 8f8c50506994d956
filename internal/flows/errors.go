package flows

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/sahayak-backend/internal/platform/apierr"
	"github.com/yungbote/sahayak-backend/internal/platform/gemini"
)

const (
	busyMessage     = "The AI model is currently busy. Please try again in a moment."
	busyTextMessage = "The AI text model is currently busy. Please try again in a moment."
)

// messages are the user-facing texts for one flow's primary call.
type messages struct {
	busy   string
	failed string
}

var (
	knowledgeMessages  = messages{busyMessage, "Failed to get an answer. Please try again."}
	storyMessages      = messages{busyMessage, "Failed to generate a story. Please try again."}
	lessonPlanMessages = messages{busyMessage, "An unexpected error occurred while generating the lesson plan. Please try again."}
	worksheetMessages  = messages{busyMessage, "An unexpected error occurred while generating worksheets. Please try again."}
	askLaterMessages   = messages{busyTextMessage, "Failed to generate an answer for the question."}
	rolePlayMessages   = messages{busyMessage, "An unexpected error occurred while generating the script. Please try again."}
	speechMessages     = messages{busyMessage, "Failed to generate speech. Please try again."}
	visualAidMessages  = messages{busyMessage, "Failed to generate visual aid. Please try again."}
)

// translate maps a failed primary call to the flow's busy or generic error.
func translate(m messages, err error) error {
	if err == nil {
		return nil
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return ae
	}
	if gemini.IsBusy(err) {
		return apierr.Busy(m.busy, err)
	}
	return apierr.Failed(m.failed, err)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates in and returns an invalid_input error naming the first failed rule.
func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.Invalid(err)
	}
	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apierr.Invalid(errors.New(msg))
}
