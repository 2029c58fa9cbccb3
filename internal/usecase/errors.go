package usecase

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrConflict              = errors.New("conflict")
)

// PublicMessage returns the part of err that is safe to show a prospect.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *onboarding.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}

	if errors.Is(err, onboarding.ErrSkipNotAllowed) || errors.Is(err, onboarding.ErrNoNextStep) {
		return capitalize(err.Error())
	}

	for _, sentinel := range []error{ErrInvalidInput, ErrNotFound} {
		if errors.Is(err, sentinel) {
			msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
			if msg == "" {
				return sentinel.Error()
			}
			return capitalize(msg)
		}
	}
	if errors.Is(err, ErrConflict) {
		return "Another upload is in progress, please try again"
	}
	if errors.Is(err, ErrDependencyUnavailable) {
		return "Service temporarily unavailable, please try again"
	}
	return "Failed to save progress"
}

func capitalize(msg string) string {
	first, size := utf8.DecodeRuneInString(msg)
	if first == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(first)) + msg[size:]
}
