package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
	"github.com/riskibarqy/itp-onboarding/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "itp-onboarding"
)

// envelope follows the Google JSON style guide: exactly one of data or error.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

// errorRules is checked in order; anything unmatched is a persistence
// failure whose cause stays in the logs.
var errorRules = []struct {
	match func(error) bool
	class errorClass
}{
	{
		match: func(err error) bool { return errors.Is(err, usecase.ErrInvalidInput) },
		class: errorClass{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	},
	{
		match: func(err error) bool { return errors.Is(err, usecase.ErrNotFound) },
		class: errorClass{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	},
	{
		match: func(err error) bool { return errors.Is(err, usecase.ErrConflict) },
		class: errorClass{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "ABORTED"},
	},
	{
		match: func(err error) bool { return errors.Is(err, usecase.ErrDependencyUnavailable) },
		class: errorClass{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
	{
		match: func(err error) bool {
			var validationErr *onboarding.ValidationError
			return errors.As(err, &validationErr) ||
				errors.Is(err, onboarding.ErrSkipNotAllowed) ||
				errors.Is(err, onboarding.ErrNoNextStep)
		},
		class: errorClass{HTTPStatus: http.StatusBadRequest, Reason: "stepIncomplete", Status: "FAILED_PRECONDITION"},
	},
}

func classify(err error) errorClass {
	for _, rule := range errorRules {
		if rule.match(err) {
			return rule.class
		}
	}
	return internalClass
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: googleAPIVersion, Data: data})
}

func writeError(_ context.Context, w http.ResponseWriter, err error) {
	writeFailure(w, classify(err), usecase.PublicMessage(err))
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeFailure(w, internalClass, "internal server error")
}

func writeFailure(w http.ResponseWriter, class errorClass, message string) {
	writeJSON(w, class.HTTPStatus, envelope{
		APIVersion: googleAPIVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: message,
			Status:  class.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: message}},
		},
	})
}
