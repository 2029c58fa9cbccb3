package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
)

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: &onboarding.ValidationError{Step: onboarding.StepDocuments, Message: "Please upload your passport"}, want: "Please upload your passport"},
		{name: "invalid input", err: fmt.Errorf("%w: file must be under 10 MB", ErrInvalidInput), want: "File must be under 10 MB"},
		{name: "non-ascii detail", err: fmt.Errorf("%w: über 10 MB", ErrInvalidInput), want: "Über 10 MB"},
		{name: "not found", err: fmt.Errorf("%w: prospect not found", ErrNotFound), want: "Prospect not found"},
		{name: "unavailable", err: fmt.Errorf("%w: storage", ErrDependencyUnavailable), want: "Service temporarily unavailable, please try again"},
		{name: "conflict", err: fmt.Errorf("%w: object already exists", ErrConflict), want: "Another upload is in progress, please try again"},
		{name: "internal", err: errors.New("pq: connection refused"), want: "Failed to save progress"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PublicMessage(tc.err); got != tc.want {
				t.Fatalf("PublicMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}
