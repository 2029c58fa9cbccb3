package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/itp-onboarding/internal/platform/tracing"
)

var usecaseSpans = tracing.NewScope("itp-onboarding/internal/usecase", "usecase.")

func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return usecaseSpans.Start(ctx, name)
}
