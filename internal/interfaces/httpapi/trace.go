package httpapi

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/itp-onboarding/internal/platform/tracing"
)

// Only handler spans are recorded; helpers and middleware stay flat.
var apiSpans = tracing.NewScope("itp-onboarding/internal/interfaces/httpapi", "httpapi.Handler.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiSpans.Start(ctx, name)
}
