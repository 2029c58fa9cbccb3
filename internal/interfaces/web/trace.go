package web

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/itp-onboarding/internal/platform/tracing"
)

var pageSpans = tracing.NewScope("itp-onboarding/internal/interfaces/web", "web.Pages.")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return pageSpans.Start(ctx, name)
}
