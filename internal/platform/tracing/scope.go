// Package tracing opens child spans for one layer of the service.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var noopSpan = trace.SpanFromContext(context.Background())

// Scope starts spans named under prefix, and only below an existing span so
// background work and untraced routes stay out of the trace.
type Scope struct {
	tracer trace.Tracer
	prefix string
}

func NewScope(instrumentation, prefix string) Scope {
	return Scope{tracer: otel.Tracer(instrumentation), prefix: prefix}
}

// Allows reports whether a span with this name is recorded at all.
func (s Scope) Allows(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && strings.HasPrefix(name, s.prefix)
}

func (s Scope) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !s.Allows(name) || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return s.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
