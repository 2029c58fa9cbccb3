package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestNew_JSONWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("prospect loaded", "prospect_id", "p-1", "error", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{`"msg":"prospect loaded"`, `"prospect_id":"p-1"`, `"error":"boom"`, `"level":"INFO"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in log line, got %s", want, out)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Output: &buf})

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be dropped, got %s", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn record, got %s", buf.String())
	}
}

func TestSetMirror_ReceivesBoundFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf}).With("service", "itp-onboarding")

	var gotMsg string
	var gotArgs []any
	SetMirror(func(_ context.Context, _ Level, msg string, args ...any) {
		gotMsg = msg
		gotArgs = args
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.InfoContext(context.Background(), "upload stored", "path", "p/passport_1.pdf")

	if gotMsg != "upload stored" {
		t.Fatalf("unexpected mirrored message: %q", gotMsg)
	}
	if len(gotArgs) != 4 || gotArgs[0] != "service" || gotArgs[2] != "path" {
		t.Fatalf("unexpected mirrored args: %+v", gotArgs)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil logger from With on nil receiver")
	}
}

func TestLog_AddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf})

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{2},
		TraceFlags: trace.FlagsSampled,
	})
	logger.InfoContext(trace.ContextWithSpanContext(context.Background(), sc), "wizard step saved")

	if !strings.Contains(buf.String(), `"trace_id":"`+sc.TraceID().String()+`"`) {
		t.Fatalf("expected trace id in log line, got %s", buf.String())
	}
}

func TestToFields_OddArgs(t *testing.T) {
	fields := toFields([]any{"step", 2, 42})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[1].Key != "arg" {
		t.Fatalf("expected non-string key to become arg, got %q", fields[1].Key)
	}
}

func TestSync_OnlyOnce(t *testing.T) {
	logger := NewNop()
	if err := logger.Sync(); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	if !logger.synced.Load() {
		t.Fatalf("expected logger to be marked synced")
	}
	var nilLogger *Logger
	if err := nilLogger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
}
