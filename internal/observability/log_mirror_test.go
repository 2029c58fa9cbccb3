package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

func recordAttrs(rec otellog.Record) map[string]otellog.Value {
	out := make(map[string]otellog.Value, rec.AttributesLen())
	rec.WalkAttributes(func(kv otellog.KeyValue) bool {
		out[kv.Key] = kv.Value
		return true
	})
	return out
}

func TestBuildRecord(t *testing.T) {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rec := buildRecord(at, logging.LevelWarn, "draft store unavailable", []any{
		"prospect_id", "a1b2c3d4",
		"step", 3,
		7, "unnamed",
		"dangling",
	})

	assert.Equal(t, at, rec.Timestamp())
	assert.Equal(t, otellog.SeverityWarn, rec.Severity())
	assert.Equal(t, "WARN", rec.SeverityText())
	assert.Equal(t, "draft store unavailable", rec.Body().AsString())

	attrs := recordAttrs(rec)
	require.Len(t, attrs, 4)
	assert.Equal(t, "a1b2c3d4", attrs["prospect_id"].AsString())
	assert.Equal(t, int64(3), attrs["step"].AsInt64())
	assert.Equal(t, "unnamed", attrs["arg_2"].AsString())
	assert.Equal(t, otellog.KindEmpty, attrs["dangling"].Kind())
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, otellog.SeverityDebug, severityOf(logging.LevelDebug))
	assert.Equal(t, otellog.SeverityInfo, severityOf(logging.LevelInfo))
	assert.Equal(t, otellog.SeverityError, severityOf(logging.LevelError))
	assert.Equal(t, otellog.SeverityFatal, severityOf(logging.LevelError+2))
}

func TestAttrValue(t *testing.T) {
	assert.Equal(t, "boom", attrValue(errors.New("boom")).AsString())
	assert.Equal(t, "1.5s", attrValue(1500*time.Millisecond).AsString())
	assert.Equal(t, int64(2048), attrValue(uint32(2048)).AsInt64())
	assert.Equal(t, otellog.KindEmpty, attrValue(nil).Kind())

	docs := attrValue([]string{"passport", "medical"})
	require.Equal(t, otellog.KindSlice, docs.Kind())
	assert.Len(t, docs.AsSlice(), 2)

	// Map keys come out sorted in the JSON encoding.
	encoded := attrValue(map[string]any{"size_bytes": 2048, "minor": true})
	assert.Equal(t, `{"minor":true,"size_bytes":2048}`, encoded.AsString())
}
