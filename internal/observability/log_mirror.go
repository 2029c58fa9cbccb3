package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"

	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

const logMirrorInstrumentation = "itp-onboarding/internal/platform/logging"

// Debug records, which include health and scrape requests, stay local.
const minMirroredLevel = logging.LevelInfo

func newLogMirror(serviceVersion string) logging.MirrorFunc {
	exporter := otelglobal.Logger(logMirrorInstrumentation, otellog.WithInstrumentationVersion(serviceVersion))

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if level < minMirroredLevel {
			return
		}
		severity := severityOf(level)
		if !exporter.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}
		exporter.Emit(ctx, buildRecord(time.Now().UTC(), level, msg, args))
	}
}

func buildRecord(at time.Time, level logging.Level, msg string, args []any) otellog.Record {
	var rec otellog.Record
	rec.SetTimestamp(at)
	rec.SetObservedTimestamp(at)
	rec.SetSeverity(severityOf(level))
	rec.SetSeverityText(strings.ToUpper(level.String()))
	rec.SetEventName(msg)
	rec.SetBody(otellog.StringValue(msg))

	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if key = strings.TrimSpace(key); key == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 == len(args) {
			rec.AddAttributes(otellog.Empty(key))
			break
		}
		rec.AddAttributes(otellog.KeyValue{Key: key, Value: attrValue(args[i+1])})
	}
	return rec
}

func severityOf(level logging.Level) otellog.Severity {
	switch level {
	case logging.LevelDebug:
		return otellog.SeverityDebug
	case logging.LevelInfo:
		return otellog.SeverityInfo
	case logging.LevelWarn:
		return otellog.SeverityWarn
	case logging.LevelError:
		return otellog.SeverityError
	}
	if level < logging.LevelDebug {
		return otellog.SeverityTrace
	}
	return otellog.SeverityFatal
}

// attrValue keeps scalars typed. Anything composite is exported as its JSON
// encoding so collectors can still parse it.
func attrValue(v any) otellog.Value {
	switch x := v.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(x)
	case bool:
		return otellog.BoolValue(x)
	case int:
		return otellog.IntValue(x)
	case int32:
		return otellog.Int64Value(int64(x))
	case int64:
		return otellog.Int64Value(x)
	case uint32:
		return otellog.Int64Value(int64(x))
	case float64:
		return otellog.Float64Value(x)
	case []byte:
		return otellog.BytesValue(append([]byte(nil), x...))
	case time.Time:
		return otellog.StringValue(x.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.StringValue(x.String())
	case error:
		return otellog.StringValue(x.Error())
	case fmt.Stringer:
		return otellog.StringValue(x.String())
	case []string:
		items := make([]otellog.Value, len(x))
		for i, s := range x {
			items[i] = otellog.StringValue(s)
		}
		return otellog.SliceValue(items...)
	}

	encoded, err := sonic.ConfigStd.MarshalToString(v)
	if err != nil {
		return otellog.StringValue(fmt.Sprint(v))
	}
	return otellog.StringValue(encoded)
}
