// Package logging wraps zap with a key/value API shaped like log/slog.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// MirrorFunc sees every record that passed the level check, with the
// logger's bound fields prepended to args.
type MirrorFunc func(ctx context.Context, level Level, msg string, args ...any)

type Options struct {
	Level  Level
	Format string
	// Output defaults to stdout.
	Output io.Writer
	Fields []any
}

type Logger struct {
	core   *zap.Logger
	bound  []any
	synced atomic.Bool
}

var (
	fallback atomic.Pointer[Logger]
	mirror   atomic.Pointer[MirrorFunc]
)

func init() {
	fallback.Store(NewNop())
}

func encoderFor(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "msg"
	cfg.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if strings.EqualFold(strings.TrimSpace(format), FormatConsole) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	core := zapcore.NewCore(encoderFor(opts.Format), zapcore.Lock(zapcore.AddSync(out)), opts.Level)
	// Skip log() and the exported level method so callers show up in "caller".
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2), zap.AddStacktrace(zapcore.ErrorLevel))

	l := &Logger{core: z}
	if len(opts.Fields) > 0 {
		return l.With(opts.Fields...)
	}
	return l
}

func NewNop() *Logger {
	return &Logger{core: zap.NewNop()}
}

// Default is the logger installed by SetDefault, or a no-op logger.
func Default() *Logger {
	return fallback.Load()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	fallback.Store(l)
}

// SetMirror replaces the process-wide mirror. Passing nil removes it.
func SetMirror(fn MirrorFunc) {
	if fn == nil {
		mirror.Store(nil)
		return
	}
	mirror.Store(&fn)
}

// Sync flushes buffered output once. Later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || !l.synced.CompareAndSwap(false, true) {
		return nil
	}
	return l.core.Sync()
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil {
		l = Default()
	}
	bound := append(append(make([]any, 0, len(l.bound)+len(args)), l.bound...), args...)
	return &Logger{core: l.core.With(toFields(args)...), bound: bound}
}

func (l *Logger) Debug(msg string, args ...any) { l.log(context.Background(), LevelDebug, msg, args) }
func (l *Logger) Info(msg string, args ...any)  { l.log(context.Background(), LevelInfo, msg, args) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(context.Background(), LevelWarn, msg, args) }
func (l *Logger) Error(msg string, args ...any) { l.log(context.Background(), LevelError, msg, args) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, LevelError, msg, args)
}

func (l *Logger) log(ctx context.Context, level Level, msg string, args []any) {
	if l == nil {
		l = Default()
	}
	entry := l.core.Check(level, msg)
	if entry == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	fields := toFields(args)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	entry.Write(fields...)

	if fn := mirror.Load(); fn != nil {
		all := append(append(make([]any, 0, len(l.bound)+len(args)), l.bound...), args...)
		(*fn)(ctx, level, msg, all...)
	}
}

// toFields pairs up slog-style key/value args. A non-string key becomes
// "arg" and a dangling key gets a nil value.
func toFields(args []any) []zap.Field {
	fields := make([]zap.Field, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if key == "" {
			key = "arg"
		}
		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}
		if err, ok := value.(error); ok {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, value))
	}
	return fields
}
