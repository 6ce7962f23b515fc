// Package logger provides a zap-based application logger.
package logger

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger writes.
type Level int

// Supported levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// TraceIDFn extracts a trace id from ctx, returning "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON lines tagged with the service name and,
// when available, the trace id of the calling context.
type Logger struct {
	z       *zap.SugaredLogger
	traceID TraceIDFn
}

// New builds a Logger writing JSON to w.
func New(w io.Writer, level Level, service string, traceID TraceIDFn) *Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level.zap()),
	)
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)).With(zap.String("service", service))
	return &Logger{z: z.Sugar(), traceID: traceID}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

// Debug logs at debug level.
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zapcore.DebugLevel, msg, kv)
}

// Info logs at info level.
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zapcore.InfoLevel, msg, kv)
}

// Warn logs at warn level.
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zapcore.WarnLevel, msg, kv)
}

// Error logs at error level.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, zapcore.ErrorLevel, msg, kv)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) write(ctx context.Context, lvl zapcore.Level, msg string, kv []any) {
	if l.traceID != nil && ctx != nil {
		if id := l.traceID(ctx); id != "" {
			kv = append(kv, "trace_id", id)
		}
	}
	l.z.Logw(lvl, msg, kv...)
}
