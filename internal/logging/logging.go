// Package logging builds the zap logger used by every docqa command and
// carries it, with a per-run ID, through context.Context.
package logging

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to w at the named level
// ("debug", "info", "warn", "error").
func New(w io.Writer, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

type loggerCtxKey struct{}
type runCtxKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, logger)
}

// FromContext returns the logger stored in ctx, annotated with the run ID if
// one is set. It never returns nil.
func FromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(loggerCtxKey{}).(*zap.Logger)
	if !ok || logger == nil {
		logger = zap.NewNop()
	}
	if id := RunID(ctx); id != "" {
		logger = logger.With(zap.String("run.id", id))
	}
	return logger
}

// StartRun tags ctx with a fresh run ID. Each user action (one question, one
// index build, one HTTP request) is one run.
func StartRun(ctx context.Context) context.Context {
	return context.WithValue(ctx, runCtxKey{}, uuid.NewString())
}

// RunID returns the run ID set by StartRun, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runCtxKey{}).(string)
	return id
}
