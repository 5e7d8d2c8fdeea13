package context

import (
	"context"

	"go.uber.org/zap"
)

type contextkey string

const (
	loggerKey contextkey = "logger"
)

// ContextSetLogger binds a request-scoped logger to ctx.
func ContextSetLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// ContextGetLogger retrieves the request-scoped logger from ctx.
// Returns a no-op logger if none is set.
func ContextGetLogger(ctx context.Context) *zap.Logger {
	val := ctx.Value(loggerKey)
	logger, ok := val.(*zap.Logger)
	if !ok || logger == nil {
		return zap.NewNop()
	}
	return logger
}
