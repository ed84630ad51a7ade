package log

import (
	"context"
	"log/slog"

	slogctx "github.com/veqryn/slog-context"
)

// InjectCall scopes ctx to one intercepted SDK call.
func InjectCall(ctx context.Context, service, operation, requestID string) context.Context {
	return slogctx.With(ctx,
		slog.String("requestId", requestID),
		slog.Group("call",
			slog.String("service", service),
			slog.String("operation", operation),
		),
	)
}

func InjectFixture(ctx context.Context, path string) context.Context {
	return slogctx.With(ctx, slog.String("fixture", path))
}

func ErrorAttr(err error) slog.Attr {
	return slog.Attr{
		Key:   slogctx.ErrKey,
		Value: slog.StringValue(err.Error()),
	}
}

func Debug(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelDebug, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelWarn, msg, args...)
}

func Info(ctx context.Context, msg string, args ...slog.Attr) {
	slogctx.LogAttrs(ctx, slog.LevelInfo, msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...slog.Attr) {
	args = append(args, slogctx.Err(err))

	slogctx.LogAttrs(ctx, slog.LevelError, msg, args...)
}
