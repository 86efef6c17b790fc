package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Recorder bundles the tracer and logger used by the service decorators.
type Recorder struct {
	Tracer trace.Tracer
	Logger *slog.Logger
}

// NewRecorder returns a recorder with a no-op tracer and a discarding logger.
func NewRecorder(tracerName string) Recorder {
	return Recorder{
		Tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Start opens a span named op.
func (r Recorder) Start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return r.Tracer.Start(ctx, op, trace.WithAttributes(attrs...))
}

// Info logs msg at info level.
func (r Recorder) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	if r.Logger == nil {
		return
	}
	r.Logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

// Fail records err on the span, logs it, and returns it unchanged.
func (r Recorder) Fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if r.Logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		r.Logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

// Observe runs fn inside a span named op. Span attributes are mirrored onto the log lines.
func Observe[T any](ctx context.Context, r Recorder, op string, attrs []attribute.KeyValue, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := r.Start(ctx, op, attrs...)
	defer span.End()

	logAttrs := toLogAttrs(attrs)
	r.Info(ctx, op+" started", logAttrs...)
	result, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, r.Fail(ctx, span, err, op+" failed", logAttrs...)
	}
	r.Info(ctx, op+" completed", logAttrs...)
	return result, nil
}

func toLogAttrs(attrs []attribute.KeyValue) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, kv := range attrs {
		out = append(out, slog.Any(string(kv.Key), kv.Value.AsInterface()))
	}
	return out
}
