package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestRecorder(buf *bytes.Buffer) (Recorder, *tracetest.SpanRecorder) {
	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	return Recorder{
		Tracer: provider.Tracer("test"),
		Logger: slog.New(slog.NewJSONHandler(buf, nil)),
	}, spans
}

func TestObserve_RecordsSpanAndLogs(t *testing.T) {
	var buf bytes.Buffer
	rec, spans := newTestRecorder(&buf)

	got, err := Observe(context.Background(), rec, "CatalogService.GetProduct",
		[]attribute.KeyValue{attribute.Int64("product.id", 7)},
		func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "CatalogService.GetProduct", ended[0].Name())
	assert.Contains(t, buf.String(), `"product.id":7`)
	assert.Contains(t, buf.String(), "CatalogService.GetProduct completed")
}

func TestObserve_MarksSpanOnError(t *testing.T) {
	var buf bytes.Buffer
	rec, spans := newTestRecorder(&buf)
	boom := errors.New("boom")

	_, err := Observe(context.Background(), rec, "OrderService.PlaceOrder", nil,
		func(context.Context) (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestNewRecorder_IsSafeToUse(t *testing.T) {
	rec := NewRecorder("noop")
	_, err := Observe(context.Background(), rec, "noop", nil, func(context.Context) (bool, error) { return true, nil })
	assert.NoError(t, err)
}
