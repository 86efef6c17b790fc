package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop_DiscardsSpansButKeepsLogger(t *testing.T) {
	var buf bytes.Buffer
	inst := Noop(slog.New(slog.NewTextHandler(&buf, nil)))

	_, span := inst.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	counter, err := inst.Meter("test").Int64Counter("things")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	rec := Recorder{Tracer: inst.Tracer("test"), Logger: inst.Logger}
	_ = rec.Fail(context.Background(), nil, errors.New("boom"), "thing failed")
	assert.Contains(t, buf.String(), "thing failed")
}

func TestNoop_NilLogger(t *testing.T) {
	inst := Noop(nil)
	require.NotNil(t, inst.Logger)
	inst.Logger.Info("discarded")
}
