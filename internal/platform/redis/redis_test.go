package redis

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_RejectsEmptyAndMalformedURL(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.Error(t, err)

	_, err = Connect(context.Background(), "http://not-redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis URL")
}

func TestConnectOptional_FallsBackWithoutURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, cleanup := ConnectOptional(context.Background(), "", logger)
	assert.Nil(t, client)
	cleanup()
}
