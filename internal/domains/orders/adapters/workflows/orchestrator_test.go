package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/memory"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/application"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/shop-backoffice/internal/platform/temporal/activities/orders"
)

func TestInlineOrderWorkflows_DelegatesToService(t *testing.T) {
	svc := application.NewService(memory.NewRepository())
	orchestrator := NewInlineOrderWorkflows(svc)

	details, err := orchestrator.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		OwnerID: 3,
		Order:   domain.Order{CustomerName: "Emily Davis", CustomerEmail: "emily@example.com", ShippingAddress: "1 Elm St", Total: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), details.Order.OwnerID)
	assert.Empty(t, details.Items)
}

func TestInlineOrderWorkflows_NotConfigured(t *testing.T) {
	var orchestrator *InlineOrderWorkflows
	_, err := orchestrator.PlaceOrder(context.Background(), ports.PlaceOrderInput{})
	require.Error(t, err)
}

func TestBuildOrderPlacementWorkflowID(t *testing.T) {
	keyed := buildOrderPlacementWorkflowID(ports.PlaceOrderInput{OwnerID: 1, IdempotencyKey: " checkout-1 "}, "trace")
	again := buildOrderPlacementWorkflowID(ports.PlaceOrderInput{OwnerID: 1, IdempotencyKey: "checkout-1"}, "other")
	assert.Equal(t, keyed, again)
	assert.True(t, strings.HasPrefix(keyed, "order-placement-idem-1-"))

	otherOwner := buildOrderPlacementWorkflowID(ports.PlaceOrderInput{OwnerID: 2, IdempotencyKey: "checkout-1"}, "trace")
	assert.NotEqual(t, keyed, otherOwner)

	assert.Equal(t, "order-placement-1-abc", buildOrderPlacementWorkflowID(ports.PlaceOrderInput{OwnerID: 1}, "abc"))
}

func TestTranslateWorkflowError(t *testing.T) {
	invalid := temporal.NewNonRetryableApplicationError("customerEmail: is required", orderactivities.ErrTypeInvalidOrder, nil)
	assert.ErrorIs(t, translateWorkflowError(invalid), application.ErrInvalidInput)

	conflict := temporal.NewNonRetryableApplicationError("idempotency conflict", orderactivities.ErrTypeIdempotencyConflict, nil)
	assert.ErrorIs(t, translateWorkflowError(conflict), ports.ErrIdempotencyConflict)

	other := errors.New("boom")
	assert.Equal(t, other, translateWorkflowError(other))
}

func TestWorkflowTraceComponent_FallsBackToUniqueID(t *testing.T) {
	first := workflowTraceComponent(context.Background())
	second := workflowTraceComponent(context.Background())
	assert.True(t, strings.HasPrefix(first, "fallback-"))
	assert.NotEqual(t, first, second)
}
