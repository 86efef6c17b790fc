package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Apurer/shop-backoffice/internal/domains/orders/application"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName stores an order and its items.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// ErrTypeInvalidOrder marks rejected order input. It is never retried.
	ErrTypeInvalidOrder = "InvalidOrderInput"
	// ErrTypeIdempotencyConflict marks a reused idempotency key. It is never retried.
	ErrTypeIdempotencyConflict = "IdempotencyConflict"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder stores a new order with its items. Retries carrying the same idempotency key
// replay the order stored by the first attempt.
func (a *Activities) PlaceOrder(ctx context.Context, input orderports.PlaceOrderInput) (*orderdomain.OrderDetails, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "ownerId", input.OwnerID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "ownerId", input.OwnerID, "items", len(input.Items))
	details, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "ownerId", input.OwnerID, "error", err)
		switch {
		case errors.Is(err, orderapp.ErrInvalidInput):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidOrder, err)
		case errors.Is(err, orderports.ErrIdempotencyConflict):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeIdempotencyConflict, err)
		}
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", details.Order.ID)
	return details, nil
}
