package ports

import (
	"context"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
)

// WorkflowOrchestrator runs order placement either inline or as a durable workflow.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.OrderDetails, error)
}
