package ports

import (
	"context"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
)

// PlaceOrderInput is a new order with its items. IdempotencyKey is optional.
type PlaceOrderInput struct {
	OwnerID        int64
	Order          domain.Order
	Items          []domain.OrderItem
	IdempotencyKey string
}

// Service exposes order and return use cases.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.OrderDetails, error)
	GetOrder(ctx context.Context, id int64) (*domain.OrderDetails, error)
	ListOrders(ctx context.Context, ownerID int64) ([]*domain.Order, error)
	RecentOrders(ctx context.Context, ownerID int64, limit int) ([]*domain.OrderDetails, error)
	UpdateOrder(ctx context.Context, id int64, change domain.OrderPatch) (*domain.Order, error)
	AddOrderItem(ctx context.Context, orderID int64, item domain.OrderItem) (*domain.OrderItem, error)
	ListOrderItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error)
	QuoteRefund(ctx context.Context, orderID int64, itemIDs []int64) (float64, error)

	CreateReturn(ctx context.Context, ret domain.Return) (*domain.ReturnDetails, error)
	GetReturn(ctx context.Context, id int64) (*domain.ReturnDetails, error)
	ListReturns(ctx context.Context, ownerID int64) ([]*domain.ReturnDetails, error)
	UpdateReturn(ctx context.Context, id int64, change domain.ReturnPatch) (*domain.Return, error)
}
