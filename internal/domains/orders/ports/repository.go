package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// OrderFilter narrows order scans. Zero-valued fields do not filter.
type OrderFilter struct {
	OwnerID *int64
	IDs     []int64
}

// Repository persists orders, their items, and returns. Scans return rows in creation order.
type Repository interface {
	// CreateOrder stores the order and its items atomically; items get their OrderID assigned.
	CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) (*domain.OrderDetails, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)

	// CreateOrderItem fails with ErrNotFound when the parent order does not exist.
	CreateOrderItem(ctx context.Context, item domain.OrderItem) (*domain.OrderItem, error)
	// ListOrderItems returns the items of the given orders; an empty slice matches nothing.
	ListOrderItems(ctx context.Context, orderIDs []int64) ([]*domain.OrderItem, error)

	CreateReturn(ctx context.Context, ret domain.Return) (*domain.Return, error)
	GetReturn(ctx context.Context, id int64) (*domain.Return, error)
	UpdateReturn(ctx context.Context, id int64, mutate func(*domain.Return) error) (*domain.Return, error)
	// ListReturns returns the returns of the given orders; an empty slice matches nothing.
	ListReturns(ctx context.Context, orderIDs []int64) ([]*domain.Return, error)
}
