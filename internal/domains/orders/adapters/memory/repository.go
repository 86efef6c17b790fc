package memory

import (
	"context"
	"slices"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	"github.com/Apurer/shop-backoffice/internal/platform/memstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory persistence adapter for orders, items, and returns.
type Repository struct {
	orders  *memstore.Table[domain.Order]
	items   *memstore.Table[domain.OrderItem]
	returns *memstore.Table[domain.Return]
}

func NewRepository() *Repository {
	return &Repository{
		orders:  memstore.NewTable[domain.Order](nil),
		items:   memstore.NewTable[domain.OrderItem](nil),
		returns: memstore.NewTable[domain.Return](domain.Return.Clone),
	}
}

func (r *Repository) CreateOrder(_ context.Context, order domain.Order, items []domain.OrderItem) (*domain.OrderDetails, error) {
	saved, err := r.orders.Insert(func(id int64) (domain.Order, error) {
		order.ID = id
		return order, nil
	})
	if err != nil {
		return nil, err
	}
	details := &domain.OrderDetails{Order: &saved, Items: make([]*domain.OrderItem, 0, len(items))}
	for _, item := range items {
		created, err := r.insertItem(saved.ID, item)
		if err != nil {
			return nil, err
		}
		details.Items = append(details.Items, created)
	}
	return details, nil
}

func (r *Repository) GetOrder(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := r.orders.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &order, nil
}

func (r *Repository) UpdateOrder(_ context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error) {
	updated, found, err := r.orders.Update(id, func(o *domain.Order) error {
		owner, createdAt := o.OwnerID, o.CreatedAt
		if err := mutate(o); err != nil {
			return err
		}
		o.ID, o.OwnerID, o.CreatedAt = id, owner, createdAt
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) ListOrders(_ context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	rows := r.orders.Filter(func(o domain.Order) bool {
		if filter.OwnerID != nil && o.OwnerID != *filter.OwnerID {
			return false
		}
		if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, o.ID) {
			return false
		}
		return true
	})
	return pointers(rows), nil
}

func (r *Repository) CreateOrderItem(_ context.Context, item domain.OrderItem) (*domain.OrderItem, error) {
	if _, ok := r.orders.Get(item.OrderID); !ok {
		return nil, ports.ErrNotFound
	}
	return r.insertItem(item.OrderID, item)
}

func (r *Repository) ListOrderItems(_ context.Context, orderIDs []int64) ([]*domain.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []*domain.OrderItem{}, nil
	}
	rows := r.items.Filter(func(i domain.OrderItem) bool { return slices.Contains(orderIDs, i.OrderID) })
	return pointers(rows), nil
}

func (r *Repository) CreateReturn(_ context.Context, ret domain.Return) (*domain.Return, error) {
	saved, err := r.returns.Insert(func(id int64) (domain.Return, error) {
		ret.ID = id
		return ret, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) GetReturn(_ context.Context, id int64) (*domain.Return, error) {
	ret, ok := r.returns.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &ret, nil
}

func (r *Repository) UpdateReturn(_ context.Context, id int64, mutate func(*domain.Return) error) (*domain.Return, error) {
	updated, found, err := r.returns.Update(id, func(ret *domain.Return) error {
		orderID, createdAt := ret.OrderID, ret.CreatedAt
		if err := mutate(ret); err != nil {
			return err
		}
		ret.ID, ret.OrderID, ret.CreatedAt = id, orderID, createdAt
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) ListReturns(_ context.Context, orderIDs []int64) ([]*domain.Return, error) {
	if len(orderIDs) == 0 {
		return []*domain.Return{}, nil
	}
	rows := r.returns.Filter(func(ret domain.Return) bool { return slices.Contains(orderIDs, ret.OrderID) })
	return pointers(rows), nil
}

func (r *Repository) insertItem(orderID int64, item domain.OrderItem) (*domain.OrderItem, error) {
	saved, err := r.items.Insert(func(id int64) (domain.OrderItem, error) {
		item.ID = id
		item.OrderID = orderID
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out
}
