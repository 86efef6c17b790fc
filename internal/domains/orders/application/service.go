package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

// DefaultRecentLimit is used by RecentOrders when the caller passes a non-positive limit.
const DefaultRecentLimit = 5

// Service orchestrates order and return use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
	now         func() time.Time
}

type Option func(*Service)

// WithIdempotencyStore enables replay of PlaceOrder calls carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// WithClock overrides the time source used to stamp orders and returns.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// PlaceOrder validates the order and every item before writing anything, then stores them together.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.OrderDetails, error) {
	order := input.Order
	order.ID = 0
	order.OwnerID = input.OwnerID
	order.Normalize()

	var c validation.Collector
	c.Merge("", order.Validate())
	items := make([]domain.OrderItem, 0, len(input.Items))
	for i, item := range input.Items {
		item.ID, item.OrderID = 0, 0
		item.Normalize()
		c.Merge(fmt.Sprintf("items[%d].", i), item.Validate())
		items = append(items, item)
	}
	if err := c.Err(); err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var requestHash string
	if key != "" && s.idempotency != nil {
		hash, err := FingerprintPlaceOrder(input.OwnerID, order, items)
		if err != nil {
			return nil, err
		}
		requestHash = hash
		existing, err := s.idempotency.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.RequestHash != requestHash {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.GetOrder(ctx, existing.OrderID)
		}
	}

	order.CreatedAt = s.now().UTC()
	details, err := s.repo.CreateOrder(ctx, order, items)
	if err != nil {
		return nil, mapError(err)
	}

	if key != "" && s.idempotency != nil {
		stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         key,
			RequestHash: requestHash,
			OrderID:     details.Order.ID,
		})
		if err != nil {
			// A concurrent request with the same payload won the race; replay its order.
			if errors.Is(err, ports.ErrIdempotencyConflict) && stored != nil && stored.RequestHash == requestHash {
				return s.GetOrder(ctx, stored.OrderID)
			}
			return nil, err
		}
	}
	return details, nil
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.OrderDetails, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListOrderItems(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	return &domain.OrderDetails{Order: order, Items: items}, nil
}

func (s *Service) ListOrders(ctx context.Context, ownerID int64) ([]*domain.Order, error) {
	return s.repo.ListOrders(ctx, ports.OrderFilter{OwnerID: &ownerID})
}

// RecentOrders returns the newest orders of the owner with their items.
func (s *Service) RecentOrders(ctx context.Context, ownerID int64, limit int) ([]*domain.OrderDetails, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	orders, err := s.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	domain.SortRecent(orders)
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return s.withItems(ctx, orders)
}

// UpdateOrder applies a partial update. Status labels change independently of one another.
func (s *Service) UpdateOrder(ctx context.Context, id int64, change domain.OrderPatch) (*domain.Order, error) {
	updated, err := s.repo.UpdateOrder(ctx, id, func(o *domain.Order) error {
		o.Apply(change)
		return o.Validate()
	})
	return updated, mapError(err)
}

// AddOrderItem attaches an item to an existing order. The order total is not recomputed.
func (s *Service) AddOrderItem(ctx context.Context, orderID int64, item domain.OrderItem) (*domain.OrderItem, error) {
	item.ID = 0
	item.OrderID = orderID
	item.Normalize()
	if err := item.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.CreateOrderItem(ctx, item)
}

func (s *Service) ListOrderItems(ctx context.Context, orderID int64) ([]*domain.OrderItem, error) {
	return s.repo.ListOrderItems(ctx, []int64{orderID})
}

// QuoteRefund sums the totals of the selected items that belong to the order.
func (s *Service) QuoteRefund(ctx context.Context, orderID int64, itemIDs []int64) (float64, error) {
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		return 0, err
	}
	items, err := s.repo.ListOrderItems(ctx, []int64{orderID})
	if err != nil {
		return 0, err
	}
	return domain.QuoteRefund(items, itemIDs), nil
}

// CreateReturn files a return against an existing order. RequestedItems and RefundAmount
// are stored as supplied.
func (s *Service) CreateReturn(ctx context.Context, ret domain.Return) (*domain.ReturnDetails, error) {
	ret.ID = 0
	ret.Normalize()

	var c validation.Collector
	c.Merge("", ret.Validate())
	order, err := s.repo.GetOrder(ctx, ret.OrderID)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		c.Add("orderId", "must reference an existing order")
	case err != nil:
		return nil, err
	}
	if err := c.Err(); err != nil {
		return nil, mapError(err)
	}

	ret.CreatedAt = s.now().UTC()
	saved, err := s.repo.CreateReturn(ctx, ret)
	if err != nil {
		return nil, err
	}
	return &domain.ReturnDetails{Return: saved, Order: order}, nil
}

func (s *Service) GetReturn(ctx context.Context, id int64) (*domain.ReturnDetails, error) {
	ret, err := s.repo.GetReturn(ctx, id)
	if err != nil {
		return nil, err
	}
	order, err := s.repo.GetOrder(ctx, ret.OrderID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return &domain.ReturnDetails{Return: ret, Order: order}, nil
}

// ListReturns returns the returns filed against the owner's orders, each with its order.
func (s *Service) ListReturns(ctx context.Context, ownerID int64) ([]*domain.ReturnDetails, error) {
	orders, err := s.ListOrders(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []*domain.ReturnDetails{}, nil
	}
	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	returns, err := s.repo.ListReturns(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ReturnDetails, 0, len(returns))
	for _, r := range returns {
		out = append(out, &domain.ReturnDetails{Return: r, Order: byID[r.OrderID]})
	}
	return out, nil
}

// UpdateReturn applies a partial update. Any status may follow any other.
func (s *Service) UpdateReturn(ctx context.Context, id int64, change domain.ReturnPatch) (*domain.Return, error) {
	updated, err := s.repo.UpdateReturn(ctx, id, func(r *domain.Return) error {
		r.Apply(change)
		return r.Validate()
	})
	return updated, mapError(err)
}

func (s *Service) withItems(ctx context.Context, orders []*domain.Order) ([]*domain.OrderDetails, error) {
	out := make([]*domain.OrderDetails, 0, len(orders))
	if len(orders) == 0 {
		return out, nil
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.repo.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byOrder := make(map[int64][]*domain.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for _, o := range orders {
		orderItems := byOrder[o.ID]
		if orderItems == nil {
			orderItems = []*domain.OrderItem{}
		}
		out = append(out, &domain.OrderDetails{Order: o, Items: orderItems})
	}
	return out, nil
}

var _ ports.Service = (*Service)(nil)
