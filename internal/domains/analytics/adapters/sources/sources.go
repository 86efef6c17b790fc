package sources

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
	catalogports "github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	discountports "github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
)

var _ ports.Sources = (*Sources)(nil)

// Sources reads analytics facts straight from the catalog, order, and discount stores.
type Sources struct {
	catalog   catalogports.Repository
	orders    orderports.Repository
	orderSvc  orderports.Service
	discounts discountports.Service
}

func New(catalog catalogports.Repository, orders orderports.Repository, orderSvc orderports.Service, discounts discountports.Service) *Sources {
	return &Sources{catalog: catalog, orders: orders, orderSvc: orderSvc, discounts: discounts}
}

func (s *Sources) Orders(ctx context.Context, ownerID int64) ([]domain.OrderFact, error) {
	if s.orders == nil {
		return nil, errNotConfigured
	}
	orders, err := s.orders.ListOrders(ctx, orderports.OrderFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderFact, 0, len(orders))
	for _, o := range orders {
		out = append(out, domain.OrderFact{ID: o.ID, CustomerEmail: o.CustomerEmail, CreatedAt: o.CreatedAt})
	}
	return out, nil
}

func (s *Sources) LineItems(ctx context.Context, orderIDs []int64) ([]domain.LineItem, error) {
	if s.orders == nil {
		return nil, errNotConfigured
	}
	items, err := s.orders.ListOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LineItem, 0, len(items))
	for _, i := range items {
		out = append(out, domain.LineItem{
			ID:          i.ID,
			OrderID:     i.OrderID,
			ProductID:   i.ProductID,
			ProductName: i.ProductName,
			Quantity:    i.Quantity,
			Total:       i.Total,
		})
	}
	return out, nil
}

func (s *Sources) Products(ctx context.Context, ownerID *int64) ([]domain.ProductFact, error) {
	if s.catalog == nil {
		return nil, errNotConfigured
	}
	products, err := s.catalog.ListProducts(ctx, catalogports.ProductFilter{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProductFact, 0, len(products))
	for _, p := range products {
		out = append(out, domain.ProductFact{ID: p.ID, CategoryID: p.CategoryID, Cost: p.Cost})
	}
	return out, nil
}

func (s *Sources) Categories(ctx context.Context, ownerID int64) ([]domain.CategoryFact, error) {
	if s.catalog == nil {
		return nil, errNotConfigured
	}
	categories, err := s.catalog.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.CategoryFact, 0, len(categories))
	for _, c := range categories {
		out = append(out, domain.CategoryFact{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (s *Sources) RecentOrders(ctx context.Context, ownerID int64, limit int) ([]*orderdomain.OrderDetails, error) {
	if s.orderSvc == nil {
		return nil, errNotConfigured
	}
	return s.orderSvc.RecentOrders(ctx, ownerID, limit)
}

func (s *Sources) ActiveDiscounts(ctx context.Context, ownerID int64, now time.Time) ([]*discountdomain.Discount, error) {
	if s.discounts == nil {
		return nil, errNotConfigured
	}
	return s.discounts.ListActiveDiscounts(ctx, ownerID, now)
}

var errNotConfigured = errors.New("analytics source not configured")
