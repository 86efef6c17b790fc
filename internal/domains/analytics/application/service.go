package application

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
)

// DashboardRecentOrders is the number of recent orders shown on the dashboard.
const DashboardRecentOrders = 5

// Service computes analytics by scanning the sources on every call.
type Service struct {
	sources ports.Sources
	report  ports.ReportWriter
}

type Option func(*Service)

// WithReportWriter enables ExportProductRevenue.
func WithReportWriter(w ports.ReportWriter) Option {
	return func(s *Service) {
		s.report = w
	}
}

func NewService(sources ports.Sources, opts ...Option) *Service {
	s := &Service{sources: sources}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) ProductRevenue(ctx context.Context, ownerID int64, window domain.Window) ([]domain.ProductRevenue, error) {
	orders, items, err := s.ordersWithItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.RevenueByProduct(orders, items, window), nil
}

func (s *Service) TotalRevenue(ctx context.Context, ownerID int64, window domain.Window) (float64, error) {
	rows, err := s.ProductRevenue(ctx, ownerID, window)
	if err != nil {
		return 0, err
	}
	return domain.TotalRevenue(rows), nil
}

// TotalProfit prices every item with the current cost of its product.
func (s *Service) TotalProfit(ctx context.Context, ownerID int64, window domain.Window) (float64, error) {
	orders, items, err := s.ordersWithItems(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	products, err := s.sources.Products(ctx, nil)
	if err != nil {
		return 0, err
	}
	byID := make(map[int64]domain.ProductFact, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return domain.Profit(orders, items, byID, window), nil
}

func (s *Service) TotalCustomers(ctx context.Context, ownerID int64) (int, error) {
	orders, err := s.sources.Orders(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return domain.DistinctCustomers(orders), nil
}

// ProductCounts counts products of any owner against the owner's categories.
func (s *Service) ProductCounts(ctx context.Context, ownerID int64) ([]domain.CategoryCount, error) {
	categories, err := s.sources.Categories(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	products, err := s.sources.Products(ctx, nil)
	if err != nil {
		return nil, err
	}
	return domain.CountByCategory(categories, products), nil
}

func (s *Service) Dashboard(ctx context.Context, ownerID int64, now time.Time) (*domain.Dashboard, error) {
	var (
		dash domain.Dashboard
		err  error
	)
	if dash.Stats.TotalRevenue, err = s.TotalRevenue(ctx, ownerID, domain.Window{}); err != nil {
		return nil, err
	}
	if dash.Stats.TotalProfit, err = s.TotalProfit(ctx, ownerID, domain.Window{}); err != nil {
		return nil, err
	}
	if dash.Stats.TotalCustomers, err = s.TotalCustomers(ctx, ownerID); err != nil {
		return nil, err
	}
	owned, err := s.sources.Products(ctx, &ownerID)
	if err != nil {
		return nil, err
	}
	dash.Stats.ActiveProducts = len(owned)
	if dash.ProductCountsByCategory, err = s.ProductCounts(ctx, ownerID); err != nil {
		return nil, err
	}
	if dash.RecentOrders, err = s.sources.RecentOrders(ctx, ownerID, DashboardRecentOrders); err != nil {
		return nil, err
	}
	if dash.ActiveDiscounts, err = s.sources.ActiveDiscounts(ctx, ownerID, now); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (s *Service) ExportProductRevenue(ctx context.Context, ownerID int64, window domain.Window, w io.Writer) error {
	if s.report == nil {
		return errors.New("analytics report writer not configured")
	}
	rows, err := s.ProductRevenue(ctx, ownerID, window)
	if err != nil {
		return err
	}
	return s.report.WriteProductRevenue(w, window, rows)
}

func (s *Service) ordersWithItems(ctx context.Context, ownerID int64) ([]domain.OrderFact, []domain.LineItem, error) {
	orders, err := s.sources.Orders(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.sources.LineItems(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return orders, items, nil
}

var _ ports.Service = (*Service)(nil)
