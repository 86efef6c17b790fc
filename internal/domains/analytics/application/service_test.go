package application

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/report"
	"github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/sources"
	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/analytics/ports"
	catalogmemory "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/shop-backoffice/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	discountmemory "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/memory"
	discountapp "github.com/Apurer/shop-backoffice/internal/domains/discounts/application"
	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	ordermemory "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/shop-backoffice/internal/domains/orders/application"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
)

const owner int64 = 1

var now = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	catalog   *catalogapp.Service
	orders    *orderapp.Service
	discounts *discountapp.Service
	analytics *Service
	clock     *time.Time
}

func newFixture() *fixture {
	clock := now
	tick := func() time.Time { return clock }

	catalogRepo := catalogmemory.NewRepository()
	orderRepo := ordermemory.NewRepository()
	discountRepo := discountmemory.NewRepository()

	f := &fixture{
		catalog:   catalogapp.NewService(catalogRepo, catalogapp.WithClock(tick)),
		orders:    orderapp.NewService(orderRepo, orderapp.WithClock(tick)),
		discounts: discountapp.NewService(discountRepo),
		clock:     &clock,
	}
	f.analytics = NewService(
		sources.New(catalogRepo, orderRepo, f.orders, f.discounts),
		WithReportWriter(report.NewXLSXWriter()),
	)
	return f
}

func (f *fixture) placeOrder(t *testing.T, ownerID int64, email string, total float64, items ...orderdomain.OrderItem) *orderdomain.OrderDetails {
	t.Helper()
	placed, err := f.orders.PlaceOrder(context.Background(), orderports.PlaceOrderInput{
		OwnerID: ownerID,
		Order: orderdomain.Order{
			CustomerName:    "Customer",
			CustomerEmail:   email,
			ShippingAddress: "1 Main St",
			Total:           total,
		},
		Items: items,
	})
	require.NoError(t, err)
	return placed
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	category, err := f.catalog.CreateCategory(ctx, owner, catalogdomain.Category{Name: "Electronics"})
	require.NoError(t, err)
	require.Equal(t, int64(1), category.ID)
	product, err := f.catalog.CreateProduct(ctx, owner, catalogdomain.Product{
		Name: "Headphones", Price: 159, Cost: 80, CategoryID: &category.ID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)

	placed := f.placeOrder(t, owner, "sarah@example.com", 159,
		orderdomain.OrderItem{ProductID: product.ID, ProductName: "Headphones", Price: 159, Quantity: 1, Total: 159})
	require.Equal(t, int64(1), placed.Order.ID)

	revenue, err := f.analytics.ProductRevenue(ctx, owner, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductRevenue{{ProductID: 1, Name: "Headphones", Revenue: 159}}, revenue)

	profit, err := f.analytics.TotalProfit(ctx, owner, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 79.0, profit)

	counts, err := f.analytics.ProductCounts(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryCount{{CategoryID: 1, Name: "Electronics", Count: 1}}, counts)
}

func TestTotalProfit_FollowsCurrentCost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	product, err := f.catalog.CreateProduct(ctx, owner, catalogdomain.Product{Name: "Lamp", Price: 100, Cost: 10})
	require.NoError(t, err)
	f.placeOrder(t, owner, "a@example.com", 100,
		orderdomain.OrderItem{ProductID: product.ID, ProductName: "Lamp", Price: 100, Quantity: 1, Total: 100})

	profit, err := f.analytics.TotalProfit(ctx, owner, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 90.0, profit)

	cost := 50.0
	_, err = f.catalog.UpdateProduct(ctx, product.ID, catalogdomain.ProductPatch{Cost: &cost})
	require.NoError(t, err)

	profit, err = f.analytics.TotalProfit(ctx, owner, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 50.0, profit)

	_, err = f.catalog.DeleteProduct(ctx, product.ID)
	require.NoError(t, err)
	profit, err = f.analytics.TotalProfit(ctx, owner, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, profit)
}

func TestTotalRevenue_EqualsSumOfProductRevenue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.placeOrder(t, owner, "a@example.com", 459.98,
		orderdomain.OrderItem{ProductID: 2, ProductName: "Smart Watch", Price: 299.99, Quantity: 1, Total: 299.99},
		orderdomain.OrderItem{ProductID: 1, ProductName: "Headphones", Price: 159.99, Quantity: 1, Total: 159.99})
	*f.clock = now.Add(48 * time.Hour)
	f.placeOrder(t, owner, "b@example.com", 89.99,
		orderdomain.OrderItem{ProductID: 3, ProductName: "Running Shoes", Price: 89.99, Quantity: 1, Total: 89.99})
	f.placeOrder(t, 2, "c@example.com", 1000,
		orderdomain.OrderItem{ProductID: 9, ProductName: "Other seller", Price: 1000, Quantity: 1, Total: 1000})

	later := now.Add(24 * time.Hour)
	for _, w := range []domain.Window{{}, {Start: &later}, {End: &later}} {
		rows, err := f.analytics.ProductRevenue(ctx, owner, w)
		require.NoError(t, err)
		total, err := f.analytics.TotalRevenue(ctx, owner, w)
		require.NoError(t, err)
		var sum float64
		for _, r := range rows {
			sum += r.Revenue
		}
		assert.InDelta(t, sum, total, 1e-9)
	}

	all, err := f.analytics.TotalRevenue(ctx, owner, domain.Window{})
	require.NoError(t, err)
	assert.Equal(t, 549.97, all)

	recent, err := f.analytics.ProductRevenue(ctx, owner, domain.Window{Start: &later})
	require.NoError(t, err)
	assert.Equal(t, []domain.ProductRevenue{{ProductID: 3, Name: "Running Shoes", Revenue: 89.99}}, recent)
}

func TestTotalCustomers_CountsDistinctEmails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.placeOrder(t, owner, "sarah@example.com", 10)
	f.placeOrder(t, owner, "sarah@example.com", 20)
	f.placeOrder(t, owner, "james@example.com", 30)
	f.placeOrder(t, 2, "emily@example.com", 40)

	customers, err := f.analytics.TotalCustomers(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, customers)
}

func TestTotalCustomers_NoNormalization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.placeOrder(t, owner, "a@x.io", 10)
	f.placeOrder(t, owner, " a@x.io ", 10)
	f.placeOrder(t, owner, "A@X.IO", 10)
	f.placeOrder(t, owner, "walk-in customer", 10)

	customers, err := f.analytics.TotalCustomers(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 4, customers)
}

func TestDashboard_CombinesStatsOrdersAndDiscounts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	category, err := f.catalog.CreateCategory(ctx, owner, catalogdomain.Category{Name: "Electronics"})
	require.NoError(t, err)
	_, err = f.catalog.CreateCategory(ctx, owner, catalogdomain.Category{Name: "Clothing"})
	require.NoError(t, err)
	product, err := f.catalog.CreateProduct(ctx, owner, catalogdomain.Product{Name: "Headphones", Price: 159.99, Cost: 80, CategoryID: &category.ID})
	require.NoError(t, err)
	_, err = f.catalog.CreateProduct(ctx, 2, catalogdomain.Product{Name: "Foreign", Price: 1, CategoryID: &category.ID})
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		*f.clock = now.Add(time.Duration(i) * time.Hour)
		f.placeOrder(t, owner, "sarah@example.com", 159.99,
			orderdomain.OrderItem{ProductID: product.ID, ProductName: "Headphones", Price: 159.99, Quantity: 1, Total: 159.99})
	}

	_, err = f.discounts.CreateDiscount(ctx, owner, discountdomain.Discount{Name: "Summer Sale", Type: discountdomain.TypePercentage, Value: 20, IsActive: true, Scope: discountdomain.ScopeAll})
	require.NoError(t, err)
	_, err = f.discounts.CreateDiscount(ctx, owner, discountdomain.Discount{Name: "Paused", Type: discountdomain.TypeFixed, Value: 5, IsActive: false, Scope: discountdomain.ScopeAll})
	require.NoError(t, err)

	dash, err := f.analytics.Dashboard(ctx, owner, now)
	require.NoError(t, err)
	assert.InDelta(t, 959.94, dash.Stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 479.94, dash.Stats.TotalProfit, 1e-9)
	assert.Equal(t, 1, dash.Stats.TotalCustomers)
	assert.Equal(t, 1, dash.Stats.ActiveProducts)
	assert.Equal(t, []domain.CategoryCount{
		{CategoryID: 1, Name: "Electronics", Count: 2},
		{CategoryID: 2, Name: "Clothing", Count: 0},
	}, dash.ProductCountsByCategory)
	require.Len(t, dash.RecentOrders, DashboardRecentOrders)
	assert.Equal(t, int64(6), dash.RecentOrders[0].Order.ID)
	require.Len(t, dash.ActiveDiscounts, 1)
	assert.Equal(t, "Summer Sale", dash.ActiveDiscounts[0].Name)
}

func TestExportProductRevenue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.placeOrder(t, owner, "a@example.com", 10,
		orderdomain.OrderItem{ProductID: 1, ProductName: "Mug", Price: 10, Quantity: 1, Total: 10})

	var buf bytes.Buffer
	require.NoError(t, f.analytics.ExportProductRevenue(ctx, owner, domain.Window{}, &buf))
	assert.NotZero(t, buf.Len())

	bare := NewService(sources.New(nil, nil, nil, nil))
	assert.Error(t, bare.ExportProductRevenue(ctx, owner, domain.Window{}, &buf))
}

type failingSources struct {
	ports.Sources
}

func (failingSources) Orders(context.Context, int64) ([]domain.OrderFact, error) {
	return nil, errors.New("store offline")
}

func TestSourceErrorsPropagate(t *testing.T) {
	svc := NewService(failingSources{})
	_, err := svc.TotalRevenue(context.Background(), owner, domain.Window{})
	assert.EqualError(t, err, "store offline")
}
