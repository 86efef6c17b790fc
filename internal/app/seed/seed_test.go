package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticssources "github.com/Apurer/shop-backoffice/internal/domains/analytics/adapters/sources"
	analyticsapp "github.com/Apurer/shop-backoffice/internal/domains/analytics/application"
	catalogmemory "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/shop-backoffice/internal/domains/catalog/application"
	discountmemory "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/memory"
	discountapp "github.com/Apurer/shop-backoffice/internal/domains/discounts/application"
	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	ordermemory "github.com/Apurer/shop-backoffice/internal/domains/orders/adapters/memory"
	orderapp "github.com/Apurer/shop-backoffice/internal/domains/orders/application"
	usermemory "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/shop-backoffice/internal/domains/users/application"
)

var seededAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newServices() (Services, *analyticsapp.Service) {
	clock := func() time.Time { return seededAt }
	catalogRepo := catalogmemory.NewRepository()
	orderRepo := ordermemory.NewRepository()

	svc := Services{
		Users:     userapp.NewService(usermemory.NewRepository()),
		Catalog:   catalogapp.NewService(catalogRepo, catalogapp.WithClock(clock)),
		Discounts: discountapp.NewService(discountmemory.NewRepository()),
		Orders:    orderapp.NewService(orderRepo, orderapp.WithClock(clock)),
	}
	analytics := analyticsapp.NewService(analyticssources.New(catalogRepo, orderRepo, svc.Orders, svc.Discounts))
	return svc, analytics
}

func TestRun_SeedsDemoAccount(t *testing.T) {
	svc, analytics := newServices()
	ctx := context.Background()

	res, err := Run(ctx, svc, seededAt, nil)
	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, int64(1), res.OwnerID)

	user, err := svc.Users.GetByUsername(ctx, DemoUsername)
	require.NoError(t, err)
	assert.Equal(t, "Tom Cook", user.Name)

	products, err := svc.Catalog.ListProducts(ctx, res.OwnerID)
	require.NoError(t, err)
	assert.Len(t, products, 4)

	tags, err := svc.Catalog.GetProductTags(ctx, products[2].ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "Sale", tags[0].Name)

	scheduled, err := svc.Discounts.ListDiscountsByStatus(ctx, res.OwnerID, discountdomain.StatusScheduled, seededAt)
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "Weekend Flash", scheduled[0].Name)

	active, err := svc.Discounts.ListActiveDiscounts(ctx, res.OwnerID, seededAt)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	returns, err := svc.Orders.ListReturns(ctx, res.OwnerID)
	require.NoError(t, err)
	require.Len(t, returns, 1)
	assert.Equal(t, "james@example.com", returns[0].Order.CustomerEmail)

	dash, err := analytics.Dashboard(ctx, res.OwnerID, seededAt)
	require.NoError(t, err)
	assert.InDelta(t, 737.0, dash.Stats.TotalRevenue, 1e-9)
	assert.InDelta(t, 351.0, dash.Stats.TotalProfit, 1e-9)
	assert.Equal(t, 4, dash.Stats.TotalCustomers)
	assert.Equal(t, 4, dash.Stats.ActiveProducts)
	assert.Len(t, dash.RecentOrders, 4)
}

func TestRun_SkipsWhenDemoUserExists(t *testing.T) {
	svc, _ := newServices()
	ctx := context.Background()

	first, err := Run(ctx, svc, seededAt, nil)
	require.NoError(t, err)

	second, err := Run(ctx, svc, seededAt, nil)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.OwnerID, second.OwnerID)

	products, err := svc.Catalog.ListProducts(ctx, first.OwnerID)
	require.NoError(t, err)
	assert.Len(t, products, 4)
}
