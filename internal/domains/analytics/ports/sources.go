package ports

import (
	"context"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/analytics/domain"
	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	orderdomain "github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
)

// Sources is the read side analytics scans on every call. Scans return rows in creation order.
type Sources interface {
	Orders(ctx context.Context, ownerID int64) ([]domain.OrderFact, error)
	// LineItems returns the items of the given orders; an empty slice matches nothing.
	LineItems(ctx context.Context, orderIDs []int64) ([]domain.LineItem, error)
	// Products returns products of ownerID, or of every owner when ownerID is nil.
	Products(ctx context.Context, ownerID *int64) ([]domain.ProductFact, error)
	Categories(ctx context.Context, ownerID int64) ([]domain.CategoryFact, error)

	RecentOrders(ctx context.Context, ownerID int64, limit int) ([]*orderdomain.OrderDetails, error)
	ActiveDiscounts(ctx context.Context, ownerID int64, now time.Time) ([]*discountdomain.Discount, error)
}
