package ports

import (
	"context"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
)

// Service exposes discount use cases.
type Service interface {
	ListDiscounts(ctx context.Context, ownerID int64) ([]*domain.Discount, error)
	ListActiveDiscounts(ctx context.Context, ownerID int64, now time.Time) ([]*domain.Discount, error)
	ListDiscountsByStatus(ctx context.Context, ownerID int64, status domain.Status, now time.Time) ([]*domain.Discount, error)
	// ApplicableDiscounts returns the owner's discounts active at now whose scope selects target.
	ApplicableDiscounts(ctx context.Context, ownerID int64, target domain.Target, now time.Time) ([]*domain.Discount, error)
	GetDiscount(ctx context.Context, id int64) (*domain.Discount, error)
	CreateDiscount(ctx context.Context, ownerID int64, discount domain.Discount) (*domain.Discount, error)
	UpdateDiscount(ctx context.Context, id int64, change domain.DiscountPatch) (*domain.Discount, error)
	DeleteDiscount(ctx context.Context, id int64) (bool, error)
}
