package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
)

var ErrNotFound = errors.New("discount not found")

// Repository persists discounts. List returns rows in creation order.
type Repository interface {
	Create(ctx context.Context, discount domain.Discount) (*domain.Discount, error)
	Get(ctx context.Context, id int64) (*domain.Discount, error)
	Update(ctx context.Context, id int64, mutate func(*domain.Discount) error) (*domain.Discount, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, ownerID int64) ([]*domain.Discount, error)
}
