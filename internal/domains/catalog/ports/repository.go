package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("catalog entry not found")

// ProductFilter narrows product scans. Zero-valued fields do not filter.
type ProductFilter struct {
	OwnerID     *int64
	CategoryIDs []int64
	IDs         []int64
}

// ProductTagFilter narrows link scans.
type ProductTagFilter struct {
	ProductID *int64
	TagID     *int64
}

// Repository persists the catalog. Scans return rows in creation order.
// Get and Update report absence with ErrNotFound; Delete reports it with false.
type Repository interface {
	CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, mutate func(*domain.Product) error) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)

	CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, mutate func(*domain.Category) error) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)
	ListCategories(ctx context.Context, ownerID int64) ([]*domain.Category, error)

	CreateTag(ctx context.Context, tag domain.Tag) (*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, mutate func(*domain.Tag) error) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)
	// ListTags returns tags of ownerID; when ids is non-empty only those tags are returned, regardless of owner.
	ListTags(ctx context.Context, ownerID *int64, ids []int64) ([]*domain.Tag, error)

	CreateProductTag(ctx context.Context, productID, tagID int64) (*domain.ProductTag, error)
	// DeleteFirstProductTag removes the earliest link matching the pair.
	DeleteFirstProductTag(ctx context.Context, productID, tagID int64) (bool, error)
	ListProductTags(ctx context.Context, filter ProductTagFilter) ([]*domain.ProductTag, error)
}
