package ports

import (
	"context"

	"github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, ownerID int64) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, ownerID int64, product domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, change domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error)
	ListProductsByTag(ctx context.Context, tagID int64) ([]*domain.Product, error)

	ListCategories(ctx context.Context, ownerID int64) ([]*domain.Category, error)
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	CreateCategory(ctx context.Context, ownerID int64, category domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id int64, change domain.CategoryPatch) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)

	ListTags(ctx context.Context, ownerID int64) ([]*domain.Tag, error)
	GetTag(ctx context.Context, id int64) (*domain.Tag, error)
	CreateTag(ctx context.Context, ownerID int64, tag domain.Tag) (*domain.Tag, error)
	UpdateTag(ctx context.Context, id int64, change domain.TagPatch) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id int64) (bool, error)

	AddTagToProduct(ctx context.Context, productID, tagID int64) (*domain.ProductTag, error)
	RemoveTagFromProduct(ctx context.Context, productID, tagID int64) (bool, error)
	GetProductTags(ctx context.Context, productID int64) ([]*domain.Tag, error)
}
