package application

import (
	"context"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used to stamp new products.
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

func (s *Service) ListProducts(ctx context.Context, ownerID int64) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, ports.ProductFilter{OwnerID: &ownerID})
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, ownerID int64, product domain.Product) (*domain.Product, error) {
	product.ID = 0
	product.OwnerID = ownerID
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	product.CreatedAt = s.now().UTC()
	return s.repo.CreateProduct(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, change domain.ProductPatch) (*domain.Product, error) {
	updated, err := s.repo.UpdateProduct(ctx, id, func(p *domain.Product) error {
		p.Apply(change)
		return p.Validate()
	})
	return updated, mapError(err)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, ports.ProductFilter{CategoryIDs: []int64{categoryID}})
}

// ListProductsByTag returns every product linked to tagID, in product creation order.
func (s *Service) ListProductsByTag(ctx context.Context, tagID int64) ([]*domain.Product, error) {
	links, err := s.repo.ListProductTags(ctx, ports.ProductTagFilter{TagID: &tagID})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []*domain.Product{}, nil
	}
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.ProductID)
	}
	return s.repo.ListProducts(ctx, ports.ProductFilter{IDs: ids})
}

func (s *Service) ListCategories(ctx context.Context, ownerID int64) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx, ownerID)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, ownerID int64, category domain.Category) (*domain.Category, error) {
	category.ID = 0
	category.OwnerID = ownerID
	category.Normalize()
	if err := category.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.CreateCategory(ctx, category)
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, change domain.CategoryPatch) (*domain.Category, error) {
	updated, err := s.repo.UpdateCategory(ctx, id, func(c *domain.Category) error {
		c.Apply(change)
		return c.Validate()
	})
	return updated, mapError(err)
}

// DeleteCategory removes the category only; products keep their now dangling CategoryID.
func (s *Service) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) ListTags(ctx context.Context, ownerID int64) ([]*domain.Tag, error) {
	return s.repo.ListTags(ctx, &ownerID, nil)
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.repo.GetTag(ctx, id)
}

func (s *Service) CreateTag(ctx context.Context, ownerID int64, tag domain.Tag) (*domain.Tag, error) {
	tag.ID = 0
	tag.OwnerID = ownerID
	tag.Normalize()
	if err := tag.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.CreateTag(ctx, tag)
}

func (s *Service) UpdateTag(ctx context.Context, id int64, change domain.TagPatch) (*domain.Tag, error) {
	updated, err := s.repo.UpdateTag(ctx, id, func(t *domain.Tag) error {
		t.Apply(change)
		return t.Validate()
	})
	return updated, mapError(err)
}

func (s *Service) DeleteTag(ctx context.Context, id int64) (bool, error) {
	return s.repo.DeleteTag(ctx, id)
}

// AddTagToProduct always creates a new link, even when the pair is already linked.
// Neither the product nor the tag is required to exist.
func (s *Service) AddTagToProduct(ctx context.Context, productID, tagID int64) (*domain.ProductTag, error) {
	return s.repo.CreateProductTag(ctx, productID, tagID)
}

func (s *Service) RemoveTagFromProduct(ctx context.Context, productID, tagID int64) (bool, error) {
	return s.repo.DeleteFirstProductTag(ctx, productID, tagID)
}

// GetProductTags resolves the product's links to tags in tag creation order.
// Links pointing at deleted tags are skipped and duplicate links yield one tag.
func (s *Service) GetProductTags(ctx context.Context, productID int64) ([]*domain.Tag, error) {
	links, err := s.repo.ListProductTags(ctx, ports.ProductTagFilter{ProductID: &productID})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []*domain.Tag{}, nil
	}
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.TagID)
	}
	return s.repo.ListTags(ctx, nil, ids)
}

var _ ports.Service = (*Service)(nil)
