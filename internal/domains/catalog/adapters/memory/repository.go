package memory

import (
	"context"
	"slices"

	"github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	"github.com/Apurer/shop-backoffice/internal/platform/memstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	products    *memstore.Table[domain.Product]
	categories  *memstore.Table[domain.Category]
	tags        *memstore.Table[domain.Tag]
	productTags *memstore.Table[domain.ProductTag]
}

func NewRepository() *Repository {
	return &Repository{
		products:    memstore.NewTable[domain.Product](nil),
		categories:  memstore.NewTable[domain.Category](nil),
		tags:        memstore.NewTable[domain.Tag](nil),
		productTags: memstore.NewTable[domain.ProductTag](nil),
	}
}

func (r *Repository) CreateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	saved, err := r.products.Insert(func(id int64) (domain.Product, error) {
		product.ID = id
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &product, nil
}

func (r *Repository) UpdateProduct(_ context.Context, id int64, mutate func(*domain.Product) error) (*domain.Product, error) {
	updated, found, err := r.products.Update(id, func(p *domain.Product) error {
		createdAt, owner := p.CreatedAt, p.OwnerID
		if err := mutate(p); err != nil {
			return err
		}
		p.ID, p.CreatedAt, p.OwnerID = id, createdAt, owner
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) DeleteProduct(_ context.Context, id int64) (bool, error) {
	return r.products.Delete(id), nil
}

func (r *Repository) ListProducts(_ context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	rows := r.products.Filter(func(p domain.Product) bool {
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			return false
		}
		if len(filter.CategoryIDs) > 0 && (p.CategoryID == nil || !slices.Contains(filter.CategoryIDs, *p.CategoryID)) {
			return false
		}
		if len(filter.IDs) > 0 && !slices.Contains(filter.IDs, p.ID) {
			return false
		}
		return true
	})
	return pointers(rows), nil
}

func (r *Repository) CreateCategory(_ context.Context, category domain.Category) (*domain.Category, error) {
	saved, err := r.categories.Insert(func(id int64) (domain.Category, error) {
		category.ID = id
		return category, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	category, ok := r.categories.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &category, nil
}

func (r *Repository) UpdateCategory(_ context.Context, id int64, mutate func(*domain.Category) error) (*domain.Category, error) {
	updated, found, err := r.categories.Update(id, func(c *domain.Category) error {
		owner := c.OwnerID
		if err := mutate(c); err != nil {
			return err
		}
		c.ID, c.OwnerID = id, owner
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) DeleteCategory(_ context.Context, id int64) (bool, error) {
	return r.categories.Delete(id), nil
}

func (r *Repository) ListCategories(_ context.Context, ownerID int64) ([]*domain.Category, error) {
	rows := r.categories.Filter(func(c domain.Category) bool { return c.OwnerID == ownerID })
	return pointers(rows), nil
}

func (r *Repository) CreateTag(_ context.Context, tag domain.Tag) (*domain.Tag, error) {
	saved, err := r.tags.Insert(func(id int64) (domain.Tag, error) {
		tag.ID = id
		return tag, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) GetTag(_ context.Context, id int64) (*domain.Tag, error) {
	tag, ok := r.tags.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &tag, nil
}

func (r *Repository) UpdateTag(_ context.Context, id int64, mutate func(*domain.Tag) error) (*domain.Tag, error) {
	updated, found, err := r.tags.Update(id, func(t *domain.Tag) error {
		owner := t.OwnerID
		if err := mutate(t); err != nil {
			return err
		}
		t.ID, t.OwnerID = id, owner
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *Repository) DeleteTag(_ context.Context, id int64) (bool, error) {
	return r.tags.Delete(id), nil
}

func (r *Repository) ListTags(_ context.Context, ownerID *int64, ids []int64) ([]*domain.Tag, error) {
	rows := r.tags.Filter(func(t domain.Tag) bool {
		if len(ids) > 0 {
			return slices.Contains(ids, t.ID)
		}
		return ownerID == nil || t.OwnerID == *ownerID
	})
	return pointers(rows), nil
}

func (r *Repository) CreateProductTag(_ context.Context, productID, tagID int64) (*domain.ProductTag, error) {
	saved, err := r.productTags.Insert(func(id int64) (domain.ProductTag, error) {
		return domain.ProductTag{ID: id, ProductID: productID, TagID: tagID}, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) DeleteFirstProductTag(_ context.Context, productID, tagID int64) (bool, error) {
	_, ok := r.productTags.DeleteFirst(func(pt domain.ProductTag) bool {
		return pt.ProductID == productID && pt.TagID == tagID
	})
	return ok, nil
}

func (r *Repository) ListProductTags(_ context.Context, filter ports.ProductTagFilter) ([]*domain.ProductTag, error) {
	rows := r.productTags.Filter(func(pt domain.ProductTag) bool {
		if filter.ProductID != nil && pt.ProductID != *filter.ProductID {
			return false
		}
		if filter.TagID != nil && pt.TagID != *filter.TagID {
			return false
		}
		return true
	})
	return pointers(rows), nil
}

func pointers[T any](rows []T) []*T {
	out := make([]*T, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out
}
