package memory

import (
	"context"

	"github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	"github.com/Apurer/shop-backoffice/internal/platform/memstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory discount persistence adapter.
type Repository struct {
	discounts *memstore.Table[domain.Discount]
}

func NewRepository() *Repository {
	return &Repository{discounts: memstore.NewTable[domain.Discount](nil)}
}

func (r *Repository) Create(_ context.Context, discount domain.Discount) (*domain.Discount, error) {
	saved, err := r.discounts.Insert(func(id int64) (domain.Discount, error) {
		discount.ID = id
		return discount, nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *Repository) Get(_ context.Context, id int64) (*domain.Discount, error) {
	discount, ok := r.discounts.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &discount, nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate func(*domain.Discount) error) (*domain.Discount, error) {
	updated, found, err := r.discounts.Update(id, func(d *domain.Discount) error {
		owner := d.OwnerID
		if err := mutate(d); err != nil {
			return err
		}
		d.ID, d.OwnerID = id, owner
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

func (r *Repository) Delete(_ context.Context, id int64) (bool, error) {
	return r.discounts.Delete(id), nil
}

func (r *Repository) List(_ context.Context, ownerID int64) ([]*domain.Discount, error) {
	rows := r.discounts.Filter(func(d domain.Discount) bool { return d.OwnerID == ownerID })
	out := make([]*domain.Discount, 0, len(rows))
	for i := range rows {
		out = append(out, &rows[i])
	}
	return out, nil
}
