package application

import (
	"context"
	"time"

	"github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
)

// Service orchestrates discount use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListDiscounts(ctx context.Context, ownerID int64) ([]*domain.Discount, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *Service) ListActiveDiscounts(ctx context.Context, ownerID int64, now time.Time) ([]*domain.Discount, error) {
	return s.filter(ctx, ownerID, func(d *domain.Discount) bool { return d.ActiveAt(now) })
}

func (s *Service) ListDiscountsByStatus(ctx context.Context, ownerID int64, status domain.Status, now time.Time) ([]*domain.Discount, error) {
	return s.filter(ctx, ownerID, func(d *domain.Discount) bool { return d.StatusAt(now) == status })
}

// ApplicableDiscounts lists discounts active at now that cover target. Nothing applies them to
// prices; it is the lookup a checkout or pricing engine would call.
func (s *Service) ApplicableDiscounts(ctx context.Context, ownerID int64, target domain.Target, now time.Time) ([]*domain.Discount, error) {
	return s.filter(ctx, ownerID, func(d *domain.Discount) bool { return d.ActiveAt(now) && d.AppliesTo(target) })
}

func (s *Service) GetDiscount(ctx context.Context, id int64) (*domain.Discount, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) CreateDiscount(ctx context.Context, ownerID int64, discount domain.Discount) (*domain.Discount, error) {
	discount.ID = 0
	discount.OwnerID = ownerID
	discount.Normalize()
	if err := discount.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, discount)
}

func (s *Service) UpdateDiscount(ctx context.Context, id int64, change domain.DiscountPatch) (*domain.Discount, error) {
	updated, err := s.repo.Update(ctx, id, func(d *domain.Discount) error {
		d.Apply(change)
		return d.Validate()
	})
	return updated, mapError(err)
}

func (s *Service) DeleteDiscount(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *Service) filter(ctx context.Context, ownerID int64, keep func(*domain.Discount) bool) ([]*domain.Discount, error) {
	all, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Discount, 0, len(all))
	for _, d := range all {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

var _ ports.Service = (*Service)(nil)
