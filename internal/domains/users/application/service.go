package application

import (
	"context"
	"strings"

	"github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	user.ID = 0
	if err := user.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Create(ctx, user)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

// UpdateProfile changes name, email and avatar. Username and password are not editable here.
func (s *Service) UpdateProfile(ctx context.Context, id int64, change ports.ProfileUpdate) (*domain.User, error) {
	updated, err := s.repo.Update(ctx, id, func(u *domain.User) error {
		name, email, avatar := u.Name, u.Email, u.Avatar
		if change.Name != nil {
			name = *change.Name
		}
		if change.Email != nil {
			email = *change.Email
		}
		change.Avatar.Apply(&avatar)
		return u.UpdateProfile(name, email, avatar)
	})
	return updated, mapError(err)
}

var _ ports.Service = (*Service)(nil)
