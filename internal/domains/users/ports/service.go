package ports

import (
	"context"

	"github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	"github.com/Apurer/shop-backoffice/internal/shared/patch"
)

// ProfileUpdate carries a partial profile change; nil fields are left untouched.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Avatar patch.Nullable[string]
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, change ProfileUpdate) (*domain.User, error)
}
