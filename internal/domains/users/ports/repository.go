package ports

import (
	"context"
	"errors"

	"github.com/Apurer/shop-backoffice/internal/domains/users/domain"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Repository persists users. Usernames are unique.
type Repository interface {
	// Create stores a new user and fails with ErrUsernameTaken when the username exists.
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error)
}
