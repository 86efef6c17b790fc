package memory

import (
	"context"

	"github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/users/ports"
	"github.com/Apurer/shop-backoffice/internal/platform/memstore"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory persistence adapter for users.
type Repository struct {
	users *memstore.Table[domain.User]
}

func NewRepository() *Repository {
	return &Repository{users: memstore.NewTable[domain.User](nil)}
}

func (r *Repository) Create(_ context.Context, user domain.User) (*domain.User, error) {
	saved, ok, err := r.users.InsertUnique(
		func(existing domain.User) bool { return existing.Username == user.Username },
		func(id int64) (domain.User, error) {
			user.ID = id
			return user, nil
		},
	)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ports.ErrUsernameTaken
	}
	return &saved, nil
}

func (r *Repository) Get(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users.Get(id)
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &user, nil
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users.First(func(u domain.User) bool { return u.Username == username })
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &user, nil
}

func (r *Repository) Update(_ context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error) {
	user, found, err := r.users.Update(id, func(u *domain.User) error {
		username := u.Username
		if err := mutate(u); err != nil {
			return err
		}
		u.ID, u.Username = id, username
		return nil
	})
	if !found {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
