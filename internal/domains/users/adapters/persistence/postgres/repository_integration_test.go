//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/users/ports"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func TestRepository_CreateRejectsTakenUsername(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user := domain.User{Username: "demo", Password: "password", Name: "Demo", Email: "demo@example.com"}
	saved, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	_, err = repo.Create(ctx, user)
	require.ErrorIs(t, err, ports.ErrUsernameTaken)

	fetched, err := repo.GetByUsername(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, fetched.ID)

	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateKeepsUsername(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, domain.User{Username: "demo", Password: "password", Name: "Demo", Email: "demo@example.com"})
	require.NoError(t, err)

	avatar := "https://example.com/a.png"
	updated, err := repo.Update(ctx, saved.ID, func(u *domain.User) error {
		u.Username = "hijack"
		return u.UpdateProfile("Renamed", "new@example.com", &avatar)
	})
	require.NoError(t, err)
	assert.Equal(t, "demo", updated.Username)
	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.Avatar)
	assert.Equal(t, avatar, *updated.Avatar)

	_, err = repo.Update(ctx, 4242, func(*domain.User) error { return nil })
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
