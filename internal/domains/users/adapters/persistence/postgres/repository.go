package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/shop-backoffice/internal/domains/users/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/users/ports"
	platformpg "github.com/Apurer/shop-backoffice/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables owned by this adapter.
func Models() []any {
	return []any{&userRecord{}}
}

type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Password  string    `gorm:"column:password"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email"`
	Avatar    *string   `gorm:"column:avatar"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Create inserts a user. The unique index on username backs the conflict check.
func (r *Repository) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	record.ID = 0
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrUsernameTaken
	}
	return record.toDomain(), nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

// Update runs mutate against the locked row. Username is kept as stored.
func (r *Repository) Update(ctx context.Context, id int64, mutate func(*domain.User) error) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *userRecord) error {
		user := rec.toDomain()
		if err := mutate(user); err != nil {
			return err
		}
		next := toRecord(*user)
		next.ID, next.Username, next.CreatedAt = rec.ID, rec.Username, rec.CreatedAt
		*rec = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func toRecord(u domain.User) userRecord {
	return userRecord{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		Name:     u.Name,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:       r.ID,
		Username: r.Username,
		Password: r.Password,
		Name:     r.Name,
		Email:    r.Email,
		Avatar:   r.Avatar,
	}
}
