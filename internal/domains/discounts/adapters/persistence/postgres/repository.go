package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	platformpg "github.com/Apurer/shop-backoffice/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists discounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables owned by this adapter.
func Models() []any {
	return []any{&discountRecord{}}
}

type discountRecord struct {
	ID          int64      `gorm:"primaryKey;column:id"`
	OwnerID     int64      `gorm:"column:owner_id;index"`
	Name        string     `gorm:"column:name"`
	Description *string    `gorm:"column:description"`
	Type        string     `gorm:"column:type;type:varchar(16)"`
	Value       float64    `gorm:"column:value"`
	Code        *string    `gorm:"column:code"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	IsActive    bool       `gorm:"column:is_active"`
	Scope       string     `gorm:"column:scope;type:varchar(16)"`
	ScopeID     *int64     `gorm:"column:scope_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (discountRecord) TableName() string { return "discounts" }

func (r *Repository) Create(ctx context.Context, discount domain.Discount) (*domain.Discount, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(discount)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Get(ctx context.Context, id int64) (*domain.Discount, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record discountRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, id int64, mutate func(*domain.Discount) error) (*domain.Discount, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *discountRecord) error {
		discount := rec.toDomain()
		if err := mutate(discount); err != nil {
			return err
		}
		next := toRecord(*discount)
		next.ID, next.OwnerID, next.CreatedAt = rec.ID, rec.OwnerID, rec.CreatedAt
		*rec = next
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Delete(&discountRecord{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) List(ctx context.Context, ownerID int64) ([]*domain.Discount, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []discountRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	discounts := make([]*domain.Discount, 0, len(records))
	for i := range records {
		discounts = append(discounts, records[i].toDomain())
	}
	return discounts, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres discount repository not configured")
	}
	return nil
}

func toRecord(d domain.Discount) discountRecord {
	return discountRecord{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
		Type:        string(d.Type),
		Value:       d.Value,
		Code:        d.Code,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		IsActive:    d.IsActive,
		Scope:       string(d.Scope),
		ScopeID:     d.ScopeID,
	}
}

func (r discountRecord) toDomain() *domain.Discount {
	return &domain.Discount{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Type:        domain.Type(r.Type),
		Value:       r.Value,
		Code:        r.Code,
		StartDate:   utc(r.StartDate),
		EndDate:     utc(r.EndDate),
		IsActive:    r.IsActive,
		Scope:       domain.Scope(r.Scope),
		ScopeID:     r.ScopeID,
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
