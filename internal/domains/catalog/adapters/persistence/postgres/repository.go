package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	platformpg "github.com/Apurer/shop-backoffice/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables owned by this adapter.
func Models() []any {
	return []any{&productRecord{}, &categoryRecord{}, &tagRecord{}, &productTagRecord{}}
}

type productRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	OwnerID     int64     `gorm:"column:owner_id;index"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	Price       float64   `gorm:"column:price"`
	Cost        float64   `gorm:"column:cost"`
	Stock       int       `gorm:"column:stock"`
	ImageURL    *string   `gorm:"column:image_url"`
	CategoryID  *int64    `gorm:"column:category_id;index"`
	Source      string    `gorm:"column:source;type:varchar(32)"`
	SourceID    *string   `gorm:"column:source_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type categoryRecord struct {
	ID          int64   `gorm:"primaryKey;column:id"`
	OwnerID     int64   `gorm:"column:owner_id;index"`
	Name        string  `gorm:"column:name"`
	Description *string `gorm:"column:description"`
	ImageURL    *string `gorm:"column:image_url"`
}

func (categoryRecord) TableName() string { return "categories" }

type tagRecord struct {
	ID      int64  `gorm:"primaryKey;column:id"`
	OwnerID int64  `gorm:"column:owner_id;index"`
	Name    string `gorm:"column:name"`
}

func (tagRecord) TableName() string { return "tags" }

// productTagRecord carries no unique constraint on the pair; duplicate links are allowed.
type productTagRecord struct {
	ID        int64 `gorm:"primaryKey;column:id"`
	ProductID int64 `gorm:"column:product_id;index"`
	TagID     int64 `gorm:"column:tag_id;index"`
}

func (productTagRecord) TableName() string { return "product_tags" }

func (r *Repository) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toProductRecord(product)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateProduct(ctx context.Context, id int64, mutate func(*domain.Product) error) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *productRecord) error {
		product := rec.toDomain()
		if err := mutate(product); err != nil {
			return err
		}
		next := toProductRecord(*product)
		next.ID, next.OwnerID, next.CreatedAt = rec.ID, rec.OwnerID, rec.CreatedAt
		*rec = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, &productRecord{}, id)
}

func (r *Repository) ListProducts(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) CreateCategory(ctx context.Context, category domain.Category) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toCategoryRecord(category)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record categoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateCategory(ctx context.Context, id int64, mutate func(*domain.Category) error) (*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *categoryRecord) error {
		category := rec.toDomain()
		if err := mutate(category); err != nil {
			return err
		}
		next := toCategoryRecord(*category)
		next.ID, next.OwnerID = rec.ID, rec.OwnerID
		*rec = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, &categoryRecord{}, id)
}

func (r *Repository) ListCategories(ctx context.Context, ownerID int64) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, records[i].toDomain())
	}
	return categories, nil
}

func (r *Repository) CreateTag(ctx context.Context, tag domain.Tag) (*domain.Tag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := tagRecord{OwnerID: tag.OwnerID, Name: tag.Name}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record tagRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateTag(ctx context.Context, id int64, mutate func(*domain.Tag) error) (*domain.Tag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *tagRecord) error {
		tag := rec.toDomain()
		if err := mutate(tag); err != nil {
			return err
		}
		rec.Name = tag.Name
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) DeleteTag(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, &tagRecord{}, id)
}

func (r *Repository) ListTags(ctx context.Context, ownerID *int64, ids []int64) ([]*domain.Tag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	switch {
	case len(ids) > 0:
		query = query.Where("id IN ?", ids)
	case ownerID != nil:
		query = query.Where("owner_id = ?", *ownerID)
	}
	var records []tagRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	tags := make([]*domain.Tag, 0, len(records))
	for i := range records {
		tags = append(tags, records[i].toDomain())
	}
	return tags, nil
}

func (r *Repository) CreateProductTag(ctx context.Context, productID, tagID int64) (*domain.ProductTag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := productTagRecord{ProductID: productID, TagID: tagID}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) DeleteFirstProductTag(ctx context.Context, productID, tagID int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record productTagRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ? AND tag_id = ?", productID, tagID).
			Order("id").
			First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Delete(&productTagRecord{}, record.ID).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func (r *Repository) ListProductTags(ctx context.Context, filter ports.ProductTagFilter) ([]*domain.ProductTag, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.TagID != nil {
		query = query.Where("tag_id = ?", *filter.TagID)
	}
	var records []productTagRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	links := make([]*domain.ProductTag, 0, len(records))
	for i := range records {
		links = append(links, records[i].toDomain())
	}
	return links, nil
}

func (r *Repository) deleteByID(ctx context.Context, model any, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	result := r.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func toProductRecord(p domain.Product) productRecord {
	return productRecord{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		Source:      string(p.Source),
		SourceID:    p.SourceID,
		CreatedAt:   p.CreatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Cost:        r.Cost,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		CategoryID:  r.CategoryID,
		Source:      domain.Source(r.Source),
		SourceID:    r.SourceID,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

func toCategoryRecord(c domain.Category) categoryRecord {
	return categoryRecord{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
	}
}

func (r categoryRecord) toDomain() *domain.Category {
	return &domain.Category{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

func (r tagRecord) toDomain() *domain.Tag {
	return &domain.Tag{ID: r.ID, OwnerID: r.OwnerID, Name: r.Name}
}

func (r productTagRecord) toDomain() *domain.ProductTag {
	return &domain.ProductTag{ID: r.ID, ProductID: r.ProductID, TagID: r.TagID}
}
