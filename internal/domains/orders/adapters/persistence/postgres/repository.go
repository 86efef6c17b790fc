package postgres

import (
	"context"
	"errors"
	"slices"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Apurer/shop-backoffice/internal/domains/orders/domain"
	"github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	platformpg "github.com/Apurer/shop-backoffice/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders, order items and returns in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the tables owned by this adapter.
func Models() []any {
	return []any{&orderRecord{}, &orderItemRecord{}, &returnRecord{}, &idempotencyRecord{}}
}

type orderRecord struct {
	ID              int64     `gorm:"primaryKey;column:id"`
	OwnerID         int64     `gorm:"column:owner_id;index"`
	CustomerID      *int64    `gorm:"column:customer_id"`
	CustomerName    string    `gorm:"column:customer_name"`
	CustomerEmail   string    `gorm:"column:customer_email"`
	CustomerPhone   *string   `gorm:"column:customer_phone"`
	ShippingAddress string    `gorm:"column:shipping_address"`
	Total           float64   `gorm:"column:total"`
	Status          string    `gorm:"column:status;type:varchar(32)"`
	PaymentStatus   string    `gorm:"column:payment_status;type:varchar(32)"`
	EscrowStatus    string    `gorm:"column:escrow_status;type:varchar(32)"`
	TrackingNumber  *string   `gorm:"column:tracking_number"`
	ShippingCarrier *string   `gorm:"column:shipping_carrier"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          int64   `gorm:"primaryKey;column:id"`
	OrderID     int64   `gorm:"column:order_id;index"`
	ProductID   int64   `gorm:"column:product_id;index"`
	ProductName string  `gorm:"column:product_name"`
	Price       float64 `gorm:"column:price"`
	Quantity    int     `gorm:"column:quantity"`
	Total       float64 `gorm:"column:total"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type returnRecord struct {
	ID             int64                     `gorm:"primaryKey;column:id"`
	OrderID        int64                     `gorm:"column:order_id;index"`
	Reason         string                    `gorm:"column:reason"`
	Status         string                    `gorm:"column:status;type:varchar(32)"`
	RefundAmount   *float64                  `gorm:"column:refund_amount"`
	RequestedItems datatypes.JSONSlice[int64] `gorm:"column:requested_items;type:jsonb"`
	CreatedAt      time.Time                 `gorm:"column:created_at"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at"`
}

func (returnRecord) TableName() string { return "returns" }

func (r *Repository) CreateOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) (*domain.OrderDetails, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toOrderRecord(order)
	record.ID = 0
	itemRecords := make([]orderItemRecord, 0, len(items))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		for _, item := range items {
			rec := toOrderItemRecord(item)
			rec.ID = 0
			rec.OrderID = record.ID
			itemRecords = append(itemRecords, rec)
		}
		if len(itemRecords) == 0 {
			return nil
		}
		return tx.Create(&itemRecords).Error
	})
	if err != nil {
		return nil, err
	}
	details := &domain.OrderDetails{Order: record.toDomain(), Items: make([]*domain.OrderItem, 0, len(itemRecords))}
	for i := range itemRecords {
		details.Items = append(details.Items, itemRecords[i].toDomain())
	}
	return details, nil
}

func (r *Repository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateOrder(ctx context.Context, id int64, mutate func(*domain.Order) error) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *orderRecord) error {
		order := rec.toDomain()
		if err := mutate(order); err != nil {
			return err
		}
		next := toOrderRecord(*order)
		next.ID, next.OwnerID, next.CreatedAt = rec.ID, rec.OwnerID, rec.CreatedAt
		*rec = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) CreateOrderItem(ctx context.Context, item domain.OrderItem) (*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toOrderItemRecord(item)
	record.ID = 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent orderRecord
		if err := tx.Select("id").First(&parent, "id = ?", item.OrderID).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ListOrderItems(ctx context.Context, orderIDs []int64) ([]*domain.OrderItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	items := []*domain.OrderItem{}
	if len(orderIDs) == 0 {
		return items, nil
	}
	var records []orderItemRecord
	if err := r.db.WithContext(ctx).Order("id").Where("order_id IN ?", orderIDs).Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

func (r *Repository) CreateReturn(ctx context.Context, ret domain.Return) (*domain.Return, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toReturnRecord(ret)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetReturn(ctx context.Context, id int64) (*domain.Return, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record returnRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateReturn(ctx context.Context, id int64, mutate func(*domain.Return) error) (*domain.Return, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record, err := platformpg.MutateByID(ctx, r.db, id, func(rec *returnRecord) error {
		ret := rec.toDomain()
		if err := mutate(ret); err != nil {
			return err
		}
		next := toReturnRecord(*ret)
		next.ID, next.OrderID, next.CreatedAt = rec.ID, rec.OrderID, rec.CreatedAt
		*rec = next
		return nil
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ListReturns(ctx context.Context, orderIDs []int64) ([]*domain.Return, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	returns := []*domain.Return{}
	if len(orderIDs) == 0 {
		return returns, nil
	}
	var records []returnRecord
	if err := r.db.WithContext(ctx).Order("id").Where("order_id IN ?", orderIDs).Find(&records).Error; err != nil {
		return nil, err
	}
	for i := range records {
		returns = append(returns, records[i].toDomain())
	}
	return returns, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func toOrderRecord(o domain.Order) orderRecord {
	return orderRecord{
		ID:              o.ID,
		OwnerID:         o.OwnerID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		EscrowStatus:    string(o.EscrowStatus),
		TrackingNumber:  o.TrackingNumber,
		ShippingCarrier: o.ShippingCarrier,
		CreatedAt:       o.CreatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		ShippingAddress: r.ShippingAddress,
		Total:           r.Total,
		Status:          domain.Status(r.Status),
		PaymentStatus:   domain.PaymentStatus(r.PaymentStatus),
		EscrowStatus:    domain.EscrowStatus(r.EscrowStatus),
		TrackingNumber:  r.TrackingNumber,
		ShippingCarrier: r.ShippingCarrier,
		CreatedAt:       utc(r.CreatedAt),
	}
}

func toOrderItemRecord(i domain.OrderItem) orderItemRecord {
	return orderItemRecord{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Price:       i.Price,
		Quantity:    i.Quantity,
		Total:       i.Total,
	}
}

func (r orderItemRecord) toDomain() *domain.OrderItem {
	return &domain.OrderItem{
		ID:          r.ID,
		OrderID:     r.OrderID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Total:       r.Total,
	}
}

func toReturnRecord(ret domain.Return) returnRecord {
	items := slices.Clone(ret.RequestedItems)
	if items == nil {
		items = []int64{}
	}
	return returnRecord{
		ID:             ret.ID,
		OrderID:        ret.OrderID,
		Reason:         ret.Reason,
		Status:         string(ret.Status),
		RefundAmount:   ret.RefundAmount,
		RequestedItems: datatypes.JSONSlice[int64](items),
		CreatedAt:      ret.CreatedAt,
	}
}

func (r returnRecord) toDomain() *domain.Return {
	items := slices.Clone([]int64(r.RequestedItems))
	if items == nil {
		items = []int64{}
	}
	return &domain.Return{
		ID:             r.ID,
		OrderID:        r.OrderID,
		Reason:         r.Reason,
		Status:         domain.ReturnStatus(r.Status),
		RefundAmount:   r.RefundAmount,
		RequestedItems: items,
		CreatedAt:      utc(r.CreatedAt),
	}
}

func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
