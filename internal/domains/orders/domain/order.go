package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/Apurer/shop-backoffice/internal/shared/patch"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

// Status tracks fulfilment. Any value may follow any other.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// EscrowStatus labels whether held funds were disbursed. No funds move.
type EscrowStatus string

const (
	EscrowPending  EscrowStatus = "pending"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

// Order is a customer purchase owned by a seller. Status, PaymentStatus and EscrowStatus
// are independent labels; combinations such as cancelled with released escrow are accepted.
// Total is entered by the caller and never recomputed from items.
type Order struct {
	ID              int64
	OwnerID         int64
	CustomerID      *int64
	CustomerName    string        `validate:"required"`
	CustomerEmail   string        `validate:"required"`
	CustomerPhone   *string
	ShippingAddress string        `validate:"required"`
	Total           float64       `validate:"gte=0"`
	Status          Status        `validate:"oneof=pending processing shipped delivered completed cancelled refunded"`
	PaymentStatus   PaymentStatus `validate:"oneof=pending paid refunded"`
	EscrowStatus    EscrowStatus  `validate:"oneof=pending released refunded"`
	TrackingNumber  *string
	ShippingCarrier *string
	CreatedAt       time.Time
}

// OrderPatch carries a partial order update; zero fields are left untouched.
type OrderPatch struct {
	CustomerName    *string
	CustomerEmail   *string
	CustomerPhone   patch.Nullable[string]
	ShippingAddress *string
	Total           *float64
	Status          *Status
	PaymentStatus   *PaymentStatus
	EscrowStatus    *EscrowStatus
	TrackingNumber  patch.Nullable[string]
	ShippingCarrier patch.Nullable[string]
}

// Normalize trims text fields and defaults every status label to pending.
// CustomerEmail is kept verbatim since distinct customers are counted by exact email.
func (o *Order) Normalize() {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	o.ShippingAddress = strings.TrimSpace(o.ShippingAddress)
	o.CustomerPhone = blankToNil(o.CustomerPhone)
	o.TrackingNumber = blankToNil(o.TrackingNumber)
	o.ShippingCarrier = blankToNil(o.ShippingCarrier)
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
	if o.EscrowStatus == "" {
		o.EscrowStatus = EscrowPending
	}
}

func (o *Order) Validate() error {
	return validation.Struct(o)
}

// Apply merges change into the order. CreatedAt and ownership never change.
func (o *Order) Apply(change OrderPatch) {
	patch.Set(&o.CustomerName, change.CustomerName)
	patch.Set(&o.CustomerEmail, change.CustomerEmail)
	change.CustomerPhone.Apply(&o.CustomerPhone)
	patch.Set(&o.ShippingAddress, change.ShippingAddress)
	patch.Set(&o.Total, change.Total)
	patch.Set(&o.Status, change.Status)
	patch.Set(&o.PaymentStatus, change.PaymentStatus)
	patch.Set(&o.EscrowStatus, change.EscrowStatus)
	change.TrackingNumber.Apply(&o.TrackingNumber)
	change.ShippingCarrier.Apply(&o.ShippingCarrier)
	o.Normalize()
}

// OrderItem is a line of an order. ProductName and Price are snapshots taken at purchase.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string  `validate:"required"`
	Price       float64 `validate:"gte=0"`
	Quantity    int     `validate:"gte=1"`
	Total       float64 `validate:"gte=0"`
}

func (i *OrderItem) Normalize() {
	i.ProductName = strings.TrimSpace(i.ProductName)
}

func (i *OrderItem) Validate() error {
	return validation.Struct(i)
}

// OrderDetails is an order together with its items in creation order.
type OrderDetails struct {
	Order *Order
	Items []*OrderItem
}

// SortRecent orders newest first. Orders without a timestamp sort last, ties keep their ID order.
func SortRecent(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].CreatedAt, orders[j].CreatedAt
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
