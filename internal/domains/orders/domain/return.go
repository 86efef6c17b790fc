package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/shop-backoffice/internal/shared/patch"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

// ReturnStatus follows pending, approved or rejected, then completed in the UI, but any
// status may be set from any other.
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "pending"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRejected  ReturnStatus = "rejected"
	ReturnCompleted ReturnStatus = "completed"
)

// Return is a refund request against an order. RequestedItems is stored as supplied and is
// not checked against the order's items. RefundAmount is the caller's figure.
type Return struct {
	ID             int64
	OrderID        int64
	Reason         string       `validate:"required"`
	Status         ReturnStatus `validate:"oneof=pending approved rejected completed"`
	RefundAmount   *float64
	RequestedItems []int64
	CreatedAt      time.Time
}

type ReturnPatch struct {
	Reason         *string
	Status         *ReturnStatus
	RefundAmount   patch.Nullable[float64]
	RequestedItems *[]int64
}

func (r *Return) Normalize() {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Status == "" {
		r.Status = ReturnPending
	}
	if r.RequestedItems == nil {
		r.RequestedItems = []int64{}
	}
}

func (r *Return) Validate() error {
	return validation.Struct(r)
}

// Apply merges change into the return. OrderID and CreatedAt never change.
func (r *Return) Apply(change ReturnPatch) {
	patch.Set(&r.Reason, change.Reason)
	patch.Set(&r.Status, change.Status)
	change.RefundAmount.Apply(&r.RefundAmount)
	if change.RequestedItems != nil {
		r.RequestedItems = slices.Clone(*change.RequestedItems)
	}
	r.Normalize()
}

// Clone returns a copy that shares no slices with r.
func (r Return) Clone() Return {
	r.RequestedItems = slices.Clone(r.RequestedItems)
	return r
}

// ReturnDetails is a return together with its order. Order is nil when the order was removed.
type ReturnDetails struct {
	Return *Return
	Order  *Order
}

// QuoteRefund sums the totals of items whose ID is selected. Duplicate selections count once.
func QuoteRefund(items []*OrderItem, selected []int64) float64 {
	sum := decimal.Zero
	for _, item := range items {
		if slices.Contains(selected, item.ID) {
			sum = sum.Add(decimal.NewFromFloat(item.Total))
		}
	}
	return sum.InexactFloat64()
}
