package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/Apurer/shop-backoffice/internal/shared/patch"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

// Type selects how Value is interpreted.
type Type string

const (
	TypePercentage Type = "percentage"
	TypeFixed      Type = "fixed"
)

// Scope selects which catalog entries a discount targets.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeCategory Scope = "category"
	ScopeProduct  Scope = "product"
	ScopeTag      Scope = "tag"
)

// Status classifies a discount at a point in time.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusScheduled Status = "scheduled"
	StatusExpired   Status = "expired"
)

// ParseStatus reports whether s names a known status.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusInactive, StatusScheduled, StatusExpired:
		return st, true
	}
	return "", false
}

// Discount records a promotion. Value is stored as given: a percentage above 100 is accepted,
// and a StartDate after EndDate simply yields a discount that is never active.
type Discount struct {
	ID          int64
	OwnerID     int64
	Name        string `validate:"required"`
	Description *string
	Type        Type    `validate:"oneof=percentage fixed"`
	Value       float64 `validate:"gte=0"`
	Code        *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    bool
	Scope       Scope `validate:"oneof=all category product tag"`
	ScopeID     *int64
}

// DiscountPatch carries a partial update; zero fields are left untouched.
type DiscountPatch struct {
	Name        *string
	Description patch.Nullable[string]
	Type        *Type
	Value       *float64
	Code        patch.Nullable[string]
	StartDate   patch.Nullable[time.Time]
	EndDate     patch.Nullable[time.Time]
	IsActive    *bool
	Scope       *Scope
	ScopeID     patch.Nullable[int64]
}

// Target describes the catalog entry a discount may apply to.
type Target struct {
	ProductID  int64
	CategoryID *int64
	TagIDs     []int64
}

// ActiveAt reports whether the flag is set and now falls inside the optional window.
// Both bounds are inclusive.
func (d *Discount) ActiveAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return true
}

// StatusAt classifies the discount. The flag wins over the window, and a window that
// has not started wins over one that has ended.
func (d *Discount) StatusAt(now time.Time) Status {
	switch {
	case !d.IsActive:
		return StatusInactive
	case d.StartDate != nil && now.Before(*d.StartDate):
		return StatusScheduled
	case d.EndDate != nil && now.After(*d.EndDate):
		return StatusExpired
	default:
		return StatusActive
	}
}

// AppliesTo reports whether the scope selects target. It ignores activity and
// never computes a price; a pricing engine combines it with ActiveAt.
func (d *Discount) AppliesTo(target Target) bool {
	switch d.Scope {
	case ScopeAll:
		return true
	case ScopeProduct:
		return d.ScopeID != nil && *d.ScopeID == target.ProductID
	case ScopeCategory:
		return d.ScopeID != nil && target.CategoryID != nil && *d.ScopeID == *target.CategoryID
	case ScopeTag:
		return d.ScopeID != nil && slices.Contains(target.TagIDs, *d.ScopeID)
	default:
		return false
	}
}

// Normalize trims text, drops blank codes, and clears ScopeID for store-wide discounts.
func (d *Discount) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = blankToNil(d.Code)
	if d.Scope == ScopeAll {
		d.ScopeID = nil
	}
}

// Validate reports every failing field. A scoped discount needs a positive ScopeID.
func (d *Discount) Validate() error {
	var c validation.Collector
	validation.StructInto(&c, d)
	if d.Scope != ScopeAll && d.Scope != "" {
		c.Check(d.ScopeID != nil && *d.ScopeID > 0, "scopeId", "is required when scope is not all")
	}
	return c.Err()
}

// Apply merges change into the discount and renormalizes it.
func (d *Discount) Apply(change DiscountPatch) {
	patch.Set(&d.Name, change.Name)
	change.Description.Apply(&d.Description)
	patch.Set(&d.Type, change.Type)
	patch.Set(&d.Value, change.Value)
	change.Code.Apply(&d.Code)
	change.StartDate.Apply(&d.StartDate)
	change.EndDate.Apply(&d.EndDate)
	patch.Set(&d.IsActive, change.IsActive)
	patch.Set(&d.Scope, change.Scope)
	change.ScopeID.Apply(&d.ScopeID)
	d.Normalize()
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
