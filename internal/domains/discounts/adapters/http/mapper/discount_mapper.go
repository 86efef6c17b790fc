package mapper

import (
	"time"

	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	"github.com/Apurer/shop-backoffice/internal/shared/patch"
)

// Discount is the HTTP representation of a discount, with its status at response time.
type Discount struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Type        string     `json:"type"`
	Value       float64    `json:"value"`
	Code        *string    `json:"code"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    bool       `json:"isActive"`
	Scope       string     `json:"scope"`
	ScopeID     *int64     `json:"scopeId"`
	Status      string     `json:"status"`
	UserID      int64      `json:"userId"`
}

// DiscountInput captures create payloads. IsActive defaults to true and Scope to all.
type DiscountInput struct {
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Type        string     `json:"type"`
	Value       float64    `json:"value"`
	Code        *string    `json:"code"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsActive    *bool      `json:"isActive"`
	Scope       string     `json:"scope"`
	ScopeID     *int64     `json:"scopeId"`
}

type DiscountUpdate struct {
	Name        *string                   `json:"name"`
	Description patch.Nullable[string]    `json:"description"`
	Type        *string                   `json:"type"`
	Value       *float64                  `json:"value"`
	Code        patch.Nullable[string]    `json:"code"`
	StartDate   patch.Nullable[time.Time] `json:"startDate"`
	EndDate     patch.Nullable[time.Time] `json:"endDate"`
	IsActive    *bool                     `json:"isActive"`
	Scope       *string                   `json:"scope"`
	ScopeID     patch.Nullable[int64]     `json:"scopeId"`
}

func ToDomainDiscount(in DiscountInput) discountdomain.Discount {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	scope := discountdomain.Scope(in.Scope)
	if in.Scope == "" {
		scope = discountdomain.ScopeAll
	}
	return discountdomain.Discount{
		Name:        in.Name,
		Description: in.Description,
		Type:        discountdomain.Type(in.Type),
		Value:       in.Value,
		Code:        in.Code,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    active,
		Scope:       scope,
		ScopeID:     in.ScopeID,
	}
}

func ToDiscountPatch(in DiscountUpdate) discountdomain.DiscountPatch {
	out := discountdomain.DiscountPatch{
		Name:        in.Name,
		Description: in.Description,
		Value:       in.Value,
		Code:        in.Code,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    in.IsActive,
		ScopeID:     in.ScopeID,
	}
	if in.Type != nil {
		t := discountdomain.Type(*in.Type)
		out.Type = &t
	}
	if in.Scope != nil {
		s := discountdomain.Scope(*in.Scope)
		out.Scope = &s
	}
	return out
}

func FromDomainDiscount(d *discountdomain.Discount, now time.Time) Discount {
	if d == nil {
		return Discount{}
	}
	return Discount{
		ID:          d.ID,
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
		Status:      string(d.StatusAt(now)),
		UserID:      d.OwnerID,
	}
}

func FromDomainDiscounts(discounts []*discountdomain.Discount, now time.Time) []Discount {
	out := make([]Discount, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, FromDomainDiscount(d, now))
	}
	return out
}
