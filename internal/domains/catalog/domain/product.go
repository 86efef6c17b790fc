package domain

import (
	"strings"
	"time"

	"github.com/Apurer/shop-backoffice/internal/shared/patch"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

// Source records where a product listing originated.
type Source string

const (
	SourceManual    Source = "manual"
	SourceFacebook  Source = "facebook"
	SourceInstagram Source = "instagram"
	SourceWhatsApp  Source = "whatsapp"
	SourceTikTok    Source = "tiktok"
)

// Product is a sellable catalog entry owned by a user.
// CategoryID is not checked against existing categories and may dangle after a delete.
type Product struct {
	ID          int64
	OwnerID     int64
	Name        string `validate:"required"`
	Description string
	Price       float64 `validate:"gte=0"`
	Cost        float64 `validate:"gte=0"`
	Stock       int     `validate:"gte=0"`
	ImageURL    *string `validate:"omitempty,http_url"`
	CategoryID  *int64
	Source      Source `validate:"oneof=manual facebook instagram whatsapp tiktok"`
	SourceID    *string
	CreatedAt   time.Time
}

// ProductPatch carries the fields of a partial product update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Cost        *float64
	Stock       *int
	ImageURL    patch.Nullable[string]
	CategoryID  patch.Nullable[int64]
	Source      *Source
	SourceID    patch.Nullable[string]
}

// Normalize trims text fields and applies defaults.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.ImageURL = blankToNil(p.ImageURL)
	if p.Source == "" {
		p.Source = SourceManual
	}
}

// Validate checks field constraints and reports every failing field.
func (p *Product) Validate() error {
	return validation.Struct(p)
}

// Apply merges the patch into the product. CreatedAt and ownership never change.
func (p *Product) Apply(change ProductPatch) {
	patch.Set(&p.Name, change.Name)
	patch.Set(&p.Description, change.Description)
	patch.Set(&p.Price, change.Price)
	patch.Set(&p.Cost, change.Cost)
	patch.Set(&p.Stock, change.Stock)
	change.ImageURL.Apply(&p.ImageURL)
	change.CategoryID.Apply(&p.CategoryID)
	patch.Set(&p.Source, change.Source)
	change.SourceID.Apply(&p.SourceID)
	p.Normalize()
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
