package domain

import (
	"strings"

	"github.com/Apurer/shop-backoffice/internal/shared/patch"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

// Category groups products. Deleting a category leaves its products untouched.
type Category struct {
	ID          int64
	OwnerID     int64
	Name        string `validate:"required"`
	Description *string
	ImageURL    *string `validate:"omitempty,http_url"`
}

type CategoryPatch struct {
	Name        *string
	Description patch.Nullable[string]
	ImageURL    patch.Nullable[string]
}

func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.ImageURL = blankToNil(c.ImageURL)
}

func (c *Category) Validate() error {
	return validation.Struct(c)
}

func (c *Category) Apply(change CategoryPatch) {
	patch.Set(&c.Name, change.Name)
	change.Description.Apply(&c.Description)
	change.ImageURL.Apply(&c.ImageURL)
	c.Normalize()
}

// Tag is a free-form label attached to products through ProductTag links.
type Tag struct {
	ID      int64
	OwnerID int64
	Name    string `validate:"required"`
}

type TagPatch struct {
	Name *string
}

func (t *Tag) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
}

func (t *Tag) Validate() error {
	return validation.Struct(t)
}

func (t *Tag) Apply(change TagPatch) {
	patch.Set(&t.Name, change.Name)
	t.Normalize()
}

// ProductTag links a product to a tag. The same pair may be linked more than once.
type ProductTag struct {
	ID        int64
	ProductID int64
	TagID     int64
}
