package mapper

import (
	"time"

	catalogdomain "github.com/Apurer/shop-backoffice/internal/domains/catalog/domain"
	"github.com/Apurer/shop-backoffice/internal/shared/patch"
)

// Product is the HTTP representation of a catalog product.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	ImageURL    *string   `json:"imageUrl"`
	CategoryID  *int64    `json:"categoryId"`
	Source      string    `json:"source"`
	SourceID    *string   `json:"sourceId"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      int64     `json:"userId"`
}

// ProductInput captures create payloads. Omitted numbers default to zero.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
	CategoryID  *int64  `json:"categoryId"`
	Source      string  `json:"source"`
	SourceID    *string `json:"sourceId"`
}

// ProductUpdate preserves field presence so absent keys are left untouched and null clears.
type ProductUpdate struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Price       *float64               `json:"price"`
	Cost        *float64               `json:"cost"`
	Stock       *int                   `json:"stock"`
	ImageURL    patch.Nullable[string] `json:"imageUrl"`
	CategoryID  patch.Nullable[int64]  `json:"categoryId"`
	Source      *string                `json:"source"`
	SourceID    patch.Nullable[string] `json:"sourceId"`
}

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	UserID      int64   `json:"userId"`
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

type CategoryUpdate struct {
	Name        *string                `json:"name"`
	Description patch.Nullable[string] `json:"description"`
	ImageURL    patch.Nullable[string] `json:"imageUrl"`
}

type Tag struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"userId"`
}

type TagInput struct {
	Name string `json:"name"`
}

type TagUpdate struct {
	Name *string `json:"name"`
}

type ProductTag struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	TagID     int64 `json:"tagId"`
}

func ToDomainProduct(in ProductInput) catalogdomain.Product {
	return catalogdomain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		Source:      catalogdomain.Source(in.Source),
		SourceID:    in.SourceID,
	}
}

func ToProductPatch(in ProductUpdate) catalogdomain.ProductPatch {
	out := catalogdomain.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		SourceID:    in.SourceID,
	}
	if in.Source != nil {
		src := catalogdomain.Source(*in.Source)
		out.Source = &src
	}
	return out
}

func FromDomainProduct(p *catalogdomain.Product) Product {
	if p == nil {
		return Product{}
	}
	return Product{
		ID:          p.ID,
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
		UserID:      p.OwnerID,
	}
}

func FromDomainProducts(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

func ToDomainCategory(in CategoryInput) catalogdomain.Category {
	return catalogdomain.Category{Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
}

func ToCategoryPatch(in CategoryUpdate) catalogdomain.CategoryPatch {
	return catalogdomain.CategoryPatch{Name: in.Name, Description: in.Description, ImageURL: in.ImageURL}
}

func FromDomainCategory(c *catalogdomain.Category) Category {
	if c == nil {
		return Category{}
	}
	return Category{ID: c.ID, Name: c.Name, Description: c.Description, ImageURL: c.ImageURL, UserID: c.OwnerID}
}

func FromDomainCategories(categories []*catalogdomain.Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, FromDomainCategory(c))
	}
	return out
}

func ToDomainTag(in TagInput) catalogdomain.Tag {
	return catalogdomain.Tag{Name: in.Name}
}

func ToTagPatch(in TagUpdate) catalogdomain.TagPatch {
	return catalogdomain.TagPatch{Name: in.Name}
}

func FromDomainTag(t *catalogdomain.Tag) Tag {
	if t == nil {
		return Tag{}
	}
	return Tag{ID: t.ID, Name: t.Name, UserID: t.OwnerID}
}

func FromDomainTags(tags []*catalogdomain.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, FromDomainTag(t))
	}
	return out
}

func FromDomainProductTag(pt *catalogdomain.ProductTag) ProductTag {
	if pt == nil {
		return ProductTag{}
	}
	return ProductTag{ID: pt.ID, ProductID: pt.ProductID, TagID: pt.TagID}
}
