package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/shop-backoffice/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
)

// CatalogAPI serves products, categories, tags and their links.
type CatalogAPI struct {
	service catalogports.Service
	owner   int64
}

// NewCatalogAPI binds the catalog service to the operating owner.
func NewCatalogAPI(service catalogports.Service, owner int64) CatalogAPI {
	return CatalogAPI{service: service, owner: owner}
}

// ProductTagInput is the body of POST /products/:id/tags.
type ProductTagInput struct {
	TagID int64 `json:"tagId"`
}

// Get /api/products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context(), api.owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Get /api/products/:id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(product))
}

// Post /api/products
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var payload catalogmapper.ProductInput
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.CreateProduct(c.Request.Context(), api.owner, catalogmapper.ToDomainProduct(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainProduct(saved))
}

// Patch /api/products/:id
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload catalogmapper.ProductUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), id, catalogmapper.ToProductPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProduct(updated))
}

// Delete /api/products/:id
func (api *CatalogAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteProduct(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "product")
}

// Get /api/products/:id/tags
func (api *CatalogAPI) GetProductTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tags, err := api.service.GetProductTags(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainTags(tags))
}

// Post /api/products/:id/tags
func (api *CatalogAPI) AddTagToProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ProductTagInput
	if !bindJSON(c, &payload) {
		return
	}
	link, err := api.service.AddTagToProduct(c.Request.Context(), id, payload.TagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainProductTag(link))
}

// Delete /api/products/:id/tags/:tagId
func (api *CatalogAPI) RemoveTagFromProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tagId")
	if !ok {
		return
	}
	removed, err := api.service.RemoveTagFromProduct(c.Request.Context(), id, tagID)
	respondDeleted(c, removed, err, "product tag")
}

// Get /api/categories
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.ListCategories(c.Request.Context(), api.owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategories(categories))
}

// Get /api/categories/:id
func (api *CatalogAPI) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := api.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategory(category))
}

// Post /api/categories
func (api *CatalogAPI) CreateCategory(c *gin.Context) {
	var payload catalogmapper.CategoryInput
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.CreateCategory(c.Request.Context(), api.owner, catalogmapper.ToDomainCategory(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainCategory(saved))
}

// Patch /api/categories/:id
func (api *CatalogAPI) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload catalogmapper.CategoryUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateCategory(c.Request.Context(), id, catalogmapper.ToCategoryPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainCategory(updated))
}

// Delete /api/categories/:id
func (api *CatalogAPI) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteCategory(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "category")
}

// Get /api/categories/:id/products
func (api *CatalogAPI) ListProductsByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	products, err := api.service.ListProductsByCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}

// Get /api/tags
func (api *CatalogAPI) ListTags(c *gin.Context) {
	tags, err := api.service.ListTags(c.Request.Context(), api.owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainTags(tags))
}

// Post /api/tags
func (api *CatalogAPI) CreateTag(c *gin.Context) {
	var payload catalogmapper.TagInput
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.CreateTag(c.Request.Context(), api.owner, catalogmapper.ToDomainTag(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.FromDomainTag(saved))
}

// Patch /api/tags/:id
func (api *CatalogAPI) UpdateTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload catalogmapper.TagUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateTag(c.Request.Context(), id, catalogmapper.ToTagPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainTag(updated))
}

// Delete /api/tags/:id
func (api *CatalogAPI) DeleteTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteTag(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "tag")
}

// Get /api/tags/:id/products
func (api *CatalogAPI) ListProductsByTag(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	products, err := api.service.ListProductsByTag(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products))
}
