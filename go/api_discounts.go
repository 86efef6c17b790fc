package backofficeserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	discountmapper "github.com/Apurer/shop-backoffice/internal/domains/discounts/adapters/http/mapper"
	discountdomain "github.com/Apurer/shop-backoffice/internal/domains/discounts/domain"
	discountports "github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
)

// DiscountAPI serves the owner's promotions.
type DiscountAPI struct {
	service discountports.Service
	owner   int64
	now     func() time.Time
}

func NewDiscountAPI(service discountports.Service, owner int64, now func() time.Time) DiscountAPI {
	if now == nil {
		now = time.Now
	}
	return DiscountAPI{service: service, owner: owner, now: now}
}

// Get /api/discounts
// An optional status query narrows the list to active, inactive, scheduled or expired.
func (api *DiscountAPI) ListDiscounts(c *gin.Context) {
	now := api.now()
	var (
		discounts []*discountdomain.Discount
		err       error
	)
	if raw := c.Query("status"); raw != "" {
		status, ok := discountdomain.ParseStatus(raw)
		if !ok {
			respondBadRequest(c, fmt.Errorf("unknown discount status %q", raw))
			return
		}
		discounts, err = api.service.ListDiscountsByStatus(c.Request.Context(), api.owner, status, now)
	} else {
		discounts, err = api.service.ListDiscounts(c.Request.Context(), api.owner)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discountmapper.FromDomainDiscounts(discounts, now))
}

// Get /api/discounts/active
func (api *DiscountAPI) ListActiveDiscounts(c *gin.Context) {
	now := api.now()
	discounts, err := api.service.ListActiveDiscounts(c.Request.Context(), api.owner, now)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discountmapper.FromDomainDiscounts(discounts, now))
}

// Get /api/discounts/:id
func (api *DiscountAPI) GetDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	discount, err := api.service.GetDiscount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discountmapper.FromDomainDiscount(discount, api.now()))
}

// Post /api/discounts
func (api *DiscountAPI) CreateDiscount(c *gin.Context) {
	var payload discountmapper.DiscountInput
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.CreateDiscount(c.Request.Context(), api.owner, discountmapper.ToDomainDiscount(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, discountmapper.FromDomainDiscount(saved, api.now()))
}

// Patch /api/discounts/:id
func (api *DiscountAPI) UpdateDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload discountmapper.DiscountUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateDiscount(c.Request.Context(), id, discountmapper.ToDiscountPatch(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discountmapper.FromDomainDiscount(updated, api.now()))
}

// Delete /api/discounts/:id
func (api *DiscountAPI) DeleteDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := api.service.DeleteDiscount(c.Request.Context(), id)
	respondDeleted(c, deleted, err, "discount")
}
