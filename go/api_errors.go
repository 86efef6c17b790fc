package backofficeserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/Apurer/shop-backoffice/internal/domains/catalog/application"
	catalogports "github.com/Apurer/shop-backoffice/internal/domains/catalog/ports"
	discountapp "github.com/Apurer/shop-backoffice/internal/domains/discounts/application"
	discountports "github.com/Apurer/shop-backoffice/internal/domains/discounts/ports"
	orderapp "github.com/Apurer/shop-backoffice/internal/domains/orders/application"
	orderports "github.com/Apurer/shop-backoffice/internal/domains/orders/ports"
	userapp "github.com/Apurer/shop-backoffice/internal/domains/users/application"
	userports "github.com/Apurer/shop-backoffice/internal/domains/users/ports"
	apierrors "github.com/Apurer/shop-backoffice/internal/shared/errors"
	"github.com/Apurer/shop-backoffice/internal/shared/validation"
)

var responder = apierrors.NewChainedResponder("",
	mapValidation,
	apierrors.Sentinel(catalogapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Sentinel(discountapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Sentinel(orderapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Sentinel(userapp.ErrInvalidInput, apierrors.ErrValidation),
	apierrors.Sentinel(catalogports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(discountports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(orderports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(userports.ErrNotFound, apierrors.ErrNotFound),
	apierrors.Sentinel(orderports.ErrIdempotencyConflict, apierrors.ErrConflict),
	apierrors.Sentinel(userports.ErrUsernameTaken, apierrors.ErrConflict),
)

// mapValidation surfaces field-level messages under extensions.fields.
func mapValidation(err error) (apierrors.ProblemDetail, bool) {
	fields, ok := validation.Fields(err)
	if !ok {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewValidationProblem(err.Error(), fields), true
}

// respondError writes err as an RFC 7807 problem.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
}

func respondNotFound(c *gin.Context, detail string) {
	responder.Respond(c, apierrors.ErrNotFound.WithDetail(detail))
}

// bindJSON decodes the request body into dst, answering 400 when it is malformed.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, err)
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, errors.New(name+" must be an integer"))
		return 0, false
	}
	return id, true
}

// respondDeleted answers 204 when something was removed and a 404 problem otherwise.
func respondDeleted(c *gin.Context, deleted bool, err error, resource string) {
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondNotFound(c, resource+" not found")
		return
	}
	c.Status(http.StatusNoContent)
}
