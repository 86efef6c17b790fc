package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/shop-backoffice/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/shop-backoffice/internal/domains/users/ports"
)

// UserAPI serves seller accounts. "me" is the configured operating owner.
type UserAPI struct {
	service userports.Service
	owner   int64
}

func NewUserAPI(service userports.Service, owner int64) UserAPI {
	return UserAPI{service: service, owner: owner}
}

// Post /api/users
func (api *UserAPI) CreateUser(c *gin.Context) {
	var payload usermapper.UserInput
	if !bindJSON(c, &payload) {
		return
	}
	saved, err := api.service.CreateUser(c.Request.Context(), usermapper.ToDomainUser(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usermapper.FromDomainUser(saved))
}

// Get /api/users/me
func (api *UserAPI) GetCurrentUser(c *gin.Context) {
	user, err := api.service.GetUser(c.Request.Context(), api.owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}

// Patch /api/users/me
func (api *UserAPI) UpdateCurrentUser(c *gin.Context) {
	var payload usermapper.ProfileUpdate
	if !bindJSON(c, &payload) {
		return
	}
	updated, err := api.service.UpdateProfile(c.Request.Context(), api.owner, usermapper.ToProfileUpdate(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(updated))
}

// Get /api/users/by-username/:username
func (api *UserAPI) GetUserByUsername(c *gin.Context) {
	user, err := api.service.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usermapper.FromDomainUser(user))
}
