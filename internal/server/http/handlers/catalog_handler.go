package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// CatalogHandler serves occasions, bouquets and user profiles.
type CatalogHandler struct {
	facade CatalogFacade
}

func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Users handles GET /api/users.
func (h *CatalogHandler) Users(c *gin.Context) {
	users, err := h.facade.Users(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, dto.NewUserResponse(u))
	}
	c.JSON(http.StatusOK, response)
}

// Me handles GET /api/me.
func (h *CatalogHandler) Me(c *gin.Context) {
	user, err := h.facade.Me(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(*user))
}

// Occasions handles GET /api/occasions.
func (h *CatalogHandler) Occasions(c *gin.Context) {
	occasions, err := h.facade.Occasions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if occasions == nil {
		occasions = []model.Occasion{}
	}
	c.JSON(http.StatusOK, occasions)
}

// Bouquets handles GET /api/occasions/:id/bouquets.
func (h *CatalogHandler) Bouquets(c *gin.Context) {
	bouquets, err := h.facade.Bouquets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	writeBouquets(c, bouquets)
}

// Bouquet handles GET /api/bouquets/:id.
func (h *CatalogHandler) Bouquet(c *gin.Context) {
	bouquet, err := h.facade.Bouquet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bouquet)
}

// Featured handles GET /api/featured.
func (h *CatalogHandler) Featured(c *gin.Context) {
	bouquets, err := h.facade.Featured(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	writeBouquets(c, bouquets)
}

func writeBouquets(c *gin.Context, bouquets []model.Bouquet) {
	if bouquets == nil {
		bouquets = []model.Bouquet{}
	}
	c.JSON(http.StatusOK, bouquets)
}
