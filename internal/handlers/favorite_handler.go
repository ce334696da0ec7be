package handlers

import (
	"net/http"

	"realestate_backend/internal/services"
	"realestate_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     base,
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group := rg.Group("/favorites")
	group.Use(requireAuth)
	{
		group.GET("", h.List)
		group.POST("/:propertyId", h.Add)
		group.DELETE("/:propertyId", h.Remove)
		group.GET("/:propertyId/status", h.Status)
	}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	properties, err := h.favoriteService.ListForUser(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID := c.Param("propertyId")
	if _, err := h.favoriteService.Add(c.Request.Context(), h.GetDB(c), userID, propertyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"property_id": propertyID, "favorited": true})
}

// Remove succeeds even when the property was not favorited.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID := c.Param("propertyId")
	if err := h.favoriteService.Remove(c.Request.Context(), h.GetDB(c), userID, propertyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": propertyID, "favorited": false})
}

func (h *FavoriteHandler) Status(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	propertyID := c.Param("propertyId")
	favorited, err := h.favoriteService.IsFavorited(c.Request.Context(), h.GetDB(c), userID, propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_id": propertyID, "favorited": favorited})
}
