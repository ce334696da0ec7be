package handlers

import (
	"context"
	"net/http"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/middleware"
	"realestate_backend/internal/models"
	"realestate_backend/internal/repositories"
	"realestate_backend/internal/services"
	"realestate_backend/internal/services/dto"
	"realestate_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PropertyHandler struct {
	*BaseHandler
	propertyService services.PropertyService
}

func NewPropertyHandler(base *BaseHandler, propertyService services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		propertyService: propertyService,
	}
}

func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	public := rg.Group("/properties")
	{
		public.GET("", h.Search)
		public.GET("/search", h.Search)
		public.GET("/sale", h.ListForSale)
		public.GET("/rent", h.ListForRent)
		public.GET("/meta/enums", h.Enums)
		public.GET("/:id", h.GetProperty)
	}

	protected := rg.Group("/properties")
	protected.Use(requireAuth)
	{
		protected.POST("", middleware.RequirePolicy(auth.CanListProperties), h.CreateProperty)
		protected.GET("/my", h.ListMine)
		protected.PUT("/:id", h.UpdateProperty)
		protected.DELETE("/:id", h.DeleteProperty)
		protected.POST("/:id/mark-sold", h.MarkSold)
		protected.POST("/:id/mark-rented", h.MarkRented)
	}
}

// Search lists approved properties matching the optional query filters.
func (h *PropertyHandler) Search(c *gin.Context) {
	var req dto.PropertySearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	filter := repositories.PropertyFilter{
		City:         req.City,
		PropertyType: req.PropertyType,
		ListingType:  req.ListingType,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		MinBedrooms:  req.MinBedrooms,
	}
	properties, err := h.propertyService.Search(c.Request.Context(), h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *PropertyHandler) ListForSale(c *gin.Context) {
	properties, err := h.propertyService.GetForSale(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *PropertyHandler) ListForRent(c *gin.Context) {
	properties, err := h.propertyService.GetForRent(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *PropertyHandler) Enums(c *gin.Context) {
	c.JSON(http.StatusOK, dto.EnumsResponse{
		PropertyTypes:       models.AllPropertyTypes(),
		ListingTypes:        models.AllListingTypes(),
		PropertyStatuses:    models.AllPropertyStatuses(),
		ApplicationStatuses: models.AllApplicationStatuses(),
		ViewingStatuses:     models.AllViewingStatuses(),
		UserRoles:           models.AllUserRoles(),
	})
}

// GetProperty only exposes approved listings publicly.
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	property, err := h.propertyService.GetByID(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if property.Status != models.PropertyStatusApproved {
		h.HandleServiceError(c, apperrors.ErrPropertyNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(property))
}

func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewPropertyResponse(property))
}

func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	properties, err := h.propertyService.GetByOwner(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID := c.Param("id")
	if !h.authorizeOwner(c, propertyID) {
		return
	}

	var req dto.PropertyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), h.GetDB(c), propertyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(property))
}

func (h *PropertyHandler) DeleteProperty(c *gin.Context) {
	propertyID := c.Param("id")
	if !h.authorizeOwner(c, propertyID) {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), h.GetDB(c), propertyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	respondMessage(c, "Property deleted")
}

func (h *PropertyHandler) MarkSold(c *gin.Context) {
	h.changeStatus(c, h.propertyService.MarkAsSold)
}

func (h *PropertyHandler) MarkRented(c *gin.Context) {
	h.changeStatus(c, h.propertyService.MarkAsRented)
}

type propertyTransition func(ctx context.Context, db *gorm.DB, propertyID string) (*models.Property, error)

func (h *PropertyHandler) changeStatus(c *gin.Context, transition propertyTransition) {
	propertyID := c.Param("id")
	if !h.authorizeOwner(c, propertyID) {
		return
	}
	renderPropertyTransition(h.BaseHandler, c, transition, propertyID)
}

func (h *PropertyHandler) authorizeOwner(c *gin.Context, propertyID string) bool {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return false
	}
	owned, err := h.propertyService.IsOwner(c.Request.Context(), h.GetDB(c), propertyID, userID)
	return h.Authorize(c, owned, err, apperrors.ErrNotPropertyOwner)
}

// renderPropertyTransition answers 404 when the service skipped a missing property.
func renderPropertyTransition(h *BaseHandler, c *gin.Context, transition propertyTransition, propertyID string) {
	property, err := transition(c.Request.Context(), h.GetDB(c), propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if property == nil {
		h.HandleServiceError(c, apperrors.ErrPropertyNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyResponse(property))
}
