package handlers

import (
	"context"
	"net/http"

	"realestate_backend/internal/auth"
	"realestate_backend/internal/middleware"
	"realestate_backend/internal/models"
	"realestate_backend/internal/services"
	"realestate_backend/internal/services/dto"
	"realestate_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ViewingHandler struct {
	*BaseHandler
	viewingService  services.ViewingService
	propertyService services.PropertyService
}

func NewViewingHandler(base *BaseHandler, viewingService services.ViewingService, propertyService services.PropertyService) *ViewingHandler {
	return &ViewingHandler{
		BaseHandler:     base,
		viewingService:  viewingService,
		propertyService: propertyService,
	}
}

func (h *ViewingHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group := rg.Group("/viewings")
	group.Use(requireAuth)
	{
		group.POST("/property/:propertyId", middleware.RequirePolicy(auth.CanApply), h.Request)
		group.GET("/property/:propertyId", h.ListForProperty)
		group.GET("/my", h.ListMine)
		group.GET("/upcoming", h.ListUpcoming)
		group.GET("/requests", h.ListRequests)
		group.GET("/requests/pending", h.ListPendingRequests)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
		group.POST("/:id/complete", h.Complete)
		group.POST("/:id/cancel", h.Cancel)
	}
}

func (h *ViewingHandler) Request(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestViewingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	viewing, err := h.viewingService.Request(c.Request.Context(), h.GetDB(c), c.Param("propertyId"), userID, req.ViewingDate, req.Message)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewViewingResponse(viewing))
}

func (h *ViewingHandler) ListMine(c *gin.Context) {
	h.list(c, h.viewingService.GetUserViewings)
}

// ListForProperty is limited to the property's owner.
func (h *ViewingHandler) ListForProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	ctx, db, propertyID := c.Request.Context(), h.GetDB(c), c.Param("propertyId")

	owned, err := h.propertyService.IsOwner(ctx, db, propertyID, userID)
	if !h.Authorize(c, owned, err, apperrors.ErrNotPropertyOwner) {
		return
	}
	viewings, err := h.viewingService.GetPropertyViewings(ctx, db, propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"viewings": dto.NewViewingList(viewings),
		"total":    len(viewings),
	})
}

func (h *ViewingHandler) ListUpcoming(c *gin.Context) {
	h.list(c, h.viewingService.GetUpcoming)
}

func (h *ViewingHandler) ListRequests(c *gin.Context) {
	h.list(c, h.viewingService.GetOwnerRequests)
}

func (h *ViewingHandler) ListPendingRequests(c *gin.Context) {
	h.list(c, h.viewingService.GetPendingForOwner)
}

func (h *ViewingHandler) Approve(c *gin.Context) {
	h.ownerTransition(c, h.viewingService.Approve)
}

func (h *ViewingHandler) Reject(c *gin.Context) {
	h.ownerTransition(c, h.viewingService.Reject)
}

func (h *ViewingHandler) Complete(c *gin.Context) {
	h.ownerTransition(c, h.viewingService.Complete)
}

// Cancel is open to both the requester and the property owner.
func (h *ViewingHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	ctx, db, viewingID := c.Request.Context(), h.GetDB(c), c.Param("id")

	isRequester, err := h.viewingService.IsRequester(ctx, db, viewingID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	allowed := isRequester
	if !allowed {
		allowed, err = h.viewingService.IsPropertyOwner(ctx, db, viewingID, userID)
	}
	if !h.Authorize(c, allowed, err, apperrors.ErrNotRequester) {
		return
	}
	h.render(c, h.viewingService.Cancel, viewingID)
}

type viewingTransition func(ctx context.Context, db *gorm.DB, viewingID string) (*models.PropertyViewing, error)

func (h *ViewingHandler) ownerTransition(c *gin.Context, transition viewingTransition) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	viewingID := c.Param("id")
	isOwner, err := h.viewingService.IsPropertyOwner(c.Request.Context(), h.GetDB(c), viewingID, userID)
	if !h.Authorize(c, isOwner, err, apperrors.ErrNotPropertyOwner) {
		return
	}
	h.render(c, transition, viewingID)
}

func (h *ViewingHandler) render(c *gin.Context, transition viewingTransition, viewingID string) {
	viewing, err := transition(c.Request.Context(), h.GetDB(c), viewingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if viewing == nil {
		h.HandleServiceError(c, apperrors.ErrViewingNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewViewingResponse(viewing))
}

func (h *ViewingHandler) list(c *gin.Context, query func(context.Context, *gorm.DB, string) ([]models.PropertyViewing, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	viewings, err := query(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"viewings": dto.NewViewingList(viewings),
		"total":    len(viewings),
	})
}
