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

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
	propertyService    services.PropertyService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService, propertyService services.PropertyService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
		propertyService:    propertyService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	group := rg.Group("/applications")
	group.Use(requireAuth)
	{
		group.POST("/property/:propertyId", middleware.RequirePolicy(auth.CanApply), h.Submit)
		group.GET("/property/:propertyId", h.ListForProperty)
		group.GET("/my", h.ListMine)
		group.GET("/received", h.ListReceived)
		group.GET("/received/pending", h.ListPendingReceived)
		group.GET("/:id", h.GetApplication)
		group.POST("/:id/approve", h.Approve)
		group.POST("/:id/reject", h.Reject)
		group.POST("/:id/review", h.MarkUnderReview)
		group.POST("/:id/withdraw", h.Withdraw)
	}
}

func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// The body is optional; a bare POST submits without a message.
	var req dto.SubmitApplicationRequest
	if c.Request.ContentLength != 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.Submit(c.Request.Context(), h.GetDB(c), c.Param("propertyId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewApplicationResponse(application))
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	h.list(c, h.applicationService.GetUserApplications)
}

func (h *ApplicationHandler) ListReceived(c *gin.Context) {
	h.list(c, h.applicationService.GetOwnerApplications)
}

// ListForProperty is limited to the property's owner.
func (h *ApplicationHandler) ListForProperty(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	ctx, db, propertyID := c.Request.Context(), h.GetDB(c), c.Param("propertyId")

	owned, err := h.propertyService.IsOwner(ctx, db, propertyID, userID)
	if !h.Authorize(c, owned, err, apperrors.ErrNotPropertyOwner) {
		return
	}
	applications, err := h.applicationService.GetPropertyApplications(ctx, db, propertyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": dto.NewApplicationList(applications),
		"total":        len(applications),
	})
}

func (h *ApplicationHandler) ListPendingReceived(c *gin.Context) {
	h.list(c, h.applicationService.GetPendingForOwner)
}

// GetApplication is visible to the applicant, the property owner and admins.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	userID, role, ok := h.GetCaller(c)
	if !ok {
		return
	}

	ctx, db := c.Request.Context(), h.GetDB(c)
	application, err := h.applicationService.GetByID(ctx, db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if !auth.IsAdmin(role) {
		allowed, err := h.applicationService.IsApplicant(ctx, db, application.ID, userID)
		if err == nil && !allowed {
			allowed, err = h.applicationService.IsPropertyOwner(ctx, db, application.ID, userID)
		}
		if !h.Authorize(c, allowed, err, apperrors.ErrInsufficientPermissions) {
			return
		}
	}
	c.JSON(http.StatusOK, dto.NewApplicationResponse(application))
}

func (h *ApplicationHandler) Approve(c *gin.Context) {
	h.ownerTransition(c, h.applicationService.Approve)
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.ownerTransition(c, h.applicationService.Reject)
}

func (h *ApplicationHandler) MarkUnderReview(c *gin.Context) {
	h.ownerTransition(c, h.applicationService.MarkUnderReview)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applicationID := c.Param("id")
	isApplicant, err := h.applicationService.IsApplicant(c.Request.Context(), h.GetDB(c), applicationID, userID)
	if !h.Authorize(c, isApplicant, err, apperrors.ErrNotApplicant) {
		return
	}
	h.render(c, h.applicationService.Withdraw, applicationID)
}

type applicationTransition func(ctx context.Context, db *gorm.DB, applicationID string) (*models.Application, error)

func (h *ApplicationHandler) ownerTransition(c *gin.Context, transition applicationTransition) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applicationID := c.Param("id")
	isOwner, err := h.applicationService.IsPropertyOwner(c.Request.Context(), h.GetDB(c), applicationID, userID)
	if !h.Authorize(c, isOwner, err, apperrors.ErrNotPropertyOwner) {
		return
	}
	h.render(c, transition, applicationID)
}

func (h *ApplicationHandler) render(c *gin.Context, transition applicationTransition, applicationID string) {
	application, err := transition(c.Request.Context(), h.GetDB(c), applicationID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if application == nil {
		h.HandleServiceError(c, apperrors.ErrApplicationNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewApplicationResponse(application))
}

func (h *ApplicationHandler) list(c *gin.Context, query func(context.Context, *gorm.DB, string) ([]models.Application, error)) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	applications, err := query(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": dto.NewApplicationList(applications),
		"total":        len(applications),
	})
}
