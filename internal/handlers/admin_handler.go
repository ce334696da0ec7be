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

type AdminHandler struct {
	*BaseHandler
	propertyService    services.PropertyService
	userService        services.UserService
	applicationService services.ApplicationService
	viewingService     services.ViewingService
	dashboardService   services.DashboardService
}

func NewAdminHandler(
	base *BaseHandler,
	propertyService services.PropertyService,
	userService services.UserService,
	applicationService services.ApplicationService,
	viewingService services.ViewingService,
	dashboardService services.DashboardService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        base,
		propertyService:    propertyService,
		userService:        userService,
		applicationService: applicationService,
		viewingService:     viewingService,
		dashboardService:   dashboardService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(requireAuth, middleware.RequirePolicy(auth.IsAdmin))
	{
		admin.GET("/dashboard", h.Dashboard)

		admin.GET("/properties", h.ListProperties)
		admin.GET("/properties/pending", h.ListPendingProperties)
		admin.POST("/properties/:id/approve", h.ApproveProperty)
		admin.POST("/properties/:id/reject", h.RejectProperty)

		admin.GET("/users", h.ListUsers)
		admin.POST("/users/:id/activate", h.ActivateUser)
		admin.POST("/users/:id/deactivate", h.DeactivateUser)

		admin.GET("/applications", h.ListApplications)
		admin.GET("/viewings", h.ListViewings)
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.AdminStats(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListProperties accepts an optional ?status= filter.
func (h *AdminHandler) ListProperties(c *gin.Context) {
	ctx, db := c.Request.Context(), h.GetDB(c)

	var (
		properties []models.Property
		err        error
	)
	if raw := c.Query("status"); raw != "" {
		status := models.PropertyStatus(raw)
		if !status.IsValid() {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Unknown property status: "+raw))
			return
		}
		properties, err = h.propertyService.GetByStatus(ctx, db, status)
	} else {
		properties, err = h.propertyService.GetAll(ctx, db)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *AdminHandler) ListPendingProperties(c *gin.Context) {
	properties, err := h.propertyService.GetPending(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPropertyListResponse(properties))
}

func (h *AdminHandler) ApproveProperty(c *gin.Context) {
	renderPropertyTransition(h.BaseHandler, c, h.propertyService.Approve, c.Param("id"))
}

func (h *AdminHandler) RejectProperty(c *gin.Context) {
	renderPropertyTransition(h.BaseHandler, c, h.propertyService.Reject, c.Param("id"))
}

// ListUsers accepts an optional ?role= filter.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	ctx, db := c.Request.Context(), h.GetDB(c)

	var (
		users []models.User
		err   error
	)
	if raw := c.Query("role"); raw != "" {
		role := models.UserRole(raw)
		if !role.IsValid() {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Unknown role: "+raw))
			return
		}
		users, err = h.userService.GetByRole(ctx, db, role)
	} else {
		users, err = h.userService.GetAll(ctx, db)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users": dto.NewUserList(users),
		"total": len(users),
	})
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setUserActive(c, h.userService.Activate)
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	h.setUserActive(c, h.userService.Deactivate)
}

func (h *AdminHandler) setUserActive(c *gin.Context, change func(context.Context, *gorm.DB, string) (*models.User, error)) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	userID := c.Param("id")
	if userID == adminID {
		h.HandleServiceError(c, apperrors.ErrCannotModifySelf)
		return
	}

	user, err := change(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if user == nil {
		h.HandleServiceError(c, apperrors.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ListApplications accepts an optional ?status= filter.
func (h *AdminHandler) ListApplications(c *gin.Context) {
	ctx, db := c.Request.Context(), h.GetDB(c)

	var (
		applications []models.Application
		err          error
	)
	if raw := c.Query("status"); raw != "" {
		status := models.ApplicationStatus(raw)
		if !status.IsValid() {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Unknown application status: "+raw))
			return
		}
		applications, err = h.applicationService.GetByStatus(ctx, db, status)
	} else {
		applications, err = h.applicationService.GetAll(ctx, db)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": dto.NewApplicationList(applications),
		"total":        len(applications),
	})
}

// ListViewings accepts an optional ?status= filter.
func (h *AdminHandler) ListViewings(c *gin.Context) {
	ctx, db := c.Request.Context(), h.GetDB(c)

	var (
		viewings []models.PropertyViewing
		err      error
	)
	if raw := c.Query("status"); raw != "" {
		status := models.ViewingStatus(raw)
		if !status.IsValid() {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Unknown viewing status: "+raw))
			return
		}
		viewings, err = h.viewingService.GetByStatus(ctx, db, status)
	} else {
		viewings, err = h.viewingService.GetAll(ctx, db)
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"viewings": dto.NewViewingList(viewings),
		"total":    len(viewings),
	})
}
