package handlers

import (
	"net/http"

	"realestate_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	*BaseHandler
	dashboardService services.DashboardService
}

func NewDashboardHandler(base *BaseHandler, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      base,
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	rg.GET("/dashboard", requireAuth, h.GetStats)
}

// GetStats returns the counters that apply to the caller's role.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, role, ok := h.GetCaller(c)
	if !ok {
		return
	}
	stats, err := h.dashboardService.Stats(c.Request.Context(), h.GetDB(c), userID, role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
