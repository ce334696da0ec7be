package routes

import (
	"net/http"

	"realestate_backend/internal/handlers"
	"realestate_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every handler under /api/v1. requireAuth guards the
// routes that need an authenticated caller.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	requireAuth gin.HandlerFunc,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, requireAuth)
		appHandlers.PropertyHandler.RegisterRoutes(api, requireAuth)
		appHandlers.ApplicationHandler.RegisterRoutes(api, requireAuth)
		appHandlers.ViewingHandler.RegisterRoutes(api, requireAuth)
		appHandlers.FavoriteHandler.RegisterRoutes(api, requireAuth)
		appHandlers.DashboardHandler.RegisterRoutes(api, requireAuth)
		appHandlers.AdminHandler.RegisterRoutes(api, requireAuth)
	}
	logger.Debug("HTTP routes registered", "count", len(ginRouter.Routes()))
}
