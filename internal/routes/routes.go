package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay_backend/internal/handlers"
)

// RegisterRoutes registers the whole HTTP API under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.ReportHandler.RegisterRoutes(api)
		appHandlers.RouteHandler.RegisterRoutes(api)
		appHandlers.SearchHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}
}
