package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay_backend/internal/middleware"
	"sakay_backend/internal/services"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", h.DashboardStats)
	}
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.adminService.DashboardStats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
