package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay_backend/internal/middleware"
	"sakay_backend/internal/services"
	"sakay_backend/internal/services/dto"
)

type RouteHandler struct {
	*BaseHandler
	routeService services.RouteService
}

func NewRouteHandler(base *BaseHandler, routeService services.RouteService) *RouteHandler {
	return &RouteHandler{
		BaseHandler:  base,
		routeService: routeService,
	}
}

func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Read side is public: the destination page works without an account.
	public := r.Group("/routes")
	{
		public.GET("", h.List)
		public.GET("/:routeId", h.Get)
	}

	admin := r.Group("/admin/routes")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.PUT("/:routeId", h.Update)
		admin.DELETE("/:routeId", h.Delete)
	}
}

func (h *RouteHandler) Create(c *gin.Context) {
	var req dto.RouteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	route, err := h.routeService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *RouteHandler) Update(c *gin.Context) {
	var req dto.RouteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	route, err := h.routeService.Update(h.GetDB(c), c.Param("routeId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.routeService.Delete(h.GetDB(c), c.Param("routeId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Route deleted"})
}

func (h *RouteHandler) Get(c *gin.Context) {
	route, err := h.routeService.Get(h.GetDB(c), c.Param("routeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// List doubles as endpoint search when both ?start= and ?end= are present.
func (h *RouteHandler) List(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")

	if start != "" && end != "" {
		routes, err := h.routeService.FindByEndpoints(h.GetDB(c), start, end)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, routes)
		return
	}

	routes, err := h.routeService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}
