package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay_backend/internal/middleware"
	"sakay_backend/internal/services"
	"sakay_backend/internal/services/dto"
	"sakay_backend/internal/session"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{
		BaseHandler:   base,
		searchService: searchService,
	}
}

func (h *SearchHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/searches", h.Record)

	admin := r.Group("/admin/searches")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/stats", h.Stats)
	}
}

// Record logs one destination lookup. Anonymous searches count toward the
// stats; only signed-in users get a trip counter bump.
func (h *SearchHandler) Record(c *gin.Context) {
	var req dto.RecordSearchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	if err := h.searchService.Record(h.GetDB(c), state.UserEmail, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Search recorded"})
}

func (h *SearchHandler) Stats(c *gin.Context) {
	entries, err := h.searchService.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
