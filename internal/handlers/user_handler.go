package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay_backend/internal/middleware"
	"sakay_backend/internal/models"
	"sakay_backend/internal/repositories"
	"sakay_backend/internal/services"
	"sakay_backend/internal/services/dto"
	"sakay_backend/internal/session"
	"sakay_backend/pkg/apperrors"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/me")
	me.Use(middleware.RequireUser())
	{
		me.GET("", h.Me)
		me.PUT("/profile", h.UpdateProfile)
		me.PUT("/preferences", h.UpdatePreferences)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.PATCH("/:userId/status", h.SetStatus)
		admin.DELETE("/:userId", h.Delete)
	}
}

// --- Self-service ---

func (h *UserHandler) Me(c *gin.Context) {
	state := session.Load(c)
	user, err := h.userService.GetByEmail(h.GetDB(c), state.UserEmail)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile rebinds the session on success since the email or username
// may have changed.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	user, err := h.userService.UpdateProfile(h.GetDB(c), state.UserEmail, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	state.UserEmail = user.Email
	state.Username = user.Username
	if err := session.Save(c, state); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	if err := h.userService.UpdatePreferences(h.GetDB(c), state.UserEmail, req.Preferences); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Preferences saved"})
}

// --- Admin ---

func (h *UserHandler) List(c *gin.Context) {
	filter := repositories.UserFilter{
		Search: c.Query("search"),
		Status: models.UserStatus(c.Query("status")),
	}
	users, err := h.userService.List(h.GetDB(c), filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.AdminCreate(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) SetStatus(c *gin.Context) {
	var req dto.SetUserStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.SetStatus(h.GetDB(c), c.Param("userId"), models.UserStatus(req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Status updated"})
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(h.GetDB(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}
