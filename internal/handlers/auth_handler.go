package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sakay_backend/internal/logger"
	"sakay_backend/internal/middleware"
	"sakay_backend/internal/services"
	"sakay_backend/internal/services/dto"
	"sakay_backend/internal/session"
	"sakay_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.POST("/resend-otp", h.ResendOTP)
		auth.POST("/signin", h.Signin)
		auth.POST("/signout", h.Signout)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.RequireUser())
	{
		protected.POST("/change-password", h.ChangePassword)
	}
}

// Signup starts the OTP flow. The session holds the pending action; nothing
// reaches the database yet.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	redirect, err := h.authService.Signup(h.GetDB(c), state, &req)
	if err != nil {
		// Email failure still keeps the pending action usable for resend.
		if apperrors.Is(err, apperrors.ErrEmailDeliveryFailed) {
			if saveErr := session.Save(c, state); saveErr != nil {
				logger.CtxWithError(c.Request.Context(), "Failed to save session", saveErr)
			}
		}
		h.HandleServiceError(c, err)
		return
	}

	if err := session.Save(c, state); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: redirect})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	redirect, err := h.authService.VerifyOTP(h.GetDB(c), state, req.Code)
	if err != nil {
		// Expiry and the verify-time uniqueness loss clear the pending
		// action; persist that so the session cannot retry a dead code.
		if state.Pending == nil {
			if saveErr := session.Save(c, state); saveErr != nil {
				logger.CtxWithError(c.Request.Context(), "Failed to save session", saveErr)
			}
		}
		h.HandleServiceError(c, err)
		return
	}

	if err := session.Save(c, state); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: redirect})
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	state := session.Load(c)
	if err := h.authService.ResendOTP(state); err != nil {
		if state.Pending == nil {
			if saveErr := session.Save(c, state); saveErr != nil {
				logger.CtxWithError(c.Request.Context(), "Failed to save session", saveErr)
			}
		}
		h.HandleServiceError(c, err)
		return
	}

	if err := session.Save(c, state); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "A new code has been sent"})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	redirect, err := h.authService.Signin(h.GetDB(c), state, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := session.Save(c, state); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: redirect})
}

// Signout is idempotent: an anonymous session signs out to the same place.
func (h *AuthHandler) Signout(c *gin.Context) {
	if err := session.Destroy(c); err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	c.JSON(http.StatusOK, dto.RedirectResponse{Redirect: "/signin"})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	state := session.Load(c)
	if err := h.authService.ChangePassword(h.GetDB(c), state, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password updated"})
}
