package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"

	"sakay_backend/internal/config"
	"sakay_backend/internal/session"
	"sakay_backend/pkg/apperrors"
)

// SessionMiddleware wires the cookie-keyed server-side session store. State
// lives on the server; the browser only ever holds an opaque session id.
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	store := memstore.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAgeSec,
		HttpOnly: true,
	})
	return sessions.Sessions(cfg.Session.Name, store)
}

// RequireUser rejects requests whose session is not authenticated.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.Load(c)
		if !state.Authenticated() {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Sign in required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects sessions whose bound user does not carry the admin
// role. The role comes from the user row at sign-in time, never from the
// email address.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := session.Load(c)
		if !state.Authenticated() {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Sign in required"))
			c.Abort()
			return
		}
		if !state.IsAdmin() {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}
