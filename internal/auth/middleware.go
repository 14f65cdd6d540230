package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hangarapp/hangar/internal/config"
)

// DefaultUserID is the identity every request runs as in mode "none".
const DefaultUserID = "local-user"

// Gin context keys set by the middleware.
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// publicPaths are reachable without a session.
var publicPaths = []string{
	"/health",
	"/ping",
	"/auth/login",
	"/auth/setup",
}

// Middleware guards routes behind an authenticated session.
type Middleware struct {
	sessions *SessionManager
	mode     config.AuthMode
}

func NewMiddleware(sessions *SessionManager, cfg config.Auth) *Middleware {
	return &Middleware{sessions: sessions, mode: cfg.Mode}
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// Handler resolves the request identity and rejects anonymous access
// to protected routes.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.mode == config.AuthModeNone {
			c.Set(ContextKeyUserID, DefaultUserID)
			c.Next()
			return
		}

		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		userID := m.sessions.SessionUserID(c.Request)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyUsername, m.sessions.GetString(c.Request.Context(), SessionKeyUsername))
		c.Next()
	}
}

// GetUserID returns the authenticated user id for the request, or ""
// on public routes.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}
