package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hangarapp/hangar/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeaders())

	// Apply CSRF protection if a secret is configured
	// CSRF must run before session so that session context is preserved
	if cfg.AuthConfig.SessionSecret != "" {
		if csrfMiddleware, err := auth.CSRFProtection(cfg.AuthConfig.SessionSecret, cfg.AuthConfig.SecureCookies); err == nil {
			router.Use(csrfMiddleware)
		}
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - every request runs as the default user
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Next()
		})
	}

	// Register auth routes when sessions are enabled
	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	bookmarksController := NewBookmarksController(cfg.BookmarkStore, cfg.Actions)
	neighborhoodController := NewNeighborhoodController(cfg.NeighborhoodStore, cfg.SocialStore, cfg.UserStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Hangar endpoints
	router.GET("/api/bookmarks", bookmarksController.ListBookmarks)
	router.POST("/api/bookmarks", bookmarksController.SaveLink)
	router.GET("/api/bookmarks/:id", bookmarksController.GetBookmark)
	router.DELETE("/api/bookmarks/:id", bookmarksController.DeleteBookmark)
	router.POST("/api/bookmarks/:id/tags", bookmarksController.AddTag)
	router.DELETE("/api/bookmarks/:id/tags/:tag", bookmarksController.RemoveTag)
	router.POST("/api/bookmarks/:id/open", bookmarksController.RecordOpen)
	router.POST("/api/bookmarks/:id/like", bookmarksController.LikeBookmark)

	// Neighborhood endpoints
	router.GET("/api/neighborhood", neighborhoodController.Feed)
	router.GET("/api/neighbors/:username", neighborhoodController.NeighborProfile)
	router.POST("/api/neighbors/:username/follow", neighborhoodController.Follow)
	router.DELETE("/api/neighbors/:username/follow", neighborhoodController.Unfollow)
	router.GET("/api/network", neighborhoodController.Network)

	return router
}
