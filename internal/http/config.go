package http

import (
	"github.com/hangarapp/hangar/internal/auth"
	"github.com/hangarapp/hangar/internal/config"
	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/hangar"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Actions  *hangar.Actions

	// Stores (interface-typed so tests can substitute fakes)
	BookmarkStore     BookmarkStore
	NeighborhoodStore NeighborhoodStore
	SocialStore       SocialStore
	UserStore         UserStore

	// Authentication (nil session manager / controller means mode "none")
	AuthConfig     config.Auth
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthController *auth.Controller

	// Application info
	Version string
}
