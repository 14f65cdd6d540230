package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hangarapp/hangar/internal/auth"
	"github.com/hangarapp/hangar/internal/config"
	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/database/bookmarks"
	"github.com/hangarapp/hangar/internal/database/social"
	"github.com/hangarapp/hangar/internal/database/users"
	"github.com/hangarapp/hangar/internal/entities"
	"github.com/hangarapp/hangar/internal/hangar"
	http_controllers "github.com/hangarapp/hangar/internal/http"
	"github.com/hangarapp/hangar/internal/metadata"
)

func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Hangar v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Repositories
	bookmarkRepo := bookmarks.NewRepository(db.DB)
	socialRepo := social.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)

	// Metadata scraper + action facade
	scraper := metadata.NewScraper(cfg.Scraper)
	actions := hangar.NewActions(bookmarkRepo, scraper)

	// Initialize authentication if enabled
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var authController *auth.Controller

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local")

		if cfg.Auth.SessionSecret == "" {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate session secret: %v", err)
			}
			cfg.Auth.SessionSecret = secret
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}

		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authService := auth.NewService(userRepo, cfg.Auth)
		authMiddleware = auth.NewMiddleware(sessionManager, cfg.Auth)
		authController = auth.NewController(authService, sessionManager)

		hasUsers, _ := authService.HasUsers()
		if !hasUsers {
			log.Printf("No users found. POST /auth/setup to create the first account.")
		}
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
		if err := ensureDefaultUser(userRepo); err != nil {
			log.Fatalf("Failed to provision default user: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:          db,
		Actions:           actions,
		BookmarkStore:     bookmarkRepo,
		NeighborhoodStore: bookmarkRepo,
		SocialStore:       socialRepo,
		UserStore:         userRepo,
		AuthConfig:        cfg.Auth,
		SessionManager:    sessionManager,
		AuthMiddleware:    authMiddleware,
		AuthController:    authController,
		Version:           version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}

// ensureDefaultUser creates the fixed account every request runs as in
// mode "none".
func ensureDefaultUser(userRepo *users.Repository) error {
	_, err := userRepo.GetByID(auth.DefaultUserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return err
	}

	user := &entities.User{
		ID:       auth.DefaultUserID,
		Username: "local",
		Email:    "local@localhost",
	}
	return userRepo.Create(user)
}
