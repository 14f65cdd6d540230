// Package auth is the session/identity collaborator for Hangar: it
// authenticates requests and hands the core a trusted user id. The
// core packages (database, hangar, metadata) never authenticate.
//
// Two authentication modes:
//   - "none":  every request runs as a fixed development user
//   - "local": session cookies backed by the sqlite session store;
//     accounts are either password-based or provisioned on first
//     federated (Google) login
//
// # Configuration
//
//	AUTH_MODE=local
//	AUTH_SESSION_SECRET=<hex-32-bytes>  # Auto-generated if empty
//	AUTH_SESSION_LIFETIME=24h
//	AUTH_BCRYPT_COST=12
//	AUTH_SECURE_COOKIES=true
//
// # Usage
//
//	authService := auth.NewService(userRepo, cfg.Auth)
//	sessionManager, _ := auth.NewSessionManager(sqlDB, cfg.Auth)
//	router.Use(sessionManager.SessionLoadSave())
//	router.Use(auth.NewMiddleware(sessionManager, cfg.Auth).Handler())
//
// Extract the authenticated user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
