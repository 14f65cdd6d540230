package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller exposes the authentication endpoints.
type Controller struct {
	service  *Service
	sessions *SessionManager
}

func NewController(service *Service, sessions *SessionManager) *Controller {
	return &Controller{service: service, sessions: sessions}
}

// RegisterRoutes attaches the auth endpoints under /auth.
func (ctrl *Controller) RegisterRoutes(r gin.IRouter) {
	group := r.Group("/auth")
	group.POST("/setup", ctrl.Setup)
	group.POST("/login", ctrl.Login)
	group.POST("/login/google", ctrl.LoginWithGoogle)
	group.POST("/logout", ctrl.Logout)
	group.GET("/me", ctrl.Me)
}

type setupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Setup creates the first account and opens a session for it.
func (ctrl *Controller) Setup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}

	user, err := ctrl.service.Setup(req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, ErrSetupAlreadyDone):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		log.Printf("setup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "setup failed"})
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, user); err != nil {
		log.Printf("session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a local account.
func (ctrl *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := ctrl.service.Login(req.Username, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err != nil {
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, user); err != nil {
		log.Printf("session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

type googleLoginRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Picture  string `json:"picture"`
}

// LoginWithGoogle opens a session for a verified federated identity,
// provisioning the account on first login. Token verification happens
// upstream; this endpoint trusts the supplied claims.
func (ctrl *Controller) LoginWithGoogle(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject, username and email are required"})
		return
	}

	user, err := ctrl.service.LoginWithGoogle(req.Subject, req.Username, req.Email, req.Picture)
	if err != nil {
		log.Printf("federated login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := ctrl.sessions.CreateSession(c.Request, user); err != nil {
		log.Printf("session create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session creation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// Logout destroys the current session.
func (ctrl *Controller) Logout(c *gin.Context) {
	if err := ctrl.sessions.DestroySession(c.Request); err != nil {
		log.Printf("logout failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated identity.
func (ctrl *Controller) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":       GetUserID(c),
		"username": c.GetString(ContextKeyUsername),
	})
}
