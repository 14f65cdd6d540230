package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hangarapp/hangar/internal/config"
	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/database/users"
	"github.com/hangarapp/hangar/internal/entities"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSetupAlreadyDone   = errors.New("setup has already been completed")
	ErrUsernameTaken      = errors.New("username is already taken")
)

// Service implements identity operations on top of the users
// repository. Session handling lives in SessionManager; this type only
// verifies and provisions accounts.
type Service struct {
	users      *users.Repository
	bcryptCost int
}

func NewService(userRepo *users.Repository, cfg config.Auth) *Service {
	return &Service{users: userRepo, bcryptCost: cfg.BcryptCost}
}

// Login verifies a local account's credentials.
func (s *Service) Login(username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(username))
	if errors.Is(err, database.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	// Federated accounts have no password.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	return user, nil
}

// LoginWithGoogle resolves a verified federated identity to a user,
// provisioning the account on first login.
func (s *Service) LoginWithGoogle(subject, username, email, picture string) (*entities.User, error) {
	user, err := s.users.GetOrCreateByGoogleID(subject, username, email, picture)
	if err != nil {
		return nil, fmt.Errorf("federated login: %w", err)
	}
	return user, nil
}

// HasUsers reports whether any account exists yet.
func (s *Service) HasUsers() (bool, error) {
	count, err := s.users.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Setup creates the first local account. Refused once any user exists.
func (s *Service) Setup(username, email, password string) (*entities.User, error) {
	exists, err := s.HasUsers()
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if exists {
		return nil, ErrSetupAlreadyDone
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateLocal(strings.TrimSpace(username), strings.TrimSpace(email), hash)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return user, nil
}
