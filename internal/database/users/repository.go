// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetOrCreateByGoogleID(subject, username, email, picture)
package users

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a user by id.
func (r *Repository) GetByID(id string) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByGoogleID retrieves a user by their federated login subject.
func (r *Repository) GetByGoogleID(googleID string) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, "google_id = ?", googleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetOrCreateByGoogleID resolves the federated subject to a user,
// provisioning the account on first login. Identity fields are set
// once at creation and never updated here. A concurrent first login
// for the same subject is settled by the unique index on google_id.
func (r *Repository) GetOrCreateByGoogleID(googleID, username, email, picture string) (*entities.User, error) {
	user, err := r.GetByGoogleID(googleID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return nil, err
	}

	created := &entities.User{
		GoogleID: &googleID,
		Username: username,
		Email:    email,
		Picture:  picture,
	}
	createErr := r.db.Create(created).Error
	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		// Lost a race to a concurrent first login for the same subject.
		return r.GetByGoogleID(googleID)
	}
	if createErr != nil {
		return nil, fmt.Errorf("create user: %w", createErr)
	}
	return created, nil
}

// Create stores a user as given, keeping a caller-assigned id. Used
// for the fixed development account.
func (r *Repository) Create(user *entities.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// CreateLocal creates a password-authenticated account. The password
// hash is produced by the auth service, never here.
func (r *Repository) CreateLocal(username, email, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Count returns the number of registered users.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}
