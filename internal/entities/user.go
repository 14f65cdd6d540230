package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity anchor. Identity fields (GoogleID, Email) are
// immutable after creation; the relationship projections are derived
// from the follows table and never stored on the user row itself.
type User struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	GoogleID *string `gorm:"uniqueIndex;size:128" json:"-"` // federated login subject, nil for local accounts
	Username string  `gorm:"uniqueIndex;size:100" json:"username"`
	Email    string  `gorm:"uniqueIndex;size:255" json:"email"`
	Picture  string  `gorm:"size:2048" json:"picture,omitempty"`

	// PasswordHash is set only for local accounts.
	PasswordHash string `gorm:"size:128" json:"-"`

	// Denormalized projections of the follow graph, populated on demand
	// from the follows table. Mutual inverses by construction.
	FollowingIDs  []string `gorm:"-" json:"following_ids,omitempty"`
	FollowedByIDs []string `gorm:"-" json:"followed_by_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
