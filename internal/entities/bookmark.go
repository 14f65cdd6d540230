package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark is a saved link owned by exactly one user. The composite
// unique index on (user_id, url) is the dedup guarantee: application
// checks are only a fast-path rejection, the index wins any race.
type Bookmark struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	UserID      string `gorm:"size:36;index;uniqueIndex:idx_bookmarks_owner_url" json:"user_id"`
	URL         string `gorm:"size:2048;uniqueIndex:idx_bookmarks_owner_url" json:"url"`
	Title       string `gorm:"size:512" json:"title"`
	Description string `gorm:"size:2048" json:"description,omitempty"`
	Image       string `gorm:"size:2048" json:"image,omitempty"`

	// Tags keep insertion order; duplicates are forbidden (enforced in
	// the bookmarks repository, exact case-sensitive match).
	Tags []string `gorm:"serializer:json;type:text" json:"tags"`

	// Monotonic counters, incremented at the storage layer only.
	TimesOpened int `gorm:"not null;default:0" json:"times_opened"`
	TimesLiked  int `gorm:"not null;default:0" json:"times_liked"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (Bookmark) TableName() string {
	return "bookmarks"
}

// HasTag reports whether the exact tag is already present.
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
