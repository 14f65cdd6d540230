// Package social provides database operations for the follow graph.
//
// The follow relationship is a set of directed edges keyed by
// (follower_id, target_id) with a composite unique index, so Follow is
// idempotent and the per-user projections (FollowingIDs, FollowerIDs)
// are exact mutual inverses at every observation point.
//
// # Interface Implementation
//
//	var _ http.SocialStore = (*Repository)(nil)
//
// # Usage
//
//	repo := social.NewRepository(db)
//	following, err := repo.IsFollowing(viewerID, neighborID)
package social

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
)

// Repository handles all follow-graph database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new social graph repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// IsFollowing reports whether follower currently follows target.
// Fails with database.ErrUserNotFound when the follower id does not
// resolve to an existing user.
func (r *Repository) IsFollowing(followerID, targetID string) (bool, error) {
	if err := requireUser(r.db, followerID); err != nil {
		return false, err
	}

	var count int64
	err := r.db.Model(&entities.Follow{}).
		Where("follower_id = ? AND target_id = ?", followerID, targetID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow edge: %w", err)
	}
	return count > 0, nil
}

// Follow adds the follower -> target edge. Both endpoints must resolve
// to existing users or nothing is committed. Following an already
// followed user is a no-op; the unique index settles concurrent races.
func (r *Repository) Follow(followerID, targetID string) error {
	if followerID == targetID {
		return database.ErrSelfFollow
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, followerID); err != nil {
			return err
		}
		if err := requireUser(tx, targetID); err != nil {
			return err
		}

		edge := entities.Follow{FollowerID: followerID, TargetID: targetID}
		err := tx.Where("follower_id = ? AND target_id = ?", followerID, targetID).
			FirstOrCreate(&edge).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race to an identical Follow call; the edge exists.
			return nil
		}
		if err != nil {
			return fmt.Errorf("create follow edge: %w", err)
		}
		return nil
	})
}

// Unfollow removes the follower -> target edge. Idempotent: removing an
// absent edge succeeds. Both endpoints must still resolve to users.
func (r *Repository) Unfollow(followerID, targetID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, followerID); err != nil {
			return err
		}
		if err := requireUser(tx, targetID); err != nil {
			return err
		}

		err := tx.Delete(&entities.Follow{}, "follower_id = ? AND target_id = ?", followerID, targetID).Error
		if err != nil {
			return fmt.Errorf("delete follow edge: %w", err)
		}
		return nil
	})
}

// FollowingIDs returns the ids of users this user follows, oldest
// edge first.
func (r *Repository) FollowingIDs(userID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&entities.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return ids, nil
}

// FollowerIDs returns the ids of users following this user, oldest
// edge first.
func (r *Repository) FollowerIDs(userID string) ([]string, error) {
	ids := []string{}
	err := r.db.Model(&entities.Follow{}).
		Where("target_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return ids, nil
}

func requireUser(db *gorm.DB, id string) error {
	var count int64
	err := db.Model(&entities.User{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return fmt.Errorf("resolve user: %w", err)
	}
	if count == 0 {
		return database.ErrUserNotFound
	}
	return nil
}
