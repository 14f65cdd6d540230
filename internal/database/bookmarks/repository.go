// Package bookmarks provides database operations for bookmark management.
//
// This package implements the BookmarkStore interface defined in
// internal/http/bookmarks.go and the stores consumed by internal/hangar.
//
// # Interface Implementation
//
//	var _ http.BookmarkStore = (*Repository)(nil)
//
// # Usage
//
//	repo := bookmarks.NewRepository(db)
//	bookmark, err := repo.Create(userID, url, title, description, image)
package bookmarks

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
)

// PageSize is the fixed page size for all bookmark listings.
const PageSize = 25

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new bookmark for the owner. The (owner, url) pair is
// unique per user: the application-level check is a fast-path rejection
// and the composite unique index settles any concurrent race, so both
// paths report database.ErrDuplicateBookmark.
func (r *Repository) Create(ownerID, url, title, description, image string) (*entities.Bookmark, error) {
	exists, err := ownerHasURL(r.db, ownerID, url)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, database.ErrDuplicateBookmark
	}

	bookmark := &entities.Bookmark{
		UserID:      ownerID,
		URL:         url,
		Title:       title,
		Description: description,
		Image:       image,
		Tags:        []string{},
	}
	if err := r.db.Create(bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, database.ErrDuplicateBookmark
		}
		return nil, fmt.Errorf("create bookmark: %w", err)
	}
	return bookmark, nil
}

// GetByID retrieves a bookmark by id.
func (r *Repository) GetByID(id string) (*entities.Bookmark, error) {
	var bookmark entities.Bookmark
	err := r.db.First(&bookmark, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, database.ErrBookmarkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark: %w", err)
	}
	return &bookmark, nil
}

// Delete removes a bookmark. Deleting a non-existent id is a no-op.
func (r *Repository) Delete(id string) error {
	return r.db.Delete(&entities.Bookmark{}, "id = ?", id).Error
}

// AddTag appends a tag to the bookmark's tag sequence. Matching is
// exact and case-sensitive; adding a tag that is already present is a
// no-op, so the sequence never holds duplicates.
func (r *Repository) AddTag(id, tag string) error {
	bookmark, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if bookmark.HasTag(tag) {
		return nil
	}
	bookmark.Tags = append(bookmark.Tags, tag)
	// Update via the schema field so the tags serializer runs; a raw
	// column update would write the Go slice verbatim.
	if err := r.db.Model(bookmark).Select("tags").Updates(bookmark).Error; err != nil {
		return fmt.Errorf("add tag: %w", err)
	}
	return nil
}

// RemoveTag removes all occurrences of the exact tag. Removing an
// absent tag is a no-op.
func (r *Repository) RemoveTag(id, tag string) error {
	bookmark, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if !bookmark.HasTag(tag) {
		return nil
	}
	kept := make([]string, 0, len(bookmark.Tags))
	for _, t := range bookmark.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	bookmark.Tags = kept
	if err := r.db.Model(bookmark).Select("tags").Updates(bookmark).Error; err != nil {
		return fmt.Errorf("remove tag: %w", err)
	}
	return nil
}

// IncrementOpened bumps the times_opened counter at the storage layer.
// Best-effort: a bookmark that no longer exists is silently ignored so
// callers never block user flow on it.
func (r *Repository) IncrementOpened(id string) error {
	return r.db.Model(&entities.Bookmark{}).
		Where("id = ?", id).
		UpdateColumn("times_opened", gorm.Expr("times_opened + ?", 1)).Error
}

// ListByOwner returns one page of the owner's bookmarks ordered by
// times_liked descending, insertion order as the stable tie-break
// (sqlite's monotonic rowid, since the uuid ids carry no order).
// page is zero-based; out-of-range pages return an empty slice.
func (r *Repository) ListByOwner(ownerID string, page int) ([]entities.Bookmark, error) {
	if page < 0 {
		return []entities.Bookmark{}, nil
	}
	bookmarks := []entities.Bookmark{}
	err := r.db.
		Where("user_id = ?", ownerID).
		Order("times_liked DESC, rowid ASC").
		Limit(PageSize).
		Offset(page * PageSize).
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// ListNeighborhood returns one page of bookmarks NOT owned by ownerID,
// with the owning user preloaded so callers can show the owner's
// username. Pagination and ordering rules match ListByOwner.
func (r *Repository) ListNeighborhood(ownerID string, page int) ([]entities.Bookmark, error) {
	if page < 0 {
		return []entities.Bookmark{}, nil
	}
	bookmarks := []entities.Bookmark{}
	err := r.db.
		Preload("User").
		Where("user_id <> ?", ownerID).
		Order("times_liked DESC, rowid ASC").
		Limit(PageSize).
		Offset(page * PageSize).
		Find(&bookmarks).Error
	if err != nil {
		return nil, fmt.Errorf("list neighborhood: %w", err)
	}
	return bookmarks, nil
}

// CopyToHangar copies a neighbor's bookmark into the viewer's own
// collection and increments the original's like counter. Both writes
// commit together or not at all.
//
// The copy gets a fresh id, zeroed counters and no tags. Fails with
// database.ErrBookmarkNotFound when the source is gone and with
// database.ErrDuplicateBookmark when the viewer already has the url;
// in either case the source's counter is untouched.
func (r *Repository) CopyToHangar(sourceID, viewerID string) (*entities.Bookmark, error) {
	var created *entities.Bookmark

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var source entities.Bookmark
		if err := tx.First(&source, "id = ?", sourceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return database.ErrBookmarkNotFound
			}
			return fmt.Errorf("load source bookmark: %w", err)
		}

		exists, err := ownerHasURL(tx, viewerID, source.URL)
		if err != nil {
			return err
		}
		if exists {
			return database.ErrDuplicateBookmark
		}

		created = &entities.Bookmark{
			UserID:      viewerID,
			URL:         source.URL,
			Title:       source.Title,
			Description: source.Description,
			Image:       source.Image,
			Tags:        []string{},
		}
		if err := tx.Create(created).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return database.ErrDuplicateBookmark
			}
			return fmt.Errorf("create copy: %w", err)
		}

		if err := tx.Model(&entities.Bookmark{}).
			Where("id = ?", source.ID).
			UpdateColumn("times_liked", gorm.Expr("times_liked + ?", 1)).Error; err != nil {
			return fmt.Errorf("increment like counter: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func ownerHasURL(db *gorm.DB, ownerID, url string) (bool, error) {
	var count int64
	err := db.Model(&entities.Bookmark{}).
		Where("user_id = ? AND url = ?", ownerID, url).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check existing bookmark: %w", err)
	}
	return count > 0, nil
}
