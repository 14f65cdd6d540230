// Package hangar orchestrates bookmark intents ("save this link",
// "record an open", "copy-and-like") over the stores and the metadata
// scraper, normalizing every outcome into a uniform envelope for the
// presentation layer. It holds no state of its own and no internal
// error ever crosses it uninterpreted.
package hangar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
	"github.com/hangarapp/hangar/internal/metadata"
)

// BookmarkStore is the slice of the bookmarks repository the façade
// needs.
type BookmarkStore interface {
	Create(ownerID, url, title, description, image string) (*entities.Bookmark, error)
	IncrementOpened(id string) error
	CopyToHangar(sourceID, viewerID string) (*entities.Bookmark, error)
}

// MetadataFetcher resolves a raw link into page metadata.
type MetadataFetcher interface {
	Fetch(ctx context.Context, link string) (*metadata.PageMetadata, error)
}

// ActionResult is the single outcome shape handed to presentation
// layers: a flag and a user-facing message, nothing else.
type ActionResult struct {
	OK         bool   `json:"ok"`
	Message    string `json:"message"`
	BookmarkID string `json:"bookmark_id,omitempty"`
}

// Actions translates user intents into store and scraper calls.
type Actions struct {
	store   BookmarkStore
	fetcher MetadataFetcher
}

// NewActions creates the action façade.
func NewActions(store BookmarkStore, fetcher MetadataFetcher) *Actions {
	return &Actions{store: store, fetcher: fetcher}
}

// RecordOpen bumps a bookmark's open counter. Best-effort: the user's
// navigation must never block on it, so storage faults are logged and
// swallowed.
func (a *Actions) RecordOpen(bookmarkID string) ActionResult {
	if err := a.store.IncrementOpened(bookmarkID); err != nil {
		log.Printf("record open for bookmark %s: %v", bookmarkID, err)
	}
	return ActionResult{OK: true}
}

// AddToHangar copies a neighbor's bookmark into the viewer's own
// collection, liking the original.
func (a *Actions) AddToHangar(bookmarkID, viewerID string) ActionResult {
	copied, err := a.store.CopyToHangar(bookmarkID, viewerID)
	switch {
	case err == nil:
		return ActionResult{
			OK:         true,
			Message:    fmt.Sprintf("%s added", copied.Title),
			BookmarkID: copied.ID,
		}
	case errors.Is(err, database.ErrDuplicateBookmark):
		return ActionResult{Message: "Bookmark already added"}
	default:
		log.Printf("add bookmark %s to hangar of %s: %v", bookmarkID, viewerID, err)
		return ActionResult{Message: "Something went wrong"}
	}
}

// SaveLink scrapes a submitted link and stores it as a new bookmark
// for the owner. The bookmark is keyed by the canonical URL (after
// redirects), so two short links landing on the same page dedupe. No
// partial bookmark survives a scrape failure.
func (a *Actions) SaveLink(ctx context.Context, ownerID, link string) ActionResult {
	link = strings.TrimSpace(link)
	if link == "" {
		return ActionResult{Message: "A link is required"}
	}

	page, err := a.fetcher.Fetch(ctx, link)
	if err != nil {
		// Both bad links and fetch timeouts read as "invalid" to the
		// user; the distinction only matters in the logs.
		log.Printf("scrape %s: %v", link, err)
		return ActionResult{Message: "Invalid link provided"}
	}

	created, err := a.store.Create(ownerID, page.CanonicalURL, page.Title, page.Description, page.Image)
	switch {
	case err == nil:
		return ActionResult{
			OK:         true,
			Message:    fmt.Sprintf("%s added", created.Title),
			BookmarkID: created.ID,
		}
	case errors.Is(err, database.ErrDuplicateBookmark):
		return ActionResult{Message: "Link already included in your Hangar"}
	default:
		log.Printf("save link %s for %s: %v", link, ownerID, err)
		return ActionResult{Message: "Something is wrong with the link provided"}
	}
}
