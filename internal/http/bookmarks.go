package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
	"github.com/hangarapp/hangar/internal/hangar"
)

// BookmarkStore defines database operations for bookmark management.
type BookmarkStore interface {
	GetByID(id string) (*entities.Bookmark, error)
	Delete(id string) error
	AddTag(id, tag string) error
	RemoveTag(id, tag string) error
	ListByOwner(ownerID string, page int) ([]entities.Bookmark, error)
}

type BookmarksController struct {
	store   BookmarkStore
	actions *hangar.Actions
}

func NewBookmarksController(store BookmarkStore, actions *hangar.Actions) *BookmarksController {
	return &BookmarksController{store: store, actions: actions}
}

// requireOwnedBookmark loads the bookmark and verifies it belongs to
// the caller. Foreign bookmarks read as missing, never as forbidden.
func (bc *BookmarksController) requireOwnedBookmark(c *gin.Context, id string) (*entities.Bookmark, bool) {
	bookmark, err := bc.store.GetByID(id)
	if errors.Is(err, database.ErrBookmarkNotFound) {
		respondNotFound(c, "bookmark")
		return nil, false
	}
	if err != nil {
		respondInternalError(c, err, "load bookmark")
		return nil, false
	}
	if bookmark.UserID != GetUserID(c) {
		respondNotFound(c, "bookmark")
		return nil, false
	}
	return bookmark, true
}

// ListBookmarks returns one page of the caller's hangar.
// GET /api/bookmarks?page=0
func (bc *BookmarksController) ListBookmarks(c *gin.Context) {
	page := parsePageQuery(c)

	bookmarks, err := bc.store.ListByOwner(GetUserID(c), page)
	if err != nil {
		respondInternalError(c, err, "list bookmarks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": bookmarks,
		"page":      page,
	})
}

type saveLinkRequest struct {
	Link string `json:"link"`
}

// SaveLink scrapes the submitted link and stores it in the caller's
// hangar.
// POST /api/bookmarks
func (bc *BookmarksController) SaveLink(c *gin.Context) {
	var req saveLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	result := bc.actions.SaveLink(c.Request.Context(), GetUserID(c), req.Link)
	if !result.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": result.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     result.Message,
		"bookmark_id": result.BookmarkID,
	})
}

// GetBookmark returns a single bookmark owned by the caller.
// GET /api/bookmarks/:id
func (bc *BookmarksController) GetBookmark(c *gin.Context) {
	bookmark, ok := bc.requireOwnedBookmark(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bookmark)
}

// DeleteBookmark removes a bookmark from the caller's hangar.
// DELETE /api/bookmarks/:id
func (bc *BookmarksController) DeleteBookmark(c *gin.Context) {
	bookmark, ok := bc.requireOwnedBookmark(c, c.Param("id"))
	if !ok {
		return
	}

	if err := bc.store.Delete(bookmark.ID); err != nil {
		respondInternalError(c, err, "delete bookmark")
		return
	}
	respondSuccess(c, "bookmark deleted")
}

type tagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// AddTag appends a tag to a bookmark.
// POST /api/bookmarks/:id/tags
func (bc *BookmarksController) AddTag(c *gin.Context) {
	bookmark, ok := bc.requireOwnedBookmark(c, c.Param("id"))
	if !ok {
		return
	}

	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "tag is required")
		return
	}

	if err := bc.store.AddTag(bookmark.ID, req.Tag); err != nil {
		respondInternalError(c, err, "add tag")
		return
	}
	respondSuccess(c, "tag added")
}

// RemoveTag removes a tag from a bookmark. Removing an absent tag
// still succeeds.
// DELETE /api/bookmarks/:id/tags/:tag
func (bc *BookmarksController) RemoveTag(c *gin.Context) {
	bookmark, ok := bc.requireOwnedBookmark(c, c.Param("id"))
	if !ok {
		return
	}

	if err := bc.store.RemoveTag(bookmark.ID, c.Param("tag")); err != nil {
		respondInternalError(c, err, "remove tag")
		return
	}
	respondSuccess(c, "tag removed")
}

// RecordOpen registers a click-through on a bookmark. Best-effort:
// always succeeds from the caller's point of view.
// POST /api/bookmarks/:id/open
func (bc *BookmarksController) RecordOpen(c *gin.Context) {
	result := bc.actions.RecordOpen(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": result.OK})
}

// LikeBookmark copies a neighbor's bookmark into the caller's hangar
// and bumps the original's like counter.
// POST /api/bookmarks/:id/like
func (bc *BookmarksController) LikeBookmark(c *gin.Context) {
	result := bc.actions.AddToHangar(c.Param("id"), GetUserID(c))
	if !result.OK {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": result.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     result.Message,
		"bookmark_id": result.BookmarkID,
	})
}
