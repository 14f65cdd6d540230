package hangar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
	"github.com/hangarapp/hangar/internal/metadata"
)

type fakeStore struct {
	createErr    error
	copyErr      error
	incErr       error
	lastCreated  *entities.Bookmark
	incrementIDs []string
}

func (f *fakeStore) Create(ownerID, url, title, description, image string) (*entities.Bookmark, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastCreated = &entities.Bookmark{
		ID:          "new-id",
		UserID:      ownerID,
		URL:         url,
		Title:       title,
		Description: description,
		Image:       image,
	}
	return f.lastCreated, nil
}

func (f *fakeStore) IncrementOpened(id string) error {
	f.incrementIDs = append(f.incrementIDs, id)
	return f.incErr
}

func (f *fakeStore) CopyToHangar(sourceID, viewerID string) (*entities.Bookmark, error) {
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	return &entities.Bookmark{ID: "copy-id", UserID: viewerID, Title: "Example"}, nil
}

type fakeFetcher struct {
	page *metadata.PageMetadata
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, link string) (*metadata.PageMetadata, error) {
	return f.page, f.err
}

func TestRecordOpen(t *testing.T) {
	store := &fakeStore{}
	actions := NewActions(store, &fakeFetcher{})

	result := actions.RecordOpen("bm-1")
	assert.True(t, result.OK)
	assert.Equal(t, []string{"bm-1"}, store.incrementIDs)
}

func TestRecordOpen_BestEffort(t *testing.T) {
	store := &fakeStore{incErr: errors.New("db gone")}
	actions := NewActions(store, &fakeFetcher{})

	// Storage faults never surface to the user here.
	result := actions.RecordOpen("bm-1")
	assert.True(t, result.OK)
}

func TestAddToHangar_Success(t *testing.T) {
	actions := NewActions(&fakeStore{}, &fakeFetcher{})

	result := actions.AddToHangar("bm-1", "viewer")
	assert.True(t, result.OK)
	assert.Equal(t, "Example added", result.Message)
	assert.Equal(t, "copy-id", result.BookmarkID)
}

func TestAddToHangar_Duplicate(t *testing.T) {
	actions := NewActions(&fakeStore{copyErr: database.ErrDuplicateBookmark}, &fakeFetcher{})

	result := actions.AddToHangar("bm-1", "viewer")
	assert.False(t, result.OK)
	assert.Equal(t, "Bookmark already added", result.Message)
}

func TestAddToHangar_SourceMissing(t *testing.T) {
	actions := NewActions(&fakeStore{copyErr: database.ErrBookmarkNotFound}, &fakeFetcher{})

	result := actions.AddToHangar("bm-1", "viewer")
	assert.False(t, result.OK)
	assert.Equal(t, "Something went wrong", result.Message)
}

func TestSaveLink_Success(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{page: &metadata.PageMetadata{
		Title:        "Example",
		Description:  "A demo page",
		Image:        "https://example.com/og.png",
		CanonicalURL: "https://example.com/final",
	}}
	actions := NewActions(store, fetcher)

	result := actions.SaveLink(context.Background(), "owner", "https://example.com/short")
	assert.True(t, result.OK)
	assert.Equal(t, "Example added", result.Message)
	assert.Equal(t, "new-id", result.BookmarkID)

	// The bookmark is keyed by the canonical URL, not the submitted one.
	assert.Equal(t, "https://example.com/final", store.lastCreated.URL)
}

func TestSaveLink_EmptyLink(t *testing.T) {
	actions := NewActions(&fakeStore{}, &fakeFetcher{})

	result := actions.SaveLink(context.Background(), "owner", "   ")
	assert.False(t, result.OK)
	assert.Equal(t, "A link is required", result.Message)
}

func TestSaveLink_InvalidLink(t *testing.T) {
	store := &fakeStore{}
	actions := NewActions(store, &fakeFetcher{err: metadata.ErrInvalidLink})

	result := actions.SaveLink(context.Background(), "owner", "not a real url")
	assert.False(t, result.OK)
	assert.Equal(t, "Invalid link provided", result.Message)
	// No partial bookmark was created.
	assert.Nil(t, store.lastCreated)
}

func TestSaveLink_FetchTimeout(t *testing.T) {
	actions := NewActions(&fakeStore{}, &fakeFetcher{err: metadata.ErrFetchTimeout})

	result := actions.SaveLink(context.Background(), "owner", "https://slow.example.com")
	assert.False(t, result.OK)
	assert.Equal(t, "Invalid link provided", result.Message)
}

func TestSaveLink_Duplicate(t *testing.T) {
	fetcher := &fakeFetcher{page: &metadata.PageMetadata{
		Title:        "Example",
		CanonicalURL: "https://example.com",
	}}
	actions := NewActions(&fakeStore{createErr: database.ErrDuplicateBookmark}, fetcher)

	result := actions.SaveLink(context.Background(), "owner", "https://example.com")
	assert.False(t, result.OK)
	assert.Equal(t, "Link already included in your Hangar", result.Message)
}
