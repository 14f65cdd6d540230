package http

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar/internal/auth"
	"github.com/hangarapp/hangar/internal/config"
	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/database/bookmarks"
	"github.com/hangarapp/hangar/internal/database/social"
	"github.com/hangarapp/hangar/internal/database/users"
	"github.com/hangarapp/hangar/internal/entities"
	"github.com/hangarapp/hangar/internal/hangar"
	"github.com/hangarapp/hangar/internal/metadata"
)

// stubFetcher returns canned page metadata so router tests never hit
// the network.
type stubFetcher struct {
	page *metadata.PageMetadata
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, link string) (*metadata.PageMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.page != nil {
		return f.page, nil
	}
	return &metadata.PageMetadata{Title: "Stub Page", CanonicalURL: link}, nil
}

type testEnv struct {
	router    *gin.Engine
	db        *database.Database
	bookmarks *bookmarks.Repository
	social    *social.Repository
	users     *users.Repository
	fetcher   *stubFetcher
}

// setupTestEnv wires a full router over a throwaway sqlite file. Auth
// runs in mode "none": every request acts as the default user, which
// is created up front.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := fmt.Sprintf("./test_http_%s.db", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := database.NewDatabase(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})

	viewer := &entities.User{ID: auth.DefaultUserID, Username: "viewer", Email: "viewer@example.com"}
	require.NoError(t, db.DB.Create(viewer).Error)

	bookmarkRepo := bookmarks.NewRepository(db.DB)
	socialRepo := social.NewRepository(db.DB)
	userRepo := users.NewRepository(db.DB)
	fetcher := &stubFetcher{}

	router := NewRouter(RouterConfig{
		Database:          db,
		Actions:           hangar.NewActions(bookmarkRepo, fetcher),
		BookmarkStore:     bookmarkRepo,
		NeighborhoodStore: bookmarkRepo,
		SocialStore:       socialRepo,
		UserStore:         userRepo,
		AuthConfig:        config.Auth{Mode: config.AuthModeNone},
		Version:           "test",
	})

	return &testEnv{
		router:    router,
		db:        db,
		bookmarks: bookmarkRepo,
		social:    socialRepo,
		users:     userRepo,
		fetcher:   fetcher,
	}
}

func (env *testEnv) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// addNeighbor creates another account with one bookmark and returns
// both.
func (env *testEnv) addNeighbor(t *testing.T, username, url string) (*entities.User, *entities.Bookmark) {
	t.Helper()
	neighbor := &entities.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, env.db.DB.Create(neighbor).Error)
	bookmark, err := env.bookmarks.Create(neighbor.ID, url, "Shared by "+username, "", "")
	require.NoError(t, err)
	return neighbor, bookmark
}
