package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hangarapp/hangar/internal/auth"
)

func TestNeighborhoodFeed(t *testing.T) {
	env := setupTestEnv(t)
	env.addNeighbor(t, "alice", "https://alice.example.com")
	env.addNeighbor(t, "bob", "https://bob.example.com")
	_, err := env.bookmarks.Create(auth.DefaultUserID, "https://mine.example.com", "Mine", "", "")
	require.NoError(t, err)

	w := env.request(t, http.MethodGet, "/api/neighborhood", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bookmarks []struct {
			URL           string `json:"url"`
			OwnerUsername string `json:"owner_username"`
		} `json:"bookmarks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bookmarks, 2)

	owners := []string{resp.Bookmarks[0].OwnerUsername, resp.Bookmarks[1].OwnerUsername}
	assert.ElementsMatch(t, []string{"alice", "bob"}, owners)
	for _, b := range resp.Bookmarks {
		assert.NotEqual(t, "https://mine.example.com", b.URL)
	}
}

func TestNeighborProfile(t *testing.T) {
	env := setupTestEnv(t)
	neighbor, _ := env.addNeighbor(t, "alice", "https://alice.example.com")

	w := env.request(t, http.MethodGet, "/api/neighbors/alice", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Username  string `json:"username"`
		Following bool   `json:"following"`
		Bookmarks []struct {
			URL string `json:"url"`
		} `json:"bookmarks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.Following)
	require.Len(t, resp.Bookmarks, 1)

	require.NoError(t, env.social.Follow(auth.DefaultUserID, neighbor.ID))

	w = env.request(t, http.MethodGet, "/api/neighbors/alice", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Following)
}

func TestNeighborProfile_Unknown(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/neighbors/nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowUnfollowEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	neighbor, _ := env.addNeighbor(t, "alice", "https://alice.example.com")

	w := env.request(t, http.MethodPost, "/api/neighbors/alice/follow", "")
	require.Equal(t, http.StatusOK, w.Code)

	following, err := env.social.IsFollowing(auth.DefaultUserID, neighbor.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// Following twice is still a success
	w = env.request(t, http.MethodPost, "/api/neighbors/alice/follow", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/neighbors/alice/follow", "")
	require.Equal(t, http.StatusOK, w.Code)

	following, err = env.social.IsFollowing(auth.DefaultUserID, neighbor.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing again is still a success
	w = env.request(t, http.MethodDelete, "/api/neighbors/alice/follow", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFollowEndpoint_Self(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/neighbors/viewer/follow", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowEndpoint_Unknown(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/neighbors/nobody/follow", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNetworkEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	alice, _ := env.addNeighbor(t, "alice", "https://alice.example.com")
	bob, _ := env.addNeighbor(t, "bob", "https://bob.example.com")

	require.NoError(t, env.social.Follow(auth.DefaultUserID, alice.ID))
	require.NoError(t, env.social.Follow(auth.DefaultUserID, bob.ID))
	require.NoError(t, env.social.Follow(bob.ID, auth.DefaultUserID))

	w := env.request(t, http.MethodGet, "/api/network", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Following []string `json:"following"`
		Followers []string `json:"followers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"alice", "bob"}, resp.Following)
	assert.Equal(t, []string{"bob"}, resp.Followers)
}
