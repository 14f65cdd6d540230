package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
)

// NeighborhoodStore defines the bookmark listings the neighborhood
// feed needs.
type NeighborhoodStore interface {
	ListNeighborhood(viewerID string, page int) ([]entities.Bookmark, error)
	ListByOwner(ownerID string, page int) ([]entities.Bookmark, error)
}

// SocialStore defines the follow-graph operations.
type SocialStore interface {
	IsFollowing(followerID, targetID string) (bool, error)
	Follow(followerID, targetID string) error
	Unfollow(followerID, targetID string) error
	FollowingIDs(userID string) ([]string, error)
	FollowerIDs(userID string) ([]string, error)
}

// UserStore resolves user identities for profile lookups.
type UserStore interface {
	GetByID(id string) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
}

type NeighborhoodController struct {
	bookmarks NeighborhoodStore
	social    SocialStore
	users     UserStore
}

func NewNeighborhoodController(bookmarks NeighborhoodStore, social SocialStore, users UserStore) *NeighborhoodController {
	return &NeighborhoodController{bookmarks: bookmarks, social: social, users: users}
}

// neighborhoodItem flattens the owning user into the feed entry.
type neighborhoodItem struct {
	entities.Bookmark
	OwnerUsername string `json:"owner_username"`
}

// Feed returns one page of bookmarks saved by everyone except the
// caller, most liked first.
// GET /api/neighborhood?page=0
func (nc *NeighborhoodController) Feed(c *gin.Context) {
	page := parsePageQuery(c)

	bookmarks, err := nc.bookmarks.ListNeighborhood(GetUserID(c), page)
	if err != nil {
		respondInternalError(c, err, "list neighborhood")
		return
	}

	items := make([]neighborhoodItem, 0, len(bookmarks))
	for _, b := range bookmarks {
		items = append(items, neighborhoodItem{Bookmark: b, OwnerUsername: b.User.Username})
	}

	c.JSON(http.StatusOK, gin.H{
		"bookmarks": items,
		"page":      page,
	})
}

// NeighborProfile returns a neighbor's public hangar together with the
// caller's follow state for them.
// GET /api/neighbors/:username?page=0
func (nc *NeighborhoodController) NeighborProfile(c *gin.Context) {
	neighbor, err := nc.users.GetByUsername(c.Param("username"))
	if errors.Is(err, database.ErrUserNotFound) {
		respondNotFound(c, "user")
		return
	}
	if err != nil {
		respondInternalError(c, err, "load neighbor")
		return
	}

	page := parsePageQuery(c)
	bookmarks, err := nc.bookmarks.ListByOwner(neighbor.ID, page)
	if err != nil {
		respondInternalError(c, err, "list neighbor bookmarks")
		return
	}

	following := false
	viewerID := GetUserID(c)
	if viewerID != neighbor.ID {
		following, err = nc.social.IsFollowing(viewerID, neighbor.ID)
		if err != nil && !errors.Is(err, database.ErrUserNotFound) {
			respondInternalError(c, err, "check follow state")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  neighbor.Username,
		"picture":   neighbor.Picture,
		"following": following,
		"bookmarks": bookmarks,
		"page":      page,
	})
}

// Follow adds the caller -> neighbor follow edge. Already following is
// a success.
// POST /api/neighbors/:username/follow
func (nc *NeighborhoodController) Follow(c *gin.Context) {
	neighbor, err := nc.users.GetByUsername(c.Param("username"))
	if errors.Is(err, database.ErrUserNotFound) {
		respondNotFound(c, "user")
		return
	}
	if err != nil {
		respondInternalError(c, err, "load neighbor")
		return
	}

	err = nc.social.Follow(GetUserID(c), neighbor.ID)
	switch {
	case errors.Is(err, database.ErrSelfFollow):
		respondBadRequest(c, "cannot follow yourself")
		return
	case errors.Is(err, database.ErrUserNotFound):
		respondNotFound(c, "user")
		return
	case err != nil:
		respondInternalError(c, err, "follow")
		return
	}
	respondSuccess(c, "now following "+neighbor.Username)
}

// Unfollow removes the caller -> neighbor follow edge. Not following
// is a success.
// DELETE /api/neighbors/:username/follow
func (nc *NeighborhoodController) Unfollow(c *gin.Context) {
	neighbor, err := nc.users.GetByUsername(c.Param("username"))
	if errors.Is(err, database.ErrUserNotFound) {
		respondNotFound(c, "user")
		return
	}
	if err != nil {
		respondInternalError(c, err, "load neighbor")
		return
	}

	err = nc.social.Unfollow(GetUserID(c), neighbor.ID)
	if errors.Is(err, database.ErrUserNotFound) {
		respondNotFound(c, "user")
		return
	}
	if err != nil {
		respondInternalError(c, err, "unfollow")
		return
	}
	respondSuccess(c, "unfollowed "+neighbor.Username)
}

// Network returns the caller's follow graph projections: who they
// follow and who follows them, as usernames in edge order.
// GET /api/network
func (nc *NeighborhoodController) Network(c *gin.Context) {
	userID := GetUserID(c)

	followingIDs, err := nc.social.FollowingIDs(userID)
	if err != nil {
		respondInternalError(c, err, "list following")
		return
	}
	followerIDs, err := nc.social.FollowerIDs(userID)
	if err != nil {
		respondInternalError(c, err, "list followers")
		return
	}

	following, err := nc.resolveUsernames(followingIDs)
	if err != nil {
		respondInternalError(c, err, "resolve following")
		return
	}
	followers, err := nc.resolveUsernames(followerIDs)
	if err != nil {
		respondInternalError(c, err, "resolve followers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"following": following,
		"followers": followers,
	})
}

func (nc *NeighborhoodController) resolveUsernames(ids []string) ([]string, error) {
	usernames := make([]string, 0, len(ids))
	for _, id := range ids {
		user, err := nc.users.GetByID(id)
		if errors.Is(err, database.ErrUserNotFound) {
			// Edge to a deleted account; skip it.
			continue
		}
		if err != nil {
			return nil, err
		}
		usernames = append(usernames, user.Username)
	}
	return usernames, nil
}
