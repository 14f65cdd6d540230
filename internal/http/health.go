package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hangarapp/hangar/internal/database"
	"github.com/hangarapp/hangar/internal/entities"
)

// HangarStats summarizes how much data this instance holds.
type HangarStats struct {
	Users     int64 `json:"users"`
	Bookmarks int64 `json:"bookmarks"`
	Follows   int64 `json:"follows"`
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status  string       `json:"status"`
	Time    string       `json:"time"`
	Version string       `json:"version,omitempty"`
	Stats   *HangarStats `json:"stats,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// HealthController reports liveness and a small snapshot of the
// instance's data so operators can tell an empty Hangar from a broken
// one.
type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status reports overall health.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
	}

	if err := h.pingDatabase(); err != nil {
		resp.Status = "unhealthy"
		resp.Error = err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	stats := HangarStats{}
	h.db.DB.Model(&entities.User{}).Count(&stats.Users)
	h.db.DB.Model(&entities.Bookmark{}).Count(&stats.Bookmarks)
	h.db.DB.Model(&entities.Follow{}).Count(&stats.Follows)
	resp.Stats = &stats

	c.JSON(http.StatusOK, resp)
}

// Ping is the bare liveness probe: no database round-trip.
// GET /ping
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *HealthController) pingDatabase() error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
