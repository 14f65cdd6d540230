package entities

import "time"

// Follow is a directed edge follower -> target. The composite unique
// index makes the edge a set: following twice is a no-op, and the
// bidirectional projections on User stay consistent by construction.
type Follow struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	FollowerID string `gorm:"size:36;index;uniqueIndex:idx_follows_edge" json:"follower_id"`
	TargetID   string `gorm:"size:36;index;uniqueIndex:idx_follows_edge" json:"target_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
