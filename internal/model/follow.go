package model

import (
	"fmt"
	"time"
)

// Follow is a directed subscription edge: follower reads followee.
// idx_follow_pair = (follower_id, followee_id) is the uniqueness guarantee
// that makes concurrent duplicate follows collapse into one edge.
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	Follower   *User  `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	FolloweeID string `gorm:"type:varchar(36);index:idx_follow_followee;index:idx_follow_pair,unique;not null"`
	Followee   *User  `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }

func (f Follow) String() string {
	return fmt.Sprintf("%s -> %s", f.FollowerID, f.FolloweeID)
}
