package graph

import "time"

// Edge is a directed follow relationship: follower -> following.
type Edge struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}
