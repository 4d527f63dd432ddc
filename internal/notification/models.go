package notification

import (
	"encoding/json"
	"time"
)

const (
	KindFollow = "FOLLOW"
	KindPost   = "POST"
)

// Notification is the durable record created once per (event, recipient)
// pair. The JSON field names are a stable wire contract consumed by the
// frontend and by live websocket delivery; both carry the same shape.
type Notification struct {
	ID          string          `json:"id"`
	RecipientID string          `json:"recipientId"`
	Kind        string          `json:"kind"`
	Title       string          `json:"title"`
	Message     string          `json:"message"`
	Data        json.RawMessage `json:"data"`
	Read        bool            `json:"read"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// FollowData is the kind-specific payload for FOLLOW notifications.
type FollowData struct {
	FollowerID       string `json:"followerId"`
	FollowerUsername string `json:"followerUsername"`
}

// PostData is the kind-specific payload for POST notifications.
type PostData struct {
	PostID         string `json:"postId"`
	AuthorID       string `json:"authorId"`
	AuthorUsername string `json:"authorUsername"`
}
