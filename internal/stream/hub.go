package stream

import (
	"context"
	"fmt"
	"log"
	"strings"

	"backend-insyd/internal/directory"

	"github.com/redis/go-redis/v9"
)

// Hub ties the connection directory to the websocket transport and, when
// redis is configured, bridges delivery to other instances over pubsub.
type Hub struct {
	directory *directory.Directory
	redis     *redis.Client
}

func NewHub(dir *directory.Directory, redisClient *redis.Client) *Hub {
	h := &Hub{
		directory: dir,
		redis:     redisClient,
	}
	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

// Register creates the client for a freshly connected user and installs it
// as the user's active channel. A superseded connection for the same user
// is closed here; its own teardown later becomes a no-op in the directory.
func (h *Hub) Register(userID string) *Client {
	client := newClient(userID)
	if prev := h.directory.Join(client); prev != nil {
		if old, ok := prev.(*Client); ok {
			old.close()
		}
	}
	return client
}

// Unregister removes the client from the directory (only if it is still
// the active channel for its user) and closes it. Safe to call twice.
func (h *Hub) Unregister(client *Client) {
	h.directory.Leave(client)
	client.close()
}

// Deliver attempts a live push to the user. If the user is connected here
// the payload goes straight to their channel; otherwise it is published to
// redis so the instance holding the connection can deliver it. Exactly one
// of the two paths runs, keeping delivery at most once per connection.
func (h *Hub) Deliver(ctx context.Context, userID string, payload []byte) error {
	if ch := h.directory.Lookup(userID); ch != nil {
		return ch.Push(payload)
	}
	if h.redis == nil {
		return nil
	}
	if err := h.redis.Publish(ctx, notifyChannel(userID), payload).Err(); err != nil {
		return fmt.Errorf("redis publish for %s: %w", userID, err)
	}
	return nil
}

// subscribeRedis forwards notifications published by other instances to
// clients connected here. It never re-publishes, so a payload crosses the
// pubsub bridge at most once.
func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "notify:*")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		userID := userIDFromChannel(msg.Channel)
		if userID == "" {
			continue
		}
		if ch := h.directory.Lookup(userID); ch != nil {
			if err := ch.Push([]byte(msg.Payload)); err != nil {
				log.Printf("pubsub delivery to %s failed: %v", userID, err)
			}
		}
	}
}

func notifyChannel(userID string) string {
	return "notify:" + userID
}

func userIDFromChannel(ch string) string {
	return strings.TrimPrefix(ch, "notify:")
}
