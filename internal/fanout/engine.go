package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"backend-insyd/internal/graph"
	"backend-insyd/internal/notification"
	"backend-insyd/internal/post"
	"backend-insyd/internal/shared/apperr"
	"backend-insyd/internal/user"
)

// Deliverer attempts a live push to one user. Implemented by stream.Hub.
type Deliverer interface {
	Deliver(ctx context.Context, userID string, payload []byte) error
}

// Engine turns social events into durable notifications, one per affected
// recipient, and attempts best-effort live delivery for each. Persistence
// and delivery are deliberately not transactional: the stored notification
// is the source of truth, a failed push is only logged and the recipient
// picks the record up on their next fetch.
type Engine struct {
	users         *user.Service
	graph         *graph.Service
	posts         *post.Service
	notifications *notification.Service
	deliverer     Deliverer
	workers       int
}

func NewEngine(users *user.Service, graphSvc *graph.Service, posts *post.Service, notifications *notification.Service, deliverer Deliverer, workers int) *Engine {
	if workers <= 0 {
		workers = 8
	}
	return &Engine{
		users:         users,
		graph:         graphSvc,
		posts:         posts,
		notifications: notifications,
		deliverer:     deliverer,
		workers:       workers,
	}
}

// OnFollow records the follow edge and notifies the followee. An existing
// edge is a hard conflict; there is no idempotent re-follow.
//
// The edge commit and the notification write are separate operations. If
// the notification write fails the edge stands and the error surfaces to
// the caller; the edge is authoritative and is not rolled back.
func (e *Engine) OnFollow(ctx context.Context, followerID, followeeID string) (notification.Notification, error) {
	exists, err := e.graph.EdgeExists(ctx, followerID, followeeID)
	if err != nil {
		return notification.Notification{}, err
	}
	if exists {
		return notification.Notification{}, fmt.Errorf("already following %s: %w", followeeID, apperr.ErrConflict)
	}

	if err := e.graph.CreateEdge(ctx, followerID, followeeID); err != nil {
		return notification.Notification{}, err
	}

	follower, err := e.users.Get(ctx, followerID)
	if err != nil {
		return notification.Notification{}, err
	}

	data, err := json.Marshal(notification.FollowData{
		FollowerID:       follower.ID,
		FollowerUsername: follower.Username,
	})
	if err != nil {
		return notification.Notification{}, err
	}
	n, err := e.notifications.Create(ctx, notification.Notification{
		RecipientID: followeeID,
		Kind:        notification.KindFollow,
		Title:       "New Follower",
		Message:     fmt.Sprintf("%s started following you", follower.Username),
		Data:        data,
	})
	if err != nil {
		return notification.Notification{}, err
	}

	e.deliver(ctx, n)
	return n, nil
}

// OnUnfollow removes the edge. No notification is generated.
func (e *Engine) OnUnfollow(ctx context.Context, followerID, followeeID string) error {
	return e.graph.DeleteEdge(ctx, followerID, followeeID)
}

// OnPost persists the post, then fans out one notification per follower of
// the author. Recipients are processed concurrently and independently: a
// failed write for one recipient is logged and skipped, never aborting the
// others. The returned count reflects persisted notifications only;
// delivery outcome does not affect it. The whole operation fails only if
// the post itself cannot be stored or every recipient write fails.
func (e *Engine) OnPost(ctx context.Context, authorID, title, content string) (post.Post, int, error) {
	p, err := e.posts.Create(ctx, authorID, title, content)
	if err != nil {
		return post.Post{}, 0, err
	}

	author, err := e.users.Get(ctx, authorID)
	if err != nil {
		return post.Post{}, 0, err
	}

	followers, err := e.graph.ListFollowers(ctx, authorID)
	if err != nil {
		return post.Post{}, 0, err
	}
	if len(followers) == 0 {
		return p, 0, nil
	}

	data, err := json.Marshal(notification.PostData{
		PostID:         p.ID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
	})
	if err != nil {
		return post.Post{}, 0, err
	}
	message := fmt.Sprintf("%s created a new post: %s", author.Username, p.Title)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		persisted int
	)
	sem := make(chan struct{}, e.workers)
	for _, recipientID := range followers {
		wg.Add(1)
		sem <- struct{}{}
		go func(recipientID string) {
			defer wg.Done()
			defer func() { <-sem }()

			n, err := e.notifications.Create(ctx, notification.Notification{
				RecipientID: recipientID,
				Kind:        notification.KindPost,
				Title:       "New Post",
				Message:     message,
				Data:        data,
			})
			if err != nil {
				log.Printf("fanout: notification for %s failed: %v", recipientID, err)
				return
			}
			mu.Lock()
			persisted++
			mu.Unlock()

			e.deliver(ctx, n)
		}(recipientID)
	}
	wg.Wait()

	if persisted == 0 {
		return post.Post{}, 0, fmt.Errorf("fanout: all %d notification writes failed", len(followers))
	}
	return p, persisted, nil
}

// deliver pushes the persisted notification to the recipient if they are
// connected. Failures are logged and swallowed.
func (e *Engine) deliver(ctx context.Context, n notification.Notification) {
	if e.deliverer == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("fanout: marshal notification %s: %v", n.ID, err)
		return
	}
	if err := e.deliverer.Deliver(ctx, n.RecipientID, payload); err != nil {
		log.Printf("fanout: delivery to %s failed: %v", n.RecipientID, err)
	}
}
