package stream

import (
	"fmt"
	"sync"

	"backend-insyd/internal/shared/apperr"
)

const sendBufferSize = 64

// Client is one live websocket connection for one user. It satisfies
// directory.Channel; pushes go through a buffered channel drained by the
// websocket writer so a slow connection never blocks fan-out.
type Client struct {
	userID string
	send   chan []byte

	mu     sync.Mutex
	closed bool
}

func newClient(userID string) *Client {
	return &Client{
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func (c *Client) UserID() string { return c.userID }

// Push enqueues a payload without blocking. A closed connection or a full
// buffer counts as a delivery failure; the caller owns the durable record
// and treats the push as best-effort.
func (c *Client) Push(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("user %s: channel closed: %w", c.userID, apperr.ErrDeliveryFailed)
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return fmt.Errorf("user %s: send buffer full: %w", c.userID, apperr.ErrDeliveryFailed)
	}
}

// Messages is drained by the websocket writer until close.
func (c *Client) Messages() <-chan []byte { return c.send }

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
