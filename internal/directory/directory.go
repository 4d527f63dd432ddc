package directory

import "sync"

// Channel is one live delivery transport to a single connected user.
type Channel interface {
	UserID() string
	Push(payload []byte) error
}

// Directory maps each connected user to their single active channel.
// A later Join for the same user supersedes the earlier channel
// (last-writer-wins); Leave only removes the entry if the stored channel
// is still the one being torn down, so a disconnect racing a reconnect
// can never evict the newer connection.
type Directory struct {
	mu      sync.RWMutex
	entries map[string]Channel
}

func New() *Directory {
	return &Directory{entries: map[string]Channel{}}
}

// Join registers ch as the active channel for its user, unconditionally
// replacing any prior entry. The displaced channel is returned so the
// transport can close it.
func (d *Directory) Join(ch Channel) Channel {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.entries[ch.UserID()]
	d.entries[ch.UserID()] = ch
	if prev == ch {
		return nil
	}
	return prev
}

// Leave removes the entry for ch's user only if the stored channel is ch
// itself. Reports whether an entry was removed.
func (d *Directory) Leave(ch Channel) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.entries[ch.UserID()] != ch {
		return false
	}
	delete(d.entries, ch.UserID())
	return true
}

// Lookup returns the user's current channel, or nil if offline.
func (d *Directory) Lookup(userID string) Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.entries[userID]
}

// Online reports the number of connected users.
func (d *Directory) Online() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries)
}
