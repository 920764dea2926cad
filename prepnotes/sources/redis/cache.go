// prepnotes/sources/redis/cache.go
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const notesTTL = 60 * time.Second

// NotesCache holds each user's rendered notes listing. Mutations delete
// the key so the next read hits the database.
type NotesCache struct {
	client *redis.Client
}

// NewNotesCache connects to redis. An empty addr disables caching: every
// method on a nil NotesCache is a no-op.
func NewNotesCache(addr string) (*NotesCache, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &NotesCache{client: client}, nil
}

func notesKey(userID string) string {
	return fmt.Sprintf("notes:%s", userID)
}

// GetNotes unmarshals a cached listing into dest. ok is false on miss.
func (c *NotesCache) GetNotes(ctx context.Context, userID string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := c.client.Get(ctx, notesKey(userID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetNotes caches the listing with a short TTL.
func (c *NotesCache) SetNotes(ctx context.Context, userID string, notes any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}
	return c.client.Set(ctx, notesKey(userID), data, notesTTL).Err()
}

// Invalidate drops the user's cached listing after a mutation.
func (c *NotesCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, notesKey(userID)).Err()
}

func (c *NotesCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
