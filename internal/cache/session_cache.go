package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Session holds the per-chat conversation state between a free-text search
// and the selection callback that follows it. QueryID links the selection
// back to the originating query record so its status can be resolved.
type Session struct {
	ChatID   int64     `json:"chatId"`
	QueryID  int64     `json:"queryId"`
	Query    string    `json:"query"`
	CachedAt time.Time `json:"cachedAt"`
}

// SessionCache stores chat sessions in Redis with a TTL. Expired sessions
// simply vanish; a late selection without a session still resolves the
// product, it just can't credit the originating query.
type SessionCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewSessionCache creates a SessionCache with the given session TTL.
func NewSessionCache(redis *RedisClient, ttl time.Duration) *SessionCache {
	return &SessionCache{redis: redis, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("session:chat:%d", chatID)
}

// Put stores the session for its chat, replacing any previous one.
func (c *SessionCache) Put(ctx context.Context, sess *Session) error {
	sess.CachedAt = time.Now()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return c.redis.Set(ctx, sessionKey(sess.ChatID), string(data), c.ttl)
}

// Get retrieves the session for a chat. A missing or expired session returns
// (nil, nil).
func (c *SessionCache) Get(ctx context.Context, chatID int64) (*Session, error) {
	data, err := c.redis.Get(ctx, sessionKey(chatID))
	if err != nil {
		if IsNil(err) {
			return nil, nil
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes a chat's session.
func (c *SessionCache) Delete(ctx context.Context, chatID int64) error {
	return c.redis.Delete(ctx, sessionKey(chatID))
}
