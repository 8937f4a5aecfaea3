package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "dmt:admin:session:"

// Session is a signed-in admin. ExpiresAt is nil when sessions never expire.
type Session struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// SessionStore keeps admin sessions so they survive a page reload and a
// process restart.
type SessionStore interface {
	Save(ctx context.Context, session Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (Session, bool, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore stores sessions as JSON under dmt:admin:session:<id>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ SessionStore = (*RedisStore)(nil)

func (s *RedisStore) Save(ctx context.Context, session Session, ttl time.Duration) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode admin session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set admin session: %w", err)
	}
	return nil
}

func (s *RedisStore) Find(ctx context.Context, id string) (Session, bool, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("get admin session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, false, fmt.Errorf("decode admin session: %w", err)
	}
	return session, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	return nil
}

// MemoryStore is used when Redis is not configured. Sessions are lost on
// restart but still survive page reloads.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

type memorySession struct {
	session   Session
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession), now: time.Now}
}

var _ SessionStore = (*MemoryStore)(nil)

func (s *MemoryStore) Save(_ context.Context, session Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memorySession{session: session}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.sessions[session.ID] = entry
	return nil
}

func (s *MemoryStore) Find(_ context.Context, id string) (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return Session{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		return Session{}, false, nil
	}
	return entry.session, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
