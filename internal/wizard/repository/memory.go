package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dmt_kiosk_backend/internal/wizard/domain"

	"github.com/google/uuid"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryStore is the single-process fallback when Redis is not configured.
// Values are stored encoded so callers never share a *Session.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ SessionStore = (*MemoryStore)(nil)

func (s *MemoryStore) Find(_ context.Context, id uuid.UUID) (*domain.Session, bool, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, false, nil
	}

	var session domain.Session
	if err := json.Unmarshal(entry.raw, &session); err != nil {
		return nil, false, fmt.Errorf("decode wizard session: %w", err)
	}
	return &session, true, nil
}

func (s *MemoryStore) Save(_ context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode wizard session: %w", err)
	}

	entry := memoryEntry{raw: raw}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[session.ID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
