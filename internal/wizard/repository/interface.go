package repository

import (
	"context"

	"dmt_kiosk_backend/internal/wizard/domain"

	"github.com/google/uuid"
)

// SessionStore persists wizard sessions between requests.
type SessionStore interface {
	// Find returns (nil, false, nil) when the session does not exist or expired.
	Find(ctx context.Context, id uuid.UUID) (*domain.Session, bool, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
