// Package repository stores intake sessions between utterances. Sessions are
// short-lived: both stores expire them after a configured TTL.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/intake/domain"
)

// ErrNotFound is returned for unknown and expired sessions.
var ErrNotFound = errors.New("session not found")

// SessionStore persists sessions by id. Get returns a copy; callers save
// their changes back explicitly.
type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
