// Package ports defines what the estimates module needs from other modules.
// Implementations live in internal/adapters.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// CompletedSession is the part of a finished intake conversation an estimate is built from.
type CompletedSession struct {
	SessionID   uuid.UUID
	ClientName  string
	ProjectName string
	RoomName    string
	Width       float64
	Length      float64
	Height      float64
	Doors       int
	Windows     int
	Tasks       []SessionTask
}

// SessionTask is one collected task phrase with its spoken layer count (0 when none).
type SessionTask struct {
	Phrase string
	Layers int
}

// SessionReader loads completed intake sessions. It returns an apperr Conflict
// error for a session that is not complete yet and NotFound for an unknown one.
type SessionReader interface {
	CompletedSession(ctx context.Context, id uuid.UUID) (CompletedSession, error)
}
