// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"painting_estimator_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Intake Domain Events
// =============================================================================

// IntakeCompleted is published when a conversation reaches the complete step.
type IntakeCompleted struct {
	BaseEvent
	SessionID   uuid.UUID `json:"sessionId"`
	ClientName  string    `json:"clientName"`
	ProjectName string    `json:"projectName"`
	RoomName    string    `json:"roomName"`
	TaskCount   int       `json:"taskCount"`
}

func (e IntakeCompleted) EventName() string { return "intake.session.completed" }

// IntakeSessionReset is published when a session is returned to its first step.
type IntakeSessionReset struct {
	BaseEvent
	SessionID uuid.UUID `json:"sessionId"`
}

func (e IntakeSessionReset) EventName() string { return "intake.session.reset" }

// =============================================================================
// Estimate Domain Events
// =============================================================================

// EstimateComputed is published after an estimate has been priced.
type EstimateComputed struct {
	BaseEvent
	EstimateID      uuid.UUID  `json:"estimateId"`
	SessionID       *uuid.UUID `json:"sessionId,omitempty"`
	RoomName        string     `json:"roomName"`
	LineCount       int        `json:"lineCount"`
	UnmappedCount   int        `json:"unmappedCount"`
	WarningCount    int        `json:"warningCount"`
	GrandTotalCents int64      `json:"grandTotalCents"`
}

func (e EstimateComputed) EventName() string { return "estimates.estimate.computed" }
