// Package notification provides event handlers that react to domain events.
// It records an audit trail of intake and estimate activity so domain modules
// do not need to know who is listening.
package notification

import (
	"context"
	"sync"

	"painting_estimator_backend/internal/events"
	"painting_estimator_backend/platform/logger"
)

// Activity counts handled events since startup.
type Activity struct {
	Completed int
	Resets    int
	Estimates int
	Unmapped  int
}

// Module handles domain events. It is not HTTP-facing.
type Module struct {
	log *logger.Logger

	mu       sync.Mutex
	activity Activity
}

// New creates the notification module.
func New(log *logger.Logger) *Module {
	return &Module{log: log}
}

// RegisterHandlers subscribes the module to the events it handles.
func (m *Module) RegisterHandlers(bus events.Bus) {
	// Intake domain events
	bus.Subscribe(events.IntakeCompleted{}.EventName(), m)
	bus.Subscribe(events.IntakeSessionReset{}.EventName(), m)

	// Estimate domain events
	bus.Subscribe(events.EstimateComputed{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.IntakeCompleted:
		return m.handleIntakeCompleted(ctx, e)
	case events.IntakeSessionReset:
		return m.handleIntakeSessionReset(ctx, e)
	case events.EstimateComputed:
		return m.handleEstimateComputed(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleIntakeCompleted(ctx context.Context, e events.IntakeCompleted) error {
	m.track(func(a *Activity) { a.Completed++ })
	m.log.WithContext(ctx).WithSessionID(e.SessionID.String()).Info("audit: intake completed",
		"eventId", e.EventID,
		"client", e.ClientName,
		"project", e.ProjectName,
		"room", e.RoomName,
		"tasks", e.TaskCount,
	)
	return nil
}

func (m *Module) handleIntakeSessionReset(ctx context.Context, e events.IntakeSessionReset) error {
	m.track(func(a *Activity) { a.Resets++ })
	m.log.WithContext(ctx).WithSessionID(e.SessionID.String()).Info("audit: intake session reset", "eventId", e.EventID)
	return nil
}

func (m *Module) handleEstimateComputed(ctx context.Context, e events.EstimateComputed) error {
	m.track(func(a *Activity) {
		a.Estimates++
		a.Unmapped += e.UnmappedCount
	})
	log := m.log.WithContext(ctx)
	if e.SessionID != nil {
		log = log.WithSessionID(e.SessionID.String())
	}
	log.Info("audit: estimate computed",
		"eventId", e.EventID,
		"estimateId", e.EstimateID,
		"room", e.RoomName,
		"lines", e.LineCount,
		"unmapped", e.UnmappedCount,
		"warnings", e.WarningCount,
		"grandTotalCents", e.GrandTotalCents,
	)
	if e.UnmappedCount > 0 {
		log.Warn("estimate has unmapped task phrases", "estimateId", e.EstimateID, "unmapped", e.UnmappedCount)
	}
	return nil
}

func (m *Module) track(update func(*Activity)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	update(&m.activity)
}

// Activity returns the totals of handled events.
func (m *Module) Activity() Activity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activity
}
