package service

import (
	"context"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/estimates/ports"
	"painting_estimator_backend/internal/estimates/transport"
	"painting_estimator_backend/internal/events"
	"painting_estimator_backend/platform/apperr"
	"painting_estimator_backend/platform/logger"
)

// Service provides business logic for estimates
type Service struct {
	catalog  *index.Index
	pricing  Pricing
	sessions ports.SessionReader // nil disables session estimates
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new estimates service
func New(catalog *index.Index, pricing Pricing, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{catalog: catalog, pricing: pricing, eventBus: eventBus, log: log}
}

// SetSessionReader injects the intake session reader (set after construction to break circular deps).
func (s *Service) SetSessionReader(r ports.SessionReader) {
	s.sessions = r
}

// Pricing returns the rates in effect.
func (s *Service) Pricing() Pricing {
	return s.pricing
}

// Compute prices an explicit room and task list.
func (s *Service) Compute(ctx context.Context, req transport.EstimateRequest) (transport.Estimate, error) {
	est, err := ComputeEstimate(req.Room, req.Tasks, s.catalog, s.pricing)
	if err != nil {
		return transport.Estimate{}, err
	}
	s.publish(ctx, est)
	return est, nil
}

// ComputeForSession prices the room and tasks collected by a completed intake session.
func (s *Service) ComputeForSession(ctx context.Context, sessionID uuid.UUID, extra transport.SessionEstimateRequest) (transport.Estimate, error) {
	if s.sessions == nil {
		return transport.Estimate{}, apperr.Internal("session estimates are not configured")
	}
	session, err := s.sessions.CompletedSession(ctx, sessionID)
	if err != nil {
		return transport.Estimate{}, err
	}

	room, tasks := FromSession(session, extra)
	est, err := ComputeEstimate(room, tasks, s.catalog, s.pricing)
	if err != nil {
		return transport.Estimate{}, err
	}
	est.SessionID = &session.SessionID
	est.ClientName = session.ClientName
	est.ProjectName = session.ProjectName
	s.publish(ctx, est)
	return est, nil
}

// FromSession converts a completed session into estimate input. Door and
// window counts become standard-size openings unless explicit windows are given.
func FromSession(session ports.CompletedSession, extra transport.SessionEstimateRequest) (transport.RoomInput, []transport.TaskInput) {
	room := transport.RoomInput{
		Name:      session.RoomName,
		Width:     session.Width,
		Length:    session.Length,
		Height:    session.Height,
		Doors:     make([]transport.DoorInput, max(session.Doors, 0)),
		Wardrobes: extra.Wardrobes,
	}
	if len(extra.Windows) > 0 {
		room.Windows = extra.Windows
	} else {
		room.Windows = make([]transport.WindowInput, 0, max(session.Windows, 0))
		for range max(session.Windows, 0) {
			room.Windows = append(room.Windows, transport.WindowInput{Width: StandardWindowWidth, Height: StandardWindowHeight})
		}
	}

	tasks := make([]transport.TaskInput, 0, len(session.Tasks))
	for _, t := range session.Tasks {
		tasks = append(tasks, transport.TaskInput{Phrase: t.Phrase, SpokenLayers: t.Layers})
	}
	return room, tasks
}

func (s *Service) publish(ctx context.Context, est transport.Estimate) {
	lines := 0
	for _, sec := range est.Sections {
		lines += len(sec.Items)
	}
	s.log.EstimateComputed(est.RoomName, lines, len(est.UnmappedPhrases), len(est.Warnings), est.Totals.GrandTotalCents)
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, events.EstimateComputed{
		BaseEvent:       events.NewBaseEvent(),
		EstimateID:      est.ID,
		SessionID:       est.SessionID,
		RoomName:        est.RoomName,
		LineCount:       lines,
		UnmappedCount:   len(est.UnmappedPhrases),
		WarningCount:    len(est.Warnings),
		GrandTotalCents: est.Totals.GrandTotalCents,
	})
}
