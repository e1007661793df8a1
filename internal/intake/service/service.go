// Package service drives intake conversations: the state machine in
// machine.go plus a store-backed Service that serves sessions over HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/events"
	"painting_estimator_backend/internal/intake/domain"
	"painting_estimator_backend/internal/intake/repository"
	"painting_estimator_backend/platform/apperr"
	"painting_estimator_backend/platform/logger"
)

const (
	sessionNotFoundMessage = "session not found"
	lockStripes            = 64
)

// Service provides business logic for intake sessions
type Service struct {
	store    repository.SessionStore
	eventBus events.Bus // nil disables events
	log      *logger.Logger
	locks    [lockStripes]sync.Mutex
}

// New creates a new intake service
func New(store repository.SessionStore, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, eventBus: eventBus, log: log}
}

// lock serializes load-modify-save cycles per session. Sessions sharing a
// stripe also wait on each other, which is harmless at conversation speed.
func (s *Service) lock(id uuid.UUID) func() {
	m := &s.locks[int(id[0])%lockStripes]
	m.Lock()
	return m.Unlock
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Session{}, apperr.NotFound(sessionNotFoundMessage)
		}
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

// Create starts a new session, optionally with the client already known.
func (s *Service) Create(ctx context.Context, clientName string) (domain.Session, error) {
	session := NewSession(WithClientName(clientName))
	if err := s.store.Save(ctx, *session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.log.Info("intake session created", "sessionId", session.ID, "step", session.Step)
	return *session, nil
}

// Get returns the session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	return s.load(ctx, id)
}

// Process applies one utterance and saves the session when it was accepted.
func (s *Service) Process(ctx context.Context, id uuid.UUID, text string) (Result, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return Result{}, err
	}

	from := session.Step
	res := Process(&session, text)
	s.log.IntakeStep(id.String(), string(from), string(res.Step), res.Accepted)
	if !res.Accepted {
		return res, nil
	}

	if err := s.store.Save(ctx, session); err != nil {
		return Result{}, fmt.Errorf("save session: %w", err)
	}
	if res.Complete {
		s.publish(ctx, events.IntakeCompleted{
			BaseEvent:   events.NewBaseEvent(),
			SessionID:   session.ID,
			ClientName:  session.ClientName,
			ProjectName: session.ProjectName,
			RoomName:    session.RoomName,
			TaskCount:   len(session.Tasks),
		})
	}
	return res, nil
}

// Summary returns the collected data, or a conflict while the session is open.
func (s *Service) Summary(ctx context.Context, id uuid.UUID) (domain.Summary, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return domain.Summary{}, err
	}
	return Summary(&session)
}

// Reset returns the session to its first step.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	Reset(&session)
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	s.publish(ctx, events.IntakeSessionReset{BaseEvent: events.NewBaseEvent(), SessionID: id})
	return session, nil
}

// Delete discards the session.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := s.lock(id)
	defer unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(sessionNotFoundMessage)
		}
		return fmt.Errorf("delete session: %w", err)
	}
	s.log.Info("intake session deleted", "sessionId", id)
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, event)
}
