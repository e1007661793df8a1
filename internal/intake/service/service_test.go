package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/events"
	"painting_estimator_backend/internal/intake/domain"
	"painting_estimator_backend/internal/intake/repository"
	"painting_estimator_backend/platform/apperr"
	"painting_estimator_backend/platform/logger"
)

func newTestService() (*Service, *events.InMemoryBus) {
	bus := events.NewInMemoryBus(logger.Discard())
	return New(repository.NewMemoryStore(time.Hour), bus, logger.Discard()), bus
}

func TestServiceConversationPublishesCompletion(t *testing.T) {
	ctx := context.Background()
	svc, bus := newTestService()

	var mu sync.Mutex
	var completed []events.IntakeCompleted
	bus.Subscribe(events.IntakeCompleted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		completed = append(completed, e.(events.IntakeCompleted))
		return nil
	}))

	session, err := svc.Create(ctx, "Anna Berg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, text := range []string{
		"Villa Solgläntan",
		"sovrum",
		"2 gånger 5 gånger 2,5",
		"måla väggarna",
		"måla taket",
		"klar",
		"ja",
	} {
		res, err := svc.Process(ctx, session.ID, text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Accepted {
			t.Fatalf("expected %q to be accepted, got %+v", text, res)
		}
	}
	bus.Wait()

	summary, err := svc.Summary(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Tasks) != 2 || summary.RoomName != "sovrum" {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(completed) != 1 || completed[0].SessionID != session.ID || completed[0].TaskCount != 2 {
		t.Fatalf("expected one completion event, got %+v", completed)
	}
}

func TestServiceRejectedInputIsNotSaved(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	session, _ := svc.Create(ctx, "")

	res, err := svc.Process(ctx, session.ID, "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Accepted {
		t.Fatalf("expected rejection, got %+v", res)
	}
	stored, _ := svc.Get(ctx, session.ID)
	if stored.Step != domain.StepAwaitingClientName {
		t.Fatalf("expected unchanged step, got %s", stored.Step)
	}
}

func TestServiceUnknownSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	id := uuid.New()

	if _, err := svc.Get(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found from Get, got %v", err)
	}
	if _, err := svc.Process(ctx, id, "hej"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found from Process, got %v", err)
	}
	if err := svc.Delete(ctx, id); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found from Delete, got %v", err)
	}
}

func TestServiceSummaryConflictWhileOpen(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	session, _ := svc.Create(ctx, "")

	if _, err := svc.Summary(ctx, session.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceResetPublishesEvent(t *testing.T) {
	ctx := context.Background()
	svc, bus := newTestService()
	resets := make(chan uuid.UUID, 1)
	bus.Subscribe(events.IntakeSessionReset{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		resets <- e.(events.IntakeSessionReset).SessionID
		return nil
	}))

	session, _ := svc.Create(ctx, "")
	_, _ = svc.Process(ctx, session.ID, "Erik Lund")

	reset, err := svc.Reset(ctx, session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bus.Wait()
	if reset.Step != domain.StepAwaitingClientName || reset.ClientName != "" {
		t.Fatalf("unexpected reset session: %+v", reset)
	}
	select {
	case id := <-resets:
		if id != session.ID {
			t.Fatalf("expected reset event for %s, got %s", session.ID, id)
		}
	default:
		t.Fatal("expected a reset event")
	}
}

func TestServiceSerializesConcurrentUtterances(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()
	session, _ := svc.Create(ctx, "Anna Berg")
	for _, text := range []string{"Villa", "hall", "3 gånger 4 gånger 2,5"} {
		if _, err := svc.Process(ctx, session.ID, text); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Process(ctx, session.ID, "måla väggarna")
		}()
	}
	wg.Wait()

	stored, _ := svc.Get(ctx, session.ID)
	if len(stored.Tasks) != 20 {
		t.Fatalf("expected 20 tasks after concurrent appends, got %d", len(stored.Tasks))
	}
}
