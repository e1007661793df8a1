package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/estimates/ports"
	"painting_estimator_backend/internal/estimates/transport"
	"painting_estimator_backend/internal/events"
	"painting_estimator_backend/platform/apperr"
	"painting_estimator_backend/platform/logger"
)

type stubSessions struct {
	session ports.CompletedSession
	err     error
}

func (s stubSessions) CompletedSession(_ context.Context, _ uuid.UUID) (ports.CompletedSession, error) {
	return s.session, s.err
}

func TestComputeForSession(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	published := make(chan events.EstimateComputed, 1)
	bus.Subscribe(events.EstimateComputed{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		published <- e.(events.EstimateComputed)
		return nil
	}))

	sessionID := uuid.New()
	svc := New(testCatalog(t), DefaultPricing(), bus, logger.Discard())
	svc.SetSessionReader(stubSessions{session: ports.CompletedSession{
		SessionID:   sessionID,
		ClientName:  "Anna Berg",
		ProjectName: "Villa Solgläntan",
		RoomName:    "Sovrum",
		Width:       2,
		Length:      5,
		Height:      2.5,
		Doors:       1,
		Windows:     1,
		Tasks: []ports.SessionTask{
			{Phrase: "måla väggar", Layers: 2},
			{Phrase: "måla tak"},
		},
	}})

	est, err := svc.ComputeForSession(context.Background(), sessionID, transport.SessionEstimateRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bus.Wait()

	if est.SessionID == nil || *est.SessionID != sessionID || est.ClientName != "Anna Berg" {
		t.Fatalf("expected session details on the estimate, got %+v", est)
	}
	if est.Room.WallsNet != 31.7 {
		t.Fatalf("expected standard openings to give walls net 31.7, got %v", est.Room.WallsNet)
	}
	if got := len(allItems(est)); got != 2 {
		t.Fatalf("expected 2 line items, got %d", got)
	}

	select {
	case e := <-published:
		if e.EstimateID != est.ID || e.LineCount != 2 {
			t.Fatalf("unexpected event: %+v", e)
		}
	default:
		t.Fatal("expected an EstimateComputed event")
	}
}

func TestComputeForSessionPropagatesReaderErrors(t *testing.T) {
	svc := New(testCatalog(t), DefaultPricing(), nil, logger.Discard())
	svc.SetSessionReader(stubSessions{err: apperr.Conflict("session is not complete")})

	_, err := svc.ComputeForSession(context.Background(), uuid.New(), transport.SessionEstimateRequest{})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestComputeForSessionWithoutReader(t *testing.T) {
	svc := New(testCatalog(t), DefaultPricing(), nil, logger.Discard())
	if _, err := svc.ComputeForSession(context.Background(), uuid.New(), transport.SessionEstimateRequest{}); err == nil {
		t.Fatal("expected an error when no session reader is configured")
	}
}

func TestFromSessionUsesExplicitWindows(t *testing.T) {
	session := ports.CompletedSession{Width: 3, Length: 4, Height: 2.4, Doors: 2, Windows: 3}
	room, _ := FromSession(session, transport.SessionEstimateRequest{
		Windows: []transport.WindowInput{{Width: 0.8, Height: 1.0}},
	})
	if len(room.Doors) != 2 || len(room.Windows) != 1 || room.Windows[0].Width != 0.8 {
		t.Fatalf("unexpected openings: %+v / %+v", room.Doors, room.Windows)
	}

	room, tasks := FromSession(session, transport.SessionEstimateRequest{})
	if len(room.Windows) != 3 || room.Windows[0].Width != StandardWindowWidth {
		t.Fatalf("expected 3 standard windows, got %+v", room.Windows)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
}
