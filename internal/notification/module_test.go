package notification

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"painting_estimator_backend/internal/events"
	"painting_estimator_backend/platform/logger"

	"github.com/google/uuid"
)

func TestHandlersRecordActivity(t *testing.T) {
	var buf bytes.Buffer
	m := New(logger.NewWithWriter("production", &buf))
	bus := events.NewInMemoryBus(logger.Discard())
	m.RegisterHandlers(bus)

	sessionID := uuid.New()
	ctx := context.Background()
	bus.Publish(ctx, events.IntakeSessionReset{BaseEvent: events.NewBaseEvent(), SessionID: sessionID})
	bus.Publish(ctx, events.IntakeCompleted{BaseEvent: events.NewBaseEvent(), SessionID: sessionID, RoomName: "Sovrum", TaskCount: 2})
	bus.Publish(ctx, events.EstimateComputed{BaseEvent: events.NewBaseEvent(), EstimateID: uuid.New(), SessionID: &sessionID, UnmappedCount: 1})
	bus.Publish(ctx, events.EstimateComputed{BaseEvent: events.NewBaseEvent(), EstimateID: uuid.New()})
	bus.Wait()

	got := m.Activity()
	want := Activity{Completed: 1, Resets: 1, Estimates: 2, Unmapped: 1}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	out := buf.String()
	for _, msg := range []string{"audit: intake completed", "audit: intake session reset", "audit: estimate computed", sessionID.String()} {
		if !strings.Contains(out, msg) {
			t.Fatalf("expected log output to contain %q", msg)
		}
	}
}

type unknownEvent struct{ events.BaseEvent }

func (unknownEvent) EventName() string { return "test.unknown" }

func TestHandleIgnoresUnknownEvents(t *testing.T) {
	m := New(logger.Discard())
	if err := m.Handle(context.Background(), unknownEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Activity() != (Activity{}) {
		t.Fatalf("expected no activity, got %+v", m.Activity())
	}
}
