package adapters

import (
	"context"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/estimates/ports"
	"painting_estimator_backend/internal/intake/service"
)

// IntakeSessionReader adapts the intake service for use by the estimates domain.
// It implements the estimates/ports.SessionReader interface.
type IntakeSessionReader struct {
	intake *service.Service
}

// NewIntakeSessionReader creates a new adapter that wraps the intake service.
func NewIntakeSessionReader(intake *service.Service) *IntakeSessionReader {
	return &IntakeSessionReader{intake: intake}
}

// Compile-time check that IntakeSessionReader implements ports.SessionReader.
var _ ports.SessionReader = (*IntakeSessionReader)(nil)

// CompletedSession translates the intake summary into the estimates view.
// Unknown and unfinished sessions surface the intake service's typed errors.
func (a *IntakeSessionReader) CompletedSession(ctx context.Context, id uuid.UUID) (ports.CompletedSession, error) {
	summary, err := a.intake.Summary(ctx, id)
	if err != nil {
		return ports.CompletedSession{}, err
	}

	tasks := make([]ports.SessionTask, 0, len(summary.Tasks))
	for _, t := range summary.Tasks {
		tasks = append(tasks, ports.SessionTask{Phrase: t.Normalized, Layers: t.Layers})
	}
	return ports.CompletedSession{
		SessionID:   summary.SessionID,
		ClientName:  summary.ClientName,
		ProjectName: summary.ProjectName,
		RoomName:    summary.RoomName,
		Width:       summary.Measurements.Width,
		Length:      summary.Measurements.Length,
		Height:      summary.Measurements.Height,
		Doors:       summary.Measurements.Doors,
		Windows:     summary.Measurements.Windows,
		Tasks:       tasks,
	}, nil
}
