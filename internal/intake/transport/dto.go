package transport

import (
	"time"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/intake/domain"
)

// CreateSessionRequest starts a conversation. ClientName skips the first question.
type CreateSessionRequest struct {
	ClientName string `json:"clientName" validate:"max=200"`
}

// UtteranceRequest carries one transcribed utterance.
type UtteranceRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// SessionResponse is the public view of a session.
type SessionResponse struct {
	ID           uuid.UUID            `json:"id"`
	Step         domain.Step          `json:"step"`
	Prompt       string               `json:"prompt"`
	Complete     bool                 `json:"complete"`
	ClientName   string               `json:"clientName,omitempty"`
	ProjectName  string               `json:"projectName,omitempty"`
	RoomName     string               `json:"roomName,omitempty"`
	Measurements *domain.Measurements `json:"measurements,omitempty"`
	Tasks        []domain.TaskEntry   `json:"tasks"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// FromSession builds the public view of s.
func FromSession(s domain.Session) SessionResponse {
	tasks := s.Tasks
	if tasks == nil {
		tasks = []domain.TaskEntry{}
	}
	return SessionResponse{
		ID:           s.ID,
		Step:         s.Step,
		Prompt:       s.Step.Prompt(),
		Complete:     s.Step == domain.StepComplete,
		ClientName:   s.ClientName,
		ProjectName:  s.ProjectName,
		RoomName:     s.RoomName,
		Measurements: s.Measurements,
		Tasks:        tasks,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
