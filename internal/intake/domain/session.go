// Package domain holds the intake conversation types shared by the parser,
// the state machine and the session stores.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step is a conversation state.
type Step string

const (
	StepAwaitingClientName   Step = "awaiting_client_name"
	StepAwaitingProjectName  Step = "awaiting_project_name"
	StepAwaitingRoomName     Step = "awaiting_room_name"
	StepAwaitingMeasurements Step = "awaiting_measurements"
	StepCollectingTasks      Step = "collecting_tasks"
	StepConfirming           Step = "confirming"
	StepComplete             Step = "complete"
)

var stepOrder = []Step{
	StepAwaitingClientName,
	StepAwaitingProjectName,
	StepAwaitingRoomName,
	StepAwaitingMeasurements,
	StepCollectingTasks,
	StepConfirming,
	StepComplete,
}

// Next returns the step that follows s in the fixed order. Complete is its own successor.
func (s Step) Next() Step {
	for i, step := range stepOrder {
		if step == s && i+1 < len(stepOrder) {
			return stepOrder[i+1]
		}
	}
	return StepComplete
}

// Valid reports whether s is one of the defined steps.
func (s Step) Valid() bool {
	for _, step := range stepOrder {
		if step == s {
			return true
		}
	}
	return false
}

var prompts = map[Step]string{
	StepAwaitingClientName:   "Vad heter kunden?",
	StepAwaitingProjectName:  "Vad heter projektet?",
	StepAwaitingRoomName:     "Vilket rum gäller det?",
	StepAwaitingMeasurements: "Ange rummets mått: bredd gånger längd gånger höjd i meter.",
	StepCollectingTasks:      "Vilka arbeten ska göras? Säg klar när du är färdig.",
	StepConfirming:           "Stämmer det? Svara ja för att bekräfta eller lägg till för fler arbeten.",
	StepComplete:             "",
}

// Prompt returns the question asked while in s. Complete has no prompt.
func (s Step) Prompt() string {
	return prompts[s]
}

// Measurements is a possibly partial set of room dimensions in meters.
// A zero dimension means it was not given.
type Measurements struct {
	Width   float64 `json:"width"`
	Length  float64 `json:"length"`
	Height  float64 `json:"height"`
	Doors   int     `json:"doors"`
	Windows int     `json:"windows"`
}

// Complete reports whether width, length and height are all present.
func (m Measurements) Complete() bool {
	return m.Width > 0 && m.Length > 0 && m.Height > 0
}

// TaskEntry is one collected task phrase. Layers is zero when none was spoken.
type TaskEntry struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Layers     int    `json:"layers,omitempty"`
}

// Session is the state of one intake conversation.
type Session struct {
	ID           uuid.UUID     `json:"id"`
	Step         Step          `json:"step"`
	ClientName   string        `json:"clientName,omitempty"`
	ProjectName  string        `json:"projectName,omitempty"`
	RoomName     string        `json:"roomName,omitempty"`
	Measurements *Measurements `json:"measurements,omitempty"`
	Tasks        []TaskEntry   `json:"tasks"`
	ClientPreset bool          `json:"clientPreset,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Summary is the collected result of a completed session.
type Summary struct {
	SessionID    uuid.UUID    `json:"sessionId"`
	ClientName   string       `json:"clientName"`
	ProjectName  string       `json:"projectName"`
	RoomName     string       `json:"roomName"`
	Measurements Measurements `json:"measurements"`
	Tasks        []TaskEntry  `json:"tasks"`
}

// TaskPhrases returns the normalized phrases in collection order.
func (s Summary) TaskPhrases() []string {
	out := make([]string, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		out = append(out, t.Normalized)
	}
	return out
}

// Clone returns a deep copy so stored sessions never share slices with callers.
func (s Session) Clone() Session {
	out := s
	if s.Measurements != nil {
		m := *s.Measurements
		out.Measurements = &m
	}
	out.Tasks = make([]TaskEntry, len(s.Tasks))
	copy(out.Tasks, s.Tasks)
	return out
}
