package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"painting_estimator_backend/internal/intake/domain"
	"painting_estimator_backend/internal/intake/parser"
	"painting_estimator_backend/platform/apperr"
	"painting_estimator_backend/platform/sanitize"
)

// Result reports the outcome of one utterance.
type Result struct {
	Accepted   bool        `json:"accepted"`
	Message    string      `json:"message"`
	NextPrompt string      `json:"nextPrompt"`
	Step       domain.Step `json:"step"`
	Complete   bool        `json:"complete"`
}

// SessionOption configures a new session.
type SessionOption func(*domain.Session)

// WithClientName presets the client and starts the conversation at the project name.
func WithClientName(name string) SessionOption {
	return func(s *domain.Session) {
		name = sanitize.Text(name)
		if name == "" {
			return
		}
		s.ClientName = name
		s.ClientPreset = true
		s.Step = domain.StepAwaitingProjectName
	}
}

// NewSession starts a conversation at its first step.
func NewSession(opts ...SessionOption) *domain.Session {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:        uuid.New(),
		Step:      domain.StepAwaitingClientName,
		Tasks:     []domain.TaskEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt returns the question for the session's current step.
func Prompt(s *domain.Session) string {
	return s.Step.Prompt()
}

// IsComplete reports whether the session reached the terminal step.
func IsComplete(s *domain.Session) bool {
	return s.Step == domain.StepComplete
}

// Summary returns the collected data of a completed session.
func Summary(s *domain.Session) (domain.Summary, error) {
	if !IsComplete(s) || s.Measurements == nil {
		return domain.Summary{}, apperr.Conflict("session is not complete").WithOp("intake.Summary")
	}
	tasks := make([]domain.TaskEntry, len(s.Tasks))
	copy(tasks, s.Tasks)
	return domain.Summary{
		SessionID:    s.ID,
		ClientName:   s.ClientName,
		ProjectName:  s.ProjectName,
		RoomName:     s.RoomName,
		Measurements: *s.Measurements,
		Tasks:        tasks,
	}, nil
}

// Reset discards collected data and returns the session to its first step.
// A preset client name survives.
func Reset(s *domain.Session) {
	s.Step = domain.StepAwaitingClientName
	if s.ClientPreset {
		s.Step = domain.StepAwaitingProjectName
	} else {
		s.ClientName = ""
	}
	s.ProjectName = ""
	s.RoomName = ""
	s.Measurements = nil
	s.Tasks = []domain.TaskEntry{}
	s.UpdatedAt = time.Now().UTC()
}

const (
	msgNothingHeard      = "Jag hörde inget."
	msgNameMissing       = "Jag uppfattade inget namn."
	msgNoTasksYet        = "Inga arbeten är registrerade än."
	msgNotUnderstood     = "Jag uppfattade inte svaret."
	msgAddMore           = "Okej, vilka fler arbeten?"
	msgConfirmed         = "Tack, underlaget är klart."
	msgAlreadyComplete   = "Samtalet är redan avslutat."
	msgMeasurementsShort = "Jag fick inte alla mått, %s saknas."
)

// Process applies one utterance to the session. Rejected input leaves the
// session untouched and repeats the current prompt.
func Process(s *domain.Session, text string) Result {
	if s.Step == domain.StepComplete {
		return reject(s, msgAlreadyComplete)
	}
	if strings.TrimSpace(sanitize.Text(text)) == "" {
		return reject(s, msgNothingHeard)
	}

	var res Result
	switch s.Step {
	case domain.StepAwaitingClientName:
		res = acceptName(s, text, func(name string) { s.ClientName = name }, "Kund: %s.")
	case domain.StepAwaitingProjectName:
		res = acceptName(s, text, func(name string) { s.ProjectName = name }, "Projekt: %s.")
	case domain.StepAwaitingRoomName:
		res = acceptName(s, text, func(name string) { s.RoomName = name }, "Rum: %s.")
	case domain.StepAwaitingMeasurements:
		res = processMeasurements(s, text)
	case domain.StepCollectingTasks:
		res = processTasks(s, text)
	case domain.StepConfirming:
		res = processConfirmation(s, text)
	default:
		return reject(s, msgNotUnderstood)
	}
	if res.Accepted {
		s.UpdatedAt = time.Now().UTC()
	}
	return res
}

func reject(s *domain.Session, message string) Result {
	return Result{
		Accepted:   false,
		Message:    message,
		NextPrompt: s.Step.Prompt(),
		Step:       s.Step,
		Complete:   IsComplete(s),
	}
}

func advance(s *domain.Session, to domain.Step, message string) Result {
	s.Step = to
	return Result{
		Accepted:   true,
		Message:    message,
		NextPrompt: to.Prompt(),
		Step:       to,
		Complete:   to == domain.StepComplete,
	}
}

func acceptName(s *domain.Session, text string, set func(string), format string) Result {
	name := extractName(text)
	if name == "" {
		return reject(s, msgNameMissing)
	}
	set(name)
	return advance(s, s.Step.Next(), fmt.Sprintf(format, name))
}

// namePrefixes are lead-ins speakers put before a name. Longer forms come
// first so "det heter" wins over "det".
var namePrefixes = []string{
	"kundens namn är",
	"projektets namn är",
	"rummets namn är",
	"kunden heter",
	"projektet heter",
	"rummet heter",
	"kunden är",
	"projektet är",
	"rummet är",
	"vi kallar det",
	"det gäller",
	"det heter",
	"den heter",
	"hon heter",
	"han heter",
	"hen heter",
	"namnet är",
	"det blir",
	"det är",
	"vi tar",
	"ja",
	"okej",
}

// extractName strips lead-ins and punctuation but keeps the speaker's casing.
func extractName(text string) string {
	name := strings.Trim(sanitize.Text(text), " .,!?;:")
	for range len(namePrefixes) {
		stripped := false
		for _, p := range namePrefixes {
			if rest, ok := cutPrefixWord(name, p); ok {
				name = strings.TrimLeft(rest, " ,:")
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Trim(name, " .,!?;:")
}

// cutPrefixWord removes prefix p from s, ignoring case, when p ends on a word boundary.
func cutPrefixWord(s, p string) (string, bool) {
	if len(s) < len(p) || !strings.EqualFold(s[:len(p)], p) {
		return s, false
	}
	rest := s[len(p):]
	if rest != "" && !strings.ContainsRune(" ,:", rune(rest[0])) {
		return s, false
	}
	return rest, true
}

func processMeasurements(s *domain.Session, text string) Result {
	m := parser.ParseMeasurements(sanitize.Utterance(text))
	if !m.Complete() {
		return reject(s, fmt.Sprintf(msgMeasurementsShort, missingDimensions(m)))
	}
	s.Measurements = &m
	return advance(s, s.Step.Next(), fmt.Sprintf("Mått: %s × %s × %s meter, %d %s och %d fönster.",
		formatMeters(m.Width), formatMeters(m.Length), formatMeters(m.Height),
		m.Doors, plural(m.Doors, "dörr", "dörrar"), m.Windows))
}

func missingDimensions(m domain.Measurements) string {
	var missing []string
	if m.Width <= 0 {
		missing = append(missing, "bredd")
	}
	if m.Length <= 0 {
		missing = append(missing, "längd")
	}
	if m.Height <= 0 {
		missing = append(missing, "höjd")
	}
	return joinSwedish(missing)
}

func processTasks(s *domain.Session, text string) Result {
	utterance := sanitize.Utterance(text)
	if isDone(utterance) {
		if len(s.Tasks) == 0 {
			return reject(s, msgNoTasksYet)
		}
		return advance(s, domain.StepConfirming, "Sammanfattning: "+describeTasks(s.Tasks)+".")
	}
	if len(contentWords(utterance)) == 0 {
		return reject(s, msgNotUnderstood)
	}

	added := appendTasks(s, text, utterance)
	return advance(s, domain.StepCollectingTasks, "Noterat: "+describeTasks(added)+".")
}

// appendTasks stores the parsed phrases, or the utterance itself when nothing
// in the phrase table matched.
func appendTasks(s *domain.Session, raw, utterance string) []domain.TaskEntry {
	phrases := parser.ParseTasks(utterance)
	added := make([]domain.TaskEntry, 0, max(len(phrases), 1))
	for _, p := range phrases {
		added = append(added, domain.TaskEntry{Raw: strings.TrimSpace(raw), Normalized: p.Normalized, Layers: p.Layers})
	}
	if len(added) == 0 {
		added = append(added, domain.TaskEntry{
			Raw:        strings.TrimSpace(raw),
			Normalized: utterance,
			Layers:     parser.ParseLayers(parser.ResolveNumerals(utterance)),
		})
	}
	s.Tasks = append(s.Tasks, added...)
	return added
}

func processConfirmation(s *domain.Session, text string) Result {
	utterance := sanitize.Utterance(text)
	switch {
	case declinesMore(utterance):
		if vetoed(utterance) {
			return reject(s, msgNotUnderstood)
		}
		return advance(s, domain.StepComplete, msgConfirmed)
	case wantsMore(utterance):
		if len(parser.ParseTasks(utterance)) > 0 {
			added := appendTasks(s, text, utterance)
			return advance(s, domain.StepCollectingTasks, "Noterat: "+describeTasks(added)+".")
		}
		return advance(s, domain.StepCollectingTasks, msgAddMore)
	case isAffirmative(utterance):
		return advance(s, domain.StepComplete, msgConfirmed)
	}
	return reject(s, msgNotUnderstood)
}

func describeTasks(tasks []domain.TaskEntry) string {
	parts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if t.Layers > 0 {
			parts = append(parts, fmt.Sprintf("%s (%d lager)", t.Normalized, t.Layers))
			continue
		}
		parts = append(parts, t.Normalized)
	}
	return strings.Join(parts, ", ")
}

func formatMeters(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// joinSwedish joins with commas and a final "och".
func joinSwedish(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " och " + items[len(items)-1]
}
