package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"painting_estimator_backend/internal/intake/domain"
	"painting_estimator_backend/internal/intake/repository"
	"painting_estimator_backend/internal/intake/service"
	"painting_estimator_backend/internal/intake/transport"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/validator"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.New(repository.NewMemoryStore(time.Hour), nil, logger.Discard())
	r := gin.New()
	New(svc, validator.New()).RegisterRoutes(r.Group("/intake/sessions"))
	return r
}

func do(r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unexpected error decoding %s: %v", w.Body.String(), err)
	}
	return out
}

func TestConversationOverHTTP(t *testing.T) {
	r := newTestRouter()

	w := do(r, http.MethodPost, "/intake/sessions", transport.CreateSessionRequest{ClientName: "Anna Berg"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	created := decode[transport.SessionResponse](t, w)
	if created.Step != domain.StepAwaitingProjectName || created.Prompt != "Vad heter projektet?" {
		t.Fatalf("unexpected new session: %+v", created)
	}
	base := "/intake/sessions/" + created.ID.String()

	if w := do(r, http.MethodGet, base+"/summary", nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 before completion, got %d", w.Code)
	}

	for _, text := range []string{
		"Projektet heter Villa Solgläntan",
		"sovrummet",
		"fyra gånger fem gånger två och en halv",
		"måla väggarna två lager",
		"klar",
	} {
		w := do(r, http.MethodPost, base+"/utterances", transport.UtteranceRequest{Text: text})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %q, got %d", text, w.Code)
		}
		if res := decode[service.Result](t, w); !res.Accepted {
			t.Fatalf("expected %q to be accepted, got %+v", text, res)
		}
	}

	w = do(r, http.MethodPost, base+"/utterances", transport.UtteranceRequest{Text: "nej"})
	if res := decode[service.Result](t, w); res.Accepted || res.Step != domain.StepConfirming {
		t.Fatalf("expected rejection while confirming, got %+v", res)
	}

	w = do(r, http.MethodPost, base+"/utterances", transport.UtteranceRequest{Text: "ja"})
	if res := decode[service.Result](t, w); !res.Complete {
		t.Fatalf("expected completion, got %+v", res)
	}

	w = do(r, http.MethodGet, base+"/summary", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	summary := decode[domain.Summary](t, w)
	if summary.RoomName != "sovrummet" || len(summary.Tasks) != 1 || summary.Measurements.Width != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestCreateWithoutBody(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/intake/sessions", nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if s := decode[transport.SessionResponse](t, w); s.Step != domain.StepAwaitingClientName || s.Tasks == nil {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestResetAndDelete(t *testing.T) {
	r := newTestRouter()
	created := decode[transport.SessionResponse](t, do(r, http.MethodPost, "/intake/sessions", nil))
	base := "/intake/sessions/" + created.ID.String()

	do(r, http.MethodPost, base+"/utterances", transport.UtteranceRequest{Text: "Erik Lund"})
	w := do(r, http.MethodPost, base+"/reset", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if s := decode[transport.SessionResponse](t, w); s.Step != domain.StepAwaitingClientName || s.ClientName != "" {
		t.Fatalf("expected a fresh session after reset, got %+v", s)
	}

	if w := do(r, http.MethodDelete, base, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := do(r, http.MethodGet, base, nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestRequestErrors(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"bad id", http.MethodGet, "/intake/sessions/nope", http.StatusBadRequest},
		{"unknown session", http.MethodGet, "/intake/sessions/" + uuid.NewString(), http.StatusNotFound},
		{"unknown utterance target", http.MethodPost, "/intake/sessions/" + uuid.NewString() + "/utterances", http.StatusNotFound},
		{"unknown delete", http.MethodDelete, "/intake/sessions/" + uuid.NewString(), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.target, transport.UtteranceRequest{Text: "hej"})
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
