package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"

	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/catalog/service"
	"painting_estimator_backend/internal/catalog/transport"
	"painting_estimator_backend/internal/shared/surface"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/validator"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ix, err := index.NewIndex([]index.Record{
		{ID: "MALA-VAGG", Name: "Målning väggar", Unit: index.UnitArea, LaborNormPerUnit: 0.1, MaterialPricePerUnit: 18, Surface: surface.Wall, Synonyms: "måla väggar"},
		{ID: "MALA-TAK", Name: "Målning tak", Unit: index.UnitArea, LaborNormPerUnit: 0.12, MaterialPricePerUnit: 20, Surface: surface.Ceiling, Synonyms: "måla tak"},
		{ID: "LACK-GOLV", Name: "Lackering golv", Unit: index.UnitArea, LaborNormPerUnit: 0.15, MaterialPricePerUnit: 35, Surface: surface.Floor, Synonyms: "lacka golv"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h := New(service.New(ix, logger.Discard()), validator.New())
	r := gin.New()
	r.GET("/catalog/tasks", h.ListTasks)
	r.GET("/catalog/tasks/:id", h.GetTask)
	r.GET("/catalog/resolve", h.Resolve)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListTasks(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		query string
		total int
	}{
		{"", 3},
		{"?surface=tak", 1},
		{"?surface=wall", 1},
		{"?q=golv", 1},
		{"?q=" + url.QueryEscape("målning"), 2},
	}
	for _, tc := range tests {
		w := get(r, "/catalog/tasks"+tc.query)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 for %q, got %d: %s", tc.query, w.Code, w.Body.String())
		}
		var resp transport.TaskListResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Total != tc.total || len(resp.Items) != tc.total {
			t.Fatalf("expected %d tasks for %q, got %d", tc.total, tc.query, resp.Total)
		}
	}

	if w := get(r, "/catalog/tasks?surface=trappa"); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown surface, got %d", w.Code)
	}
}

func TestGetTask(t *testing.T) {
	r := newTestRouter(t)

	if w := get(r, "/catalog/tasks/mala-tak"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := get(r, "/catalog/tasks/NOPE"); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestResolve(t *testing.T) {
	r := newTestRouter(t)

	w := get(r, "/catalog/resolve?phrase="+url.QueryEscape("Måla väggar"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Found      bool    `json:"found"`
		Confidence float64 `json:"confidence"`
		Record     struct {
			ID string `json:"id"`
		} `json:"record"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Found || resp.Record.ID != "MALA-VAGG" || resp.Confidence != 1 {
		t.Fatalf("unexpected resolve response: %s", w.Body.String())
	}

	w = get(r, "/catalog/resolve?phrase="+url.QueryEscape("byta kranen"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Found {
		t.Fatalf("expected no match, got %s", w.Body.String())
	}

	if w := get(r, "/catalog/resolve"); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without phrase, got %d", w.Code)
	}
}
