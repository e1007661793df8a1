package httpkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"painting_estimator_backend/platform/apperr"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		want    int
		message string
	}{
		{"not found", apperr.NotFound("session not found"), http.StatusNotFound, "session not found"},
		{"validation", apperr.Validation("invalid room geometry"), http.StatusUnprocessableEntity, "invalid room geometry"},
		{"conflict", apperr.Conflict("session is not complete"), http.StatusConflict, "session is not complete"},
		{"wrapped", fmt.Errorf("load: %w", apperr.Gone("expired")), http.StatusGone, "expired"},
		{"untyped", errors.New("dial tcp: refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			if !HandleError(c, tt.err) {
				t.Fatal("expected the error to be handled")
			}
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			var resp ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.Error != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, resp.Error)
			}
		})
	}
}

func TestHandleErrorNil(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if HandleError(c, nil) {
		t.Fatal("expected nil to be ignored")
	}
}
