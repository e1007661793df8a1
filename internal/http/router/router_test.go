package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "painting_estimator_backend/internal/http"
	"painting_estimator_backend/platform/logger"
)

type testConfig struct {
	origins []string
	secret  string
}

func (c testConfig) GetHTTPAddr() string      { return ":0" }
func (c testConfig) GetCORSAllowAll() bool    { return len(c.origins) == 0 }
func (c testConfig) GetCORSOrigins() []string { return c.origins }
func (c testConfig) GetCORSAllowCreds() bool  { return false }
func (c testConfig) GetRateLimitRPS() float64 { return 100 }
func (c testConfig) GetRateLimitBurst() int   { return 100 }
func (c testConfig) GetJWTSecret() string     { return c.secret }
func (c testConfig) IsAuthEnabled() bool      { return c.secret != "" }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }

func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newApp(cfg testConfig, health map[string]apphttp.HealthChecker) *apphttp.App {
	gin.SetMode(gin.TestMode)
	return &apphttp.App{
		Config:  cfg,
		Logger:  logger.Discard(),
		Health:  health,
		Modules: []apphttp.Module{pingModule{}},
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		health map[string]apphttp.HealthChecker
		want   int
		status string
	}{
		{"no components", nil, http.StatusOK, "ok"},
		{"redis up", map[string]apphttp.HealthChecker{"redis": pinger{}}, http.StatusOK, "ok"},
		{"database down", map[string]apphttp.HealthChecker{"redis": pinger{}, "database": pinger{err: errors.New("down")}}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := New(newApp(testConfig{}, tt.health))
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			var body struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if body.Status != tt.status {
				t.Fatalf("expected status %q, got %q", tt.status, body.Status)
			}
		})
	}
}

func TestModulesMountedUnderV1(t *testing.T) {
	engine := New(newApp(testConfig{}, nil))
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("expected pong, got %d %q", w.Code, w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected a request id header")
	}
}

func TestAuthGuardsProtectedRoutes(t *testing.T) {
	engine := New(newApp(testConfig{secret: "s3cret"}, nil))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected health to stay public, got %d", w.Code)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	engine := New(newApp(testConfig{origins: []string{"https://app.example.se"}}, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://app.example.se")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.se" {
		t.Fatalf("expected origin to be allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a foreign origin, got %d", w.Code)
	}
}
