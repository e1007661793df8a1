// Package intake provides the intake domain module: spoken conversations that
// collect client, project, room, measurements and tasks.
package intake

import (
	"painting_estimator_backend/internal/events"
	apphttp "painting_estimator_backend/internal/http"
	"painting_estimator_backend/internal/intake/handler"
	"painting_estimator_backend/internal/intake/repository"
	"painting_estimator_backend/internal/intake/service"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/validator"
)

// Module represents the intake domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new intake module with all dependencies wired
func NewModule(store repository.SessionStore, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(store, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "intake"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/intake/sessions"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
