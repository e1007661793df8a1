// Package estimates provides the estimates domain module: room geometry and
// pricing of task phrases against the catalog.
package estimates

import (
	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/estimates/handler"
	"painting_estimator_backend/internal/estimates/ports"
	"painting_estimator_backend/internal/estimates/service"
	"painting_estimator_backend/internal/events"
	apphttp "painting_estimator_backend/internal/http"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/validator"
)

// Module represents the estimates domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new estimates module with all dependencies wired
func NewModule(ix *index.Index, pricing service.Pricing, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(ix, pricing, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "estimates"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// SetSessionReader enables estimates for completed intake sessions.
func (m *Module) SetSessionReader(r ports.SessionReader) {
	m.service.SetSessionReader(r)
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/estimates"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
