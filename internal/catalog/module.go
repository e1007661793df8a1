// Package catalog provides the catalog bounded context module.
package catalog

import (
	"painting_estimator_backend/internal/catalog/handler"
	"painting_estimator_backend/internal/catalog/index"
	"painting_estimator_backend/internal/catalog/service"
	apphttp "painting_estimator_backend/internal/http"
	"painting_estimator_backend/platform/logger"
	"painting_estimator_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the catalog module over a loaded index.
func NewModule(ix *index.Index, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(ix, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/catalog/tasks", m.handler.ListTasks)
	ctx.Protected.GET("/catalog/tasks/:id", m.handler.GetTask)
	ctx.Protected.GET("/catalog/resolve", m.handler.Resolve)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
