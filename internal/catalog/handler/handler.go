package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"painting_estimator_backend/internal/catalog/service"
	"painting_estimator_backend/internal/catalog/transport"
	"painting_estimator_backend/platform/httpkit"
	"painting_estimator_backend/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListTasks retrieves catalog tasks.
// GET /api/v1/catalog/tasks
func (h *Handler) ListTasks(c *gin.Context) {
	var req transport.ListTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetTask retrieves a catalog task by id.
// GET /api/v1/catalog/tasks/:id
func (h *Handler) GetTask(c *gin.Context) {
	result, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Resolve maps a spoken phrase to a catalog task.
// GET /api/v1/catalog/resolve?phrase=
func (h *Handler) Resolve(c *gin.Context) {
	var req transport.ResolveRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	result, err := h.svc.Resolve(c.Request.Context(), req.Phrase)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
