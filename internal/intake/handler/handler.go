package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"painting_estimator_backend/internal/intake/service"
	"painting_estimator_backend/internal/intake/transport"
	"painting_estimator_backend/platform/httpkit"
	"painting_estimator_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
)

// Handler handles HTTP requests for intake sessions
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new intake handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the intake routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/utterances", h.Process)
	rg.GET("/:id/summary", h.Summary)
	rg.POST("/:id/reset", h.Reset)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/intake/sessions
// The body is optional.
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	session, err := h.svc.Create(c.Request.Context(), req.ClientName)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.FromSession(session))
}

// Get handles GET /api/v1/intake/sessions/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSession(session))
}

// Process handles POST /api/v1/intake/sessions/:id/utterances
// A rejected utterance is still a 200; the result says what to repeat.
func (h *Handler) Process(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	var req transport.UtteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	result, err := h.svc.Process(c.Request.Context(), id, req.Text)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Summary handles GET /api/v1/intake/sessions/:id/summary
// Returns 409 until the session is complete.
func (h *Handler) Summary(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	summary, err := h.svc.Summary(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}

// Reset handles POST /api/v1/intake/sessions/:id/reset
func (h *Handler) Reset(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	session, err := h.svc.Reset(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.FromSession(session))
}

// Delete handles DELETE /api/v1/intake/sessions/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}
