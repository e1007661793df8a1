package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"painting_estimator_backend/internal/estimates/service"
	"painting_estimator_backend/internal/estimates/transport"
	"painting_estimator_backend/platform/httpkit"
	"painting_estimator_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidSessionID = "invalid session id"
)

// Handler handles HTTP requests for estimates
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new estimates handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the estimate routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/pricing", h.GetPricing)
	rg.POST("", h.Compute)
	rg.POST("/rooms/calculate", h.CalculateRoom)
	rg.POST("/sessions/:id", h.ComputeForSession)
}

// Compute handles POST /api/v1/estimates
// Prices an explicit room and task list. Nothing is persisted.
func (h *Handler) Compute(c *gin.Context) {
	var req transport.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	result, err := h.svc.Compute(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CalculateRoom handles POST /api/v1/estimates/rooms/calculate
// Returns the room areas without pricing anything.
func (h *Handler) CalculateRoom(c *gin.Context) {
	var req transport.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	result, err := service.CalculateRoom(req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ComputeForSession handles POST /api/v1/estimates/sessions/:id
// The body is optional and may add explicit windows or wardrobes.
func (h *Handler) ComputeForSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidSessionID, nil)
		return
	}

	var req transport.SessionEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.Violations(err))
		return
	}

	result, err := h.svc.ComputeForSession(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPricing handles GET /api/v1/estimates/pricing
func (h *Handler) GetPricing(c *gin.Context) {
	p := h.svc.Pricing()
	httpkit.OK(c, transport.PricingResponse{
		LaborPricePerHour: p.LaborPricePerHour,
		GlobalMarkupPct:   p.GlobalMarkupPct,
		ROTRate:           p.ROTRate,
		ROTCap:            p.ROTCap,
		MinConfidence:     p.MinConfidence,
	})
}
