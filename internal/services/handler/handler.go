package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadops_backend/internal/services/repository"
	"leadops_backend/internal/services/service"
	"leadops_backend/internal/services/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

// Handler handles HTTP requests for the service catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid service ID"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListActive retrieves active catalog entries (public).
// GET /api/v1/services
func (h *Handler) ListActive(c *gin.Context) {
	services, err := h.svc.List(c.Request.Context(), true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceListResponse(services))
}

// List retrieves all catalog entries (admin).
// GET /api/v1/admin/services
func (h *Handler) List(c *gin.Context) {
	services, err := h.svc.List(c.Request.Context(), false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceListResponse(services))
}

// GetByID retrieves a catalog entry.
// GET /api/v1/admin/services/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	svc, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceResponse(svc))
}

// Create adds a catalog entry.
// POST /api/v1/admin/services
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	svc, err := h.svc.Create(c.Request.Context(), repository.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Features:    req.Features,
		Active:      active,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, transport.ToServiceResponse(svc))
}

// Update applies a partial update to a catalog entry.
// PUT /api/v1/admin/services/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	svc, err := h.svc.Update(c.Request.Context(), repository.UpdateParams{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Features:    req.Features,
		Active:      req.Active,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToServiceResponse(svc))
}

// Delete removes a catalog entry.
// DELETE /api/v1/admin/services/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
