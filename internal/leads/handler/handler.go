package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/service"
	"leadops_backend/internal/leads/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

// Handler handles HTTP requests for lead management.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead ID"

	msgContactReceived = "Mensagem recebida! Entraremos em contacto em breve."

	defaultListLimit = 50
)

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Create receives a public contact form submission.
// POST /api/v1/contact
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), service.CreateLeadInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Message:   req.Message,
		Source:    req.Source,
		CreatedAt: req.ParsedCreatedAt(),
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.CreateLeadResponse{
		Success: true,
		Message: msgContactReceived,
		LeadID:  lead.ID,
	})
}

// List retrieves leads filtered by priority, status and source.
// GET /api/v1/admin/leads
func (h *Handler) List(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	leads, total, err := h.svc.List(c.Request.Context(), repository.ListParams{
		Priority: req.Priority,
		Status:   req.Status,
		Source:   req.Source,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLeadListResponse(leads, total, req.Limit, req.Offset))
}

// GetByID retrieves a single lead.
// GET /api/v1/admin/leads/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

// Update changes a lead's status or notes.
// PUT /api/v1/admin/leads/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), service.UpdateLeadInput{
		ID:       id,
		Status:   req.Status,
		Priority: req.Priority,
		Notes:    req.Notes,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

// Delete removes a lead.
// DELETE /api/v1/admin/leads/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	c.Status(http.StatusNoContent)
}

// Dashboard returns aggregate lead and catalog statistics.
// GET /api/v1/admin/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, stats)
}
