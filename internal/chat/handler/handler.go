package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadops_backend/internal/chat/service"
	"leadops_backend/internal/chat/transport"
	"leadops_backend/platform/httpkit"
	"leadops_backend/platform/validator"
)

// Handler handles HTTP requests for the chat assistant.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	msgLeadCaptured = "Lead capturado com sucesso!"
)

// New creates a new chat handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Chat sends a visitor message to the assistant.
// POST /api/v1/chat
func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	reply, err := h.svc.Chat(c.Request.Context(), sessionID, req.Message, req.Mode)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.ChatResponse{
		Message:         reply.Message,
		SessionID:       sessionID,
		IsQualifiedLead: reply.QualifiedLead,
	})
}

// CaptureLead creates a lead from a conversation.
// POST /api/v1/chat/lead
func (h *Handler) CaptureLead(c *gin.Context) {
	var req transport.CaptureLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.CaptureLead(c.Request.Context(), service.CaptureLeadInput{
		SessionID:   req.SessionID,
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		ChatSummary: req.ChatSummary,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, transport.CaptureLeadResponse{
		Success: true,
		Message: msgLeadCaptured,
		LeadID:  lead.ID.String(),
	})
}

// GetSession returns the visible history of a session.
// GET /api/v1/chat/session/:id
func (h *Handler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	messages := h.svc.History(sessionID)

	httpkit.OK(c, transport.SessionResponse{
		SessionID:    sessionID,
		Messages:     messages,
		MessageCount: len(messages),
	})
}
