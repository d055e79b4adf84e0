package transport

import "leadops_backend/platform/ai"

type ChatRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=4000"`
	SessionID string `json:"sessionId,omitempty" validate:"omitempty,max=100"`
	Mode      string `json:"mode,omitempty" validate:"omitempty,oneof=default lead_qualification"`
}

type ChatResponse struct {
	Message         string `json:"message"`
	SessionID       string `json:"sessionId"`
	IsQualifiedLead bool   `json:"isQualifiedLead"`
}

type CaptureLeadRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Company     string `json:"company,omitempty" validate:"omitempty,max=200"`
	ChatSummary string `json:"chatSummary,omitempty" validate:"omitempty,max=5000"`
	SessionID   string `json:"sessionId,omitempty" validate:"omitempty,max=100"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

type SessionResponse struct {
	SessionID    string           `json:"sessionId"`
	Messages     []ai.ChatMessage `json:"messages"`
	MessageCount int              `json:"messageCount"`
}
