package transport

import (
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
)

// CreateLeadRequest is the public contact form payload.
type CreateLeadRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Company string `json:"company,omitempty" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
	Source  string `json:"source,omitempty" validate:"omitempty,max=50"`
	// Submission timestamp from the widget, RFC 3339. Unparsable or absent
	// values fall back to the server clock.
	CreatedAt string `json:"created_at,omitempty"`
}

// ParsedCreatedAt returns the submission time, or the zero time when the
// field is absent or malformed.
func (r CreateLeadRequest) ParsedCreatedAt() time.Time {
	if r.CreatedAt == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// CreateLeadResponse acknowledges a contact form submission.
type CreateLeadResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	LeadID  uuid.UUID `json:"leadId"`
}

// UpdateLeadRequest contains admin-editable lead fields.
type UpdateLeadRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=baixa media alta urgente"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

// ListLeadsRequest filters and paginates lead listings.
type ListLeadsRequest struct {
	Priority string `form:"priority" validate:"omitempty,oneof=baixa media alta urgente"`
	Status   string `form:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Source   string `form:"source" validate:"omitempty,max=50"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=200"`
	Offset   int    `form:"offset" validate:"omitempty,min=0"`
}

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	ID                uuid.UUID            `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	Phone             *string              `json:"phone,omitempty"`
	Company           *string              `json:"company,omitempty"`
	Message           string               `json:"message"`
	Source            string               `json:"source"`
	Score             int                  `json:"score"`
	Priority          string               `json:"priority"`
	Status            string               `json:"status"`
	SuggestedApproach string               `json:"suggestedApproach"`
	NurturingSequence []scoring.Touchpoint `json:"nurturingSequence"`
	Notes             *string              `json:"notes,omitempty"`
	CreatedAt         string               `json:"createdAt"`
	UpdatedAt         string               `json:"updatedAt"`
}

// LeadListResponse wraps a paginated list of leads.
type LeadListResponse struct {
	Items  []LeadResponse `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ToLeadResponse maps a domain lead to its API representation.
func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:                lead.ID,
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             lead.Phone,
		Company:           lead.Company,
		Message:           lead.Message,
		Source:            lead.Source,
		Score:             lead.Score,
		Priority:          lead.Priority,
		Status:            lead.Status,
		SuggestedApproach: lead.SuggestedApproach,
		NurturingSequence: lead.NurturingSequence,
		Notes:             lead.Notes,
		CreatedAt:         lead.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         lead.UpdatedAt.Format(time.RFC3339),
	}
}

// ToLeadListResponse maps a page of leads to the list payload.
func ToLeadListResponse(leads []repository.Lead, total, limit, offset int) LeadListResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, ToLeadResponse(lead))
	}
	return LeadListResponse{Items: items, Total: total, Limit: limit, Offset: offset}
}
