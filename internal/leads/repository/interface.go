package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/leads/scoring"
)

// Lead statuses tracked by the sales team.
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

// Lead is a prospective customer's submitted contact record, enriched with
// its score, priority and nurturing plan at creation time.
type Lead struct {
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
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// CreateParams contains everything needed to persist an enriched lead.
type CreateParams struct {
	Name              string
	Email             string
	Phone             *string
	Company           *string
	Message           string
	Source            string
	Score             int
	Priority          string
	SuggestedApproach string
	NurturingSequence []scoring.Touchpoint
	CreatedAt         time.Time
}

// UpdateParams contains the admin-editable fields of a lead.
type UpdateParams struct {
	ID       uuid.UUID
	Status   *string
	Priority *string
	Notes    *string
}

// ListParams filters and paginates lead listings.
type ListParams struct {
	Priority string
	Status   string
	Source   string
	Limit    int
	Offset   int
}

// Stats aggregates lead counts for the admin dashboard.
type Stats struct {
	Total        int     `json:"total"`
	Urgent       int     `json:"urgent"`
	High         int     `json:"high"`
	Medium       int     `json:"medium"`
	Low          int     `json:"low"`
	Recent       int     `json:"recent"`
	AverageScore float64 `json:"averageScore"`
	TopSource    string  `json:"topSource"`
}

// Reader provides read operations for leads.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]Lead, error)
	Stats(ctx context.Context) (Stats, error)
}

// Writer provides write operations for leads.
type Writer interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	Update(ctx context.Context, params UpdateParams) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository combines read and write operations.
type Repository interface {
	Reader
	Writer
}
