package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Marketing service categories.
const (
	CategorySetup = "setup"
	CategorySaaS  = "saas"
)

// Service is an entry of the marketing service catalog.
type Service struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Features    []string  `json:"features"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateParams carries the fields needed to add a catalog entry.
type CreateParams struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Features    []string
	Active      bool
}

// UpdateParams carries a partial catalog update. Nil fields are unchanged.
type UpdateParams struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Features    []string
	Active      *bool
}

// Stats aggregates catalog counters for the dashboard.
type Stats struct {
	Total        int     `json:"total"`
	Active       int     `json:"active"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Repository defines persistence for the service catalog.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Service, error)
	GetByID(ctx context.Context, id uuid.UUID) (Service, error)
	List(ctx context.Context, activeOnly bool) ([]Service, error)
	Update(ctx context.Context, params UpdateParams) (Service, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
}
