package transport

import (
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/services/repository"
)

type CreateServiceRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,min=1,max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	Category    string   `json:"category" validate:"required,oneof=setup saas"`
	Features    []string `json:"features" validate:"omitempty,dive,max=200"`
	Active      *bool    `json:"active,omitempty"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,oneof=setup saas"`
	Features    []string `json:"features,omitempty" validate:"omitempty,dive,max=200"`
	Active      *bool    `json:"active,omitempty"`
}

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Features    []string  `json:"features"`
	Active      bool      `json:"active"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

type ServiceListResponse struct {
	Items []ServiceResponse `json:"items"`
	Total int               `json:"total"`
}

func ToServiceResponse(svc repository.Service) ServiceResponse {
	features := svc.Features
	if features == nil {
		features = []string{}
	}
	return ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		Category:    svc.Category,
		Features:    features,
		Active:      svc.Active,
		CreatedAt:   svc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   svc.UpdatedAt.Format(time.RFC3339),
	}
}

func ToServiceListResponse(services []repository.Service) ServiceListResponse {
	items := make([]ServiceResponse, 0, len(services))
	for _, svc := range services {
		items = append(items, ToServiceResponse(svc))
	}
	return ServiceListResponse{Items: items, Total: len(items)}
}
