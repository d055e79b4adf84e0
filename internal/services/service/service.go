package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"leadops_backend/internal/services/repository"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

// Service implements the catalog use cases on top of the repository.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates the catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func validCategory(category string) bool {
	return category == repository.CategorySetup || category == repository.CategorySaaS
}

// Create adds a catalog entry.
func (s *Service) Create(ctx context.Context, params repository.CreateParams) (repository.Service, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Description = strings.TrimSpace(params.Description)

	if params.Name == "" {
		return repository.Service{}, apperr.Validation("name is required")
	}
	if params.Description == "" {
		return repository.Service{}, apperr.Validation("description is required")
	}
	if params.Price < 0 {
		return repository.Service{}, apperr.Validation("price must not be negative")
	}
	if !validCategory(params.Category) {
		return repository.Service{}, apperr.Validation("category must be setup or saas")
	}

	svc, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Service{}, err
	}
	s.log.Info("service created", "service_id", svc.ID, "name", svc.Name, "category", svc.Category)
	return svc, nil
}

// Get returns a catalog entry by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns catalog entries, optionally restricted to active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]repository.Service, error) {
	return s.repo.List(ctx, activeOnly)
}

// Update applies a partial update to a catalog entry.
func (s *Service) Update(ctx context.Context, params repository.UpdateParams) (repository.Service, error) {
	if params.Category != nil && !validCategory(*params.Category) {
		return repository.Service{}, apperr.Validation("category must be setup or saas")
	}
	if params.Price != nil && *params.Price < 0 {
		return repository.Service{}, apperr.Validation("price must not be negative")
	}
	return s.repo.Update(ctx, params)
}

// Delete removes a catalog entry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("service deleted", "service_id", id)
	return nil
}

// Stats returns catalog counters for the dashboard.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	return s.repo.Stats(ctx)
}
