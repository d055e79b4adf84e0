// Package service implements the lead processing orchestration: validation,
// enrichment (score, priority, nurturing plan, approach), persistence,
// alerting and follow-up scheduling.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/events"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/phone"
)

// alertTimeout bounds how long lead creation waits on the alert collaborator.
// Dispatch failures are non-fatal; the lead is returned enriched regardless.
const alertTimeout = 10 * time.Second

// AlertDispatcher notifies a human operator of a high-priority lead.
type AlertDispatcher interface {
	DispatchLeadAlert(ctx context.Context, lead repository.Lead, actionWindow string) error
}

// NurturingScheduler enqueues the timed follow-up touchpoints for a lead.
type NurturingScheduler interface {
	ScheduleSequence(ctx context.Context, lead repository.Lead) error
}

// CatalogStatsProvider supplies service catalog counters for the dashboard.
type CatalogStatsProvider interface {
	CatalogStats(ctx context.Context) (CatalogStats, error)
}

// CatalogStats aggregates service catalog counters.
type CatalogStats struct {
	Total        int     `json:"total"`
	Active       int     `json:"active"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	Leads    repository.Stats `json:"leads"`
	Services CatalogStats     `json:"services"`
}

// CreateLeadInput is the raw intake payload before enrichment.
type CreateLeadInput struct {
	Name      string
	Email     string
	Phone     string
	Company   string
	Message   string
	Source    string
	CreatedAt time.Time
}

// UpdateLeadInput carries admin edits to a lead.
type UpdateLeadInput struct {
	ID       uuid.UUID
	Status   *string
	Priority *string
	Notes    *string
}

// Service orchestrates the lead lifecycle.
type Service struct {
	repo       repository.Repository
	calculator *scoring.Calculator
	alerts     AlertDispatcher
	scheduler  NurturingScheduler
	catalog    CatalogStatsProvider
	bus        events.Bus
	log        *logger.Logger
}

// New creates the lead service. alerts, scheduler and catalog may be nil.
func New(
	repo repository.Repository,
	calculator *scoring.Calculator,
	alerts AlertDispatcher,
	scheduler NurturingScheduler,
	catalog CatalogStatsProvider,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:       repo,
		calculator: calculator,
		alerts:     alerts,
		scheduler:  scheduler,
		catalog:    catalog,
		bus:        bus,
		log:        log,
	}
}

// Create validates, enriches and persists a new lead. Scoring, classification,
// sequencing and suggestion never fail; only missing required fields do.
func (s *Service) Create(ctx context.Context, input CreateLeadInput) (repository.Lead, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)
	if input.Name == "" {
		return repository.Lead{}, apperr.Validation("name is required")
	}
	if input.Email == "" {
		return repository.Lead{}, apperr.Validation("email is required")
	}
	if input.Message == "" {
		return repository.Lead{}, apperr.Validation("message is required")
	}

	source := input.Source
	if source == "" {
		source = scoring.SourceContactForm
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	scoreInput := scoring.Input{
		Email:     input.Email,
		Company:   input.Company,
		Message:   input.Message,
		Source:    source,
		CreatedAt: createdAt,
	}
	score := s.calculator.Score(scoreInput)
	priority := scoring.Classify(score)
	approach := scoring.Suggest(scoreInput, score)
	sequence := scoring.BuildSequence(priority)

	params := repository.CreateParams{
		Name:              input.Name,
		Email:             input.Email,
		Message:           input.Message,
		Source:            source,
		Score:             score,
		Priority:          priority,
		SuggestedApproach: approach,
		NurturingSequence: sequence,
		CreatedAt:         createdAt,
	}
	if normalized := phone.NormalizeE164(input.Phone); normalized != "" {
		params.Phone = &normalized
	}
	if company := strings.TrimSpace(input.Company); company != "" {
		params.Company = &company
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return repository.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to save lead", err)
	}

	if s.alerts != nil && scoring.RequiresAlert(priority) {
		alertCtx, cancel := context.WithTimeout(ctx, alertTimeout)
		if err := s.alerts.DispatchLeadAlert(alertCtx, lead, scoring.ActionWindow(priority)); err != nil {
			s.log.DispatchFailure("lead_alert", lead.Email, err)
		}
		cancel()
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleSequence(ctx, lead); err != nil {
			s.log.DispatchFailure("nurturing_schedule", lead.Email, err)
		}
	}

	if s.bus != nil {
		leadEvent := events.LeadCreated{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			Name:      lead.Name,
			Email:     lead.Email,
			Source:    lead.Source,
			Score:     lead.Score,
			Priority:  lead.Priority,
		}
		if lead.Phone != nil {
			leadEvent.Phone = *lead.Phone
		}
		if lead.Company != nil {
			leadEvent.Company = *lead.Company
		}
		s.bus.Publish(ctx, leadEvent)
	}

	s.log.LeadProcessed(lead.Email, lead.Score, lead.Priority)
	return lead, nil
}

// Get retrieves a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves leads with filters and pagination.
func (s *Service) List(ctx context.Context, params repository.ListParams) ([]repository.Lead, int, error) {
	return s.repo.List(ctx, params)
}

// Update applies admin edits. Leads are never re-scored on update.
func (s *Service) Update(ctx context.Context, input UpdateLeadInput) (repository.Lead, error) {
	if input.Status != nil && !validStatus(*input.Status) {
		return repository.Lead{}, apperr.Validation("invalid status")
	}
	if input.Priority != nil && scoring.Rank(*input.Priority) == 0 {
		return repository.Lead{}, apperr.Validation("invalid priority")
	}

	var oldStatus string
	if input.Status != nil {
		existing, err := s.repo.GetByID(ctx, input.ID)
		if err != nil {
			return repository.Lead{}, err
		}
		oldStatus = existing.Status
	}

	lead, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:       input.ID,
		Status:   input.Status,
		Priority: input.Priority,
		Notes:    input.Notes,
	})
	if err != nil {
		return repository.Lead{}, err
	}

	if s.bus != nil && input.Status != nil && oldStatus != lead.Status {
		s.bus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			OldStatus: oldStatus,
			NewStatus: lead.Status,
		})
	}
	return lead, nil
}

// Delete removes a lead permanently. Pending nurturing touchpoints for the
// lead are skipped by the worker once the record is gone.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("lead deleted", "lead_id", id)
	return nil
}

// Dashboard aggregates lead and catalog statistics for the admin overview.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	leadStats, err := s.repo.Stats(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{Leads: leadStats}
	if s.catalog != nil {
		catalogStats, err := s.catalog.CatalogStats(ctx)
		if err != nil {
			return DashboardStats{}, err
		}
		stats.Services = catalogStats
	}
	return stats, nil
}

func validStatus(status string) bool {
	switch status {
	case repository.StatusNew, repository.StatusContacted, repository.StatusQualified,
		repository.StatusConverted, repository.StatusLost:
		return true
	}
	return false
}
