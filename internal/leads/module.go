// Package leads provides the lead intake and qualification bounded context.
// It owns public contact form submissions, heuristic scoring, nurturing
// sequences and the admin lead management endpoints.
package leads

import (
	"leadops_backend/internal/events"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/internal/leads/handler"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	"leadops_backend/internal/leads/service"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// Deps carries the collaborators the leads module needs. Alerts, Scheduler
// and Catalog may be nil when the corresponding capability is disabled.
type Deps struct {
	Repo       repository.Repository
	Calculator *scoring.Calculator
	Alerts     service.AlertDispatcher
	Scheduler  service.NurturingScheduler
	Catalog    service.CatalogStatsProvider
	Bus        events.Bus
	Validator  *validator.Validator
	Logger     *logger.Logger
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(deps Deps) *Module {
	svc := service.New(deps.Repo, deps.Calculator, deps.Alerts, deps.Scheduler, deps.Catalog, deps.Bus, deps.Logger)
	h := handler.New(svc, deps.Validator)

	return &Module{
		handler: h,
		service: svc,
		repo:    deps.Repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public intake endpoint for the website contact form.
	ctx.V1.POST("/contact", m.handler.Create)

	// Admin lead management.
	ctx.Admin.GET("/dashboard", m.handler.Dashboard)
	ctx.Admin.GET("/leads", m.handler.List)
	ctx.Admin.GET("/leads/:id", m.handler.GetByID)
	ctx.Admin.PUT("/leads/:id", m.handler.Update)
	ctx.Admin.DELETE("/leads/:id", m.handler.Delete)
}
