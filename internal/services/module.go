// Package services provides the marketing service catalog bounded context:
// the public price list and the admin CRUD behind the dashboard revenue
// aggregate.
package services

import (
	apphttp "leadops_backend/internal/http"
	"leadops_backend/internal/services/handler"
	"leadops_backend/internal/services/repository"
	"leadops_backend/internal/services/service"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

// Module is the services bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the services module with all its dependencies.
func NewModule(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "services"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public price list.
	ctx.V1.GET("/services", m.handler.ListActive)

	// Admin catalog management.
	ctx.Admin.GET("/services", m.handler.List)
	ctx.Admin.GET("/services/:id", m.handler.GetByID)
	ctx.Admin.POST("/services", m.handler.Create)
	ctx.Admin.PUT("/services/:id", m.handler.Update)
	ctx.Admin.DELETE("/services/:id", m.handler.Delete)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
