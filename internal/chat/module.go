// Package chat provides the website assistant bounded context: provider
// backed conversations, qualified-lead detection and lead capture into the
// intake pipeline.
package chat

import (
	"leadops_backend/internal/chat/handler"
	"leadops_backend/internal/chat/service"
	"leadops_backend/internal/events"
	apphttp "leadops_backend/internal/http"
	"leadops_backend/platform/ai"
	"leadops_backend/platform/logger"
	"leadops_backend/platform/validator"
)

// Module is the chat bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the chat module. model may be nil when
// no provider is configured.
func NewModule(model ai.ChatModel, leads service.LeadCreator, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(model, leads, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "chat"
}

// Service returns the chat service layer.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts chat routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/chat", m.handler.Chat)
	ctx.V1.POST("/chat/lead", m.handler.CaptureLead)
	ctx.V1.GET("/chat/session/:id", m.handler.GetSession)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
