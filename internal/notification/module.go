// Package notification provides event handlers for outbound messaging in
// response to domain events. Domain modules publish events and stay unaware
// of email providers or templates.
package notification

import (
	"context"
	"fmt"

	"leadops_backend/internal/email"
	"leadops_backend/internal/events"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/platform/config"
	"leadops_backend/platform/logger"
)

// Module subscribes to domain events and delivers the matching emails. It
// also serves as the synchronous alert dispatcher for hot leads.
type Module struct {
	sender email.Sender
	cfg    config.AlertConfig
	log    *logger.Logger
}

// NewModule creates the notification module.
func NewModule(sender email.Sender, cfg config.AlertConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// DispatchLeadAlert emails the sales team about a lead that needs fast
// follow-up. Called synchronously from the lead pipeline so the caller can
// log delivery failures without failing the intake.
func (m *Module) DispatchLeadAlert(ctx context.Context, lead repository.Lead, actionWindow string) error {
	recipient := m.cfg.GetAlertRecipient()
	if recipient == "" {
		return fmt.Errorf("alert recipient not configured")
	}

	data := email.LeadAlertData{
		Name:              lead.Name,
		Email:             lead.Email,
		Message:           lead.Message,
		Source:            lead.Source,
		Score:             lead.Score,
		Priority:          lead.Priority,
		ActionWindow:      actionWindow,
		SuggestedApproach: lead.SuggestedApproach,
		DashboardURL:      m.leadDashboardURL(lead),
	}
	if lead.Phone != nil {
		data.Phone = *lead.Phone
	}
	if lead.Company != nil {
		data.Company = *lead.Company
	}

	return m.sender.SendLeadAlertEmail(ctx, recipient, data)
}

func (m *Module) leadDashboardURL(lead repository.Lead) string {
	base := m.cfg.GetAppBaseURL()
	if base == "" {
		return ""
	}
	return fmt.Sprintf("%s/admin/leads/%s", base, lead.ID)
}

// RegisterHandlers subscribes the module to the domain events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.ChatLeadQualified{}.EventName(), m)
}

// Handle dispatches incoming events to their handlers.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadCreated:
		return m.handleLeadCreated(ctx, e)
	case events.ChatLeadQualified:
		return m.handleChatLeadQualified(ctx, e)
	default:
		return nil
	}
}

// handleLeadCreated sends the confirmation email to the person who submitted
// the contact form.
func (m *Module) handleLeadCreated(ctx context.Context, e events.LeadCreated) error {
	if err := m.sender.SendLeadConfirmationEmail(ctx, e.Email, e.Name); err != nil {
		m.log.DispatchFailure("lead_confirmation", e.Email, err)
		return fmt.Errorf("send lead confirmation: %w", err)
	}
	return nil
}

// handleChatLeadQualified records qualified chat visitors. The lead itself is
// created through the leads service by the chat module, so this handler only
// leaves an audit trail.
func (m *Module) handleChatLeadQualified(_ context.Context, e events.ChatLeadQualified) error {
	m.log.Info("chat lead qualified",
		"session_id", e.SessionID,
		"email", e.Email,
	)
	return nil
}
