// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadops_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a new lead has been scored and persisted.
type LeadCreated struct {
	BaseEvent
	LeadID   uuid.UUID `json:"leadId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Company  string    `json:"company,omitempty"`
	Source   string    `json:"source"`
	Score    int       `json:"score"`
	Priority string    `json:"priority"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published when an admin updates a lead's status.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	OldStatus string    `json:"oldStatus"`
	NewStatus string    `json:"newStatus"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserRegistered is published when a new admin user successfully registers.
type UserRegistered struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
}

func (e UserRegistered) EventName() string { return "auth.user.registered" }

// =============================================================================
// Chat Domain Events
// =============================================================================

// ChatLeadQualified is published when the assistant detects buying intent in
// a conversation and captures contact details.
type ChatLeadQualified struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

func (e ChatLeadQualified) EventName() string { return "chat.lead.qualified" }
