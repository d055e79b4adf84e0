package service

import (
	"context"
	"strings"

	"leadops_backend/internal/events"
	leadrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	leadservice "leadops_backend/internal/leads/service"
	"leadops_backend/platform/ai"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

// interestKeywords in a visitor message mark buying intent.
var interestKeywords = []string{
	"preço", "orçamento", "custo", "valor",
	"contratar", "comprar", "adquirir",
	"análise gratuita", "demonstração",
	"contacto", "reunião", "proposta",
	"empresa", "negócio", "projeto",
}

// actionPhrases in an assistant reply mark a suggested next step.
var actionPhrases = []string{
	"análise gratuita", "entre em contacto", "agendar",
	"proposta", "demonstração", "reunião",
}

// LeadCreator routes chat-captured contacts into the lead pipeline.
type LeadCreator interface {
	Create(ctx context.Context, input leadservice.CreateLeadInput) (leadrepo.Lead, error)
}

// Reply is the assistant's answer plus qualification signal.
type Reply struct {
	Message       string
	QualifiedLead bool
}

// CaptureLeadInput carries contact details collected during a conversation.
type CaptureLeadInput struct {
	SessionID   string
	Name        string
	Email       string
	Company     string
	ChatSummary string
}

// Service runs assistant conversations and captures leads from them.
type Service struct {
	model    ai.ChatModel
	leads    LeadCreator
	sessions *sessionStore
	bus      events.Bus
	log      *logger.Logger
}

// New creates the chat service. model may be nil when no provider is
// configured; conversations then fail with a validation error while lead
// capture keeps working.
func New(model ai.ChatModel, leads LeadCreator, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		model:    model,
		leads:    leads,
		sessions: newSessionStore(),
		bus:      bus,
		log:      log,
	}
}

// Chat sends a visitor message to the provider and records the exchange in
// the session history.
func (s *Service) Chat(ctx context.Context, sessionID, message, mode string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, apperr.Validation("message is required")
	}
	if sessionID == "" {
		sessionID = "default"
	}
	if s.model == nil {
		return Reply{}, apperr.New(apperr.KindBadRequest, "chat assistant is not configured")
	}

	history := s.sessions.History(sessionID)
	history = append(history, ai.ChatMessage{Role: ai.RoleUser, Content: message})

	answer, err := s.model.Generate(ctx, systemPrompt(mode), history)
	if err != nil {
		s.log.Error("chat generation failed", "provider", s.model.Name(), "error", err)
		return Reply{}, apperr.Wrap(apperr.KindInternal, "assistant unavailable", err)
	}

	s.sessions.Append(sessionID,
		ai.ChatMessage{Role: ai.RoleUser, Content: message},
		ai.ChatMessage{Role: ai.RoleAssistant, Content: answer},
	)

	return Reply{
		Message:       answer,
		QualifiedLead: detectQualifiedLead(message, answer),
	}, nil
}

// History returns the visible messages of a session.
func (s *Service) History(sessionID string) []ai.ChatMessage {
	return s.sessions.History(sessionID)
}

// CaptureLead creates a lead from a conversation, routing it through the
// regular intake pipeline with the chat source.
func (s *Service) CaptureLead(ctx context.Context, input CaptureLeadInput) (leadrepo.Lead, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return leadrepo.Lead{}, apperr.Validation("name and email are required")
	}

	message := strings.TrimSpace(input.ChatSummary)
	if message == "" {
		message = "Lead capturado pelo assistente de chat."
	}

	lead, err := s.leads.Create(ctx, leadservice.CreateLeadInput{
		Name:    input.Name,
		Email:   input.Email,
		Company: input.Company,
		Message: message,
		Source:  scoring.SourceChatWidget,
	})
	if err != nil {
		return leadrepo.Lead{}, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.ChatLeadQualified{
			BaseEvent: events.NewBaseEvent(),
			SessionID: input.SessionID,
			Email:     lead.Email,
			Name:      lead.Name,
		})
	}
	return lead, nil
}

// detectQualifiedLead reports whether either side of the exchange signals
// buying intent.
func detectQualifiedLead(userMessage, assistantMessage string) bool {
	userLower := strings.ToLower(userMessage)
	for _, keyword := range interestKeywords {
		if strings.Contains(userLower, keyword) {
			return true
		}
	}

	assistantLower := strings.ToLower(assistantMessage)
	for _, phrase := range actionPhrases {
		if strings.Contains(assistantLower, phrase) {
			return true
		}
	}
	return false
}
