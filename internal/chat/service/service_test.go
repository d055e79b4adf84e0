package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"leadops_backend/internal/events"
	leadrepo "leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	leadservice "leadops_backend/internal/leads/service"
	"leadops_backend/platform/ai"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

type fakeModel struct {
	reply   string
	err     error
	calls   int
	lastSys string
	lastLen int
}

func (m *fakeModel) Name() string { return "fake" }

func (m *fakeModel) Generate(_ context.Context, systemInstruction string, history []ai.ChatMessage) (string, error) {
	m.calls++
	m.lastSys = systemInstruction
	m.lastLen = len(history)
	return m.reply, m.err
}

func newTestService(model ai.ChatModel) (*Service, *leadservice.Service) {
	log := logger.New("test")
	leads := leadservice.New(leadrepo.NewMemory(), scoring.NewCalculator(scoring.DefaultRules()), nil, nil, nil, nil, log)
	return New(model, leads, events.NewInMemoryBus(log), log), leads
}

func TestChatAppendsHistory(t *testing.T) {
	model := &fakeModel{reply: "Posso ajudar com a automação do seu funil."}
	svc, _ := newTestService(model)

	reply, err := svc.Chat(context.Background(), "s1", "Como funciona a plataforma?", ModeDefault)
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Message != model.reply {
		t.Errorf("message = %q", reply.Message)
	}
	if model.lastLen != 1 {
		t.Errorf("provider saw %d messages, want 1", model.lastLen)
	}

	if _, err := svc.Chat(context.Background(), "s1", "E quanto custa?", ModeDefault); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	// First exchange (2 messages) plus the new user message.
	if model.lastLen != 3 {
		t.Errorf("provider saw %d messages, want 3", model.lastLen)
	}

	history := svc.History("s1")
	if len(history) != 4 {
		t.Fatalf("history = %d messages, want 4", len(history))
	}
	if history[0].Role != ai.RoleUser || history[1].Role != ai.RoleAssistant {
		t.Errorf("unexpected roles %q, %q", history[0].Role, history[1].Role)
	}
}

func TestChatSessionTrimmedToLimit(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc, _ := newTestService(model)

	for i := 0; i < 15; i++ {
		if _, err := svc.Chat(context.Background(), "s1", fmt.Sprintf("mensagem %d", i), ModeDefault); err != nil {
			t.Fatalf("Chat %d: %v", i, err)
		}
	}
	if got := len(svc.History("s1")); got != maxSessionMessages {
		t.Errorf("history = %d messages, want %d", got, maxSessionMessages)
	}
}

func TestChatSessionsAreIsolated(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc, _ := newTestService(model)

	if _, err := svc.Chat(context.Background(), "s1", "olá", ModeDefault); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got := len(svc.History("s2")); got != 0 {
		t.Errorf("session s2 has %d messages, want 0", got)
	}
}

func TestChatModeSelectsPrompt(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc, _ := newTestService(model)

	if _, err := svc.Chat(context.Background(), "s1", "olá", ModeLeadQualification); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if model.lastSys != systemPrompts[ModeLeadQualification] {
		t.Error("lead qualification prompt not used")
	}

	if _, err := svc.Chat(context.Background(), "s1", "olá", "unknown-mode"); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if model.lastSys != systemPrompts[ModeDefault] {
		t.Error("unknown mode did not fall back to default prompt")
	}
}

func TestChatWithoutModelFails(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Chat(context.Background(), "s1", "olá", ModeDefault)
	if err == nil {
		t.Fatal("expected error when no model configured")
	}
}

func TestChatProviderErrorIsWrapped(t *testing.T) {
	model := &fakeModel{err: errors.New("quota exceeded")}
	svc, _ := newTestService(model)

	_, err := svc.Chat(context.Background(), "s1", "olá", ModeDefault)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindInternal {
		t.Errorf("error = %v, want internal", err)
	}
	// The failed exchange must not pollute the session.
	if got := len(svc.History("s1")); got != 0 {
		t.Errorf("history = %d messages, want 0", got)
	}
}

func TestDetectQualifiedLead(t *testing.T) {
	cases := []struct {
		user      string
		assistant string
		want      bool
	}{
		{"Qual é o preço do plano mensal?", "O plano começa nos 29 euros.", true},
		{"Gostava de uma demonstração", "Claro!", true},
		{"Olá, bom dia", "Podemos agendar uma análise gratuita.", true},
		{"Olá, bom dia", "Bom dia! Como posso ajudar?", false},
	}

	for _, tc := range cases {
		if got := detectQualifiedLead(tc.user, tc.assistant); got != tc.want {
			t.Errorf("detectQualifiedLead(%q, %q) = %v, want %v", tc.user, tc.assistant, got, tc.want)
		}
	}
}

func TestCaptureLeadRoutesThroughPipeline(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	svc, leads := newTestService(model)

	lead, err := svc.CaptureLead(context.Background(), CaptureLeadInput{
		SessionID:   "s1",
		Name:        "Paula Neves",
		Email:       "paula@empresa.pt",
		Company:     "Neves & Filhos",
		ChatSummary: "Interessada no plano profissional, pediu orçamento.",
	})
	if err != nil {
		t.Fatalf("CaptureLead: %v", err)
	}
	if lead.Source != scoring.SourceChatWidget {
		t.Errorf("source = %q, want %q", lead.Source, scoring.SourceChatWidget)
	}
	if lead.Score <= 0 {
		t.Errorf("score = %d, want scored lead", lead.Score)
	}

	stored, err := leads.Get(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("lead not persisted: %v", err)
	}
	if stored.Email != "paula@empresa.pt" {
		t.Errorf("stored email = %q", stored.Email)
	}
}

func TestCaptureLeadRequiresNameAndEmail(t *testing.T) {
	svc, _ := newTestService(&fakeModel{reply: "ok"})

	_, err := svc.CaptureLead(context.Background(), CaptureLeadInput{Name: "Paula"})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Errorf("error = %v, want validation error", err)
	}
}
