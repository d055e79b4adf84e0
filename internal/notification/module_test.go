package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"leadops_backend/internal/email"
	"leadops_backend/internal/events"
	"leadops_backend/internal/leads/repository"
	"leadops_backend/platform/logger"
)

type testAlertConfig struct {
	recipient string
	baseURL   string
}

func (c testAlertConfig) GetAlertRecipient() string { return c.recipient }
func (c testAlertConfig) GetAppBaseURL() string     { return c.baseURL }

type testSender struct {
	alertCalls        int
	alertRecipient    string
	alertData         email.LeadAlertData
	confirmationCalls int
	confirmationTo    string
	failAlert         error
	failConfirmation  error
}

func (s *testSender) SendLeadAlertEmail(_ context.Context, toEmail string, data email.LeadAlertData) error {
	s.alertCalls++
	s.alertRecipient = toEmail
	s.alertData = data
	return s.failAlert
}

func (s *testSender) SendLeadConfirmationEmail(_ context.Context, toEmail, _ string) error {
	s.confirmationCalls++
	s.confirmationTo = toEmail
	return s.failConfirmation
}

func (s *testSender) SendNurturingEmail(context.Context, string, string, string) error { return nil }
func (s *testSender) SendDailyReportEmail(context.Context, string, email.DailyReportData) error {
	return nil
}
func (s *testSender) SendCustomEmail(context.Context, string, string, string) error { return nil }

func newTestModule(sender *testSender, cfg testAlertConfig) *Module {
	return NewModule(sender, cfg, logger.New("test"))
}

func urgentLead() repository.Lead {
	phone := "+351912345678"
	company := "Construtora Lima"
	return repository.Lead{
		ID:                uuid.New(),
		Name:              "Rui Lima",
		Email:             "rui@construtoralima.pt",
		Phone:             &phone,
		Company:           &company,
		Message:           "Precisamos de automatizar o follow-up comercial com urgência.",
		Source:            "hero_form",
		Score:             112,
		Priority:          "urgente",
		Status:            "new",
		SuggestedApproach: "Ligar imediatamente. Lead muito quente com alta intenção de compra.",
	}
}

func TestDispatchLeadAlertBuildsPayload(t *testing.T) {
	sender := &testSender{}
	mod := newTestModule(sender, testAlertConfig{
		recipient: "vendas@leadops.pt",
		baseURL:   "https://app.leadops.pt",
	})

	lead := urgentLead()
	if err := mod.DispatchLeadAlert(context.Background(), lead, "nos próximos 15 minutos"); err != nil {
		t.Fatalf("DispatchLeadAlert: %v", err)
	}

	if sender.alertCalls != 1 {
		t.Fatalf("alert calls = %d, want 1", sender.alertCalls)
	}
	if sender.alertRecipient != "vendas@leadops.pt" {
		t.Errorf("recipient = %q", sender.alertRecipient)
	}
	if sender.alertData.Phone != "+351912345678" {
		t.Errorf("phone = %q", sender.alertData.Phone)
	}
	if sender.alertData.Company != "Construtora Lima" {
		t.Errorf("company = %q", sender.alertData.Company)
	}
	if sender.alertData.ActionWindow != "nos próximos 15 minutos" {
		t.Errorf("action window = %q", sender.alertData.ActionWindow)
	}
	wantURL := "https://app.leadops.pt/admin/leads/" + lead.ID.String()
	if sender.alertData.DashboardURL != wantURL {
		t.Errorf("dashboard URL = %q, want %q", sender.alertData.DashboardURL, wantURL)
	}
}

func TestDispatchLeadAlertWithoutRecipientFails(t *testing.T) {
	sender := &testSender{}
	mod := newTestModule(sender, testAlertConfig{baseURL: "https://app.leadops.pt"})

	err := mod.DispatchLeadAlert(context.Background(), urgentLead(), "nas próximas 4 horas")
	if err == nil {
		t.Fatal("expected error when no recipient configured")
	}
	if sender.alertCalls != 0 {
		t.Errorf("alert calls = %d, want 0", sender.alertCalls)
	}
}

func TestDispatchLeadAlertWithoutBaseURLOmitsLink(t *testing.T) {
	sender := &testSender{}
	mod := newTestModule(sender, testAlertConfig{recipient: "vendas@leadops.pt"})

	if err := mod.DispatchLeadAlert(context.Background(), urgentLead(), "nos próximos 15 minutos"); err != nil {
		t.Fatalf("DispatchLeadAlert: %v", err)
	}
	if sender.alertData.DashboardURL != "" {
		t.Errorf("dashboard URL = %q, want empty", sender.alertData.DashboardURL)
	}
}

func TestHandleLeadCreatedSendsConfirmation(t *testing.T) {
	sender := &testSender{}
	mod := newTestModule(sender, testAlertConfig{recipient: "vendas@leadops.pt"})

	event := events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		Name:      "Maria Costa",
		Email:     "maria@empresa.pt",
		Source:    "contact_form",
		Score:     45,
		Priority:  "media",
	}
	if err := mod.Handle(context.Background(), event); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if sender.confirmationCalls != 1 {
		t.Fatalf("confirmation calls = %d, want 1", sender.confirmationCalls)
	}
	if sender.confirmationTo != "maria@empresa.pt" {
		t.Errorf("confirmation to = %q", sender.confirmationTo)
	}
}

func TestHandleLeadCreatedWrapsSenderError(t *testing.T) {
	sendErr := errors.New("provider down")
	sender := &testSender{failConfirmation: sendErr}
	mod := newTestModule(sender, testAlertConfig{})

	err := mod.Handle(context.Background(), events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		Email:     "maria@empresa.pt",
		Name:      "Maria Costa",
	})
	if err == nil {
		t.Fatal("expected error from failing sender")
	}
	if !errors.Is(err, sendErr) {
		t.Errorf("error %v does not wrap sender error", err)
	}
	if !strings.Contains(err.Error(), "lead confirmation") {
		t.Errorf("error %v missing context", err)
	}
}

func TestHandleIgnoresUnknownEvents(t *testing.T) {
	sender := &testSender{}
	mod := newTestModule(sender, testAlertConfig{})

	err := mod.Handle(context.Background(), events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		OldStatus: "new",
		NewStatus: "contacted",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if sender.confirmationCalls != 0 || sender.alertCalls != 0 {
		t.Error("unexpected sends for unhandled event")
	}
}
