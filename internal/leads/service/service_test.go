package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"leadops_backend/internal/leads/repository"
	"leadops_backend/internal/leads/scoring"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

type fakeAlertDispatcher struct {
	calls  int
	lead   repository.Lead
	window string
	err    error
}

func (f *fakeAlertDispatcher) DispatchLeadAlert(_ context.Context, lead repository.Lead, actionWindow string) error {
	f.calls++
	f.lead = lead
	f.window = actionWindow
	return f.err
}

type fakeScheduler struct {
	calls int
	err   error
}

func (f *fakeScheduler) ScheduleSequence(_ context.Context, _ repository.Lead) error {
	f.calls++
	return f.err
}

type fakeCatalogStats struct {
	stats CatalogStats
}

func (f *fakeCatalogStats) CatalogStats(_ context.Context) (CatalogStats, error) {
	return f.stats, nil
}

func newTestService(alerts *fakeAlertDispatcher, scheduler *fakeScheduler) *Service {
	var sched NurturingScheduler
	if scheduler != nil {
		sched = scheduler
	}
	return New(
		repository.NewMemory(),
		scoring.NewCalculator(scoring.DefaultRules()),
		alerts,
		sched,
		nil,
		nil,
		logger.New("test"),
	)
}

// Monday 2025-03-10 at 10:00 UTC.
var mondayMorning = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func urgentInput() CreateLeadInput {
	return CreateLeadInput{
		Name:    "Maria Silva",
		Email:   "maria@techcorp.pt",
		Company: "TechCorp",
		Source:  scoring.SourceHeroForm,
		Message: "Preciso de orçamento urgente para automação e integração com o nosso crm. " +
			"Temos uma equipa de 30 funcionários e queremos começar hoje.",
		CreatedAt: mondayMorning,
	}
}

func TestCreateRequiredFields(t *testing.T) {
	alerts := &fakeAlertDispatcher{}
	svc := newTestService(alerts, nil)

	cases := []struct {
		name  string
		input CreateLeadInput
	}{
		{"missing name", CreateLeadInput{Email: "a@b.pt", Message: "ola"}},
		{"missing email", CreateLeadInput{Name: "A", Message: "ola"}},
		{"missing message", CreateLeadInput{Name: "A", Email: "a@b.pt"}},
		{"whitespace only", CreateLeadInput{Name: "  ", Email: "a@b.pt", Message: "ola"}},
	}

	for _, tc := range cases {
		_, err := svc.Create(context.Background(), tc.input)
		if err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
		var domainErr *apperr.Error
		if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindValidation {
			t.Fatalf("%s: expected validation kind, got %v", tc.name, err)
		}
	}

	if alerts.calls != 0 {
		t.Fatal("no alert may be dispatched for invalid input")
	}
}

func TestCreateEnrichesUrgentLead(t *testing.T) {
	alerts := &fakeAlertDispatcher{}
	scheduler := &fakeScheduler{}
	svc := newTestService(alerts, scheduler)

	lead, err := svc.Create(context.Background(), urgentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Priority != scoring.PriorityUrgent {
		t.Fatalf("expected urgente priority, got %s (score %d)", lead.Priority, lead.Score)
	}
	if lead.Score < scoring.ThresholdUrgent || lead.Score > 150 {
		t.Fatalf("score out of range: %d", lead.Score)
	}
	if lead.Status != repository.StatusNew {
		t.Fatalf("expected status new, got %s", lead.Status)
	}
	if len(lead.NurturingSequence) != 3 || lead.NurturingSequence[0].Template != "welcome_urgent" {
		t.Fatalf("expected urgent nurturing sequence, got %+v", lead.NurturingSequence)
	}
	if lead.SuggestedApproach == "" {
		t.Fatal("expected a suggested approach")
	}

	if alerts.calls != 1 {
		t.Fatalf("expected one alert dispatch, got %d", alerts.calls)
	}
	if alerts.window != "nos próximos 15 minutos" {
		t.Fatalf("unexpected action window %q", alerts.window)
	}
	if scheduler.calls != 1 {
		t.Fatalf("expected one schedule call, got %d", scheduler.calls)
	}
}

func TestCreateColdLeadSkipsAlert(t *testing.T) {
	alerts := &fakeAlertDispatcher{}
	svc := newTestService(alerts, nil)

	lead, err := svc.Create(context.Background(), CreateLeadInput{
		Name:      "A",
		Email:     "a@b.xyz",
		Message:   "ola",
		Source:    "unknown",
		CreatedAt: time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC), // Saturday night
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Priority != scoring.PriorityLow {
		t.Fatalf("expected baixa, got %s", lead.Priority)
	}
	if alerts.calls != 0 {
		t.Fatal("cold leads must not trigger alerts")
	}
	if len(lead.NurturingSequence) != 4 || lead.NurturingSequence[0].Template != "welcome_cold" {
		t.Fatalf("expected cold nurturing sequence, got %+v", lead.NurturingSequence)
	}
}

func TestCreateAlertFailureIsNonFatal(t *testing.T) {
	alerts := &fakeAlertDispatcher{err: errors.New("smtp down")}
	scheduler := &fakeScheduler{err: errors.New("redis down")}
	svc := newTestService(alerts, scheduler)

	lead, err := svc.Create(context.Background(), urgentInput())
	if err != nil {
		t.Fatalf("dispatch failures must not fail lead creation: %v", err)
	}
	if lead.Score == 0 {
		t.Fatal("lead must still be enriched")
	}
}

func TestCreateDefaultsSource(t *testing.T) {
	svc := newTestService(&fakeAlertDispatcher{}, nil)

	lead, err := svc.Create(context.Background(), CreateLeadInput{
		Name:    "A",
		Email:   "a@b.pt",
		Message: "ola",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Source != scoring.SourceContactForm {
		t.Fatalf("expected contact_form default, got %s", lead.Source)
	}
	if lead.CreatedAt.IsZero() {
		t.Fatal("expected created_at to default to processing time")
	}
}

func TestCreateNormalizesPhone(t *testing.T) {
	svc := newTestService(&fakeAlertDispatcher{}, nil)

	lead, err := svc.Create(context.Background(), CreateLeadInput{
		Name:    "A",
		Email:   "a@b.pt",
		Message: "ola",
		Phone:   "912 345 678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Phone == nil || !strings.HasPrefix(*lead.Phone, "+351") {
		t.Fatalf("expected E.164 phone with PT prefix, got %v", lead.Phone)
	}
}

func TestUpdateRejectsInvalidStatus(t *testing.T) {
	svc := newTestService(&fakeAlertDispatcher{}, nil)

	lead, err := svc.Create(context.Background(), urgentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := "whatever"
	_, err = svc.Update(context.Background(), UpdateLeadInput{ID: lead.ID, Status: &bad})
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateChangesStatusWithoutRescoring(t *testing.T) {
	svc := newTestService(&fakeAlertDispatcher{}, nil)

	lead, err := svc.Create(context.Background(), urgentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contacted := repository.StatusContacted
	updated, err := svc.Update(context.Background(), UpdateLeadInput{ID: lead.ID, Status: &contacted})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != repository.StatusContacted {
		t.Fatalf("expected contacted, got %s", updated.Status)
	}
	if updated.Score != lead.Score || updated.Priority != lead.Priority {
		t.Fatal("updates must never re-score a lead")
	}
}

func TestUpdateOverridesPriority(t *testing.T) {
	svc := newTestService(&fakeAlertDispatcher{}, nil)

	lead, err := svc.Create(context.Background(), urgentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	low := scoring.PriorityLow
	updated, err := svc.Update(context.Background(), UpdateLeadInput{ID: lead.ID, Priority: &low})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Priority != scoring.PriorityLow {
		t.Fatalf("expected baixa, got %s", updated.Priority)
	}
	if updated.Score != lead.Score {
		t.Fatal("priority override must not change the stored score")
	}

	bad := "critical"
	_, err = svc.Update(context.Background(), UpdateLeadInput{ID: lead.ID, Priority: &bad})
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteRemovesLead(t *testing.T) {
	svc := newTestService(&fakeAlertDispatcher{}, nil)

	lead, err := svc.Create(context.Background(), urgentInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), lead.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var domainErr *apperr.Error
	if _, err := svc.Get(context.Background(), lead.ID); !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), lead.ID); !errors.As(err, &domainErr) || domainErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found for second delete, got %v", err)
	}
}

func TestDashboardCombinesCatalogStats(t *testing.T) {
	catalog := &fakeCatalogStats{stats: CatalogStats{Total: 6, Active: 5, TotalRevenue: 4500}}
	svc := New(
		repository.NewMemory(),
		scoring.NewCalculator(scoring.DefaultRules()),
		nil,
		nil,
		catalog,
		nil,
		logger.New("test"),
	)

	if _, err := svc.Create(context.Background(), urgentInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Leads.Total != 1 || stats.Leads.Urgent != 1 {
		t.Fatalf("unexpected lead stats: %+v", stats.Leads)
	}
	if stats.Services.Active != 5 {
		t.Fatalf("unexpected catalog stats: %+v", stats.Services)
	}
}
