package service

import (
	"context"
	"errors"
	"testing"

	"leadops_backend/internal/services/repository"
	"leadops_backend/platform/apperr"
	"leadops_backend/platform/logger"
)

func newTestService() *Service {
	return New(repository.NewMemory(), logger.New("test"))
}

func seedService(t *testing.T, svc *Service, name string, price float64, active bool) repository.Service {
	t.Helper()
	created, err := svc.Create(context.Background(), repository.CreateParams{
		Name:        name,
		Description: "Automação de marketing para PMEs",
		Price:       price,
		Category:    repository.CategorySaaS,
		Features:    []string{"scoring automático", "alertas"},
		Active:      active,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", name, err)
	}
	return created
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService()
	cases := []struct {
		name   string
		params repository.CreateParams
	}{
		{"missing name", repository.CreateParams{Description: "d", Price: 10, Category: "saas"}},
		{"missing description", repository.CreateParams{Name: "n", Price: 10, Category: "saas"}},
		{"negative price", repository.CreateParams{Name: "n", Description: "d", Price: -1, Category: "saas"}},
		{"bad category", repository.CreateParams{Name: "n", Description: "d", Price: 10, Category: "consulting"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.params)
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
				t.Errorf("error = %v, want validation error", err)
			}
		})
	}
}

func TestListActiveFiltersInactive(t *testing.T) {
	svc := newTestService()
	seedService(t, svc, "Setup Inicial", 397, true)
	seedService(t, svc, "Plano Mensal", 29, true)
	seedService(t, svc, "Plano Legado", 19, false)

	active, err := svc.List(context.Background(), true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("active services = %d, want 2", len(active))
	}

	all, err := svc.List(context.Background(), false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all services = %d, want 3", len(all))
	}
}

func TestUpdatePartialFields(t *testing.T) {
	svc := newTestService()
	created := seedService(t, svc, "Plano Mensal", 29, true)

	newPrice := 39.0
	updated, err := svc.Update(context.Background(), repository.UpdateParams{
		ID:    created.ID,
		Price: &newPrice,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 39 {
		t.Errorf("price = %f, want 39", updated.Price)
	}
	if updated.Name != "Plano Mensal" {
		t.Errorf("name changed unexpectedly to %q", updated.Name)
	}
}

func TestUpdateRejectsInvalidCategory(t *testing.T) {
	svc := newTestService()
	created := seedService(t, svc, "Plano Mensal", 29, true)

	bad := "consulting"
	_, err := svc.Update(context.Background(), repository.UpdateParams{ID: created.ID, Category: &bad})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestDeleteMissingServiceNotFound(t *testing.T) {
	svc := newTestService()
	created := seedService(t, svc, "Plano Mensal", 29, true)

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := svc.Delete(context.Background(), created.ID)
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestStatsCountsOnlyActiveRevenue(t *testing.T) {
	svc := newTestService()
	seedService(t, svc, "Setup Inicial", 397, true)
	seedService(t, svc, "Plano Mensal", 29, true)
	seedService(t, svc, "Plano Legado", 19, false)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 3 || stats.Active != 2 {
		t.Errorf("total = %d, active = %d, want 3 and 2", stats.Total, stats.Active)
	}
	if stats.TotalRevenue != 426 {
		t.Errorf("revenue = %f, want 426", stats.TotalRevenue)
	}
}
