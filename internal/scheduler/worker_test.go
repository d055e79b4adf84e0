package scheduler

import (
	"testing"

	"leadops_backend/internal/leads/repository"
)

func TestBuildDailyReportEmpty(t *testing.T) {
	data := buildDailyReport("2026-08-29", nil)
	if data.TotalLeads != 0 {
		t.Errorf("total = %d, want 0", data.TotalLeads)
	}
	if data.AverageScore != 0 {
		t.Errorf("average = %f, want 0", data.AverageScore)
	}
	if data.TopSource != "" {
		t.Errorf("top source = %q, want empty", data.TopSource)
	}
}

func TestBuildDailyReportAggregates(t *testing.T) {
	leads := []repository.Lead{
		{Score: 110, Priority: "urgente", Source: "hero_form"},
		{Score: 80, Priority: "alta", Source: "hero_form"},
		{Score: 50, Priority: "media", Source: "contact_form"},
		{Score: 20, Priority: "baixa", Source: "exit_popup"},
	}

	data := buildDailyReport("2026-08-29", leads)
	if data.TotalLeads != 4 {
		t.Errorf("total = %d, want 4", data.TotalLeads)
	}
	if data.UrgentLeads != 1 || data.HighLeads != 1 {
		t.Errorf("urgent = %d, high = %d, want 1 and 1", data.UrgentLeads, data.HighLeads)
	}
	if data.AverageScore != 65 {
		t.Errorf("average = %f, want 65", data.AverageScore)
	}
	if data.TopSource != "hero_form" {
		t.Errorf("top source = %q, want hero_form", data.TopSource)
	}
}
