package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadops_backend/internal/leads/scoring"
	"leadops_backend/platform/apperr"
)

// Memory is an in-memory Repository used for local development and tests
// when no database is configured.
type Memory struct {
	mu    sync.RWMutex
	leads map[uuid.UUID]Lead
	now   func() time.Time
}

// NewMemory creates an empty in-memory leads repository.
func NewMemory() *Memory {
	return &Memory{
		leads: make(map[uuid.UUID]Lead),
		now:   time.Now,
	}
}

// Compile-time check that Memory implements Repository.
var _ Repository = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, params CreateParams) (Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead := Lead{
		ID:                uuid.New(),
		Name:              params.Name,
		Email:             params.Email,
		Phone:             params.Phone,
		Company:           params.Company,
		Message:           params.Message,
		Source:            params.Source,
		Score:             params.Score,
		Priority:          params.Priority,
		Status:            StatusNew,
		SuggestedApproach: params.SuggestedApproach,
		NurturingSequence: append([]scoring.Touchpoint(nil), params.NurturingSequence...),
		CreatedAt:         params.CreatedAt,
		UpdatedAt:         params.CreatedAt,
	}
	m.leads[lead.ID] = lead
	return lead, nil
}

func (m *Memory) GetByID(_ context.Context, id uuid.UUID) (Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	lead, ok := m.leads[id]
	if !ok {
		return Lead{}, apperr.NotFound(leadNotFoundMessage)
	}
	return lead, nil
}

func (m *Memory) List(_ context.Context, params ListParams) ([]Lead, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filtered := make([]Lead, 0, len(m.leads))
	for _, lead := range m.leads {
		if params.Priority != "" && lead.Priority != params.Priority {
			continue
		}
		if params.Status != "" && lead.Status != params.Status {
			continue
		}
		if params.Source != "" && lead.Source != params.Source {
			continue
		}
		filtered = append(filtered, lead)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)
	if params.Limit > 0 {
		start := params.Offset
		if start > total {
			start = total
		}
		end := start + params.Limit
		if end > total {
			end = total
		}
		filtered = filtered[start:end]
	}
	return filtered, total, nil
}

func (m *Memory) ListCreatedSince(_ context.Context, since time.Time) ([]Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	leads := make([]Lead, 0)
	for _, lead := range m.leads {
		if !lead.CreatedAt.Before(since) {
			leads = append(leads, lead)
		}
	}
	sort.Slice(leads, func(i, j int) bool {
		return leads[i].CreatedAt.After(leads[j].CreatedAt)
	})
	return leads, nil
}

func (m *Memory) Update(_ context.Context, params UpdateParams) (Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lead, ok := m.leads[params.ID]
	if !ok {
		return Lead{}, apperr.NotFound(leadNotFoundMessage)
	}

	if params.Status != nil {
		lead.Status = *params.Status
	}
	if params.Priority != nil {
		lead.Priority = *params.Priority
	}
	if params.Notes != nil {
		lead.Notes = params.Notes
	}
	lead.UpdatedAt = m.now()

	m.leads[params.ID] = lead
	return lead, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.leads[id]; !ok {
		return apperr.NotFound(leadNotFoundMessage)
	}
	delete(m.leads, id)
	return nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats Stats
	scoreSum := 0
	sourceCounts := make(map[string]int)
	weekAgo := m.now().Add(-7 * 24 * time.Hour)

	for _, lead := range m.leads {
		stats.Total++
		scoreSum += lead.Score
		sourceCounts[lead.Source]++

		switch lead.Priority {
		case scoring.PriorityUrgent:
			stats.Urgent++
		case scoring.PriorityHigh:
			stats.High++
		case scoring.PriorityMedium:
			stats.Medium++
		case scoring.PriorityLow:
			stats.Low++
		}

		if lead.CreatedAt.After(weekAgo) {
			stats.Recent++
		}
	}

	if stats.Total > 0 {
		stats.AverageScore = float64(scoreSum) / float64(stats.Total)
	}

	best := 0
	for source, count := range sourceCounts {
		if count > best || (count == best && source < stats.TopSource) {
			best = count
			stats.TopSource = source
		}
	}
	return stats, nil
}
