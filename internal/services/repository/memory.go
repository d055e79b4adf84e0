package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadops_backend/platform/apperr"
)

// Memory is an in-memory catalog repository used in tests and database-less
// deployments.
type Memory struct {
	mu       sync.RWMutex
	services map[uuid.UUID]Service
	now      func() time.Time
}

// NewMemory creates an empty in-memory catalog repository.
func NewMemory() *Memory {
	return &Memory{
		services: make(map[uuid.UUID]Service),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ Repository = (*Memory)(nil)

func (m *Memory) Create(_ context.Context, params CreateParams) (Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	svc := Service{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Category:    params.Category,
		Features:    append([]string(nil), params.Features...),
		Active:      params.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.services[svc.ID] = svc
	return svc, nil
}

func (m *Memory) GetByID(_ context.Context, id uuid.UUID) (Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	svc, ok := m.services[id]
	if !ok {
		return Service{}, apperr.NotFound("service not found")
	}
	return svc, nil
}

func (m *Memory) List(_ context.Context, activeOnly bool) ([]Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	services := make([]Service, 0, len(m.services))
	for _, svc := range m.services {
		if activeOnly && !svc.Active {
			continue
		}
		services = append(services, svc)
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].CreatedAt.After(services[j].CreatedAt)
	})
	return services, nil
}

func (m *Memory) Update(_ context.Context, params UpdateParams) (Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	svc, ok := m.services[params.ID]
	if !ok {
		return Service{}, apperr.NotFound("service not found")
	}

	if params.Name != nil {
		svc.Name = *params.Name
	}
	if params.Description != nil {
		svc.Description = *params.Description
	}
	if params.Price != nil {
		svc.Price = *params.Price
	}
	if params.Category != nil {
		svc.Category = *params.Category
	}
	if params.Features != nil {
		svc.Features = append([]string(nil), params.Features...)
	}
	if params.Active != nil {
		svc.Active = *params.Active
	}
	svc.UpdatedAt = m.now()

	m.services[svc.ID] = svc
	return svc, nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.services[id]; !ok {
		return apperr.NotFound("service not found")
	}
	delete(m.services, id)
	return nil
}

func (m *Memory) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats Stats
	for _, svc := range m.services {
		stats.Total++
		if svc.Active {
			stats.Active++
			stats.TotalRevenue += svc.Price
		}
	}
	return stats, nil
}
