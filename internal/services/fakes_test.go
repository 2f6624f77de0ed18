package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/ports"
)

type memoryAssignments struct {
	mu       sync.Mutex
	nextID   int64
	items    map[int64]*domain.Assignment
	workLogs []domain.WorkLog
	saveErr  error
}

func newMemoryAssignments(items ...*domain.Assignment) *memoryAssignments {
	m := &memoryAssignments{items: map[int64]*domain.Assignment{}}
	for _, a := range items {
		m.items[a.ID] = a
		if a.ID > m.nextID {
			m.nextID = a.ID
		}
	}
	return m
}

func (m *memoryAssignments) ListAssignments(_ context.Context, f ports.AssignmentFilter) ([]*domain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Assignment, 0, len(m.items))
	for _, a := range m.items {
		switch f.Status {
		case ports.FilterActive:
			if a.Status == domain.StatusFinalizat {
				continue
			}
		case ports.FilterCompleted:
			if a.Status != domain.StatusFinalizat {
				continue
			}
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if !f.From.IsZero() && a.StartDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && a.StartDate.After(f.To) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (m *memoryAssignments) GetAssignment(_ context.Context, id int64) (*domain.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memoryAssignments) CreateAssignment(_ context.Context, a *domain.Assignment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *a
	cp.ID = m.nextID
	m.items[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memoryAssignments) UpdateRoute(_ context.Context, id int64, points domain.IntList) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.StorePoints = points
	return nil
}

func (m *memoryAssignments) SaveFinalized(_ context.Context, a *domain.Assignment, logs []domain.WorkLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	cur, ok := m.items[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if !cur.IsActive() {
		return domain.ErrInvalidTransition
	}
	cp := *a
	m.items[a.ID] = &cp
	m.workLogs = append(m.workLogs, logs...)
	return nil
}

func (m *memoryAssignments) DeleteAssignment(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memoryWorkLogs struct{ logs []domain.WorkLog }

func (m memoryWorkLogs) ListWorkLogs(_ context.Context, from, to time.Time) ([]domain.WorkLog, error) {
	out := make([]domain.WorkLog, 0, len(m.logs))
	for _, l := range m.logs {
		if !from.IsZero() && l.StartTime.Before(from) {
			continue
		}
		if !to.IsZero() && l.StartTime.After(to) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

type memoryStores map[int]domain.Store

func (m memoryStores) GetStores(_ context.Context, ids []int) (map[int]domain.Store, error) {
	out := make(map[int]domain.Store)
	for _, id := range ids {
		if s, ok := m[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

type memoryUsers []domain.User

func (m memoryUsers) ListUsers(context.Context) ([]domain.User, error) { return m, nil }
