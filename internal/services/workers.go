package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/ports"
)

// WorkerOverview is a worker's current availability and lifetime totals.
type WorkerOverview struct {
	ID                     int64
	Name                   string
	Status                 domain.WorkerStatus
	CurrentAssignmentID    *int64
	CurrentAssignmentStart *time.Time
	LastCompletionDate     *time.Time
	AssignmentCount        int
	StoreCount             int
	TotalHours             float64
}

type WorkerService struct {
	Users       ports.UserRepository
	Assignments ports.AssignmentRepository
	WorkLogs    ports.WorkLogRepository
}

// ListWorkers marks a worker "In Deplasare" while they lead or belong to an
// active assignment, and "Liber" otherwise. The three sources are loaded
// concurrently.
func (s *WorkerService) ListWorkers(ctx context.Context) ([]WorkerOverview, error) {
	var (
		users  []domain.User
		active []*domain.Assignment
		logs   []domain.WorkLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.Users.ListUsers(gctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		active, err = s.Assignments.ListAssignments(gctx, ports.AssignmentFilter{Status: ports.FilterActive})
		if err != nil {
			return fmt.Errorf("list active assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		logs, err = s.WorkLogs.ListWorkLogs(gctx, time.Time{}, time.Time{})
		if err != nil {
			return fmt.Errorf("list work logs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}

	// Earliest-starting active assignment per worker.
	current := make(map[string]*domain.Assignment)
	for _, a := range active {
		for _, name := range a.Team() {
			key := strings.ToLower(name)
			if prev, ok := current[key]; !ok || a.EffectiveStart().Before(prev.EffectiveStart()) {
				current[key] = a
			}
		}
	}

	type totals struct {
		hours       float64
		stores      int
		assignments map[int64]struct{}
		lastEnd     *time.Time
	}
	byWorker := make(map[string]*totals)
	for _, l := range logs {
		key := strings.ToLower(strings.TrimSpace(l.WorkerName))
		t, ok := byWorker[key]
		if !ok {
			t = &totals{assignments: map[int64]struct{}{}}
			byWorker[key] = t
		}
		t.hours += l.Hours
		t.stores += l.StoreCount
		t.assignments[l.AssignmentID] = struct{}{}
		if t.lastEnd == nil || l.EndTime.After(*t.lastEnd) {
			end := l.EndTime
			t.lastEnd = &end
		}
	}

	out := make([]WorkerOverview, 0, len(users))
	for _, u := range users {
		key := strings.ToLower(strings.TrimSpace(u.Name))
		w := WorkerOverview{ID: u.ID, Name: u.Name, Status: domain.WorkerLiber}
		if a, ok := current[key]; ok {
			w.Status = domain.WorkerInDeplasare
			id := a.ID
			start := a.EffectiveStart()
			w.CurrentAssignmentID = &id
			w.CurrentAssignmentStart = &start
		}
		if t, ok := byWorker[key]; ok {
			w.TotalHours = roundHours(t.hours)
			w.StoreCount = t.stores
			w.AssignmentCount = len(t.assignments)
			w.LastCompletionDate = t.lastEnd
		}
		out = append(out, w)
	}
	return out, nil
}
