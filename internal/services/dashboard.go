package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/obs"
	"field-ops-service/internal/ports"
)

// WorkerTotal is one worker's aggregate over a date range.
type WorkerTotal struct {
	Name        string
	Hours       float64
	Km          float64
	Assignments int
}

// TypeShare is the work done for one assignment type.
type TypeShare struct {
	Type        domain.AssignmentType
	Assignments int
	Hours       float64
}

type DashboardSummary struct {
	From         time.Time
	To           time.Time
	TopWorkers   []WorkerTotal
	TopRiders    []WorkerTotal
	Distribution []TypeShare
	TotalHours   float64
	TotalKm      float64
}

// TypeDashboard lists one type's assignments for a month with the details of
// every store they reference.
type TypeDashboard struct {
	Type        domain.AssignmentType
	From        time.Time
	To          time.Time
	Assignments []*domain.Assignment
	Stores      map[int]domain.Store
}

type DashboardService struct {
	WorkLogs    ports.WorkLogRepository
	Assignments ports.AssignmentRepository
	Stores      ports.StoreRepository
}

// Summary aggregates the work logs started within [from, to]. limit <= 0
// returns every worker and rider.
func (s *DashboardService) Summary(ctx context.Context, from, to time.Time, limit int) (_ *DashboardSummary, err error) {
	defer obs.Time(ctx, "dashboard.Summary")(&err)

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("dashboard summary: range end before start: %w", domain.ErrValidation)
	}

	logs, err := s.WorkLogs.ListWorkLogs(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard summary: list work logs: %w", err)
	}

	return &DashboardSummary{
		From:         from,
		To:           to,
		TopWorkers:   TopWorkersByHours(logs, limit),
		TopRiders:    TopRidersByKilometers(logs, limit),
		Distribution: WorkDistributionByType(logs),
		TotalHours:   TotalHours(logs),
		TotalKm:      TotalKilometers(logs),
	}, nil
}

// AssignmentsByType returns the assignments of type t started in month
// ("YYYY-MM"). A blank or malformed month selects the month containing now.
func (s *DashboardService) AssignmentsByType(ctx context.Context, t domain.AssignmentType, month string, now time.Time) (_ *TypeDashboard, err error) {
	defer obs.Time(ctx, "dashboard.AssignmentsByType")(&err)

	if !t.Valid() {
		return nil, fmt.Errorf("type dashboard: unknown type %q: %w", t, domain.ErrValidation)
	}
	from, to := MonthRange(month, now)

	assignments, err := s.Assignments.ListAssignments(ctx, ports.AssignmentFilter{
		Status: ports.FilterAll,
		Type:   t,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("type dashboard: list assignments: %w", err)
	}

	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, a := range assignments {
		for _, id := range a.Stores() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	stores := map[int]domain.Store{}
	if len(ids) > 0 {
		stores, err = s.Stores.GetStores(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("type dashboard: get stores: %w", err)
		}
	}

	return &TypeDashboard{Type: t, From: from, To: to, Assignments: assignments, Stores: stores}, nil
}

// MonthRange returns the first and last instant of month ("YYYY-MM") in UTC.
func MonthRange(month string, now time.Time) (time.Time, time.Time) {
	start, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		n := now.UTC()
		start = time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

func TopWorkersByHours(logs []domain.WorkLog, limit int) []WorkerTotal {
	totals := workerTotals(logs)
	slices.SortFunc(totals, func(a, b WorkerTotal) int {
		if c := compareDesc(a.Hours, b.Hours); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return truncate(totals, limit)
}

func TopRidersByKilometers(logs []domain.WorkLog, limit int) []WorkerTotal {
	all := workerTotals(logs)
	riders := make([]WorkerTotal, 0, len(all))
	for _, t := range all {
		if t.Km > 0 {
			riders = append(riders, t)
		}
	}
	slices.SortFunc(riders, func(a, b WorkerTotal) int {
		if c := compareDesc(a.Km, b.Km); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return truncate(riders, limit)
}

// WorkDistributionByType always lists the known types, in display order,
// followed by any other type present in logs.
func WorkDistributionByType(logs []domain.WorkLog) []TypeShare {
	type acc struct {
		hours       float64
		assignments map[int64]struct{}
	}
	byType := make(map[domain.AssignmentType]*acc)
	for _, l := range logs {
		a, ok := byType[l.AssignmentType]
		if !ok {
			a = &acc{assignments: map[int64]struct{}{}}
			byType[l.AssignmentType] = a
		}
		a.hours += l.Hours
		a.assignments[l.AssignmentID] = struct{}{}
	}

	order := append([]domain.AssignmentType{}, domain.AssignmentTypes...)
	extra := make([]domain.AssignmentType, 0)
	for t := range byType {
		if !t.Valid() {
			extra = append(extra, t)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	out := make([]TypeShare, 0, len(order))
	for _, t := range order {
		share := TypeShare{Type: t}
		if a, ok := byType[t]; ok {
			share.Hours = roundHours(a.hours)
			share.Assignments = len(a.assignments)
		}
		out = append(out, share)
	}
	return out
}

func TotalHours(logs []domain.WorkLog) float64 {
	total := 0.0
	for _, l := range logs {
		total += l.Hours
	}
	return roundHours(total)
}

// TotalKilometers counts each assignment's distance once, however many team
// members were credited with it.
func TotalKilometers(logs []domain.WorkLog) float64 {
	perAssignment := make(map[int64]float64)
	for _, l := range logs {
		if l.Km > perAssignment[l.AssignmentID] {
			perAssignment[l.AssignmentID] = l.Km
		}
	}
	total := 0.0
	for _, km := range perAssignment {
		total += km
	}
	return roundHours(total)
}

func workerTotals(logs []domain.WorkLog) []WorkerTotal {
	index := make(map[string]int)
	seen := make(map[string]map[int64]struct{})
	out := make([]WorkerTotal, 0)
	for _, l := range logs {
		key := strings.ToLower(strings.TrimSpace(l.WorkerName))
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			seen[key] = map[int64]struct{}{}
			out = append(out, WorkerTotal{Name: strings.TrimSpace(l.WorkerName)})
		}
		out[i].Hours += l.Hours
		out[i].Km += l.Km
		seen[key][l.AssignmentID] = struct{}{}
	}
	for key, i := range index {
		out[i].Hours = roundHours(out[i].Hours)
		out[i].Km = roundHours(out[i].Km)
		out[i].Assignments = len(seen[key])
	}
	return out
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}
	return 0
}

func truncate(totals []WorkerTotal, limit int) []WorkerTotal {
	if limit > 0 && len(totals) > limit {
		return totals[:limit]
	}
	return totals
}
