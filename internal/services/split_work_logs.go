package services

import (
	"errors"
	"fmt"
	"math"

	"field-ops-service/internal/domain"
)

// SplitWorkLogs credits every team member of a finalized assignment with one
// work log.
//
// Each member receives the full interval (GPS dates when known, nominal dates
// otherwise) and the assignment's kilometres: the whole team travels in the
// vehicle. Members are credited in team order, lead first.
func SplitWorkLogs(a *domain.Assignment) ([]domain.WorkLog, error) {
	if a == nil {
		return nil, errors.New("split work logs: assignment is nil")
	}
	if a.Status != domain.StatusFinalizat {
		return nil, fmt.Errorf("split work logs: assignment %d is %s: %w", a.ID, a.Status, domain.ErrInvalidTransition)
	}

	end := a.EffectiveEnd()
	if end == nil {
		return nil, fmt.Errorf("split work logs: assignment %d has no completion date", a.ID)
	}
	start := a.EffectiveStart()

	hours := 0.0
	if end.After(start) {
		hours = roundHours(end.Sub(start).Hours())
	}

	km := 0.0
	if a.Km != nil {
		km = *a.Km
	}

	team := a.Team()
	stores := len(a.Stores())
	logs := make([]domain.WorkLog, 0, len(team))
	for _, name := range team {
		logs = append(logs, domain.WorkLog{
			AssignmentID:   a.ID,
			WorkerName:     name,
			AssignmentType: a.Type,
			StartTime:      start,
			EndTime:        *end,
			Hours:          hours,
			Km:             km,
			StoreCount:     stores,
		})
	}
	return logs, nil
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
