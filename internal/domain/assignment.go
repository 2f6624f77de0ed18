package domain

import (
	"fmt"
	"strings"
	"time"
)

type AssignmentType string

const (
	TypeInterventie AssignmentType = "Interventie"
	TypeOptimizare  AssignmentType = "Optimizare"
	TypeDeschidere  AssignmentType = "Deschidere"
)

// AssignmentTypes lists the known assignment types in display order.
var AssignmentTypes = []AssignmentType{TypeInterventie, TypeOptimizare, TypeDeschidere}

func (t AssignmentType) Valid() bool {
	for _, known := range AssignmentTypes {
		if t == known {
			return true
		}
	}
	return false
}

type AssignmentStatus string

const (
	StatusInDeplasare AssignmentStatus = "In Deplasare"
	StatusFinalizat   AssignmentStatus = "Finalizat"
	StatusAnulat      AssignmentStatus = "Anulat"
)

// Assignment (deplasare) is a field trip by a team to one or more stores in a
// vehicle. Nominal dates are entered by users; GPS dates come from
// reconciliation against the vehicle presence log.
type Assignment struct {
	ID                 int64
	Type               AssignmentType
	Location           string
	City               string
	County             string
	StoreNumber        *int
	StorePoints        IntList
	TeamLead           string
	Members            StringList
	CarPlate           string
	Status             AssignmentStatus
	StartDate          time.Time
	CompletionDate     *time.Time
	GPSStartDate       *time.Time
	GPSCompletionDate  *time.Time
	Km                 *float64
	DrivingTimeMinutes *int
	CreatedAt          time.Time
}

// IsActive reports whether the assignment is still in progress.
func (a *Assignment) IsActive() bool {
	return a.Status != StatusFinalizat && a.Status != StatusAnulat
}

// Team returns the lead followed by the members, trimmed and de-duplicated
// case-insensitively.
func (a *Assignment) Team() []string {
	seen := make(map[string]struct{}, len(a.Members)+1)
	team := make([]string, 0, len(a.Members)+1)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		team = append(team, name)
	}

	add(a.TeamLead)
	for _, m := range a.Members {
		add(m)
	}
	return team
}

// Stores returns the distinct store ids visited, starting with StoreNumber.
func (a *Assignment) Stores() []int {
	seen := make(map[int]struct{}, len(a.StorePoints)+1)
	out := make([]int, 0, len(a.StorePoints)+1)
	if a.StoreNumber != nil {
		seen[*a.StoreNumber] = struct{}{}
		out = append(out, *a.StoreNumber)
	}
	for _, id := range a.StorePoints {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// EffectiveStart prefers the GPS-derived start over the nominal one.
func (a *Assignment) EffectiveStart() time.Time {
	if a.GPSStartDate != nil {
		return *a.GPSStartDate
	}
	return a.StartDate
}

// EffectiveEnd prefers the GPS-derived completion over the nominal one. It is
// nil while the assignment has neither.
func (a *Assignment) EffectiveEnd() *time.Time {
	if a.GPSCompletionDate != nil {
		return a.GPSCompletionDate
	}
	return a.CompletionDate
}

// SetRoute replaces the list of stores visited.
func (a *Assignment) SetRoute(storePoints []int) error {
	if !a.IsActive() {
		return fmt.Errorf("set route: assignment %d is %s: %w", a.ID, a.Status, ErrInvalidTransition)
	}
	for _, id := range storePoints {
		if id <= 0 {
			return fmt.Errorf("set route: invalid store id %d: %w", id, ErrValidation)
		}
	}
	a.StorePoints = append(IntList{}, storePoints...)
	return nil
}

// Finalize closes the assignment at now, copying the telemetry window and the
// optional distance figures. Nil km or driving time keep the current values.
func (a *Assignment) Finalize(now time.Time, w AssignmentWindow, km *float64, drivingMinutes *int) error {
	if !a.IsActive() {
		return fmt.Errorf("finalize: assignment %d is %s: %w", a.ID, a.Status, ErrInvalidTransition)
	}
	if km != nil && *km < 0 {
		return fmt.Errorf("finalize: km must not be negative: %w", ErrValidation)
	}
	if drivingMinutes != nil && *drivingMinutes < 0 {
		return fmt.Errorf("finalize: driving time must not be negative: %w", ErrValidation)
	}

	a.Status = StatusFinalizat
	completed := now
	a.CompletionDate = &completed
	a.GPSStartDate = w.RealStartDate
	a.GPSCompletionDate = w.RealCompletionDate
	if km != nil {
		a.Km = km
	}
	if drivingMinutes != nil {
		a.DrivingTimeMinutes = drivingMinutes
	}
	return nil
}
