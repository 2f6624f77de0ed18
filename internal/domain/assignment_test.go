package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAssignmentFinalize(t *testing.T) {
	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	start := created.Add(5 * time.Minute)
	back := created.Add(90 * time.Minute)
	now := created.Add(2 * time.Hour)

	a := &Assignment{
		ID:        7,
		Type:      TypeInterventie,
		TeamLead:  "Ion Popescu",
		Status:    StatusInDeplasare,
		StartDate: created,
		CreatedAt: created,
	}

	km := 42.5
	minutes := 55
	w := AssignmentWindow{AssignmentCreatedAt: created, RealStartDate: &start, RealCompletionDate: &back}
	if err := a.Finalize(now, w, &km, &minutes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Status != StatusFinalizat {
		t.Errorf("status = %q, want %q", a.Status, StatusFinalizat)
	}
	if a.CompletionDate == nil || !a.CompletionDate.Equal(now) {
		t.Errorf("completion = %v, want %v", a.CompletionDate, now)
	}
	if a.GPSStartDate == nil || !a.GPSStartDate.Equal(start) {
		t.Errorf("gps start = %v, want %v", a.GPSStartDate, start)
	}
	if a.GPSCompletionDate == nil || !a.GPSCompletionDate.Equal(back) {
		t.Errorf("gps completion = %v, want %v", a.GPSCompletionDate, back)
	}
	if a.Km == nil || *a.Km != 42.5 {
		t.Errorf("km = %v, want 42.5", a.Km)
	}
	if !a.EffectiveStart().Equal(start) {
		t.Errorf("effective start = %v, want %v", a.EffectiveStart(), start)
	}

	if err := a.Finalize(now, w, nil, nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second finalize err = %v, want ErrInvalidTransition", err)
	}
}

func TestAssignmentFinalizeWithoutTelemetryKeepsDistance(t *testing.T) {
	km := 12.0
	a := &Assignment{ID: 1, Status: StatusInDeplasare, Km: &km}
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)

	if err := a.Finalize(now, AssignmentWindow{}, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.GPSStartDate != nil || a.GPSCompletionDate != nil {
		t.Errorf("gps dates should stay nil, got %v %v", a.GPSStartDate, a.GPSCompletionDate)
	}
	if a.Km == nil || *a.Km != 12 {
		t.Errorf("km = %v, want 12", a.Km)
	}
	if end := a.EffectiveEnd(); end == nil || !end.Equal(now) {
		t.Errorf("effective end = %v, want %v", end, now)
	}
}

func TestAssignmentFinalizeRejectsNegativeKm(t *testing.T) {
	a := &Assignment{ID: 1, Status: StatusInDeplasare}
	km := -1.0
	err := a.Finalize(time.Now(), AssignmentWindow{}, &km, nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if a.Status != StatusInDeplasare {
		t.Errorf("status changed to %q on failed finalize", a.Status)
	}
}

func TestAssignmentTeamDeduplicates(t *testing.T) {
	a := &Assignment{
		TeamLead: " Ion Popescu ",
		Members:  StringList{"Maria Ionescu", "ion popescu", "", "Dan Stan", "Maria Ionescu"},
	}

	got := a.Team()
	want := []string{"Ion Popescu", "Maria Ionescu", "Dan Stan"}
	if len(got) != len(want) {
		t.Fatalf("team = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("team[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAssignmentStores(t *testing.T) {
	store := 101
	a := &Assignment{StoreNumber: &store, StorePoints: IntList{205, 101, 307, 205}}

	got := a.Stores()
	want := []int{101, 205, 307}
	if len(got) != len(want) {
		t.Fatalf("stores = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stores[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestAssignmentSetRoute(t *testing.T) {
	a := &Assignment{ID: 3, Status: StatusInDeplasare}
	if err := a.SetRoute([]int{4, 5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a.StorePoints) != 2 {
		t.Fatalf("store points = %v", a.StorePoints)
	}
	if err := a.SetRoute([]int{0}); !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	a.Status = StatusAnulat
	if err := a.SetRoute([]int{4}); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}
