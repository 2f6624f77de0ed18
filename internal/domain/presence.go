package domain

import "time"

// PresenceSample is one GPS-derived observation of whether a vehicle was
// inside the home base geofence (Chitila) at Timestamp. Samples are written by
// an external ingestion process and are immutable.
type PresenceSample struct {
	VehicleID string
	Timestamp time.Time
	IsAtBase  bool
}

// AssignmentWindow holds the telemetry-derived start and completion instants
// of an assignment. Both are nil until the vehicle is seen leaving base;
// RealCompletionDate stays nil while the vehicle is still out.
type AssignmentWindow struct {
	AssignmentCreatedAt time.Time
	RealStartDate       *time.Time
	RealCompletionDate  *time.Time
}

// Valid reports whether the window respects the strict ordering
// createdAt < start < completion.
func (w AssignmentWindow) Valid() bool {
	if w.RealStartDate == nil {
		return w.RealCompletionDate == nil
	}
	if !w.RealStartDate.After(w.AssignmentCreatedAt) {
		return false
	}
	if w.RealCompletionDate != nil && !w.RealCompletionDate.After(*w.RealStartDate) {
		return false
	}
	return true
}

// Started reports whether a departure was observed.
func (w AssignmentWindow) Started() bool { return w.RealStartDate != nil }

// Returned reports whether a return to base after departure was observed.
func (w AssignmentWindow) Returned() bool { return w.RealCompletionDate != nil }
