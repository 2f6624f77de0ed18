package ports

import (
	"context"
	"time"
)

// PresenceLog is read access to the vehicle presence time series.
type PresenceLog interface {
	// FirstSampleAfter returns the timestamp of the earliest sample for
	// vehicleID with timestamp strictly after `after` and the given at-base
	// flag. It returns (nil, nil) when no sample matches.
	FirstSampleAfter(ctx context.Context, vehicleID string, after time.Time, atBase bool) (*time.Time, error)
}
