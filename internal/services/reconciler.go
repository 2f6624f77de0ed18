package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/logger"
	"field-ops-service/internal/platform/obs"
	"field-ops-service/internal/ports"
)

// Reconciler derives an assignment's real start and completion instants from
// the vehicle presence log.
//
// Start is the first sample away from base strictly after the assignment was
// created; completion is the first sample back at base strictly after that
// start. Telemetry is optional enrichment: every failure collapses to an empty
// window and is never returned to the caller. The Reconciler holds no state and
// is safe for concurrent use.
type Reconciler struct {
	presence ports.PresenceLog
	log      logger.Logger
}

func NewReconciler(presence ports.PresenceLog, log logger.Logger) *Reconciler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Reconciler{presence: presence, log: log}
}

var errWindowOrder = errors.New("presence log returned out-of-order samples")

// Reconcile returns the telemetry window for vehicleID. A blank vehicle id
// (or the "NA" placeholder used for assignments without a car) returns an
// empty window without touching the presence log.
func (r *Reconciler) Reconcile(ctx context.Context, vehicleID string, createdAt time.Time) domain.AssignmentWindow {
	empty := domain.AssignmentWindow{AssignmentCreatedAt: createdAt}

	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" || strings.EqualFold(vehicleID, "NA") {
		obs.ReconcileTotal.WithLabelValues(obs.OutcomeSkipped).Inc()
		r.log.Debugf("no car plate, skipping vehicle timestamp lookup")
		return empty
	}

	w, err := r.scan(ctx, vehicleID, createdAt)
	if err != nil {
		obs.ReconcileTotal.WithLabelValues(obs.OutcomeError).Inc()
		r.log.Warnf("vehicle timestamps for %q after %s: %v", vehicleID, createdAt.Format(time.RFC3339), err)
		return empty
	}

	switch {
	case w.Returned():
		obs.ReconcileTotal.WithLabelValues(obs.OutcomeReturned).Inc()
	case w.Started():
		obs.ReconcileTotal.WithLabelValues(obs.OutcomeDeparted).Inc()
	default:
		obs.ReconcileTotal.WithLabelValues(obs.OutcomeNotStarted).Inc()
	}
	return w
}

func (r *Reconciler) scan(ctx context.Context, vehicleID string, createdAt time.Time) (w domain.AssignmentWindow, err error) {
	defer obs.Time(ctx, "reconcile.scan")(&err)

	w.AssignmentCreatedAt = createdAt
	if r.presence == nil {
		return w, errors.New("reconcile: presence log is nil")
	}

	// Departure: first sample away from base after creation.
	start, err := r.presence.FirstSampleAfter(ctx, vehicleID, createdAt, false)
	if err != nil {
		return w, fmt.Errorf("reconcile: departure scan: %w", err)
	}
	if start == nil {
		r.log.Debugf("no departure found after assignment creation for car %q", vehicleID)
		return w, nil
	}
	w.RealStartDate = start

	// Return: first sample back at base after departure.
	back, err := r.presence.FirstSampleAfter(ctx, vehicleID, *start, true)
	if err != nil {
		return domain.AssignmentWindow{AssignmentCreatedAt: createdAt}, fmt.Errorf("reconcile: return scan: %w", err)
	}
	w.RealCompletionDate = back

	if !w.Valid() {
		return domain.AssignmentWindow{AssignmentCreatedAt: createdAt}, fmt.Errorf("reconcile: %w", errWindowOrder)
	}
	return w, nil
}
