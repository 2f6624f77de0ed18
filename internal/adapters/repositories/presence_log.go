package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/platform/obs"
)

// SQLPresenceLog reads the vehicle_presence time series.
type SQLPresenceLog struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLPresenceLog(conn *sql.DB, d db.Dialect) *SQLPresenceLog {
	return &SQLPresenceLog{DB: conn, Dialect: d}
}

// FirstSampleAfter returns the earliest sample strictly after `after` with the
// given at-base flag, or nil when there is none.
func (s *SQLPresenceLog) FirstSampleAfter(
	ctx context.Context,
	vehicleID string,
	after time.Time,
	atBase bool,
) (_ *time.Time, err error) {
	defer obs.Time(ctx, "presence.FirstSampleAfter")(&err)

	if s.DB == nil {
		return nil, errors.New("presence log: db is nil")
	}

	q := s.Dialect.Rebind(`
	SELECT timestamp
	FROM vehicle_presence
	WHERE car_plate = ?
		AND timestamp > ?
		AND was_near_chitila = ?
	ORDER BY timestamp ASC
	LIMIT 1;
	`)

	var ts time.Time
	err = s.DB.QueryRowContext(ctx, q, vehicleID, after.UTC(), atBase).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first sample after: query vehicle_presence: %w", err)
	}

	ts = ts.UTC()
	return &ts, nil
}

// AppendSamples inserts presence samples. The production writer is an external
// GPS ingester; this exists for seeding and tests.
func (s *SQLPresenceLog) AppendSamples(ctx context.Context, samples []domain.PresenceSample) error {
	if s.DB == nil {
		return errors.New("presence log: db is nil")
	}
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append samples: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.Dialect.Rebind(`
	INSERT INTO vehicle_presence (car_plate, timestamp, was_near_chitila)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("append samples: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, smp := range samples {
		plate := strings.TrimSpace(smp.VehicleID)
		if plate == "" {
			return fmt.Errorf("append samples: sample #%d: vehicle id must not be empty", i+1)
		}
		if _, err := stmt.ExecContext(ctx, plate, smp.Timestamp.UTC(), smp.IsAtBase); err != nil {
			return fmt.Errorf("append samples: insert sample #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append samples: commit tx: %w", err)
	}
	return nil
}
