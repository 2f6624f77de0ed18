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

type SQLWorkLogRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLWorkLogRepository(conn *sql.DB, d db.Dialect) *SQLWorkLogRepository {
	return &SQLWorkLogRepository{DB: conn, Dialect: d}
}

// ListWorkLogs returns logs whose start time lies in [from, to]; zero bounds
// are open.
func (r *SQLWorkLogRepository) ListWorkLogs(ctx context.Context, from, to time.Time) (_ []domain.WorkLog, err error) {
	defer obs.Time(ctx, "worklogs.List")(&err)

	if r.DB == nil {
		return nil, errors.New("work log repository: db is nil")
	}

	var (
		where []string
		args  []any
	)
	if !from.IsZero() {
		where = append(where, "start_time >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		where = append(where, "start_time <= ?")
		args = append(args, to.UTC())
	}

	q := `
	SELECT id, assignment_id, worker_name, assignment_type, start_time, end_time,
		hours, km, store_count
	FROM work_logs`
	if len(where) > 0 {
		q += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\tORDER BY start_time, id;"

	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list work logs: query work_logs table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.WorkLog, 0, 64)
	for rows.Next() {
		var l domain.WorkLog
		if err := rows.Scan(
			&l.ID, &l.AssignmentID, &l.WorkerName, &l.AssignmentType, &l.StartTime, &l.EndTime,
			&l.Hours, &l.Km, &l.StoreCount,
		); err != nil {
			return nil, fmt.Errorf("list work logs: scan row: %w", err)
		}
		l.StartTime = l.StartTime.UTC()
		l.EndTime = l.EndTime.UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list work logs: row iteration: %w", err)
	}
	return out, nil
}
