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
	"field-ops-service/internal/ports"
)

const assignmentColumns = `
	id, type, location, city, county, store_number, store_points,
	team_lead, members, car_plate, status, start_date, completion_date,
	gps_start_date, gps_completion_date, km, driving_time, created_at`

// SQLAssignmentRepository persists assignments and their work logs.
type SQLAssignmentRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLAssignmentRepository(conn *sql.DB, d db.Dialect) *SQLAssignmentRepository {
	return &SQLAssignmentRepository{DB: conn, Dialect: d}
}

func (r *SQLAssignmentRepository) ListAssignments(
	ctx context.Context,
	f ports.AssignmentFilter,
) (_ []*domain.Assignment, err error) {
	defer obs.Time(ctx, "assignments.List")(&err)

	if r.DB == nil {
		return nil, errors.New("assignment repository: db is nil")
	}

	var (
		where []string
		args  []any
	)
	switch f.Status {
	case ports.FilterActive:
		where = append(where, "status NOT IN (?, ?)")
		args = append(args, string(domain.StatusFinalizat), string(domain.StatusAnulat))
	case ports.FilterCompleted:
		where = append(where, "status = ?")
		args = append(args, string(domain.StatusFinalizat))
	}
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if !f.From.IsZero() {
		where = append(where, "start_date >= ?")
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		where = append(where, "start_date <= ?")
		args = append(args, f.To.UTC())
	}

	q := "SELECT" + assignmentColumns + "\n\tFROM assignments"
	if len(where) > 0 {
		q += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	q += "\n\tORDER BY start_date DESC, id DESC;"

	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: query assignments table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Assignment, 0, 32)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("list assignments: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: row iteration: %w", err)
	}
	return out, nil
}

func (r *SQLAssignmentRepository) GetAssignment(ctx context.Context, id int64) (*domain.Assignment, error) {
	if r.DB == nil {
		return nil, errors.New("assignment repository: db is nil")
	}

	q := r.Dialect.Rebind("SELECT" + assignmentColumns + "\n\tFROM assignments WHERE id = ?;")
	a, err := scanAssignment(r.DB.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assignment %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment %d: %w", id, err)
	}
	return a, nil
}

func (r *SQLAssignmentRepository) CreateAssignment(ctx context.Context, a *domain.Assignment) (int64, error) {
	if r.DB == nil {
		return 0, errors.New("assignment repository: db is nil")
	}
	if a == nil {
		return 0, errors.New("create assignment: assignment is nil")
	}

	q := r.Dialect.Rebind(`
	INSERT INTO assignments (
		type, location, city, county, store_number, store_points,
		team_lead, members, car_plate, status, start_date, completion_date,
		gps_start_date, gps_completion_date, km, driving_time, created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	RETURNING id;
	`)

	var id int64
	err := r.DB.QueryRowContext(ctx, q,
		string(a.Type), a.Location, a.City, a.County, a.StoreNumber, a.StorePoints,
		a.TeamLead, a.Members, a.CarPlate, string(a.Status), a.StartDate.UTC(), utcPtr(a.CompletionDate),
		utcPtr(a.GPSStartDate), utcPtr(a.GPSCompletionDate), a.Km, a.DrivingTimeMinutes, a.CreatedAt.UTC(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create assignment: insert: %w", err)
	}
	return id, nil
}

func (r *SQLAssignmentRepository) UpdateRoute(ctx context.Context, id int64, storePoints domain.IntList) error {
	if r.DB == nil {
		return errors.New("assignment repository: db is nil")
	}

	res, err := r.DB.ExecContext(ctx,
		r.Dialect.Rebind("UPDATE assignments SET store_points = ? WHERE id = ?;"),
		storePoints, id,
	)
	if err != nil {
		return fmt.Errorf("update route %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("update route %d", id))
}

// SaveFinalized writes the finalized assignment and its work logs in one
// transaction. Only a row that is still active is updated, so concurrent
// finalizations of the same assignment cannot both succeed.
func (r *SQLAssignmentRepository) SaveFinalized(
	ctx context.Context,
	a *domain.Assignment,
	logs []domain.WorkLog,
) (err error) {
	defer obs.Time(ctx, "assignments.SaveFinalized")(&err)

	if r.DB == nil {
		return errors.New("assignment repository: db is nil")
	}
	if a == nil {
		return errors.New("save finalized: assignment is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save finalized: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, r.Dialect.Rebind(`
	UPDATE assignments
	SET status = ?,
		completion_date = ?,
		gps_start_date = ?,
		gps_completion_date = ?,
		km = ?,
		driving_time = ?
	WHERE id = ?
		AND status NOT IN (?, ?);
	`),
		string(a.Status), utcPtr(a.CompletionDate), utcPtr(a.GPSStartDate), utcPtr(a.GPSCompletionDate),
		a.Km, a.DrivingTimeMinutes, a.ID,
		string(domain.StatusFinalizat), string(domain.StatusAnulat),
	)
	if err != nil {
		return fmt.Errorf("save finalized: update assignment %d: %w", a.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("save finalized %d: rows affected: %w", a.ID, err)
	}
	if n == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx,
			r.Dialect.Rebind("SELECT COUNT(*) FROM assignments WHERE id = ?;"), a.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("save finalized %d: check existence: %w", a.ID, err)
		}
		if exists == 0 {
			return fmt.Errorf("save finalized %d: %w", a.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("save finalized %d: assignment is no longer active: %w", a.ID, domain.ErrInvalidTransition)
	}

	if _, err := tx.ExecContext(ctx,
		r.Dialect.Rebind("DELETE FROM work_logs WHERE assignment_id = ?;"), a.ID,
	); err != nil {
		return fmt.Errorf("save finalized: clear work logs: %w", err)
	}

	if len(logs) > 0 {
		stmt, err := tx.PrepareContext(ctx, r.Dialect.Rebind(`
		INSERT INTO work_logs (
			assignment_id, worker_name, assignment_type, start_time, end_time,
			hours, km, store_count
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);
		`))
		if err != nil {
			return fmt.Errorf("save finalized: prepare work log insert: %w", err)
		}
		defer stmt.Close()

		for _, l := range logs {
			if _, err := stmt.ExecContext(ctx,
				a.ID, l.WorkerName, string(l.AssignmentType), l.StartTime.UTC(), l.EndTime.UTC(),
				l.Hours, l.Km, l.StoreCount,
			); err != nil {
				return fmt.Errorf("save finalized: insert work log worker=%q: %w", l.WorkerName, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save finalized: commit tx: %w", err)
	}
	return nil
}

func (r *SQLAssignmentRepository) DeleteAssignment(ctx context.Context, id int64) error {
	if r.DB == nil {
		return errors.New("assignment repository: db is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete assignment %d: begin tx: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	// Explicit so SQLite connections opened without foreign_keys behave the same.
	if _, err := tx.ExecContext(ctx,
		r.Dialect.Rebind("DELETE FROM work_logs WHERE assignment_id = ?;"), id,
	); err != nil {
		return fmt.Errorf("delete assignment %d: delete work logs: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, r.Dialect.Rebind("DELETE FROM assignments WHERE id = ?;"), id)
	if err != nil {
		return fmt.Errorf("delete assignment %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("delete assignment %d", id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete assignment %d: commit tx: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (*domain.Assignment, error) {
	var (
		a           domain.Assignment
		storeNumber sql.NullInt64
		completion  sql.NullTime
		gpsStart    sql.NullTime
		gpsEnd      sql.NullTime
		km          sql.NullFloat64
		driving     sql.NullInt64
	)
	err := row.Scan(
		&a.ID, &a.Type, &a.Location, &a.City, &a.County, &storeNumber, &a.StorePoints,
		&a.TeamLead, &a.Members, &a.CarPlate, &a.Status, &a.StartDate, &completion,
		&gpsStart, &gpsEnd, &km, &driving, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assignment: %w", err)
	}

	a.StartDate = a.StartDate.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	if storeNumber.Valid {
		n := int(storeNumber.Int64)
		a.StoreNumber = &n
	}
	a.CompletionDate = nullTime(completion)
	a.GPSStartDate = nullTime(gpsStart)
	a.GPSCompletionDate = nullTime(gpsEnd)
	if km.Valid {
		a.Km = &km.Float64
	}
	if driving.Valid {
		m := int(driving.Int64)
		a.DrivingTimeMinutes = &m
	}
	return &a, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

// utcPtr returns a driver value for an optional timestamp.
func utcPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
