package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/db"
)

type SeedFile struct {
	Users       []UserSeed       `json:"users"`
	Stores      []StoreSeed      `json:"stores"`
	Assignments []AssignmentSeed `json:"assignments"`
	Presence    []PresenceSeed   `json:"presence"`
}

type UserSeed struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type StoreSeed struct {
	StoreID     int    `json:"store_id"`
	Description string `json:"description"`
	City        string `json:"city"`
	County      string `json:"county"`
	Address     string `json:"address"`
}

// AssignmentSeed mirrors exported assignment rows. Members and store points
// keep whatever JSON encoding the export used.
type AssignmentSeed struct {
	Type           string          `json:"type"`
	Location       string          `json:"location"`
	City           string          `json:"city"`
	County         string          `json:"county"`
	StoreNumber    *int            `json:"store_number"`
	StorePoints    json.RawMessage `json:"store_points"`
	TeamLead       string          `json:"team_lead"`
	Members        json.RawMessage `json:"members"`
	CarPlate       string          `json:"car_plate"`
	Status         string          `json:"status"`
	StartDate      time.Time       `json:"start_date"`
	CompletionDate *time.Time      `json:"completion_date"`
	CreatedAt      *time.Time      `json:"created_at"`
	Km             *float64        `json:"km"`
	DrivingTime    *int            `json:"driving_time"`
}

type PresenceSeed struct {
	CarPlate       string    `json:"car_plate"`
	Timestamp      time.Time `json:"timestamp"`
	WasNearChitila bool      `json:"was_near_chitila"`
}

type SeedStats struct {
	Users       int
	Stores      int
	Assignments int
	Samples     int
}

// SeedFromJSON loads reference data from a JSON file. Users and stores are
// upserted; assignments and presence samples are only inserted into an empty
// assignments table so the seed can be re-run safely.
func SeedFromJSON(ctx context.Context, conn *sql.DB, d db.Dialect, jsonPath string) (SeedStats, error) {
	var stats SeedStats

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return stats, fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var data SeedFile
	if err := json.Unmarshal(bytes, &data); err != nil {
		return stats, fmt.Errorf("seed: parse json: %w", err)
	}

	assignments, err := data.assignments()
	if err != nil {
		return stats, err
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, u := range data.Users {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return stats, fmt.Errorf("seed users: name at index %d cannot be empty", i+1)
		}
		role := strings.TrimSpace(u.Role)
		if role == "" {
			role = "user"
		}
		if _, err := tx.ExecContext(ctx, d.Rebind(`
		INSERT INTO users (name, role) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET role = EXCLUDED.role;
		`), name, role); err != nil {
			return stats, fmt.Errorf("seed users: insert %q: %w", name, err)
		}
		stats.Users++
	}

	for i, st := range data.Stores {
		if st.StoreID <= 0 {
			return stats, fmt.Errorf("seed stores: invalid store_id at index %d: %d", i+1, st.StoreID)
		}
		if _, err := tx.ExecContext(ctx, d.Rebind(`
		INSERT INTO stores (store_id, description, city, county, address)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (store_id) DO UPDATE
		SET description = EXCLUDED.description,
			city = EXCLUDED.city,
			county = EXCLUDED.county,
			address = EXCLUDED.address;
		`), st.StoreID, st.Description, st.City, st.County, st.Address); err != nil {
			return stats, fmt.Errorf("seed stores: insert store_id=%d: %w", st.StoreID, err)
		}
		stats.Stores++
	}

	var existing int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM assignments;").Scan(&existing); err != nil {
		return stats, fmt.Errorf("seed: count assignments: %w", err)
	}

	if existing == 0 {
		for _, a := range assignments {
			if _, err := tx.ExecContext(ctx, d.Rebind(`
			INSERT INTO assignments (
				type, location, city, county, store_number, store_points,
				team_lead, members, car_plate, status, start_date, completion_date,
				km, driving_time, created_at
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
			`),
				string(a.Type), a.Location, a.City, a.County, a.StoreNumber, a.StorePoints,
				a.TeamLead, a.Members, a.CarPlate, string(a.Status), a.StartDate.UTC(), utcPtr(a.CompletionDate),
				a.Km, a.DrivingTimeMinutes, a.CreatedAt.UTC(),
			); err != nil {
				return stats, fmt.Errorf("seed assignments: insert lead=%q: %w", a.TeamLead, err)
			}
			stats.Assignments++
		}

		for i, p := range data.Presence {
			plate := strings.TrimSpace(p.CarPlate)
			if plate == "" {
				return stats, fmt.Errorf("seed presence: car_plate at index %d cannot be empty", i+1)
			}
			if _, err := tx.ExecContext(ctx, d.Rebind(`
			INSERT INTO vehicle_presence (car_plate, timestamp, was_near_chitila)
			VALUES (?, ?, ?);
			`), plate, p.Timestamp.UTC(), p.WasNearChitila); err != nil {
				return stats, fmt.Errorf("seed presence: insert sample #%d: %w", i+1, err)
			}
			stats.Samples++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("seed: commit tx: %w", err)
	}
	return stats, nil
}

func (f SeedFile) assignments() ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0, len(f.Assignments))
	for i, s := range f.Assignments {
		t := domain.AssignmentType(strings.TrimSpace(s.Type))
		if !t.Valid() {
			return nil, fmt.Errorf("seed assignments: unknown type %q at index %d", s.Type, i+1)
		}
		lead := strings.TrimSpace(s.TeamLead)
		if lead == "" {
			return nil, fmt.Errorf("seed assignments: team_lead at index %d cannot be empty", i+1)
		}
		if s.StartDate.IsZero() {
			return nil, fmt.Errorf("seed assignments: start_date at index %d is required", i+1)
		}

		members, err := domain.ParseStringList(string(s.Members))
		if err != nil {
			return nil, fmt.Errorf("seed assignments: members at index %d: %w", i+1, err)
		}
		points, err := domain.ParseIntList(string(s.StorePoints))
		if err != nil {
			return nil, fmt.Errorf("seed assignments: store_points at index %d: %w", i+1, err)
		}

		status := domain.AssignmentStatus(strings.TrimSpace(s.Status))
		if status == "" {
			status = domain.StatusInDeplasare
		}
		created := s.StartDate
		if s.CreatedAt != nil {
			created = *s.CreatedAt
		}

		out = append(out, domain.Assignment{
			Type:               t,
			Location:           s.Location,
			City:               s.City,
			County:             s.County,
			StoreNumber:        s.StoreNumber,
			StorePoints:        points,
			TeamLead:           lead,
			Members:            members,
			CarPlate:           strings.TrimSpace(s.CarPlate),
			Status:             status,
			StartDate:          s.StartDate,
			CompletionDate:     s.CompletionDate,
			Km:                 s.Km,
			DrivingTimeMinutes: s.DrivingTime,
			CreatedAt:          created,
		})
	}
	return out, nil
}
