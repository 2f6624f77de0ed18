package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"field-ops-service/internal/domain"
	"field-ops-service/internal/platform/db"
	"field-ops-service/internal/platform/obs"
)

// SQLStoreRepository looks up store details by id.
type SQLStoreRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLStoreRepository(conn *sql.DB, d db.Dialect) *SQLStoreRepository {
	return &SQLStoreRepository{DB: conn, Dialect: d}
}

// GetStores fetches the stores among ids that exist. Duplicate and
// non-positive ids are ignored.
func (s *SQLStoreRepository) GetStores(ctx context.Context, ids []int) (_ map[int]domain.Store, err error) {
	defer obs.Time(ctx, "stores.GetStores")(&err)

	if s.DB == nil {
		return nil, errors.New("store repository: db is nil")
	}

	seen := make(map[int]struct{}, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		args = append(args, id)
	}

	if len(args) == 0 {
		return map[int]domain.Store{}, nil
	}

	q := s.Dialect.Rebind(`
	SELECT store_id, description, city, county, address
	FROM stores
	WHERE store_id IN (` + db.Placeholders(len(args)) + `);
	`)

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get stores: query stores table: %w", err)
	}
	defer rows.Close()

	out := make(map[int]domain.Store, len(args))
	for rows.Next() {
		var st domain.Store
		if err := rows.Scan(&st.StoreID, &st.Description, &st.City, &st.County, &st.Address); err != nil {
			return nil, fmt.Errorf("get stores: scan row: %w", err)
		}
		out[st.StoreID] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get stores: row iteration: %w", err)
	}
	return out, nil
}

type SQLUserRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLUserRepository(conn *sql.DB, d db.Dialect) *SQLUserRepository {
	return &SQLUserRepository{DB: conn, Dialect: d}
}

func (r *SQLUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	if r.DB == nil {
		return nil, errors.New("user repository: db is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT id, name, role
	FROM users
	ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: query users table: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, 32)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role); err != nil {
			return nil, fmt.Errorf("list users: scan row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: row iteration: %w", err)
	}
	return users, nil
}
