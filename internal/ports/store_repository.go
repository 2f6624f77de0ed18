package ports

import (
	"context"

	"field-ops-service/internal/domain"
)

type StoreRepository interface {
	// GetStores returns the stores among ids that exist, keyed by store id.
	GetStores(ctx context.Context, ids []int) (map[int]domain.Store, error)
}

type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}
