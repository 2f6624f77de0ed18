package ports

import (
	"context"
	"time"

	"field-ops-service/internal/domain"
)

type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterActive    StatusFilter = "active"
	FilterCompleted StatusFilter = "completed"
)

type AssignmentFilter struct {
	Status StatusFilter
	// Type restricts results to one assignment type when non-empty.
	Type domain.AssignmentType
	// From and To bound StartDate (inclusive) when non-zero.
	From time.Time
	To   time.Time
}

// Port: persistence of Assignment aggregates.
type AssignmentRepository interface {
	ListAssignments(ctx context.Context, f AssignmentFilter) ([]*domain.Assignment, error)
	// GetAssignment returns domain.ErrNotFound when id does not exist.
	GetAssignment(ctx context.Context, id int64) (*domain.Assignment, error)
	CreateAssignment(ctx context.Context, a *domain.Assignment) (int64, error)
	UpdateRoute(ctx context.Context, id int64, storePoints domain.IntList) error
	// SaveFinalized persists a finalized assignment together with its work
	// logs atomically.
	SaveFinalized(ctx context.Context, a *domain.Assignment, logs []domain.WorkLog) error
	// DeleteAssignment removes the assignment and its work logs.
	DeleteAssignment(ctx context.Context, id int64) error
}
