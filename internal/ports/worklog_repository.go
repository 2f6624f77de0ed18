package ports

import (
	"context"
	"time"

	"field-ops-service/internal/domain"
)

type WorkLogRepository interface {
	// ListWorkLogs returns logs whose start time lies in [from, to]. Zero
	// bounds are open.
	ListWorkLogs(ctx context.Context, from, to time.Time) ([]domain.WorkLog, error)
}
