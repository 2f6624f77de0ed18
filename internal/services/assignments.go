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

// NewAssignment is the input for creating an assignment.
type NewAssignment struct {
	Type        domain.AssignmentType
	Location    string
	City        string
	County      string
	StoreNumber *int
	StorePoints []int
	TeamLead    string
	Members     []string
	CarPlate    string
	StartDate   time.Time
}

// FinalizeInput carries the optional distance figures entered at
// finalization.
type FinalizeInput struct {
	Km                 *float64
	DrivingTimeMinutes *int
}

// FinalizeResult is the finalized assignment and the telemetry window that
// was applied to it.
type FinalizeResult struct {
	Assignment *domain.Assignment
	Window     domain.AssignmentWindow
	WorkLogs   []domain.WorkLog
}

// AssignmentService implements the assignment lifecycle on top of the
// repository and the Reconciler.
type AssignmentService struct {
	Repo       ports.AssignmentRepository
	Reconciler *Reconciler
	Log        logger.Logger
	// Now is overridable in tests.
	Now func() time.Time
}

func NewAssignmentService(repo ports.AssignmentRepository, reconciler *Reconciler, log logger.Logger) *AssignmentService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &AssignmentService{Repo: repo, Reconciler: reconciler, Log: log, Now: time.Now}
}

func (s *AssignmentService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *AssignmentService) List(ctx context.Context, f ports.AssignmentFilter) ([]*domain.Assignment, error) {
	switch f.Status {
	case "":
		f.Status = ports.FilterAll
	case ports.FilterAll, ports.FilterActive, ports.FilterCompleted:
	default:
		return nil, fmt.Errorf("list assignments: unknown status filter %q: %w", f.Status, domain.ErrValidation)
	}
	if f.Type != "" && !f.Type.Valid() {
		return nil, fmt.Errorf("list assignments: unknown type %q: %w", f.Type, domain.ErrValidation)
	}

	out, err := s.Repo.ListAssignments(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

func (s *AssignmentService) Get(ctx context.Context, id int64) (*domain.Assignment, error) {
	a, err := s.Repo.GetAssignment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get assignment %d: %w", id, err)
	}
	return a, nil
}

func (s *AssignmentService) Create(ctx context.Context, in NewAssignment) (*domain.Assignment, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("create assignment: unknown type %q: %w", in.Type, domain.ErrValidation)
	}
	lead := strings.TrimSpace(in.TeamLead)
	if lead == "" {
		return nil, fmt.Errorf("create assignment: team lead is required: %w", domain.ErrValidation)
	}
	if in.StartDate.IsZero() {
		return nil, fmt.Errorf("create assignment: start date is required: %w", domain.ErrValidation)
	}
	if in.StoreNumber != nil && *in.StoreNumber <= 0 {
		return nil, fmt.Errorf("create assignment: invalid store number %d: %w", *in.StoreNumber, domain.ErrValidation)
	}

	points := append(domain.IntList{}, in.StorePoints...)
	if len(points) == 0 && in.StoreNumber != nil {
		points = domain.IntList{*in.StoreNumber}
	}
	for _, id := range points {
		if id <= 0 {
			return nil, fmt.Errorf("create assignment: invalid store id %d: %w", id, domain.ErrValidation)
		}
	}

	members := make(domain.StringList, 0, len(in.Members))
	for _, m := range in.Members {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}

	a := &domain.Assignment{
		Type:        in.Type,
		Location:    strings.TrimSpace(in.Location),
		City:        strings.TrimSpace(in.City),
		County:      strings.TrimSpace(in.County),
		StoreNumber: in.StoreNumber,
		StorePoints: points,
		TeamLead:    lead,
		Members:     members,
		CarPlate:    strings.TrimSpace(in.CarPlate),
		Status:      domain.StatusInDeplasare,
		StartDate:   in.StartDate.UTC(),
		CreatedAt:   s.now(),
	}

	id, err := s.Repo.CreateAssignment(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	a.ID = id
	s.Log.Infof("created assignment id=%d type=%s car=%q", a.ID, a.Type, a.CarPlate)
	return a, nil
}

func (s *AssignmentService) UpdateRoute(ctx context.Context, id int64, storePoints []int) (*domain.Assignment, error) {
	a, err := s.Repo.GetAssignment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update route %d: %w", id, err)
	}
	if err := a.SetRoute(storePoints); err != nil {
		return nil, fmt.Errorf("update route %d: %w", id, err)
	}
	if err := s.Repo.UpdateRoute(ctx, id, a.StorePoints); err != nil {
		return nil, fmt.Errorf("update route %d: %w", id, err)
	}
	return a, nil
}

func (s *AssignmentService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteAssignment(ctx, id); err != nil {
		return fmt.Errorf("delete assignment %d: %w", id, err)
	}
	s.Log.Infof("deleted assignment id=%d", id)
	return nil
}

// VehicleTimestamps returns the telemetry window for an assignment without
// persisting it.
func (s *AssignmentService) VehicleTimestamps(ctx context.Context, id int64) (domain.AssignmentWindow, error) {
	a, err := s.Repo.GetAssignment(ctx, id)
	if err != nil {
		return domain.AssignmentWindow{}, fmt.Errorf("vehicle timestamps %d: %w", id, err)
	}
	return s.Reconciler.Reconcile(ctx, a.CarPlate, a.CreatedAt), nil
}

// Finalize closes an active assignment. The telemetry window is looked up
// first and applied when found; its absence never blocks finalization. The
// assignment and the team's work logs are saved atomically.
func (s *AssignmentService) Finalize(ctx context.Context, id int64, in FinalizeInput) (_ *FinalizeResult, err error) {
	defer obs.Time(ctx, "assignments.Finalize")(&err)

	if s.Reconciler == nil {
		return nil, errors.New("finalize: reconciler is nil")
	}

	a, err := s.Repo.GetAssignment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finalize %d: %w", id, err)
	}
	if !a.IsActive() {
		return nil, fmt.Errorf("finalize %d: assignment is %s: %w", id, a.Status, domain.ErrInvalidTransition)
	}

	window := s.Reconciler.Reconcile(ctx, a.CarPlate, a.CreatedAt)

	if err := a.Finalize(s.now(), window, in.Km, in.DrivingTimeMinutes); err != nil {
		return nil, fmt.Errorf("finalize %d: %w", id, err)
	}

	logs, err := SplitWorkLogs(a)
	if err != nil {
		return nil, fmt.Errorf("finalize %d: %w", id, err)
	}

	if err := s.Repo.SaveFinalized(ctx, a, logs); err != nil {
		return nil, fmt.Errorf("finalize %d: %w", id, err)
	}

	s.Log.Infow("assignment finalized", map[string]any{
		"assignment_id": a.ID,
		"car_plate":     a.CarPlate,
		"gps_start":     window.RealStartDate,
		"gps_return":    window.RealCompletionDate,
		"work_logs":     len(logs),
	})

	return &FinalizeResult{Assignment: a, Window: window, WorkLogs: logs}, nil
}
