package handlers

import (
	"context"
	"net/http"
	"strings"

	"field-ops-service/internal/api/dto"
	"field-ops-service/internal/domain"
	"field-ops-service/internal/ports"
	"field-ops-service/internal/services"
)

// AssignmentService is the assignment lifecycle the handlers drive.
type AssignmentService interface {
	List(ctx context.Context, f ports.AssignmentFilter) ([]*domain.Assignment, error)
	Get(ctx context.Context, id int64) (*domain.Assignment, error)
	Create(ctx context.Context, in services.NewAssignment) (*domain.Assignment, error)
	UpdateRoute(ctx context.Context, id int64, storePoints []int) (*domain.Assignment, error)
	Delete(ctx context.Context, id int64) error
	Finalize(ctx context.Context, id int64, in services.FinalizeInput) (*services.FinalizeResult, error)
	VehicleTimestamps(ctx context.Context, id int64) (domain.AssignmentWindow, error)
}

type AssignmentHandler struct {
	Service AssignmentService
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ports.AssignmentFilter{
		Status: ports.StatusFilter(strings.ToLower(strings.TrimSpace(q.Get("status")))),
		Type:   domain.AssignmentType(strings.TrimSpace(q.Get("type"))),
	}

	list, err := h.Service.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListAssignmentsResponse{Assignments: toAssignmentResponses(list)})
}

func (h *AssignmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid assignment id")
		return
	}

	a, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssignmentResponse(a))
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssignmentRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.Service.Create(r.Context(), services.NewAssignment{
		Type:        domain.AssignmentType(strings.TrimSpace(req.Type)),
		Location:    req.Location,
		City:        req.City,
		County:      req.County,
		StoreNumber: req.StoreNumber,
		StorePoints: req.StorePoints,
		TeamLead:    req.TeamLead,
		Members:     req.Members,
		CarPlate:    req.CarPlate,
		StartDate:   req.StartDate,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, toAssignmentResponse(a))
}

func (h *AssignmentHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid assignment id")
		return
	}

	var req dto.UpdateRouteRequest
	if err := decodeJSON(r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.Service.UpdateRoute(r.Context(), id, req.StorePoints)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toAssignmentResponse(a))
}

func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid assignment id")
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Finalize closes the assignment, applying the reconciled GPS window when one
// is found.
func (h *AssignmentHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid assignment id")
		return
	}

	var req dto.FinalizeRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.Service.Finalize(r.Context(), id, services.FinalizeInput{
		Km:                 req.Km,
		DrivingTimeMinutes: req.DrivingTime,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FinalizeResponse{
		Assignment:        toAssignmentResponse(res.Assignment),
		VehicleTimestamps: toWindowResponse(res.Window),
		WorkLogs:          toWorkLogResponses(res.WorkLogs),
	})
}

func (h *AssignmentHandler) VehicleTimestamps(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid assignment id")
		return
	}

	win, err := h.Service.VehicleTimestamps(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toWindowResponse(win))
}
