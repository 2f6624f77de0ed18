package handlers

import (
	"context"
	"net/http"

	"field-ops-service/internal/api/dto"
	"field-ops-service/internal/services"
)

type WorkerService interface {
	ListWorkers(ctx context.Context) ([]services.WorkerOverview, error)
}

type WorkerHandler struct {
	Service WorkerService
}

func (h *WorkerHandler) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Service.ListWorkers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListWorkersResponse{Workers: make([]dto.WorkerResponse, 0, len(workers))}
	for _, wk := range workers {
		res.Workers = append(res.Workers, dto.WorkerResponse{
			ID:                     wk.ID,
			Name:                   wk.Name,
			Status:                 string(wk.Status),
			CurrentAssignmentID:    wk.CurrentAssignmentID,
			CurrentAssignmentStart: wk.CurrentAssignmentStart,
			LastCompletionDate:     wk.LastCompletionDate,
			AssignmentCount:        wk.AssignmentCount,
			StoreCount:             wk.StoreCount,
			TotalHours:             wk.TotalHours,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}
