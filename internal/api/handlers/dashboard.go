package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"field-ops-service/internal/api/dto"
	"field-ops-service/internal/domain"
	"field-ops-service/internal/services"
)

const defaultDashboardLimit = 10

type DashboardService interface {
	Summary(ctx context.Context, from, to time.Time, limit int) (*services.DashboardSummary, error)
	AssignmentsByType(ctx context.Context, t domain.AssignmentType, month string, now time.Time) (*services.TypeDashboard, error)
}

type DashboardHandler struct {
	Service DashboardService
	// Now is overridable in tests.
	Now func() time.Time
}

func (h *DashboardHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// Summary serves the aggregate dashboard. from and to accept a date
// (2006-01-02) or an RFC 3339 timestamp; a date in `to` covers the whole day.
// A limit of zero or below (clients send -1) lists every worker.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseBound(q.Get("from"), false)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid from: "+err.Error())
		return
	}
	to, err := parseBound(q.Get("to"), true)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid to: "+err.Error())
		return
	}

	limit := defaultDashboardLimit
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be at most 100; zero or negative returns all")
			return
		}
	}

	sum, err := h.Service.Summary(r.Context(), from, to, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	shares := make([]dto.TypeShareResponse, 0, len(sum.Distribution))
	for _, s := range sum.Distribution {
		shares = append(shares, dto.TypeShareResponse{
			Type:        string(s.Type),
			Assignments: s.Assignments,
			Hours:       s.Hours,
		})
	}

	writeJSON(w, r, http.StatusOK, dto.DashboardResponse{
		From:         optionalTime(sum.From),
		To:           optionalTime(sum.To),
		TopWorkers:   toWorkerTotals(sum.TopWorkers),
		TopRiders:    toWorkerTotals(sum.TopRiders),
		Distribution: shares,
		TotalHours:   sum.TotalHours,
		TotalKm:      sum.TotalKm,
	})
}

func (h *DashboardHandler) ByType(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := domain.AssignmentType(strings.TrimSpace(q.Get("type")))
	if t == "" {
		writeError(w, r, http.StatusBadRequest, "type is required")
		return
	}

	d, err := h.Service.AssignmentsByType(r.Context(), t, q.Get("month"), h.now())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.TypeDashboardResponse{
		Type:        string(d.Type),
		From:        d.From,
		To:          d.To,
		Assignments: toAssignmentResponses(d.Assignments),
		Stores:      toStoreResponses(d.Stores),
	})
}

func parseBound(raw string, endOfDay bool) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		d = d.Add(24*time.Hour - time.Millisecond)
	}
	return d, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
