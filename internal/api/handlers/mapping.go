package handlers

import (
	"sort"

	"field-ops-service/internal/api/dto"
	"field-ops-service/internal/domain"
	"field-ops-service/internal/services"
)

func toAssignmentResponse(a *domain.Assignment) dto.AssignmentResponse {
	points := []int(a.StorePoints)
	if points == nil {
		points = []int{}
	}
	members := []string(a.Members)
	if members == nil {
		members = []string{}
	}
	return dto.AssignmentResponse{
		ID:                a.ID,
		Type:              string(a.Type),
		Location:          a.Location,
		City:              a.City,
		County:            a.County,
		StoreNumber:       a.StoreNumber,
		StorePoints:       points,
		TeamLead:          a.TeamLead,
		Members:           members,
		CarPlate:          a.CarPlate,
		Status:            string(a.Status),
		StartDate:         a.StartDate,
		CompletionDate:    a.CompletionDate,
		GPSStartDate:      a.GPSStartDate,
		GPSCompletionDate: a.GPSCompletionDate,
		Km:                a.Km,
		DrivingTime:       a.DrivingTimeMinutes,
		CreatedAt:         a.CreatedAt,
	}
}

func toAssignmentResponses(list []*domain.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAssignmentResponse(a))
	}
	return out
}

func toWindowResponse(w domain.AssignmentWindow) dto.VehicleTimestampsResponse {
	return dto.VehicleTimestampsResponse{
		AssignmentCreatedAt: w.AssignmentCreatedAt,
		RealStartDate:       w.RealStartDate,
		RealCompletionDate:  w.RealCompletionDate,
	}
}

func toWorkLogResponses(logs []domain.WorkLog) []dto.WorkLogResponse {
	out := make([]dto.WorkLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.WorkLogResponse{
			WorkerName:     l.WorkerName,
			AssignmentType: string(l.AssignmentType),
			StartTime:      l.StartTime,
			EndTime:        l.EndTime,
			Hours:          l.Hours,
			Km:             l.Km,
			StoreCount:     l.StoreCount,
		})
	}
	return out
}

func toWorkerTotals(totals []services.WorkerTotal) []dto.WorkerTotalResponse {
	out := make([]dto.WorkerTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.WorkerTotalResponse{
			Name:        t.Name,
			Hours:       t.Hours,
			Km:          t.Km,
			Assignments: t.Assignments,
		})
	}
	return out
}

// toStoreResponses flattens a store map ordered by store id.
func toStoreResponses(stores map[int]domain.Store) []dto.StoreResponse {
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.StoreResponse{
			StoreID:     s.StoreID,
			Description: s.Description,
			City:        s.City,
			County:      s.County,
			Address:     s.Address,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out
}
