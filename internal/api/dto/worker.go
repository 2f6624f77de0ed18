package dto

import "time"

type WorkerResponse struct {
	ID                     int64      `json:"id"`
	Name                   string     `json:"name"`
	Status                 string     `json:"status"`
	CurrentAssignmentID    *int64     `json:"current_assignment_id"`
	CurrentAssignmentStart *time.Time `json:"current_assignment_start"`
	LastCompletionDate     *time.Time `json:"last_completion_date"`
	AssignmentCount        int        `json:"assignment_count"`
	StoreCount             int        `json:"store_count"`
	TotalHours             float64    `json:"total_hours"`
}

type ListWorkersResponse struct {
	Workers []WorkerResponse `json:"workers"`
}
