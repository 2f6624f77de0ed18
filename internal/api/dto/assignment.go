package dto

import "time"

type CreateAssignmentRequest struct {
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	City        string    `json:"city"`
	County      string    `json:"county"`
	StoreNumber *int      `json:"store_number"`
	StorePoints []int     `json:"store_points"`
	TeamLead    string    `json:"team_lead"`
	Members     []string  `json:"members"`
	CarPlate    string    `json:"car_plate"`
	StartDate   time.Time `json:"start_date"`
}

type UpdateRouteRequest struct {
	StorePoints []int `json:"store_points"`
}

// FinalizeRequest carries the optional distance figures. An empty body is
// accepted.
type FinalizeRequest struct {
	Km          *float64 `json:"km"`
	DrivingTime *int     `json:"driving_time"`
}

type AssignmentResponse struct {
	ID                int64      `json:"id"`
	Type              string     `json:"type"`
	Location          string     `json:"location"`
	City              string     `json:"city"`
	County            string     `json:"county"`
	StoreNumber       *int       `json:"store_number"`
	StorePoints       []int      `json:"store_points"`
	TeamLead          string     `json:"team_lead"`
	Members           []string   `json:"members"`
	CarPlate          string     `json:"car_plate"`
	Status            string     `json:"status"`
	StartDate         time.Time  `json:"start_date"`
	CompletionDate    *time.Time `json:"completion_date"`
	GPSStartDate      *time.Time `json:"gps_start_date"`
	GPSCompletionDate *time.Time `json:"gps_completion_date"`
	Km                *float64   `json:"km"`
	DrivingTime       *int       `json:"driving_time"`
	CreatedAt         time.Time  `json:"created_at"`
}

type ListAssignmentsResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
}

// VehicleTimestampsResponse is the reconciled telemetry window. Null dates
// mean the event was not observed.
type VehicleTimestampsResponse struct {
	AssignmentCreatedAt time.Time  `json:"assignment_created_at"`
	RealStartDate       *time.Time `json:"real_start_date"`
	RealCompletionDate  *time.Time `json:"real_completion_date"`
}

type WorkLogResponse struct {
	WorkerName     string    `json:"worker_name"`
	AssignmentType string    `json:"assignment_type"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Hours          float64   `json:"hours"`
	Km             float64   `json:"km"`
	StoreCount     int       `json:"store_count"`
}

type FinalizeResponse struct {
	Assignment        AssignmentResponse        `json:"assignment"`
	VehicleTimestamps VehicleTimestampsResponse `json:"vehicle_timestamps"`
	WorkLogs          []WorkLogResponse         `json:"work_logs"`
}
