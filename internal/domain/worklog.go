package domain

import "time"

// WorkLog credits one team member with the hours and kilometres of a
// finalized assignment.
type WorkLog struct {
	ID             int64
	AssignmentID   int64
	WorkerName     string
	AssignmentType AssignmentType
	StartTime      time.Time
	EndTime        time.Time
	Hours          float64
	Km             float64
	StoreCount     int
}

// User is a worker that can be part of assignment teams.
type User struct {
	ID   int64
	Name string
	Role string
}

type WorkerStatus string

const (
	WorkerLiber       WorkerStatus = "Liber"
	WorkerInDeplasare WorkerStatus = "In Deplasare"
)
