package dto

import "time"

type WorkerTotalResponse struct {
	Name        string  `json:"name"`
	Hours       float64 `json:"hours"`
	Km          float64 `json:"km"`
	Assignments int     `json:"assignments"`
}

type TypeShareResponse struct {
	Type        string  `json:"type"`
	Assignments int     `json:"assignments"`
	Hours       float64 `json:"hours"`
}

type DashboardResponse struct {
	From         *time.Time            `json:"from"`
	To           *time.Time            `json:"to"`
	TopWorkers   []WorkerTotalResponse `json:"top_workers"`
	TopRiders    []WorkerTotalResponse `json:"top_riders"`
	Distribution []TypeShareResponse   `json:"distribution"`
	TotalHours   float64               `json:"total_hours"`
	TotalKm      float64               `json:"total_km"`
}

type StoreResponse struct {
	StoreID     int    `json:"store_id"`
	Description string `json:"description"`
	City        string `json:"city"`
	County      string `json:"county"`
	Address     string `json:"address"`
}

type TypeDashboardResponse struct {
	Type        string               `json:"type"`
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	Assignments []AssignmentResponse `json:"assignments"`
	Stores      []StoreResponse      `json:"stores"`
}

type ListStoresResponse struct {
	Stores []StoreResponse `json:"stores"`
}
