package models

import (
	"time"

	"github.com/google/uuid"
)

type DashboardStats struct {
	TotalTrips        int     `json:"total_trips"`
	UpcomingTrips     int     `json:"upcoming_trips"`
	TotalDestinations int     `json:"total_destinations"`
	TotalExpenses     float64 `json:"total_expenses"`
}

type UpcomingTrip struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	StartDate        time.Time `json:"start_date" db:"start_date"`
	EndDate          time.Time `json:"end_date" db:"end_date"`
	FirstCity        string    `json:"first_city" db:"first_city"`
	ParticipantCount int       `json:"participant_count" db:"participant_count"`
}
