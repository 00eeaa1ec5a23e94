package models

import (
	"time"

	"github.com/google/uuid"
)

type TripRole string

const (
	TripRoleOwner       TripRole = "owner"
	TripRoleParticipant TripRole = "participant"
)

type Trip struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	StartDate    time.Time `json:"start_date" db:"start_date"`
	EndDate      time.Time `json:"end_date" db:"end_date"`
	CreatedBy    uuid.UUID `json:"created_by" db:"created_by"`
	CreatedEmail string    `json:"created_email" db:"created_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TripDetail adds the creator label and the caller's role.
type TripDetail struct {
	Trip
	CreatorName string   `json:"creator_name" db:"creator_name"`
	Role        TripRole `json:"role" db:"-"`
}

type TripParams struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

type TripParticipant struct {
	ID          uuid.UUID `json:"id" db:"id"`
	TripID      uuid.UUID `json:"trip_id" db:"trip_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	JoinedAt    time.Time `json:"joined_at" db:"joined_at"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
}
