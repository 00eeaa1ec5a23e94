package models

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	City      string    `json:"city" db:"city"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
}

type DestinationParams struct {
	City      string
	StartDate time.Time
	EndDate   time.Time
}

type Activity struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	DestinationID uuid.UUID  `json:"destination_id" db:"destination_id"`
	City          string     `json:"city" db:"city"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Datetime      time.Time  `json:"datetime" db:"datetime"`
	UserID        *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	Email         string     `json:"email" db:"email"`
}

type ActivityParams struct {
	Title       string
	Description string
	Datetime    time.Time
}

type ActivityComment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	ActivityID  uuid.UUID `json:"activity_id" db:"activity_id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Content     string    `json:"content" db:"content"`
	UserComment string    `json:"user_comment" db:"user_comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
