package models

import (
	"time"

	"github.com/google/uuid"
)

type Expense struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TripID        uuid.UUID  `json:"trip_id" db:"trip_id"`
	Title         string     `json:"title" db:"title"`
	Amount        float64    `json:"amount" db:"amount"`
	UserPaidBy    *uuid.UUID `json:"user_paid_by,omitempty" db:"user_paid_by"`
	Date          time.Time  `json:"date" db:"date"`
	ActivityID    *uuid.UUID `json:"activity_id,omitempty" db:"activity_id"`
	ActivityTitle *string    `json:"activity_title,omitempty" db:"activity_title"`
}

type ExpenseParams struct {
	Title      string
	Amount     float64
	UserPaidBy *uuid.UUID
	Date       time.Time
	ActivityID *uuid.UUID
}

// TripExpenses groups one trip's expenses in a cross-trip listing.
type TripExpenses struct {
	TripID   uuid.UUID `json:"trip_id"`
	TripName string    `json:"trip_name"`
	Expenses []Expense `json:"expenses"`
	Total    float64   `json:"total"`
}

type PaidExpenses struct {
	Trips      []TripExpenses `json:"trips"`
	GrandTotal float64        `json:"grand_total"`
}
