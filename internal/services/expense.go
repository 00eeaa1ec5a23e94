package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
)

var ErrExpenseNotFound = errors.New("expense not found")

const expenseSelect = `SELECT e.id, e.trip_id, e.title, e.amount::float8 AS amount, e.user_paid_by, e.date,
        e.activity_id, a.title AS activity_title
 FROM expenses e
 LEFT JOIN activities a ON a.id = e.activity_id`

type ExpenseService struct {
	db DB
}

func NewExpenseService(db DB) *ExpenseService {
	return &ExpenseService{db: db}
}

func validateExpenseParams(p *models.ExpenseParams) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return validationError("title is required")
	}
	if p.Amount <= 0 || math.IsNaN(p.Amount) || math.IsInf(p.Amount, 0) {
		return validationError("amount must be greater than zero")
	}
	if p.Amount >= 1e10 {
		return validationError("amount is too large")
	}
	if p.Date.IsZero() {
		return validationError("date is required")
	}
	return nil
}

// checkActivityInTrip rejects links to activities planned under another trip.
func (s *ExpenseService) checkActivityInTrip(ctx context.Context, activityID *uuid.UUID, tripID uuid.UUID) error {
	if activityID == nil {
		return nil
	}
	var ok bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM activities a JOIN destinations d ON d.id = a.destination_id
			WHERE a.id = $1 AND d.trip_id = $2
		)`,
		*activityID, tripID,
	).Scan(&ok)
	if err != nil {
		return fmt.Errorf("checking expense activity: %w", err)
	}
	if !ok {
		return ErrActivityNotFound
	}
	return nil
}

// checkPayerInTrip requires the payer to be the trip owner or a participant.
func (s *ExpenseService) checkPayerInTrip(ctx context.Context, payerID, tripID uuid.UUID) error {
	var ok bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM trips WHERE id = $1 AND created_by = $2)
		     OR EXISTS(SELECT 1 FROM trip_participants WHERE trip_id = $1 AND user_id = $2)`,
		tripID, payerID,
	).Scan(&ok)
	if err != nil {
		return fmt.Errorf("checking expense payer: %w", err)
	}
	if !ok {
		return validationError("payer must be a member of the trip")
	}
	return nil
}

func (s *ExpenseService) get(ctx context.Context, expenseID uuid.UUID) (*models.Expense, error) {
	var e models.Expense
	err := pgxscan.Get(ctx, s.db, &e, expenseSelect+` WHERE e.id = $1`, expenseID)
	if pgxscan.NotFound(err) {
		return nil, ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting expense: %w", err)
	}
	return &e, nil
}

// List returns a trip's expenses, most recent first.
func (s *ExpenseService) List(ctx context.Context, tripID, userID uuid.UUID) ([]models.Expense, error) {
	if _, err := tripAccess(ctx, s.db, tripID, userID); err != nil {
		return nil, err
	}

	expenses := []models.Expense{}
	err := pgxscan.Select(ctx, s.db, &expenses,
		expenseSelect+` WHERE e.trip_id = $1 ORDER BY e.date DESC, e.id ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, nil
}

type paidExpenseRow struct {
	models.Expense
	TripName string `db:"trip_name"`
}

// ListPaidBy returns every expense the user paid for, grouped by trip.
// Groups follow the order of each trip's most recent expense.
func (s *ExpenseService) ListPaidBy(ctx context.Context, userID uuid.UUID) (*models.PaidExpenses, error) {
	var rows []paidExpenseRow
	err := pgxscan.Select(ctx, s.db, &rows,
		`SELECT e.id, e.trip_id, e.title, e.amount::float8 AS amount, e.user_paid_by, e.date,
		        e.activity_id, a.title AS activity_title, t.name AS trip_name
		 FROM expenses e
		 JOIN trips t ON t.id = e.trip_id
		 LEFT JOIN activities a ON a.id = e.activity_id
		 WHERE e.user_paid_by = $1
		 ORDER BY e.date DESC, e.id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing paid expenses: %w", err)
	}

	out := &models.PaidExpenses{Trips: []models.TripExpenses{}}
	index := make(map[uuid.UUID]int)
	for _, row := range rows {
		i, ok := index[row.TripID]
		if !ok {
			i = len(out.Trips)
			index[row.TripID] = i
			out.Trips = append(out.Trips, models.TripExpenses{TripID: row.TripID, TripName: row.TripName})
		}
		group := &out.Trips[i]
		group.Expenses = append(group.Expenses, row.Expense)
		group.Total += row.Amount
		out.GrandTotal += row.Amount
	}
	for i := range out.Trips {
		out.Trips[i].Total = roundCents(out.Trips[i].Total)
	}
	out.GrandTotal = roundCents(out.GrandTotal)
	return out, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *ExpenseService) Get(ctx context.Context, expenseID, userID uuid.UUID) (*models.Expense, error) {
	e, err := s.get(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := tripAccess(ctx, s.db, e.TripID, userID); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, err
	}
	return e, nil
}

// Create records an expense on a trip. The payer defaults to the caller.
func (s *ExpenseService) Create(ctx context.Context, tripID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
	if err := validateExpenseParams(&params); err != nil {
		return nil, err
	}
	if _, err := tripAccess(ctx, s.db, tripID, userID); err != nil {
		return nil, err
	}
	if err := s.checkActivityInTrip(ctx, params.ActivityID, tripID); err != nil {
		return nil, err
	}
	if params.UserPaidBy == nil {
		params.UserPaidBy = &userID
	} else if *params.UserPaidBy != userID {
		if err := s.checkPayerInTrip(ctx, *params.UserPaidBy, tripID); err != nil {
			return nil, err
		}
	}

	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`INSERT INTO expenses (trip_id, title, amount, user_paid_by, date, activity_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		tripID, params.Title, params.Amount, params.UserPaidBy, params.Date, params.ActivityID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}
	return s.get(ctx, id)
}

func (s *ExpenseService) Update(ctx context.Context, expenseID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
	if err := validateExpenseParams(&params); err != nil {
		return nil, err
	}
	existing, err := s.Get(ctx, expenseID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkActivityInTrip(ctx, params.ActivityID, existing.TripID); err != nil {
		return nil, err
	}
	if params.UserPaidBy == nil {
		params.UserPaidBy = existing.UserPaidBy
	} else if existing.UserPaidBy == nil || *params.UserPaidBy != *existing.UserPaidBy {
		if err := s.checkPayerInTrip(ctx, *params.UserPaidBy, existing.TripID); err != nil {
			return nil, err
		}
	}

	result, err := s.db.Exec(ctx,
		`UPDATE expenses SET title = $2, amount = $3, user_paid_by = $4, date = $5, activity_id = $6
		 WHERE id = $1`,
		expenseID, params.Title, params.Amount, params.UserPaidBy, params.Date, params.ActivityID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrExpenseNotFound
	}
	return s.get(ctx, expenseID)
}

func (s *ExpenseService) Delete(ctx context.Context, expenseID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, expenseID, userID); err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, "DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}
	return nil
}
