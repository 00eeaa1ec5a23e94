package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripshare/tripshare/internal/models"
)

var (
	ErrTripNotFound = errors.New("trip not found")
	ErrNotTripOwner = errors.New("only the trip owner can do this")
)

const tripColumns = `t.id, t.name, t.description, t.start_date, t.end_date, t.created_by, t.created_email, t.created_at`

type TripService struct {
	db  DB
	now Clock
}

func NewTripService(db DB) *TripService {
	return &TripService{db: db, now: systemClock}
}

func validateTripParams(p *models.TripParams) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.Name == "" {
		return validationError("name is required")
	}
	if utf8.RuneCountInString(p.Name) > 200 {
		return validationError("name must be at most 200 characters")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return validationError("start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return validationError("end date must not be before start date")
	}
	return nil
}

// tripAccess resolves what userID may do on tripID. Users with no relation to
// the trip get ErrTripNotFound so existence is not leaked.
func tripAccess(ctx context.Context, db DB, tripID, userID uuid.UUID) (models.TripRole, error) {
	var ownerID uuid.UUID
	var participant bool
	err := db.QueryRow(ctx,
		`SELECT t.created_by,
		        EXISTS(SELECT 1 FROM trip_participants p WHERE p.trip_id = t.id AND p.user_id = $2)
		 FROM trips t WHERE t.id = $1`,
		tripID, userID,
	).Scan(&ownerID, &participant)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrTripNotFound
	}
	if err != nil {
		return "", fmt.Errorf("checking trip access: %w", err)
	}

	switch {
	case ownerID == userID:
		return models.TripRoleOwner, nil
	case participant:
		return models.TripRoleParticipant, nil
	default:
		return "", ErrTripNotFound
	}
}

func (s *TripService) Access(ctx context.Context, tripID, userID uuid.UUID) (models.TripRole, error) {
	return tripAccess(ctx, s.db, tripID, userID)
}

func (s *TripService) requireOwner(ctx context.Context, tripID, userID uuid.UUID) error {
	role, err := tripAccess(ctx, s.db, tripID, userID)
	if err != nil {
		return err
	}
	if role != models.TripRoleOwner {
		return ErrNotTripOwner
	}
	return nil
}

func (s *TripService) Create(ctx context.Context, ownerID uuid.UUID, ownerEmail string, params models.TripParams) (*models.Trip, error) {
	if err := validateTripParams(&params); err != nil {
		return nil, err
	}

	var trip models.Trip
	err := pgxscan.Get(ctx, s.db, &trip,
		`INSERT INTO trips AS t (name, description, start_date, end_date, created_by, created_email)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+tripColumns,
		params.Name, params.Description, params.StartDate, params.EndDate, ownerID, ownerEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("creating trip: %w", err)
	}
	return &trip, nil
}

// List returns trips owned by ownerID ordered by end date. Unless
// includeFuture is set, trips that have not started yet are left out.
func (s *TripService) List(ctx context.Context, ownerID uuid.UUID, includeFuture bool) ([]models.Trip, error) {
	sql := `SELECT ` + tripColumns + ` FROM trips t WHERE t.created_by = $1`
	args := []any{ownerID}
	if !includeFuture {
		sql += ` AND t.start_date <= $2::date`
		args = append(args, s.now())
	}
	sql += ` ORDER BY t.end_date ASC, t.created_at ASC`

	trips := []models.Trip{}
	if err := pgxscan.Select(ctx, s.db, &trips, sql, args...); err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	return trips, nil
}

// Get returns a trip visible to userID along with the creator's label,
// which falls back to the creator email when no display name is set.
func (s *TripService) Get(ctx context.Context, tripID, userID uuid.UUID) (*models.TripDetail, error) {
	role, err := tripAccess(ctx, s.db, tripID, userID)
	if err != nil {
		return nil, err
	}

	var detail models.TripDetail
	err = pgxscan.Get(ctx, s.db, &detail,
		`SELECT `+tripColumns+`,
		        COALESCE(NULLIF(u.display_name, ''), t.created_email) AS creator_name
		 FROM trips t
		 LEFT JOIN users u ON u.id = t.created_by
		 WHERE t.id = $1`,
		tripID,
	)
	if pgxscan.NotFound(err) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting trip: %w", err)
	}
	detail.Role = role
	return &detail, nil
}

func (s *TripService) Update(ctx context.Context, tripID, userID uuid.UUID, params models.TripParams) (*models.Trip, error) {
	if err := validateTripParams(&params); err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, tripID, userID); err != nil {
		return nil, err
	}

	var trip models.Trip
	err := pgxscan.Get(ctx, s.db, &trip,
		`UPDATE trips AS t
		 SET name = $2, description = $3, start_date = $4, end_date = $5
		 WHERE t.id = $1
		 RETURNING `+tripColumns,
		tripID, params.Name, params.Description, params.StartDate, params.EndDate,
	)
	if pgxscan.NotFound(err) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating trip: %w", err)
	}
	return &trip, nil
}

// Delete removes the trip and, through cascades, everything planned under it.
func (s *TripService) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	if err := s.requireOwner(ctx, tripID, userID); err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, "DELETE FROM trips WHERE id = $1 AND created_by = $2", tripID, userID)
	if err != nil {
		return fmt.Errorf("deleting trip: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}
