package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripshare/tripshare/internal/models"
)

var ErrDestinationNotFound = errors.New("destination not found")

const destinationColumns = `id, trip_id, city, start_date, end_date`

type DestinationService struct {
	db DB
}

func NewDestinationService(db DB) *DestinationService {
	return &DestinationService{db: db}
}

func validateDestinationParams(p *models.DestinationParams) error {
	p.City = strings.TrimSpace(p.City)
	if p.City == "" {
		return validationError("city is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return validationError("start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return validationError("end date must not be before start date")
	}
	return nil
}

// destinationTrip returns the trip a destination belongs to once userID is
// known to have access to it.
func destinationTrip(ctx context.Context, db DB, destinationID, userID uuid.UUID) (uuid.UUID, error) {
	var tripID uuid.UUID
	err := db.QueryRow(ctx, "SELECT trip_id FROM destinations WHERE id = $1", destinationID).Scan(&tripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrDestinationNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading destination: %w", err)
	}
	if _, err := tripAccess(ctx, db, tripID, userID); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return uuid.Nil, ErrDestinationNotFound
		}
		return uuid.Nil, err
	}
	return tripID, nil
}

// List returns a trip's destinations in itinerary order.
func (s *DestinationService) List(ctx context.Context, tripID, userID uuid.UUID) ([]models.Destination, error) {
	if _, err := tripAccess(ctx, s.db, tripID, userID); err != nil {
		return nil, err
	}

	destinations := []models.Destination{}
	err := pgxscan.Select(ctx, s.db, &destinations,
		`SELECT `+destinationColumns+` FROM destinations
		 WHERE trip_id = $1
		 ORDER BY start_date ASC, id ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing destinations: %w", err)
	}
	return destinations, nil
}

func (s *DestinationService) Create(ctx context.Context, tripID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error) {
	if err := validateDestinationParams(&params); err != nil {
		return nil, err
	}
	if _, err := tripAccess(ctx, s.db, tripID, userID); err != nil {
		return nil, err
	}

	var d models.Destination
	err := pgxscan.Get(ctx, s.db, &d,
		`INSERT INTO destinations (trip_id, city, start_date, end_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+destinationColumns,
		tripID, params.City, params.StartDate, params.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating destination: %w", err)
	}
	return &d, nil
}

func (s *DestinationService) Update(ctx context.Context, destinationID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error) {
	if err := validateDestinationParams(&params); err != nil {
		return nil, err
	}
	if _, err := destinationTrip(ctx, s.db, destinationID, userID); err != nil {
		return nil, err
	}

	var d models.Destination
	err := pgxscan.Get(ctx, s.db, &d,
		`UPDATE destinations SET city = $2, start_date = $3, end_date = $4
		 WHERE id = $1
		 RETURNING `+destinationColumns,
		destinationID, params.City, params.StartDate, params.EndDate,
	)
	if pgxscan.NotFound(err) {
		return nil, ErrDestinationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating destination: %w", err)
	}
	return &d, nil
}

func (s *DestinationService) Delete(ctx context.Context, destinationID, userID uuid.UUID) error {
	if _, err := destinationTrip(ctx, s.db, destinationID, userID); err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, "DELETE FROM destinations WHERE id = $1", destinationID)
	if err != nil {
		return fmt.Errorf("deleting destination: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrDestinationNotFound
	}
	return nil
}
