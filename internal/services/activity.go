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

var ErrActivityNotFound = errors.New("activity not found")

type ActivityService struct {
	db DB
}

func NewActivityService(db DB) *ActivityService {
	return &ActivityService{db: db}
}

func validateActivityParams(p *models.ActivityParams) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Title == "" {
		return validationError("title is required")
	}
	if p.Datetime.IsZero() {
		return validationError("datetime is required")
	}
	return nil
}

// activityTrip resolves the trip behind an activity and checks userID may see it.
func activityTrip(ctx context.Context, db DB, activityID, userID uuid.UUID) (uuid.UUID, error) {
	var tripID uuid.UUID
	err := db.QueryRow(ctx,
		`SELECT d.trip_id FROM activities a
		 JOIN destinations d ON d.id = a.destination_id
		 WHERE a.id = $1`,
		activityID,
	).Scan(&tripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrActivityNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading activity: %w", err)
	}
	if _, err := tripAccess(ctx, db, tripID, userID); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			return uuid.Nil, ErrActivityNotFound
		}
		return uuid.Nil, err
	}
	return tripID, nil
}

// ListByTrip returns every activity across a trip's destinations in chronological order.
func (s *ActivityService) ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]models.Activity, error) {
	if _, err := tripAccess(ctx, s.db, tripID, userID); err != nil {
		return nil, err
	}

	activities := []models.Activity{}
	err := pgxscan.Select(ctx, s.db, &activities,
		`SELECT a.id, a.destination_id, d.city, a.title, a.description, a.datetime, a.user_id, a.email
		 FROM activities a
		 JOIN destinations d ON d.id = a.destination_id
		 WHERE d.trip_id = $1
		 ORDER BY a.datetime ASC, a.id ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return activities, nil
}

func (s *ActivityService) Create(ctx context.Context, destinationID uuid.UUID, author models.UserSummary, params models.ActivityParams) (*models.Activity, error) {
	if err := validateActivityParams(&params); err != nil {
		return nil, err
	}
	if _, err := destinationTrip(ctx, s.db, destinationID, author.ID); err != nil {
		return nil, err
	}

	var a models.Activity
	err := pgxscan.Get(ctx, s.db, &a,
		`WITH inserted AS (
			INSERT INTO activities (destination_id, title, description, datetime, user_id, email)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, destination_id, title, description, datetime, user_id, email
		)
		SELECT i.id, i.destination_id, d.city, i.title, i.description, i.datetime, i.user_id, i.email
		FROM inserted i JOIN destinations d ON d.id = i.destination_id`,
		destinationID, params.Title, params.Description, params.Datetime, author.ID, author.Email,
	)
	if err != nil {
		return nil, fmt.Errorf("creating activity: %w", err)
	}
	return &a, nil
}

func (s *ActivityService) Update(ctx context.Context, activityID, userID uuid.UUID, params models.ActivityParams) (*models.Activity, error) {
	if err := validateActivityParams(&params); err != nil {
		return nil, err
	}
	if _, err := activityTrip(ctx, s.db, activityID, userID); err != nil {
		return nil, err
	}

	var a models.Activity
	err := pgxscan.Get(ctx, s.db, &a,
		`WITH updated AS (
			UPDATE activities SET title = $2, description = $3, datetime = $4
			WHERE id = $1
			RETURNING id, destination_id, title, description, datetime, user_id, email
		)
		SELECT u.id, u.destination_id, d.city, u.title, u.description, u.datetime, u.user_id, u.email
		FROM updated u JOIN destinations d ON d.id = u.destination_id`,
		activityID, params.Title, params.Description, params.Datetime,
	)
	if pgxscan.NotFound(err) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating activity: %w", err)
	}
	return &a, nil
}

func (s *ActivityService) Delete(ctx context.Context, activityID, userID uuid.UUID) error {
	if _, err := activityTrip(ctx, s.db, activityID, userID); err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, "DELETE FROM activities WHERE id = $1", activityID)
	if err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}
