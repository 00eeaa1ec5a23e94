package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripshare/tripshare/internal/models"
)

var (
	ErrNotFriend           = errors.New("you can only share trips with friends")
	ErrAlreadyShared       = errors.New("this person already participates in this trip")
	ErrParticipantNotFound = errors.New("participant not found")
)

type ParticipantService struct {
	db  DB
	now Clock
}

func NewParticipantService(db DB) *ParticipantService {
	return &ParticipantService{db: db, now: systemClock}
}

// ShareTrip adds targetID as a participant of a trip owned by ownerID.
// The target must be an accepted friend of the owner.
func (s *ParticipantService) ShareTrip(ctx context.Context, tripID, ownerID, targetID uuid.UUID) (*models.TripParticipant, error) {
	var createdBy uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT created_by FROM trips WHERE id = $1", tripID).Scan(&createdBy)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading trip: %w", err)
	}
	if createdBy != ownerID {
		return nil, ErrNotTripOwner
	}

	friends, err := areFriends(ctx, s.db, ownerID, targetID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, ErrNotFriend
	}

	var exists bool
	err = s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM trip_participants WHERE trip_id = $1 AND user_id = $2)",
		tripID, targetID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking participation: %w", err)
	}
	if exists {
		return nil, ErrAlreadyShared
	}

	var participant models.TripParticipant
	err = pgxscan.Get(ctx, s.db, &participant,
		`WITH inserted AS (
			INSERT INTO trip_participants (trip_id, user_id, joined_at)
			VALUES ($1, $2, $3)
			RETURNING id, trip_id, user_id, joined_at
		)
		SELECT i.id, i.trip_id, i.user_id, i.joined_at, u.email, u.display_name
		FROM inserted i JOIN users u ON u.id = i.user_id`,
		tripID, targetID, s.now(),
	)
	if isUniqueViolation(err) {
		return nil, ErrAlreadyShared
	}
	if err != nil {
		return nil, fmt.Errorf("adding participant: %w", err)
	}
	return &participant, nil
}

// ListParticipants returns participants in the order they joined.
func (s *ParticipantService) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]models.TripParticipant, error) {
	participants := []models.TripParticipant{}
	err := pgxscan.Select(ctx, s.db, &participants,
		`SELECT p.id, p.trip_id, p.user_id, p.joined_at, u.email, u.display_name
		 FROM trip_participants p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.trip_id = $1
		 ORDER BY p.joined_at ASC, p.id ASC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	return participants, nil
}

func (s *ParticipantService) GetParticipant(ctx context.Context, participantID uuid.UUID) (*models.TripParticipant, error) {
	var participant models.TripParticipant
	err := pgxscan.Get(ctx, s.db, &participant,
		`SELECT p.id, p.trip_id, p.user_id, p.joined_at, u.email, u.display_name
		 FROM trip_participants p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`,
		participantID,
	)
	if pgxscan.NotFound(err) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting participant: %w", err)
	}
	return &participant, nil
}

// RemoveParticipant deletes the row. Callers decide who may do so.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, participantID uuid.UUID) error {
	result, err := s.db.Exec(ctx, "DELETE FROM trip_participants WHERE id = $1", participantID)
	if err != nil {
		return fmt.Errorf("removing participant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

// ListSharedTrips returns trips userID participates in, most recently joined first.
func (s *ParticipantService) ListSharedTrips(ctx context.Context, userID uuid.UUID) ([]models.Trip, error) {
	trips := []models.Trip{}
	err := pgxscan.Select(ctx, s.db, &trips,
		`SELECT `+tripColumns+`
		 FROM trips t
		 JOIN trip_participants p ON p.trip_id = t.id
		 WHERE p.user_id = $1
		 ORDER BY p.joined_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shared trips: %w", err)
	}
	return trips, nil
}
