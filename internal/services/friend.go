package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripshare/tripshare/internal/models"
)

var (
	ErrCannotFriendSelf      = errors.New("cannot send friend request to yourself")
	ErrFriendRequestExists   = errors.New("a friend request is already pending between you")
	ErrAlreadyFriends        = errors.New("you are already friends")
	ErrFriendRequestNotFound = errors.New("friend request not found or already handled")
	ErrFriendshipNotFound    = errors.New("friendship not found")
)

const friendRequestColumns = `id, requester_id, receiver_id, status, created_at, updated_at`

type FriendService struct {
	db DB
}

func NewFriendService(db DB) *FriendService {
	return &FriendService{db: db}
}

func scanFriendRequest(row pgx.Row) (*models.FriendRequest, error) {
	req := &models.FriendRequest{}
	err := row.Scan(&req.ID, &req.RequesterID, &req.ReceiverID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// SendRequest creates a pending request from requesterID to the user with receiverEmail.
func (s *FriendService) SendRequest(ctx context.Context, requesterID uuid.UUID, receiverEmail string) (*models.FriendRequest, error) {
	email := NormalizeEmail(receiverEmail)
	if email == "" {
		return nil, validationError("email is required")
	}

	var receiverID uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&receiverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up receiver: %w", err)
	}

	if receiverID == requesterID {
		return nil, ErrCannotFriendSelf
	}

	// Declined rows never block a new request.
	var status models.FriendRequestStatus
	err = s.db.QueryRow(ctx,
		`SELECT status FROM friend_requests
		 WHERE ((requester_id = $1 AND receiver_id = $2)
		    OR (requester_id = $2 AND receiver_id = $1))
		   AND status <> 'declined'
		 LIMIT 1`,
		requesterID, receiverID,
	).Scan(&status)
	switch {
	case err == nil:
		if status == models.FriendRequestAccepted {
			return nil, ErrAlreadyFriends
		}
		return nil, ErrFriendRequestExists
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("checking existing requests: %w", err)
	}

	req, err := scanFriendRequest(s.db.QueryRow(ctx,
		`INSERT INTO friend_requests (requester_id, receiver_id, status)
		 VALUES ($1, $2, 'pending')
		 RETURNING `+friendRequestColumns,
		requesterID, receiverID,
	))
	if isUniqueViolation(err) {
		// Lost a race with a concurrent request for the same pair.
		return nil, ErrFriendRequestExists
	}
	if err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return req, nil
}

// AcceptRequest moves a pending request addressed to receiverID to accepted.
func (s *FriendService) AcceptRequest(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error) {
	return s.respond(ctx, requestID, receiverID, models.FriendRequestAccepted)
}

// DeclineRequest moves a pending request addressed to receiverID to declined.
func (s *FriendService) DeclineRequest(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error) {
	return s.respond(ctx, requestID, receiverID, models.FriendRequestDeclined)
}

func (s *FriendService) respond(ctx context.Context, requestID, receiverID uuid.UUID, status models.FriendRequestStatus) (*models.FriendRequest, error) {
	req, err := scanFriendRequest(s.db.QueryRow(ctx,
		`UPDATE friend_requests
		 SET status = $3, updated_at = NOW()
		 WHERE id = $1 AND receiver_id = $2 AND status = 'pending'
		 RETURNING `+friendRequestColumns,
		requestID, receiverID, status,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFriendRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating friend request to %s: %w", status, err)
	}
	return req, nil
}

// RemoveFriend deletes an accepted request. Either party may remove it.
// Trip participations created while the pair were friends are kept.
func (s *FriendService) RemoveFriend(ctx context.Context, requestID, userID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friend_requests
		 WHERE id = $1 AND status = 'accepted'
		   AND (requester_id = $2 OR receiver_id = $2)`,
		requestID, userID,
	)
	if err != nil {
		return fmt.Errorf("removing friend: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}

// CancelRequest lets the requester withdraw a request that is still pending.
func (s *FriendService) CancelRequest(ctx context.Context, requestID, requesterID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friend_requests
		 WHERE id = $1 AND requester_id = $2 AND status = 'pending'`,
		requestID, requesterID,
	)
	if err != nil {
		return fmt.Errorf("canceling friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrFriendRequestNotFound
	}
	return nil
}

// ListPending returns requests waiting on userID, newest first.
func (s *FriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	return s.listWithUser(ctx,
		`SELECT fr.id, fr.requester_id, fr.receiver_id, fr.status, fr.created_at, fr.updated_at,
		        u.id, u.email, u.display_name
		 FROM friend_requests fr
		 JOIN users u ON u.id = fr.requester_id
		 WHERE fr.receiver_id = $1 AND fr.status = 'pending'
		 ORDER BY fr.created_at DESC`,
		userID,
	)
}

// ListSent returns pending requests userID has sent, newest first.
func (s *FriendService) ListSent(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	return s.listWithUser(ctx,
		`SELECT fr.id, fr.requester_id, fr.receiver_id, fr.status, fr.created_at, fr.updated_at,
		        u.id, u.email, u.display_name
		 FROM friend_requests fr
		 JOIN users u ON u.id = fr.receiver_id
		 WHERE fr.requester_id = $1 AND fr.status = 'pending'
		 ORDER BY fr.created_at DESC`,
		userID,
	)
}

func (s *FriendService) listWithUser(ctx context.Context, sql string, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("listing friend requests: %w", err)
	}
	defer rows.Close()

	requests := []models.FriendRequestWithUser{}
	for rows.Next() {
		var r models.FriendRequestWithUser
		if err := rows.Scan(
			&r.ID, &r.RequesterID, &r.ReceiverID, &r.Status, &r.CreatedAt, &r.UpdatedAt,
			&r.User.ID, &r.User.Email, &r.User.DisplayName,
		); err != nil {
			return nil, fmt.Errorf("scanning friend request: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friend requests: %w", err)
	}

	return requests, nil
}

// ListFriends returns the other party of every accepted request involving userID.
func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	rows, err := s.db.Query(ctx,
		`SELECT fr.id, fr.updated_at, u.id, u.email, u.display_name
		 FROM friend_requests fr
		 JOIN users u ON u.id = CASE WHEN fr.requester_id = $1 THEN fr.receiver_id ELSE fr.requester_id END
		 WHERE fr.status = 'accepted'
		   AND (fr.requester_id = $1 OR fr.receiver_id = $1)
		 ORDER BY LOWER(u.display_name), u.email`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	friends := []models.Friend{}
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.RequestID, &f.Since, &f.User.ID, &f.User.Email, &f.User.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning friend: %w", err)
		}
		friends = append(friends, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating friends: %w", err)
	}

	return friends, nil
}

func areFriends(ctx context.Context, db DB, a, b uuid.UUID) (bool, error) {
	var ok bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friend_requests
			WHERE status = 'accepted'
			  AND ((requester_id = $1 AND receiver_id = $2)
			    OR (requester_id = $2 AND receiver_id = $1))
		)`,
		a, b,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return ok, nil
}
