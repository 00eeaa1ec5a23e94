package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

type FriendRequest struct {
	ID          uuid.UUID           `json:"id"`
	RequesterID uuid.UUID           `json:"requester_id"`
	ReceiverID  uuid.UUID           `json:"receiver_id"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// FriendRequestWithUser is a request joined with the counterpart's identity:
// the requester for incoming requests, the receiver for sent ones.
type FriendRequestWithUser struct {
	FriendRequest
	User UserSummary `json:"user"`
}

// Friend is an accepted request seen from one side.
type Friend struct {
	RequestID uuid.UUID   `json:"request_id"`
	User      UserSummary `json:"user"`
	Since     time.Time   `json:"since"`
}
