package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
)

// UserServiceInterface defines the contract for user operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpsertOAuthUser(ctx context.Context, email, displayName string) (*models.User, error)
	UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// AuthServiceInterface defines the contract for sign-in and token operations.
type AuthServiceInterface interface {
	SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
	SignOut(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, token string) (*models.Session, error)
	OAuthProviders() []string
	BeginOAuth(ctx context.Context, provider string) (consentURL, state string, err error)
	CompleteOAuth(ctx context.Context, provider, state, code string) (*models.Session, error)
}

// FriendServiceInterface defines the contract for the friend request workflow.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, requesterID uuid.UUID, receiverEmail string) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error)
	DeclineRequest(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error)
	RemoveFriend(ctx context.Context, requestID, userID uuid.UUID) error
	CancelRequest(ctx context.Context, requestID, requesterID uuid.UUID) error
	ListPending(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListSent(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
}

// ParticipantServiceInterface defines the contract for trip sharing.
type ParticipantServiceInterface interface {
	ShareTrip(ctx context.Context, tripID, ownerID, targetID uuid.UUID) (*models.TripParticipant, error)
	ListParticipants(ctx context.Context, tripID uuid.UUID) ([]models.TripParticipant, error)
	GetParticipant(ctx context.Context, participantID uuid.UUID) (*models.TripParticipant, error)
	RemoveParticipant(ctx context.Context, participantID uuid.UUID) error
	ListSharedTrips(ctx context.Context, userID uuid.UUID) ([]models.Trip, error)
}

// DashboardServiceInterface defines the contract for dashboard summaries.
type DashboardServiceInterface interface {
	Stats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error)
	UpcomingTrips(ctx context.Context, userID uuid.UUID, limit int) ([]models.UpcomingTrip, error)
}

type TripServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, ownerEmail string, params models.TripParams) (*models.Trip, error)
	List(ctx context.Context, ownerID uuid.UUID, includeFuture bool) ([]models.Trip, error)
	Get(ctx context.Context, tripID, userID uuid.UUID) (*models.TripDetail, error)
	Update(ctx context.Context, tripID, userID uuid.UUID, params models.TripParams) (*models.Trip, error)
	Delete(ctx context.Context, tripID, userID uuid.UUID) error
	Access(ctx context.Context, tripID, userID uuid.UUID) (models.TripRole, error)
}

type DestinationServiceInterface interface {
	List(ctx context.Context, tripID, userID uuid.UUID) ([]models.Destination, error)
	Create(ctx context.Context, tripID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error)
	Update(ctx context.Context, destinationID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error)
	Delete(ctx context.Context, destinationID, userID uuid.UUID) error
}

type ActivityServiceInterface interface {
	ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]models.Activity, error)
	Create(ctx context.Context, destinationID uuid.UUID, author models.UserSummary, params models.ActivityParams) (*models.Activity, error)
	Update(ctx context.Context, activityID, userID uuid.UUID, params models.ActivityParams) (*models.Activity, error)
	Delete(ctx context.Context, activityID, userID uuid.UUID) error
}

type ExpenseServiceInterface interface {
	List(ctx context.Context, tripID, userID uuid.UUID) ([]models.Expense, error)
	ListPaidBy(ctx context.Context, userID uuid.UUID) (*models.PaidExpenses, error)
	Get(ctx context.Context, expenseID, userID uuid.UUID) (*models.Expense, error)
	Create(ctx context.Context, tripID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error)
	Update(ctx context.Context, expenseID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error)
	Delete(ctx context.Context, expenseID, userID uuid.UUID) error
}

type CommentServiceInterface interface {
	List(ctx context.Context, activityID, userID uuid.UUID) ([]models.ActivityComment, error)
	Create(ctx context.Context, activityID uuid.UUID, author models.UserSummary, content string) (*models.ActivityComment, error)
	Update(ctx context.Context, commentID, userID uuid.UUID, content string) (*models.ActivityComment, error)
	Delete(ctx context.Context, commentID, userID uuid.UUID) error
}

var (
	_ UserServiceInterface        = (*UserService)(nil)
	_ AuthServiceInterface        = (*AuthService)(nil)
	_ FriendServiceInterface      = (*FriendService)(nil)
	_ ParticipantServiceInterface = (*ParticipantService)(nil)
	_ DashboardServiceInterface   = (*DashboardService)(nil)
	_ TripServiceInterface        = (*TripService)(nil)
	_ DestinationServiceInterface = (*DestinationService)(nil)
	_ ActivityServiceInterface    = (*ActivityService)(nil)
	_ ExpenseServiceInterface     = (*ExpenseService)(nil)
	_ CommentServiceInterface     = (*CommentService)(nil)
)
