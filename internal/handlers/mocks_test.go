package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
)

type mockUserService struct {
	CreateFunc            func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	UpsertOAuthUserFunc   func(ctx context.Context, email, displayName string) (*models.User, error)
	UpdateDisplayNameFunc func(ctx context.Context, userID uuid.UUID, displayName string) (*models.User, error)
	UpdatePasswordFunc    func(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) UpsertOAuthUser(ctx context.Context, email, displayName string) (*models.User, error) {
	if m.UpsertOAuthUserFunc != nil {
		return m.UpsertOAuthUserFunc(ctx, email, displayName)
	}
	return nil, nil
}

func (m *mockUserService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*models.User, error) {
	if m.UpdateDisplayNameFunc != nil {
		return m.UpdateDisplayNameFunc(ctx, userID, displayName)
	}
	return &models.User{ID: userID, DisplayName: displayName}, nil
}

func (m *mockUserService) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, userID, passwordHash)
	}
	return nil
}

type mockAuthService struct {
	SignUpFunc             func(ctx context.Context, email, password, displayName string) (*models.Session, error)
	SignInWithPasswordFunc func(ctx context.Context, email, password string) (*models.Session, error)
	ValidateTokenFunc      func(ctx context.Context, token string) (*models.User, error)
	SignOutFunc            func(ctx context.Context, token string) error
	ChangePasswordFunc     func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, token string) (*models.Session, error)
	OAuthProvidersFunc     func() []string
	BeginOAuthFunc         func(ctx context.Context, provider string) (string, string, error)
	CompleteOAuthFunc      func(ctx context.Context, provider, state, code string) (*models.Session, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, displayName)
	}
	return &models.Session{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func (m *mockAuthService) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, email, password)
	}
	return &models.Session{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) SignOut(ctx context.Context, token string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, token)
	}
	return nil
}

func (m *mockAuthService) OAuthProviders() []string {
	if m.OAuthProvidersFunc != nil {
		return m.OAuthProvidersFunc()
	}
	return []string{}
}

func (m *mockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, token string) (*models.Session, error) {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, currentPassword, newPassword, token)
	}
	return &models.Session{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 3600}, nil
}

func (m *mockAuthService) BeginOAuth(ctx context.Context, provider string) (string, string, error) {
	if m.BeginOAuthFunc != nil {
		return m.BeginOAuthFunc(ctx, provider)
	}
	return "", "", nil
}

func (m *mockAuthService) CompleteOAuth(ctx context.Context, provider, state, code string) (*models.Session, error) {
	if m.CompleteOAuthFunc != nil {
		return m.CompleteOAuthFunc(ctx, provider, state, code)
	}
	return nil, nil
}

type mockFriendService struct {
	SendRequestFunc    func(ctx context.Context, requesterID uuid.UUID, receiverEmail string) (*models.FriendRequest, error)
	AcceptRequestFunc  func(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error)
	DeclineRequestFunc func(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error)
	RemoveFriendFunc   func(ctx context.Context, requestID, userID uuid.UUID) error
	CancelRequestFunc  func(ctx context.Context, requestID, requesterID uuid.UUID) error
	ListPendingFunc    func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListSentFunc       func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListFriendsFunc    func(ctx context.Context, userID uuid.UUID) ([]models.Friend, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, requesterID uuid.UUID, receiverEmail string) (*models.FriendRequest, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, requesterID, receiverEmail)
	}
	return &models.FriendRequest{}, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error) {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, requestID, receiverID)
	}
	return &models.FriendRequest{ID: requestID, Status: models.FriendRequestAccepted}, nil
}

func (m *mockFriendService) DeclineRequest(ctx context.Context, requestID, receiverID uuid.UUID) (*models.FriendRequest, error) {
	if m.DeclineRequestFunc != nil {
		return m.DeclineRequestFunc(ctx, requestID, receiverID)
	}
	return &models.FriendRequest{ID: requestID, Status: models.FriendRequestDeclined}, nil
}

func (m *mockFriendService) RemoveFriend(ctx context.Context, requestID, userID uuid.UUID) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, requestID, userID)
	}
	return nil
}

func (m *mockFriendService) CancelRequest(ctx context.Context, requestID, requesterID uuid.UUID) error {
	if m.CancelRequestFunc != nil {
		return m.CancelRequestFunc(ctx, requestID, requesterID)
	}
	return nil
}

func (m *mockFriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockFriendService) ListSent(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	if m.ListSentFunc != nil {
		return m.ListSentFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friend, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return nil, nil
}

type mockParticipantService struct {
	ShareTripFunc         func(ctx context.Context, tripID, ownerID, targetID uuid.UUID) (*models.TripParticipant, error)
	ListParticipantsFunc  func(ctx context.Context, tripID uuid.UUID) ([]models.TripParticipant, error)
	GetParticipantFunc    func(ctx context.Context, participantID uuid.UUID) (*models.TripParticipant, error)
	RemoveParticipantFunc func(ctx context.Context, participantID uuid.UUID) error
	ListSharedTripsFunc   func(ctx context.Context, userID uuid.UUID) ([]models.Trip, error)
}

func (m *mockParticipantService) ShareTrip(ctx context.Context, tripID, ownerID, targetID uuid.UUID) (*models.TripParticipant, error) {
	if m.ShareTripFunc != nil {
		return m.ShareTripFunc(ctx, tripID, ownerID, targetID)
	}
	return &models.TripParticipant{TripID: tripID, UserID: targetID}, nil
}

func (m *mockParticipantService) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]models.TripParticipant, error) {
	if m.ListParticipantsFunc != nil {
		return m.ListParticipantsFunc(ctx, tripID)
	}
	return nil, nil
}

func (m *mockParticipantService) GetParticipant(ctx context.Context, participantID uuid.UUID) (*models.TripParticipant, error) {
	if m.GetParticipantFunc != nil {
		return m.GetParticipantFunc(ctx, participantID)
	}
	return nil, nil
}

func (m *mockParticipantService) RemoveParticipant(ctx context.Context, participantID uuid.UUID) error {
	if m.RemoveParticipantFunc != nil {
		return m.RemoveParticipantFunc(ctx, participantID)
	}
	return nil
}

func (m *mockParticipantService) ListSharedTrips(ctx context.Context, userID uuid.UUID) ([]models.Trip, error) {
	if m.ListSharedTripsFunc != nil {
		return m.ListSharedTripsFunc(ctx, userID)
	}
	return nil, nil
}

type mockDashboardService struct {
	StatsFunc         func(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error)
	UpcomingTripsFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]models.UpcomingTrip, error)
}

func (m *mockDashboardService) Stats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx, userID)
	}
	return &models.DashboardStats{}, nil
}

func (m *mockDashboardService) UpcomingTrips(ctx context.Context, userID uuid.UUID, limit int) ([]models.UpcomingTrip, error) {
	if m.UpcomingTripsFunc != nil {
		return m.UpcomingTripsFunc(ctx, userID, limit)
	}
	return nil, nil
}

type mockTripService struct {
	CreateFunc func(ctx context.Context, ownerID uuid.UUID, ownerEmail string, params models.TripParams) (*models.Trip, error)
	ListFunc   func(ctx context.Context, ownerID uuid.UUID, includeFuture bool) ([]models.Trip, error)
	GetFunc    func(ctx context.Context, tripID, userID uuid.UUID) (*models.TripDetail, error)
	UpdateFunc func(ctx context.Context, tripID, userID uuid.UUID, params models.TripParams) (*models.Trip, error)
	DeleteFunc func(ctx context.Context, tripID, userID uuid.UUID) error
	AccessFunc func(ctx context.Context, tripID, userID uuid.UUID) (models.TripRole, error)
}

func (m *mockTripService) Create(ctx context.Context, ownerID uuid.UUID, ownerEmail string, params models.TripParams) (*models.Trip, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, ownerEmail, params)
	}
	return &models.Trip{ID: uuid.New(), Name: params.Name, CreatedBy: ownerID}, nil
}

func (m *mockTripService) List(ctx context.Context, ownerID uuid.UUID, includeFuture bool) ([]models.Trip, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, includeFuture)
	}
	return nil, nil
}

func (m *mockTripService) Get(ctx context.Context, tripID, userID uuid.UUID) (*models.TripDetail, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tripID, userID)
	}
	return nil, nil
}

func (m *mockTripService) Update(ctx context.Context, tripID, userID uuid.UUID, params models.TripParams) (*models.Trip, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tripID, userID, params)
	}
	return &models.Trip{ID: tripID, Name: params.Name}, nil
}

func (m *mockTripService) Delete(ctx context.Context, tripID, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tripID, userID)
	}
	return nil
}

func (m *mockTripService) Access(ctx context.Context, tripID, userID uuid.UUID) (models.TripRole, error) {
	if m.AccessFunc != nil {
		return m.AccessFunc(ctx, tripID, userID)
	}
	return models.TripRoleOwner, nil
}

type mockDestinationService struct {
	ListFunc   func(ctx context.Context, tripID, userID uuid.UUID) ([]models.Destination, error)
	CreateFunc func(ctx context.Context, tripID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error)
	UpdateFunc func(ctx context.Context, destinationID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error)
	DeleteFunc func(ctx context.Context, destinationID, userID uuid.UUID) error
}

func (m *mockDestinationService) List(ctx context.Context, tripID, userID uuid.UUID) ([]models.Destination, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tripID, userID)
	}
	return nil, nil
}

func (m *mockDestinationService) Create(ctx context.Context, tripID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tripID, userID, params)
	}
	return &models.Destination{ID: uuid.New(), TripID: tripID, City: params.City, StartDate: params.StartDate, EndDate: params.EndDate}, nil
}

func (m *mockDestinationService) Update(ctx context.Context, destinationID, userID uuid.UUID, params models.DestinationParams) (*models.Destination, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, destinationID, userID, params)
	}
	return &models.Destination{ID: destinationID, City: params.City}, nil
}

func (m *mockDestinationService) Delete(ctx context.Context, destinationID, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, destinationID, userID)
	}
	return nil
}

type mockActivityService struct {
	ListByTripFunc func(ctx context.Context, tripID, userID uuid.UUID) ([]models.Activity, error)
	CreateFunc     func(ctx context.Context, destinationID uuid.UUID, author models.UserSummary, params models.ActivityParams) (*models.Activity, error)
	UpdateFunc     func(ctx context.Context, activityID, userID uuid.UUID, params models.ActivityParams) (*models.Activity, error)
	DeleteFunc     func(ctx context.Context, activityID, userID uuid.UUID) error
}

func (m *mockActivityService) ListByTrip(ctx context.Context, tripID, userID uuid.UUID) ([]models.Activity, error) {
	if m.ListByTripFunc != nil {
		return m.ListByTripFunc(ctx, tripID, userID)
	}
	return nil, nil
}

func (m *mockActivityService) Create(ctx context.Context, destinationID uuid.UUID, author models.UserSummary, params models.ActivityParams) (*models.Activity, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, destinationID, author, params)
	}
	return &models.Activity{ID: uuid.New(), DestinationID: destinationID, Title: params.Title, Email: author.Email}, nil
}

func (m *mockActivityService) Update(ctx context.Context, activityID, userID uuid.UUID, params models.ActivityParams) (*models.Activity, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, activityID, userID, params)
	}
	return &models.Activity{ID: activityID, Title: params.Title}, nil
}

func (m *mockActivityService) Delete(ctx context.Context, activityID, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, activityID, userID)
	}
	return nil
}

type mockExpenseService struct {
	ListFunc       func(ctx context.Context, tripID, userID uuid.UUID) ([]models.Expense, error)
	ListPaidByFunc func(ctx context.Context, userID uuid.UUID) (*models.PaidExpenses, error)
	GetFunc        func(ctx context.Context, expenseID, userID uuid.UUID) (*models.Expense, error)
	CreateFunc     func(ctx context.Context, tripID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error)
	UpdateFunc     func(ctx context.Context, expenseID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error)
	DeleteFunc     func(ctx context.Context, expenseID, userID uuid.UUID) error
}

func (m *mockExpenseService) List(ctx context.Context, tripID, userID uuid.UUID) ([]models.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, tripID, userID)
	}
	return nil, nil
}

func (m *mockExpenseService) ListPaidBy(ctx context.Context, userID uuid.UUID) (*models.PaidExpenses, error) {
	if m.ListPaidByFunc != nil {
		return m.ListPaidByFunc(ctx, userID)
	}
	return &models.PaidExpenses{Trips: []models.TripExpenses{}}, nil
}

func (m *mockExpenseService) Get(ctx context.Context, expenseID, userID uuid.UUID) (*models.Expense, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, expenseID, userID)
	}
	return &models.Expense{ID: expenseID}, nil
}

func (m *mockExpenseService) Create(ctx context.Context, tripID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tripID, userID, params)
	}
	return &models.Expense{ID: uuid.New(), TripID: tripID, Title: params.Title, Amount: params.Amount}, nil
}

func (m *mockExpenseService) Update(ctx context.Context, expenseID, userID uuid.UUID, params models.ExpenseParams) (*models.Expense, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, expenseID, userID, params)
	}
	return &models.Expense{ID: expenseID, Title: params.Title, Amount: params.Amount}, nil
}

func (m *mockExpenseService) Delete(ctx context.Context, expenseID, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, expenseID, userID)
	}
	return nil
}

type mockCommentService struct {
	ListFunc   func(ctx context.Context, activityID, userID uuid.UUID) ([]models.ActivityComment, error)
	CreateFunc func(ctx context.Context, activityID uuid.UUID, author models.UserSummary, content string) (*models.ActivityComment, error)
	UpdateFunc func(ctx context.Context, commentID, userID uuid.UUID, content string) (*models.ActivityComment, error)
	DeleteFunc func(ctx context.Context, commentID, userID uuid.UUID) error
}

func (m *mockCommentService) List(ctx context.Context, activityID, userID uuid.UUID) ([]models.ActivityComment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, activityID, userID)
	}
	return nil, nil
}

func (m *mockCommentService) Create(ctx context.Context, activityID uuid.UUID, author models.UserSummary, content string) (*models.ActivityComment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, activityID, author, content)
	}
	return &models.ActivityComment{ID: uuid.New(), ActivityID: activityID, UserID: author.ID, Content: content}, nil
}

func (m *mockCommentService) Update(ctx context.Context, commentID, userID uuid.UUID, content string) (*models.ActivityComment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, commentID, userID, content)
	}
	return &models.ActivityComment{ID: commentID, UserID: userID, Content: content}, nil
}

func (m *mockCommentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, commentID, userID)
	}
	return nil
}
