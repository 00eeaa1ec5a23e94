package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/internal/models"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func uniqueViolationErr() error {
	return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	friendRequestCols = []string{"id", "requester_id", "receiver_id", "status", "created_at", "updated_at"}
	tripCols          = []string{"id", "name", "description", "start_date", "end_date", "created_by", "created_email", "created_at"}
	participantCols   = []string{"id", "trip_id", "user_id", "joined_at", "email", "display_name"}
)

func friendRequestRow(id, requester, receiver uuid.UUID, status models.FriendRequestStatus) *pgxmock.Rows {
	return pgxmock.NewRows(friendRequestCols).AddRow(id, requester, receiver, status, fixedNow, fixedNow)
}

func tripRow(t models.Trip) *pgxmock.Rows {
	return pgxmock.NewRows(tripCols).AddRow(t.ID, t.Name, t.Description, t.StartDate, t.EndDate, t.CreatedBy, t.CreatedEmail, t.CreatedAt)
}

// expectAccess queues the trip access lookup used by every trip-scoped operation.
func expectAccess(mock pgxmock.PgxPoolIface, tripID, userID, ownerID uuid.UUID, participant bool) {
	mock.ExpectQuery(`SELECT t.created_by`).
		WithArgs(tripID, userID).
		WillReturnRows(pgxmock.NewRows([]string{"created_by", "exists"}).AddRow(ownerID, participant))
}
