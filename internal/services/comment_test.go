package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripshare/tripshare/internal/models"
)

var commentCols = []string{"id", "activity_id", "user_id", "content", "user_comment", "created_at"}

func expectActivityTrip(mock pgxmock.PgxPoolIface, activityID, tripID uuid.UUID) {
	mock.ExpectQuery(`SELECT d.trip_id FROM activities`).
		WithArgs(activityID).
		WillReturnRows(pgxmock.NewRows([]string{"trip_id"}).AddRow(tripID))
}

func TestCommentService_Create_LabelFallsBackToEmail(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService(mock)
	author := models.UserSummary{ID: uuid.New(), Email: "anon@example.com"}
	owner, tripID, actID, commentID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	expectActivityTrip(mock, actID, tripID)
	expectAccess(mock, tripID, author.ID, owner, true)
	mock.ExpectQuery(`INSERT INTO comments_activities`).
		WithArgs(actID, author.ID, "Looks great", "anon@example.com").
		WillReturnRows(pgxmock.NewRows(commentCols).AddRow(commentID, actID, author.ID, "Looks great", "anon@example.com", fixedNow))

	c, err := svc.Create(context.Background(), actID, author, " Looks great ")
	require.NoError(t, err)
	assert.Equal(t, "anon@example.com", c.UserComment)
}

func TestCommentService_Create_Validation(t *testing.T) {
	svc := NewCommentService(newMockDB(t))
	author := models.UserSummary{ID: uuid.New()}

	_, err := svc.Create(context.Background(), uuid.New(), author, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), uuid.New(), author, strings.Repeat("a", maxCommentLength+1))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateCommentContent_CountsCharacters(t *testing.T) {
	accented := strings.Repeat("ü", maxCommentLength)
	got, err := validateCommentContent(accented)
	require.NoError(t, err)
	assert.Equal(t, accented, got)

	_, err = validateCommentContent(accented + "ü")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCommentService_List(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService(mock)
	user, tripID, actID := uuid.New(), uuid.New(), uuid.New()

	expectActivityTrip(mock, actID, tripID)
	expectAccess(mock, tripID, user, user, false)
	mock.ExpectQuery(`FROM comments_activities`).
		WithArgs(actID).
		WillReturnRows(pgxmock.NewRows(commentCols).
			AddRow(uuid.New(), actID, user, "first", "Me", fixedNow))

	list, err := svc.List(context.Background(), actID, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first", list[0].Content)
}

func TestCommentService_Update_OnlyAuthor(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService(mock)
	commentID, author, other := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT user_id FROM comments_activities`).
		WithArgs(commentID).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(author))

	_, err := svc.Update(context.Background(), commentID, other, "edited")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
}

func TestCommentService_Update(t *testing.T) {
	mock := newMockDB(t)
	svc := NewCommentService(mock)
	commentID, actID, author := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT user_id FROM comments_activities`).
		WithArgs(commentID).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(author))
	mock.ExpectQuery(`UPDATE comments_activities`).
		WithArgs(commentID, author, "edited").
		WillReturnRows(pgxmock.NewRows(commentCols).AddRow(commentID, actID, author, "edited", "Me", fixedNow))

	c, err := svc.Update(context.Background(), commentID, author, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Content)
}

func TestCommentService_Delete(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		mock := newMockDB(t)
		svc := NewCommentService(mock)
		commentID := uuid.New()
		mock.ExpectQuery(`SELECT user_id FROM comments_activities`).WithArgs(commentID).WillReturnError(pgx.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(context.Background(), commentID, uuid.New()), ErrCommentNotFound)
	})

	t.Run("author", func(t *testing.T) {
		mock := newMockDB(t)
		svc := NewCommentService(mock)
		commentID, author := uuid.New(), uuid.New()
		mock.ExpectQuery(`SELECT user_id FROM comments_activities`).
			WithArgs(commentID).
			WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(author))
		mock.ExpectExec(`DELETE FROM comments_activities`).
			WithArgs(commentID, author).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		assert.NoError(t, svc.Delete(context.Background(), commentID, author))
	})
}
