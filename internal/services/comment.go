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
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("only the author can change this comment")
)

const (
	commentColumns   = `id, activity_id, user_id, content, user_comment, created_at`
	maxCommentLength = 2000
)

type CommentService struct {
	db DB
}

func NewCommentService(db DB) *CommentService {
	return &CommentService{db: db}
}

func validateCommentContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", validationError("content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return "", validationError(fmt.Sprintf("content must be at most %d characters", maxCommentLength))
	}
	return content, nil
}

// List returns an activity's comments oldest first.
func (s *CommentService) List(ctx context.Context, activityID, userID uuid.UUID) ([]models.ActivityComment, error) {
	if _, err := activityTrip(ctx, s.db, activityID, userID); err != nil {
		return nil, err
	}

	comments := []models.ActivityComment{}
	err := pgxscan.Select(ctx, s.db, &comments,
		`SELECT `+commentColumns+` FROM comments_activities
		 WHERE activity_id = $1
		 ORDER BY created_at ASC, id ASC`,
		activityID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Create stores a comment signed with the author's display name, or email if unset.
func (s *CommentService) Create(ctx context.Context, activityID uuid.UUID, author models.UserSummary, content string) (*models.ActivityComment, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}
	if _, err := activityTrip(ctx, s.db, activityID, author.ID); err != nil {
		return nil, err
	}

	label := author.DisplayName
	if label == "" {
		label = author.Email
	}

	var c models.ActivityComment
	err = pgxscan.Get(ctx, s.db, &c,
		`INSERT INTO comments_activities (activity_id, user_id, content, user_comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+commentColumns,
		activityID, author.ID, content, label,
	)
	if err != nil {
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return &c, nil
}

func (s *CommentService) authorOf(ctx context.Context, commentID uuid.UUID) (uuid.UUID, error) {
	var authorID uuid.UUID
	err := s.db.QueryRow(ctx, "SELECT user_id FROM comments_activities WHERE id = $1", commentID).Scan(&authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrCommentNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading comment: %w", err)
	}
	return authorID, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, userID uuid.UUID, content string) (*models.ActivityComment, error) {
	content, err := validateCommentContent(content)
	if err != nil {
		return nil, err
	}

	authorID, err := s.authorOf(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if authorID != userID {
		return nil, ErrNotCommentAuthor
	}

	var c models.ActivityComment
	err = pgxscan.Get(ctx, s.db, &c,
		`UPDATE comments_activities SET content = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+commentColumns,
		commentID, userID, content,
	)
	if pgxscan.NotFound(err) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating comment: %w", err)
	}
	return &c, nil
}

func (s *CommentService) Delete(ctx context.Context, commentID, userID uuid.UUID) error {
	authorID, err := s.authorOf(ctx, commentID)
	if err != nil {
		return err
	}
	if authorID != userID {
		return ErrNotCommentAuthor
	}

	result, err := s.db.Exec(ctx, "DELETE FROM comments_activities WHERE id = $1 AND user_id = $2", commentID, userID)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}
