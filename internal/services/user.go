package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tripshare/tripshare/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

const userColumns = `id, email, COALESCE(password_hash, ''), display_name, created_at, updated_at`

type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	email := NormalizeEmail(params.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationError("a valid email is required")
	}

	var passwordHash *string
	if params.PasswordHash != "" {
		passwordHash = &params.PasswordHash
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, display_name)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		email, passwordHash, strings.TrimSpace(params.DisplayName),
	))
	if isUniqueViolation(err) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		NormalizeEmail(email),
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

// UpsertOAuthUser returns the account with this email, creating a
// password-less one on first sign-in. An existing display name is kept.
func (s *UserService) UpsertOAuthUser(ctx context.Context, email, displayName string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, validationError("provider did not return an email")
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`INSERT INTO users (email, display_name)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE
		   SET display_name = CASE WHEN users.display_name = '' THEN EXCLUDED.display_name ELSE users.display_name END,
		       updated_at = NOW()
		 RETURNING `+userColumns,
		email, strings.TrimSpace(displayName),
	))
	if err != nil {
		return nil, fmt.Errorf("upserting oauth user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateDisplayName(ctx context.Context, userID uuid.UUID, displayName string) (*models.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, validationError("display name is required")
	}
	if utf8.RuneCountInString(displayName) > 100 {
		return nil, validationError("display name must be at most 100 characters")
	}

	user, err := scanUser(s.db.QueryRow(ctx,
		`UPDATE users SET display_name = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, displayName,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating display name: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := s.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
