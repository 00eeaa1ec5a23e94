package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPassword reports whether the user can sign in with a password.
// OAuth-only accounts have no hash.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Summary is the public identity shown to friends and co-travellers.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

type UserSummary struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	DisplayName  string
}
