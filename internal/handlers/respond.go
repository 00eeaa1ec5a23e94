package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/logging"
	"github.com/tripshare/tripshare/internal/oauth"
	"github.com/tripshare/tripshare/internal/services"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

var (
	badRequestErrors = []error{services.ErrValidation, services.ErrCannotFriendSelf}
	unauthorizedErrs = []error{
		services.ErrInvalidCredentials,
		services.ErrInvalidToken,
		services.ErrTokenRevoked,
		services.ErrInvalidOAuthState,
		services.ErrIncorrectPassword,
	}
	forbiddenErrors = []error{services.ErrNotTripOwner, services.ErrNotFriend, services.ErrNotCommentAuthor}
	notFoundErrors  = []error{
		services.ErrUserNotFound,
		services.ErrFriendRequestNotFound,
		services.ErrFriendshipNotFound,
		services.ErrTripNotFound,
		services.ErrParticipantNotFound,
		services.ErrDestinationNotFound,
		services.ErrActivityNotFound,
		services.ErrExpenseNotFound,
		services.ErrCommentNotFound,
		oauth.ErrUnknownProvider,
	}
	conflictErrors = []error{
		services.ErrFriendRequestExists,
		services.ErrAlreadyFriends,
		services.ErrAlreadyShared,
		services.ErrEmailAlreadyExists,
	}
)

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps a service error onto an HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest
	case matchesAny(err, unauthorizedErrs):
		return http.StatusUnauthorized
	case matchesAny(err, forbiddenErrors):
		return http.StatusForbidden
	case matchesAny(err, notFoundErrors):
		return http.StatusNotFound
	case matchesAny(err, conflictErrors):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError reports err to the client. Backend failures are logged
// and hidden behind a generic message.
func writeServiceError(w http.ResponseWriter, err error, action string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error("Error "+action, map[string]interface{}{"error": err.Error()})
		writeError(w, status, "Internal server error")
		return
	}

	message := err.Error()
	if errors.Is(err, services.ErrValidation) {
		message = strings.TrimPrefix(message, services.ErrValidation.Error()+": ")
	}
	writeError(w, status, message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func parsePathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

// Date accepts "2006-01-02" as well as full RFC 3339 timestamps.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
