package handlers

import (
	"net/http"
	"strings"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

type FriendHandler struct {
	friendService services.FriendServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

type SendRequestRequest struct {
	Email string `json:"email"`
}

type FriendListResponse struct {
	Friends  []models.Friend                `json:"friends"`
	Requests []models.FriendRequestWithUser `json:"requests"`
	Sent     []models.FriendRequestWithUser `json:"sent"`
}

type FriendRequestResponse struct {
	Request *models.FriendRequest `json:"request"`
	Message string                `json:"message,omitempty"`
}

// List returns everything the friends screen shows. Clients poll it.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "listing friends")
		return
	}

	requests, err := h.friendService.ListPending(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "listing pending requests")
		return
	}

	sent, err := h.friendService.ListSent(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "listing sent requests")
		return
	}

	response := FriendListResponse{
		Friends:  friends,
		Requests: requests,
		Sent:     sent,
	}
	if response.Friends == nil {
		response.Friends = []models.Friend{}
	}
	if response.Requests == nil {
		response.Requests = []models.FriendRequestWithUser{}
	}
	if response.Sent == nil {
		response.Sent = []models.FriendRequestWithUser{}
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	request, err := h.friendService.SendRequest(r.Context(), user.ID, req.Email)
	if err != nil {
		writeServiceError(w, err, "sending friend request")
		return
	}

	writeJSON(w, http.StatusCreated, FriendRequestResponse{Request: request, Message: "Friend request sent"})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	request, err := h.friendService.AcceptRequest(r.Context(), requestID, user.ID)
	if err != nil {
		writeServiceError(w, err, "accepting friend request")
		return
	}

	writeJSON(w, http.StatusOK, FriendRequestResponse{Request: request, Message: "Friend request accepted"})
}

func (h *FriendHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	request, err := h.friendService.DeclineRequest(r.Context(), requestID, user.ID)
	if err != nil {
		writeServiceError(w, err, "declining friend request")
		return
	}

	writeJSON(w, http.StatusOK, FriendRequestResponse{Request: request, Message: "Friend request declined"})
}

func (h *FriendHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return
	}

	if err := h.friendService.CancelRequest(r.Context(), requestID, user.ID); err != nil {
		writeServiceError(w, err, "canceling friend request")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend request canceled"})
}

// Remove ends a friendship. Trips already shared stay shared.
func (h *FriendHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requestID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friendship ID")
		return
	}

	if err := h.friendService.RemoveFriend(r.Context(), requestID, user.ID); err != nil {
		writeServiceError(w, err, "removing friend")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Friend removed"})
}
