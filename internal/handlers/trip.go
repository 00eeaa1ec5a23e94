package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

type TripHandler struct {
	tripService        services.TripServiceInterface
	participantService services.ParticipantServiceInterface
}

func NewTripHandler(tripService services.TripServiceInterface, participantService services.ParticipantServiceInterface) *TripHandler {
	return &TripHandler{
		tripService:        tripService,
		participantService: participantService,
	}
}

type TripRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   Date   `json:"start_date"`
	EndDate     Date   `json:"end_date"`
}

func (req TripRequest) params() models.TripParams {
	return models.TripParams{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
	}
}

type TripListResponse struct {
	Trips []models.Trip `json:"trips"`
}

type ShareTripRequest struct {
	UserID string `json:"user_id"`
}

type ParticipantListResponse struct {
	Participants []models.TripParticipant `json:"participants"`
}

// List returns the caller's own trips. Trips that have not started are
// included only with ?all=true.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	includeFuture := r.URL.Query().Get("all") == "true"
	trips, err := h.tripService.List(r.Context(), user.ID, includeFuture)
	if err != nil {
		writeServiceError(w, err, "listing trips")
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}

	writeJSON(w, http.StatusOK, TripListResponse{Trips: trips})
}

func (h *TripHandler) Shared(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	trips, err := h.participantService.ListSharedTrips(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "listing shared trips")
		return
	}
	if trips == nil {
		trips = []models.Trip{}
	}

	writeJSON(w, http.StatusOK, TripListResponse{Trips: trips})
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.tripService.Create(r.Context(), user.ID, user.Email, req.params())
	if err != nil {
		writeServiceError(w, err, "creating trip")
		return
	}

	writeJSON(w, http.StatusCreated, trip)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	trip, err := h.tripService.Get(r.Context(), tripID, user.ID)
	if err != nil {
		writeServiceError(w, err, "getting trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	var req TripRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trip, err := h.tripService.Update(r.Context(), tripID, user.ID, req.params())
	if err != nil {
		writeServiceError(w, err, "updating trip")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	if err := h.tripService.Delete(r.Context(), tripID, user.ID); err != nil {
		writeServiceError(w, err, "deleting trip")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Trip deleted"})
}

func (h *TripHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	if _, err := h.tripService.Access(r.Context(), tripID, user.ID); err != nil {
		writeServiceError(w, err, "checking trip access")
		return
	}

	participants, err := h.participantService.ListParticipants(r.Context(), tripID)
	if err != nil {
		writeServiceError(w, err, "listing participants")
		return
	}
	if participants == nil {
		participants = []models.TripParticipant{}
	}

	writeJSON(w, http.StatusOK, ParticipantListResponse{Participants: participants})
}

// Share adds a friend of the owner to the trip.
func (h *TripHandler) Share(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tripID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	var req ShareTripRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	participant, err := h.participantService.ShareTrip(r.Context(), tripID, user.ID, targetID)
	if err != nil {
		writeServiceError(w, err, "sharing trip")
		return
	}

	writeJSON(w, http.StatusCreated, participant)
}

// RemoveParticipant lets the owner remove anyone and a participant leave.
func (h *TripHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	participantID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid participant ID")
		return
	}

	participant, err := h.participantService.GetParticipant(r.Context(), participantID)
	if err != nil {
		writeServiceError(w, err, "getting participant")
		return
	}

	if participant.UserID != user.ID {
		role, err := h.tripService.Access(r.Context(), participant.TripID, user.ID)
		if errors.Is(err, services.ErrTripNotFound) {
			writeServiceError(w, services.ErrParticipantNotFound, "removing participant")
			return
		}
		if err != nil {
			writeServiceError(w, err, "checking trip access")
			return
		}
		if role != models.TripRoleOwner {
			writeServiceError(w, services.ErrNotTripOwner, "removing participant")
			return
		}
	}

	if err := h.participantService.RemoveParticipant(r.Context(), participantID); err != nil {
		writeServiceError(w, err, "removing participant")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Participant removed"})
}
