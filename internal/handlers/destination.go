package handlers

import (
	"net/http"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

type DestinationHandler struct {
	destinationService services.DestinationServiceInterface
}

func NewDestinationHandler(destinationService services.DestinationServiceInterface) *DestinationHandler {
	return &DestinationHandler{destinationService: destinationService}
}

type DestinationRequest struct {
	City      string `json:"city"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

func (req DestinationRequest) params() models.DestinationParams {
	return models.DestinationParams{
		City:      req.City,
		StartDate: req.StartDate.Time,
		EndDate:   req.EndDate.Time,
	}
}

type DestinationListResponse struct {
	Destinations []models.Destination `json:"destinations"`
}

func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
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

	destinations, err := h.destinationService.List(r.Context(), tripID, user.ID)
	if err != nil {
		writeServiceError(w, err, "listing destinations")
		return
	}
	if destinations == nil {
		destinations = []models.Destination{}
	}

	writeJSON(w, http.StatusOK, DestinationListResponse{Destinations: destinations})
}

func (h *DestinationHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req DestinationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	destination, err := h.destinationService.Create(r.Context(), tripID, user.ID, req.params())
	if err != nil {
		writeServiceError(w, err, "creating destination")
		return
	}

	writeJSON(w, http.StatusCreated, destination)
}

func (h *DestinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	destinationID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid destination ID")
		return
	}

	var req DestinationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	destination, err := h.destinationService.Update(r.Context(), destinationID, user.ID, req.params())
	if err != nil {
		writeServiceError(w, err, "updating destination")
		return
	}

	writeJSON(w, http.StatusOK, destination)
}

func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	destinationID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid destination ID")
		return
	}

	if err := h.destinationService.Delete(r.Context(), destinationID, user.ID); err != nil {
		writeServiceError(w, err, "deleting destination")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Destination deleted"})
}
