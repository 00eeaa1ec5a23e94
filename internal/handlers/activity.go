package handlers

import (
	"net/http"
	"time"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityServiceInterface
	commentService  services.CommentServiceInterface
}

func NewActivityHandler(activityService services.ActivityServiceInterface, commentService services.CommentServiceInterface) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		commentService:  commentService,
	}
}

type ActivityRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Datetime    time.Time `json:"datetime"`
}

func (req ActivityRequest) params() models.ActivityParams {
	return models.ActivityParams{
		Title:       req.Title,
		Description: req.Description,
		Datetime:    req.Datetime,
	}
}

type ActivityListResponse struct {
	Activities []models.Activity `json:"activities"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type CommentListResponse struct {
	Comments []models.ActivityComment `json:"comments"`
}

// ListByTrip returns the activities of every destination in the trip.
func (h *ActivityHandler) ListByTrip(w http.ResponseWriter, r *http.Request) {
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

	activities, err := h.activityService.ListByTrip(r.Context(), tripID, user.ID)
	if err != nil {
		writeServiceError(w, err, "listing activities")
		return
	}
	if activities == nil {
		activities = []models.Activity{}
	}

	writeJSON(w, http.StatusOK, ActivityListResponse{Activities: activities})
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activity, err := h.activityService.Create(r.Context(), destinationID, user.Summary(), req.params())
	if err != nil {
		writeServiceError(w, err, "creating activity")
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	activityID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	var req ActivityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activity, err := h.activityService.Update(r.Context(), activityID, user.ID, req.params())
	if err != nil {
		writeServiceError(w, err, "updating activity")
		return
	}

	writeJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	activityID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	if err := h.activityService.Delete(r.Context(), activityID, user.ID); err != nil {
		writeServiceError(w, err, "deleting activity")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Activity deleted"})
}

func (h *ActivityHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	activityID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	comments, err := h.commentService.List(r.Context(), activityID, user.ID)
	if err != nil {
		writeServiceError(w, err, "listing comments")
		return
	}
	if comments == nil {
		comments = []models.ActivityComment{}
	}

	writeJSON(w, http.StatusOK, CommentListResponse{Comments: comments})
}

func (h *ActivityHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	activityID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid activity ID")
		return
	}

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Create(r.Context(), activityID, user.Summary(), req.Content)
	if err != nil {
		writeServiceError(w, err, "creating comment")
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

func (h *ActivityHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	commentID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var req CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.commentService.Update(r.Context(), commentID, user.ID, req.Content)
	if err != nil {
		writeServiceError(w, err, "updating comment")
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

func (h *ActivityHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	commentID, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	if err := h.commentService.Delete(r.Context(), commentID, user.ID); err != nil {
		writeServiceError(w, err, "deleting comment")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted"})
}
