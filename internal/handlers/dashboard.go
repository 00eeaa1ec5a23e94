package handlers

import (
	"net/http"

	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

const upcomingTripsShown = 3

type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

type DashboardResponse struct {
	Stats    *models.DashboardStats `json:"stats"`
	Upcoming []models.UpcomingTrip  `json:"upcoming"`
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.dashboardService.Stats(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "loading dashboard stats")
		return
	}

	upcoming, err := h.dashboardService.UpcomingTrips(r.Context(), user.ID, upcomingTripsShown)
	if err != nil {
		writeServiceError(w, err, "loading upcoming trips")
		return
	}
	if upcoming == nil {
		upcoming = []models.UpcomingTrip{}
	}

	writeJSON(w, http.StatusOK, DashboardResponse{Stats: stats, Upcoming: upcoming})
}
