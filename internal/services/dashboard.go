package services

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/tripshare/tripshare/internal/models"
)

const defaultUpcomingLimit = 3

// DashboardService computes read-only summaries over the trips a user owns.
// Nothing is cached; every call hits the database.
type DashboardService struct {
	db  DB
	now Clock
}

func NewDashboardService(db DB) *DashboardService {
	return &DashboardService{db: db, now: systemClock}
}

func (s *DashboardService) Stats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}
	err := s.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM trips WHERE created_by = $1),
		   (SELECT COUNT(*) FROM trips WHERE created_by = $1 AND start_date > $2::date),
		   (SELECT COUNT(*) FROM destinations d JOIN trips t ON t.id = d.trip_id WHERE t.created_by = $1),
		   (SELECT COALESCE(SUM(e.amount), 0)::float8 FROM expenses e JOIN trips t ON t.id = e.trip_id WHERE t.created_by = $1)`,
		userID, s.now(),
	).Scan(&stats.TotalTrips, &stats.UpcomingTrips, &stats.TotalDestinations, &stats.TotalExpenses)
	if err != nil {
		return nil, fmt.Errorf("computing dashboard stats: %w", err)
	}
	return stats, nil
}

// UpcomingTrips returns the next owned trips by start date with their first
// city and participant count. A non-positive limit means the default of 3.
func (s *DashboardService) UpcomingTrips(ctx context.Context, userID uuid.UUID, limit int) ([]models.UpcomingTrip, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}

	trips := []models.UpcomingTrip{}
	err := pgxscan.Select(ctx, s.db, &trips,
		`SELECT t.id, t.name, t.start_date, t.end_date,
		        COALESCE((SELECT d.city FROM destinations d
		                  WHERE d.trip_id = t.id
		                  ORDER BY d.start_date ASC, d.id ASC LIMIT 1), '') AS first_city,
		        (SELECT COUNT(*) FROM trip_participants p WHERE p.trip_id = t.id) AS participant_count
		 FROM trips t
		 WHERE t.created_by = $1 AND t.start_date > $2::date
		 ORDER BY t.start_date ASC
		 LIMIT $3`,
		userID, s.now(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing upcoming trips: %w", err)
	}
	return trips, nil
}
