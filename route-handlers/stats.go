package routehandlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Mvini0721/Ridetrack/stats"
	"github.com/Mvini0721/Ridetrack/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type StatsHandler struct {
	Rides RideStore
}

func NewStatsHandler(rides RideStore) *StatsHandler {
	return &StatsHandler{Rides: rides}
}

// HandleGetUserStats computes spending totals over the user's rides at
// request time. An empty ride set yields zeroes, not an error.
func (h *StatsHandler) HandleGetUserStats(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(userID); err != nil {
		return webutil.ErrBadRequest("Invalid user ID format")
	}

	rides, err := h.Rides.GetRidesByUserID(r.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to retrieve rides for user %s: %w", userID, err)
	}

	summary := stats.Summarize(rides, time.Now())
	webutil.RespondWithJSON(w, http.StatusOK, summary)
	return nil
}
