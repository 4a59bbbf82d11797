package routehandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Mvini0721/Ridetrack/datastore"
	"github.com/Mvini0721/Ridetrack/models"
	"github.com/Mvini0721/Ridetrack/webutil"
	"github.com/araddon/dateparse"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RideStore is the slice of the ride repository the handlers need.
type RideStore interface {
	CreateRide(ctx context.Context, ride *models.Ride) error
	GetRideByID(ctx context.Context, rideID string) (*models.Ride, error)
	GetRidesByUserID(ctx context.Context, userID string) ([]models.Ride, error)
	DeleteRide(ctx context.Context, rideID string) error
}

type RideHandler struct {
	Repo RideStore
}

func NewRideHandler(repo RideStore) *RideHandler {
	return &RideHandler{Repo: repo}
}

func (h *RideHandler) HandleGetUserRides(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(userID); err != nil {
		return webutil.ErrBadRequest("Invalid user ID format")
	}

	rides, err := h.Repo.GetRidesByUserID(r.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to retrieve rides for user %s: %w", userID, err)
	}
	if rides == nil {
		rides = []models.Ride{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, rides)
	return nil
}

// HandleCreateRide records a manually entered ride for a user. The
// occurred_at field accepts most common date formats and defaults to now.
func (h *RideHandler) HandleCreateRide(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(userID); err != nil {
		return webutil.ErrBadRequest("Invalid user ID format")
	}

	var requestData struct {
		Platform    string  `json:"platform"`
		Value       float64 `json:"value"`
		Origin      string  `json:"origin"`
		Destination string  `json:"destination"`
		OccurredAt  string  `json:"occurred_at"`
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&requestData); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	platform := models.Platform(strings.ToLower(strings.TrimSpace(requestData.Platform)))
	if !platform.Valid() {
		return webutil.ErrBadRequest("Unknown platform: " + requestData.Platform)
	}
	if requestData.Value <= 0 {
		return webutil.ErrBadRequest("Value must be positive")
	}

	now := time.Now().UTC()
	occurredAt := now
	if requestData.OccurredAt != "" {
		parsed, err := dateparse.ParseAny(requestData.OccurredAt)
		if err != nil {
			return webutil.ErrBadRequestWrap("Could not parse occurred_at", err)
		}
		occurredAt = parsed.UTC()
	}

	ride := models.Ride{
		ID:          uuid.NewString(),
		UserID:      userID,
		Platform:    platform,
		Value:       requestData.Value,
		Origin:      strings.TrimSpace(requestData.Origin),
		Destination: strings.TrimSpace(requestData.Destination),
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}

	if err := h.Repo.CreateRide(r.Context(), &ride); err != nil {
		if errors.Is(err, datastore.ErrUserMissing) {
			return webutil.ErrNotFound("User not found")
		}
		return fmt.Errorf("failed to create ride for user %s: %w", userID, err)
	}

	webutil.RespondWithJSON(w, http.StatusCreated, ride)
	return nil
}

func (h *RideHandler) HandleGetRide(w http.ResponseWriter, r *http.Request) error {
	rideID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(rideID); err != nil {
		return webutil.ErrBadRequest("Invalid ride ID format")
	}

	ride, err := h.Repo.GetRideByID(r.Context(), rideID)
	if err != nil {
		if errors.Is(err, datastore.ErrRideNotFound) {
			return webutil.ErrNotFound("Ride not found")
		}
		return fmt.Errorf("failed to retrieve ride %s: %w", rideID, err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, ride)
	return nil
}

func (h *RideHandler) HandleDeleteRide(w http.ResponseWriter, r *http.Request) error {
	rideID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(rideID); err != nil {
		return webutil.ErrBadRequest("Invalid ride ID format")
	}

	if err := h.Repo.DeleteRide(r.Context(), rideID); err != nil {
		if errors.Is(err, datastore.ErrRideNotFound) {
			return webutil.ErrNotFound("Ride not found")
		}
		return fmt.Errorf("failed to delete ride %s: %w", rideID, err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
